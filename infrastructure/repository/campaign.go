package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/adchain-api/infrastructure/database/postgres"
	"github.com/vfg2006/adchain-api/internal/domain"
)

const (
	campaignsTable = "campaigns c"
	matchesTable   = "campaign_content_matches m"

	campaignColumns = `c.id, c.brand_id, c.brand_name, c.target_audience, c.category,
		c.budget, c.currency, c.payout_per_view, c.total_spent, c.status,
		c.criteria, c.contract_address, c.on_chain_id, c.created_at, c.updated_at`
)

type CampaignRepository interface {
	GetByID(id string) (*domain.Campaign, error)
	ListCampaigns(filters domain.CampaignFilters) ([]*domain.Campaign, error)
	ListMatches(campaignID string) ([]*domain.ContentMatch, error)
	GetMatch(campaignID, episodeID string) (*domain.ContentMatch, error)
	UpsertMatch(match *domain.ContentMatch) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) GetByID(id string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	campaign, err := scanCampaign(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) ListCampaigns(filters domain.CampaignFilters) ([]*domain.Campaign, error) {
	builder := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		OrderBy("c.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(filters.Status) > 0 {
		builder = builder.Where(squirrel.Eq{"c.status": filters.Status})
	}

	if filters.BrandID != "" {
		builder = builder.Where(squirrel.Eq{"c.brand_id": filters.BrandID})
	}

	if filters.Limit > 0 {
		builder = builder.Limit(uint64(filters.Limit))
	}

	if filters.Offset > 0 {
		builder = builder.Offset(uint64(filters.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanhas: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) ListMatches(campaignID string) ([]*domain.ContentMatch, error) {
	query, args, err := squirrel.
		Select("m.campaign_id, m.episode_id, m.compatibility_score, m.status, m.matched_at").
		From(matchesTable).
		Where(squirrel.Eq{"m.campaign_id": campaignID}).
		OrderBy("m.compatibility_score DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	matches := make([]*domain.ContentMatch, 0)
	for rows.Next() {
		match := &domain.ContentMatch{}
		if err := rows.Scan(
			&match.CampaignID,
			&match.EpisodeID,
			&match.CompatibilityScore,
			&match.Status,
			&match.MatchedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear matches: %w", err)
		}
		matches = append(matches, match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return matches, nil
}

func (r *campaignRepository) GetMatch(campaignID, episodeID string) (*domain.ContentMatch, error) {
	query, args, err := squirrel.
		Select("m.campaign_id, m.episode_id, m.compatibility_score, m.status, m.matched_at").
		From(matchesTable).
		Where(squirrel.Eq{"m.campaign_id": campaignID, "m.episode_id": episodeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	match := &domain.ContentMatch{}
	err = r.conn.QueryRow(query, args...).Scan(
		&match.CampaignID,
		&match.EpisodeID,
		&match.CompatibilityScore,
		&match.Status,
		&match.MatchedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear match: %w", err)
	}

	return match, nil
}

// UpsertMatch insere ou atualiza a entrada de match para o par
// (campanha, episódio). A constraint de unicidade garante que o par nunca
// exista duas vezes
func (r *campaignRepository) UpsertMatch(match *domain.ContentMatch) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("campaign_content_matches").
		Columns("campaign_id", "episode_id", "compatibility_score", "status", "matched_at").
		Values(
			match.CampaignID,
			match.EpisodeID,
			match.CompatibilityScore,
			match.Status,
			match.MatchedAt,
		).
		Suffix(`
			ON CONFLICT (campaign_id, episode_id) DO UPDATE SET
				compatibility_score = EXCLUDED.compatibility_score,
				status = EXCLUDED.status,
				matched_at = EXCLUDED.matched_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao salvar match: %w", err)
	}

	return nil
}

func scanCampaign(row squirrel.RowScanner) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}
	var criteriaJSON []byte

	err := row.Scan(
		&campaign.ID,
		&campaign.BrandID,
		&campaign.BrandName,
		pq.Array(&campaign.TargetAudience),
		&campaign.Category,
		&campaign.Budget,
		&campaign.Currency,
		&campaign.PayoutPerView,
		&campaign.TotalSpent,
		&campaign.Status,
		&criteriaJSON,
		&campaign.ContractAddress,
		&campaign.OnChainID,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(criteriaJSON) > 0 {
		if err := json.Unmarshal(criteriaJSON, &campaign.Criteria); err != nil {
			return nil, fmt.Errorf("erro ao desserializar critérios: %w", err)
		}
	}

	return campaign, nil
}

// touchTimestamp é usado nos upserts que precisam registrar o momento da
// última mutação sem depender de triggers
func touchTimestamp() time.Time {
	return time.Now().UTC()
}

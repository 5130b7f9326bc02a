package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/adchain-api/infrastructure/database/postgres"
	"github.com/vfg2006/adchain-api/internal/domain"
)

const (
	placementsTable = "ad_placements p"

	placementColumns = `p.id, p.campaign_id, p.episode_id, p.status, p.quality_score,
		p.verification_result, p.verification_tx_ref, p.payment_tx_ref, p.view_count,
		p.total_payout, p.impressions, p.clicks, p.conversions,
		p.created_at, p.verified_at, p.paid_at`
)

// SettleParams carrega os valores da liquidação atômica de um placement
type SettleParams struct {
	PlacementID string
	CampaignID  string
	EpisodeID   string
	Amount      decimal.Decimal
	TxRef       string
}

type PlacementRepository interface {
	GetByID(id string) (*domain.AdPlacement, error)
	GetByCampaignAndEpisode(campaignID, episodeID string) (*domain.AdPlacement, error)
	ListPlacements(filters domain.PlacementFilters) ([]*domain.AdPlacement, error)
	Create(placement *domain.AdPlacement) error
	SaveVerificationResult(placementID string, result *domain.VerificationResult) error
	MarkVerified(placementID, txRef string) error
	MarkRejected(placementID string) error
	SettlePayout(ctx context.Context, params *SettleParams) error
	SumPaidByCreator(creatorAddress string) (*domain.CreatorEarnings, error)
}

type placementRepository struct {
	conn *postgres.Connection
}

func NewPlacementRepository(conn *postgres.Connection) PlacementRepository {
	return &placementRepository{
		conn: conn,
	}
}

func (r *placementRepository) GetByID(id string) (*domain.AdPlacement, error) {
	query, args, err := squirrel.
		Select(placementColumns).
		From(placementsTable).
		Where(squirrel.Eq{"p.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	placement, err := scanPlacement(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear placement: %w", err)
	}

	return placement, nil
}

func (r *placementRepository) GetByCampaignAndEpisode(campaignID, episodeID string) (*domain.AdPlacement, error) {
	query, args, err := squirrel.
		Select(placementColumns).
		From(placementsTable).
		Where(squirrel.Eq{"p.campaign_id": campaignID, "p.episode_id": episodeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	placement, err := scanPlacement(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear placement: %w", err)
	}

	return placement, nil
}

func (r *placementRepository) ListPlacements(filters domain.PlacementFilters) ([]*domain.AdPlacement, error) {
	builder := squirrel.
		Select(placementColumns).
		From(placementsTable).
		OrderBy("p.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.CampaignID != "" {
		builder = builder.Where(squirrel.Eq{"p.campaign_id": filters.CampaignID})
	}

	if filters.EpisodeID != "" {
		builder = builder.Where(squirrel.Eq{"p.episode_id": filters.EpisodeID})
	}

	if len(filters.Status) > 0 {
		builder = builder.Where(squirrel.Eq{"p.status": filters.Status})
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

	placements := make([]*domain.AdPlacement, 0)
	for rows.Next() {
		placement, err := scanPlacement(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear placements: %w", err)
		}
		placements = append(placements, placement)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return placements, nil
}

func (r *placementRepository) Create(placement *domain.AdPlacement) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("ad_placements").
		Columns("id", "campaign_id", "episode_id", "status", "created_at").
		Values(
			placement.ID,
			placement.CampaignID,
			placement.EpisodeID,
			placement.Status,
			placement.CreatedAt,
		).
		Suffix("ON CONFLICT (campaign_id, episode_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao criar placement: %w", err)
	}

	return nil
}

// SaveVerificationResult persiste o snapshot do oráculo enquanto o placement
// ainda está pendente. É o cache que evita nova chamada de IA quando a
// etapa on-chain falha e precisa ser repetida
func (r *placementRepository) SaveVerificationResult(placementID string, result *domain.VerificationResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("erro ao serializar resultado de verificação: %w", err)
	}

	res, err := r.conn.Exec(`
		UPDATE ad_placements
		SET verification_result = $2,
			quality_score = $3
		WHERE id = $1 AND status = 'pending'
	`, placementID, resultJSON, result.QualityScore)
	if err != nil {
		return fmt.Errorf("erro ao salvar resultado de verificação: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrConflict
	}

	return nil
}

// MarkVerified move o placement de pending para verified. A cláusula de
// status é o compare-and-set que impede transições regressivas
func (r *placementRepository) MarkVerified(placementID, txRef string) error {
	res, err := r.conn.Exec(`
		UPDATE ad_placements
		SET status = 'verified',
			verification_tx_ref = $2,
			verified_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, placementID, txRef)
	if err != nil {
		return fmt.Errorf("erro ao marcar placement como verificado: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrConflict
	}

	return nil
}

func (r *placementRepository) MarkRejected(placementID string) error {
	res, err := r.conn.Exec(`
		UPDATE ad_placements
		SET status = 'rejected'
		WHERE id = $1 AND status = 'pending'
	`, placementID)
	if err != nil {
		return fmt.Errorf("erro ao marcar placement como rejeitado: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrConflict
	}

	return nil
}

// SettlePayout executa a sequência "marcar pago / debitar orçamento /
// creditar criador" como uma unidade atômica. Tentativas concorrentes para o
// mesmo placement resultam em exatamente um sucesso: as demais observam
// ErrAlreadyPaid. O débito da campanha é protegido pela cláusula de
// orçamento, de forma que duas liquidações nunca estouram o budget juntas
func (r *placementRepository) SettlePayout(ctx context.Context, params *SettleParams) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			UPDATE ad_placements
			SET status = 'paid',
				total_payout = $2,
				payment_tx_ref = $3,
				paid_at = NOW()
			WHERE id = $1 AND status = 'verified'
		`, params.PlacementID, params.Amount, params.TxRef)
		if err != nil {
			return fmt.Errorf("erro ao marcar placement como pago: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrAlreadyPaid
		}

		res, err = tx.Exec(`
			UPDATE campaigns
			SET total_spent = total_spent + $2,
				updated_at = NOW()
			WHERE id = $1 AND total_spent + $2 <= budget
		`, params.CampaignID, params.Amount)
		if err != nil {
			return fmt.Errorf("erro ao debitar orçamento da campanha: %w", err)
		}

		affected, err = res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrInsufficientBudget
		}

		res, err = tx.Exec(`
			UPDATE episodes
			SET total_earnings = total_earnings + $2,
				earnings_per_view = CASE
					WHEN view_count > 0 THEN (total_earnings + $2) / view_count
					ELSE 0
				END,
				updated_at = NOW()
			WHERE id = $1
		`, params.EpisodeID, params.Amount)
		if err != nil {
			return fmt.Errorf("erro ao creditar ganhos do episódio: %w", err)
		}

		affected, err = res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotFound
		}

		return nil
	})
}

// SumPaidByCreator recomputa o agregado de ganhos do criador a partir do
// histórico de placements pagos. A recomputação é a fonte da verdade
func (r *placementRepository) SumPaidByCreator(creatorAddress string) (*domain.CreatorEarnings, error) {
	earnings := &domain.CreatorEarnings{
		CreatorAddress: creatorAddress,
		ComputedAt:     touchTimestamp(),
	}

	err := r.conn.QueryRow(`
		SELECT COALESCE(SUM(p.total_payout), 0), COUNT(p.id), MAX(p.paid_at)
		FROM ad_placements p
		JOIN episodes e ON e.id = p.episode_id
		WHERE e.creator_address = $1 AND p.status = 'paid'
	`, creatorAddress).Scan(
		&earnings.TotalEarnings,
		&earnings.PaidPlacements,
		&earnings.LastPayoutAt,
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar ganhos do criador: %w", err)
	}

	return earnings, nil
}

func scanPlacement(row squirrel.RowScanner) (*domain.AdPlacement, error) {
	placement := &domain.AdPlacement{}
	var resultJSON []byte

	err := row.Scan(
		&placement.ID,
		&placement.CampaignID,
		&placement.EpisodeID,
		&placement.Status,
		&placement.QualityScore,
		&resultJSON,
		&placement.VerificationTxRef,
		&placement.PaymentTxRef,
		&placement.ViewCount,
		&placement.TotalPayout,
		&placement.Impressions,
		&placement.Clicks,
		&placement.Conversions,
		&placement.CreatedAt,
		&placement.VerifiedAt,
		&placement.PaidAt,
	)
	if err != nil {
		return nil, err
	}

	if len(resultJSON) > 0 {
		result := &domain.VerificationResult{}
		if err := json.Unmarshal(resultJSON, result); err != nil {
			return nil, fmt.Errorf("erro ao desserializar resultado de verificação: %w", err)
		}
		placement.VerificationResult = result
	}

	return placement, nil
}

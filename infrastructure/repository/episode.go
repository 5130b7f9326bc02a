package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/adchain-api/infrastructure/database/postgres"
	"github.com/vfg2006/adchain-api/internal/domain"
)

const (
	episodesTable = "episodes e"

	episodeColumns = `e.id, e.podcast_id, e.title, e.creator_address, e.topics, e.category,
		e.quality_score, e.engagement_rate, e.view_count, e.total_earnings,
		e.earnings_per_view, e.fraud_flagged, e.created_at, e.updated_at`
)

type EpisodeRepository interface {
	GetByID(id string) (*domain.Episode, error)
	ListEpisodes(filters domain.EpisodeFilters) ([]*domain.Episode, error)
	IncrementView(ctx context.Context, episodeID, viewerID string) error
	GetStats(episodeID string) (*domain.EpisodeStats, error)
	GetViewAudit(episodeID string) (*domain.ViewAudit, error)
	SetFraudFlag(episodeID string, flagged bool) error
	RecalculateEarningsPerView() (int64, error)
	DeleteViewersOlderThan(days int) (int64, error)
}

type episodeRepository struct {
	conn *postgres.Connection
}

func NewEpisodeRepository(conn *postgres.Connection) EpisodeRepository {
	return &episodeRepository{
		conn: conn,
	}
}

func (r *episodeRepository) GetByID(id string) (*domain.Episode, error) {
	query, args, err := squirrel.
		Select(episodeColumns).
		From(episodesTable).
		Where(squirrel.Eq{"e.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	episode, err := scanEpisode(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear episódio: %w", err)
	}

	return episode, nil
}

func (r *episodeRepository) ListEpisodes(filters domain.EpisodeFilters) ([]*domain.Episode, error) {
	builder := squirrel.
		Select(episodeColumns).
		From(episodesTable).
		OrderBy("e.quality_score DESC", "e.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.Category != "" {
		builder = builder.Where(squirrel.Eq{"e.category": filters.Category})
	}

	if filters.CreatorAddress != "" {
		builder = builder.Where(squirrel.Eq{"e.creator_address": filters.CreatorAddress})
	}

	if filters.MinQuality > 0 {
		builder = builder.Where(squirrel.GtOrEq{"e.quality_score": filters.MinQuality})
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

	episodes := make([]*domain.Episode, 0)
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear episódios: %w", err)
		}
		episodes = append(episodes, episode)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return episodes, nil
}

// IncrementView incrementa os contadores duráveis de uma view aceita em uma
// única transação: o contador do episódio, o contador por viewer e o
// view_count dos placements ativos do episódio. O incremento é feito no
// banco para serializar escritas concorrentes no mesmo episódio
func (r *episodeRepository) IncrementView(ctx context.Context, episodeID, viewerID string) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			UPDATE episodes
			SET view_count = view_count + 1,
				earnings_per_view = CASE
					WHEN view_count + 1 > 0 THEN total_earnings / (view_count + 1)
					ELSE 0
				END,
				updated_at = NOW()
			WHERE id = $1
		`, episodeID)
		if err != nil {
			return fmt.Errorf("erro ao incrementar view do episódio: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotFound
		}

		_, err = tx.Exec(`
			INSERT INTO episode_viewers (episode_id, viewer_id, view_count, first_seen_at, last_seen_at)
			VALUES ($1, $2, 1, NOW(), NOW())
			ON CONFLICT (episode_id, viewer_id) DO UPDATE SET
				view_count = episode_viewers.view_count + 1,
				last_seen_at = NOW()
		`, episodeID, viewerID)
		if err != nil {
			return fmt.Errorf("erro ao registrar viewer do episódio: %w", err)
		}

		_, err = tx.Exec(`
			UPDATE ad_placements
			SET view_count = view_count + 1
			WHERE episode_id = $1 AND status IN ('pending', 'verified')
		`, episodeID)
		if err != nil {
			return fmt.Errorf("erro ao incrementar view dos placements: %w", err)
		}

		return nil
	})
}

func (r *episodeRepository) GetStats(episodeID string) (*domain.EpisodeStats, error) {
	query, args, err := squirrel.
		Select("e.id, e.view_count, e.total_earnings, e.earnings_per_view").
		From(episodesTable).
		Where(squirrel.Eq{"e.id": episodeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	stats := &domain.EpisodeStats{}
	err = r.conn.QueryRow(query, args...).Scan(
		&stats.EpisodeID,
		&stats.TotalViews,
		&stats.TotalEarnings,
		&stats.EarningsPerView,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear estatísticas do episódio: %w", err)
	}

	return stats, nil
}

// GetViewAudit agrega o padrão histórico de views de um episódio para a
// detecção de fraude: total de views, viewers únicos, views da última hora
// e a média de views por hora desde a criação
func (r *episodeRepository) GetViewAudit(episodeID string) (*domain.ViewAudit, error) {
	audit := &domain.ViewAudit{EpisodeID: episodeID}

	err := r.conn.QueryRow(`
		SELECT
			e.view_count,
			COALESCE(COUNT(v.viewer_id), 0),
			COALESCE(SUM(v.view_count) FILTER (WHERE v.last_seen_at > NOW() - INTERVAL '1 hour'), 0),
			CASE
				WHEN EXTRACT(EPOCH FROM (NOW() - e.created_at)) / 3600 >= 1
				THEN e.view_count / (EXTRACT(EPOCH FROM (NOW() - e.created_at)) / 3600)
				ELSE e.view_count
			END
		FROM episodes e
		LEFT JOIN episode_viewers v ON v.episode_id = e.id
		WHERE e.id = $1
		GROUP BY e.id
	`, episodeID).Scan(
		&audit.TotalViews,
		&audit.UniqueViewers,
		&audit.LastHourViews,
		&audit.HourlyAverage,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao agregar auditoria de views: %w", err)
	}

	return audit, nil
}

func (r *episodeRepository) SetFraudFlag(episodeID string, flagged bool) error {
	query, args, err := squirrel.StatementBuilder.
		Update("episodes").
		Set("fraud_flagged", flagged).
		Set("updated_at", touchTimestamp()).
		Where(squirrel.Eq{"id": episodeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao marcar episódio: %w", err)
	}

	return nil
}

// RecalculateEarningsPerView recalcula o campo derivado earnings_per_view de
// todos os episódios com views. Usado pelo job de métricas para corrigir
// qualquer deriva acumulada
func (r *episodeRepository) RecalculateEarningsPerView() (int64, error) {
	res, err := r.conn.Exec(`
		UPDATE episodes
		SET earnings_per_view = total_earnings / view_count,
			updated_at = NOW()
		WHERE view_count > 0
	`)
	if err != nil {
		return 0, fmt.Errorf("erro ao recalcular earnings_per_view: %w", err)
	}

	return res.RowsAffected()
}

func (r *episodeRepository) DeleteViewersOlderThan(days int) (int64, error) {
	res, err := r.conn.Exec(`
		DELETE FROM episode_viewers
		WHERE last_seen_at < NOW() - ($1 || ' days')::INTERVAL
	`, days)
	if err != nil {
		return 0, fmt.Errorf("erro ao limpar contadores antigos de viewers: %w", err)
	}

	return res.RowsAffected()
}

func scanEpisode(row squirrel.RowScanner) (*domain.Episode, error) {
	episode := &domain.Episode{}

	err := row.Scan(
		&episode.ID,
		&episode.PodcastID,
		&episode.Title,
		&episode.CreatorAddress,
		pq.Array(&episode.Topics),
		&episode.Category,
		&episode.QualityScore,
		&episode.EngagementRate,
		&episode.ViewCount,
		&episode.TotalEarnings,
		&episode.EarningsPerView,
		&episode.FraudFlagged,
		&episode.CreatedAt,
		&episode.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return episode, nil
}

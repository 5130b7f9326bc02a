package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Episode é a unidade de conteúdo elegível para carregar um placement
type Episode struct {
	ID              string          `json:"id"`
	PodcastID       string          `json:"podcast_id"`
	Title           string          `json:"title"`
	CreatorAddress  string          `json:"creator_address"`
	Topics          []string        `json:"topics"`
	Category        string          `json:"category"`
	QualityScore    float64         `json:"quality_score"`
	EngagementRate  float64         `json:"engagement_rate"`
	ViewCount       int64           `json:"view_count"`
	TotalEarnings   decimal.Decimal `json:"total_earnings"`
	EarningsPerView decimal.Decimal `json:"earnings_per_view"`
	FraudFlagged    bool            `json:"fraud_flagged"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// EpisodeStats é o agregado de leitura exposto pelo ledger de views
type EpisodeStats struct {
	EpisodeID       string          `json:"episode_id"`
	TotalViews      int64           `json:"total_views"`
	TotalEarnings   decimal.Decimal `json:"total_earnings"`
	EarningsPerView decimal.Decimal `json:"earnings_per_view"`
}

// ViewAudit é o agregado histórico usado pela detecção de fraude
type ViewAudit struct {
	EpisodeID     string `json:"episode_id"`
	TotalViews    int64  `json:"total_views"`
	UniqueViewers int64  `json:"unique_viewers"`
	LastHourViews int64  `json:"last_hour_views"`
	HourlyAverage float64 `json:"hourly_average"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlacementStatus string

const (
	PlacementStatusPending  PlacementStatus = "pending"
	PlacementStatusVerified PlacementStatus = "verified"
	PlacementStatusRejected PlacementStatus = "rejected"
	PlacementStatusPaid     PlacementStatus = "paid"
)

// VerificationResult é o snapshot da resposta do oráculo, persistido no
// placement para auditoria e para evitar nova cobrança de IA em retries
type VerificationResult struct {
	Verified     bool      `json:"verified"`
	QualityScore float64   `json:"quality_score"`
	Details      string    `json:"details"`
	EvaluatedAt  time.Time `json:"evaluated_at"`
}

// AdPlacement vincula uma campanha a um episódio e carrega o ciclo de vida
// pending -> verified|rejected -> paid
type AdPlacement struct {
	ID                 string              `json:"id"`
	CampaignID         string              `json:"campaign_id"`
	EpisodeID          string              `json:"episode_id"`
	Status             PlacementStatus     `json:"status"`
	QualityScore       float64             `json:"quality_score"`
	VerificationResult *VerificationResult `json:"verification_result,omitempty"`
	VerificationTxRef  *string             `json:"verification_tx_ref,omitempty"`
	PaymentTxRef       *string             `json:"payment_tx_ref,omitempty"`
	ViewCount          int64               `json:"view_count"`
	TotalPayout        decimal.Decimal     `json:"total_payout"`
	Impressions        int64               `json:"impressions"`
	Clicks             int64               `json:"clicks"`
	Conversions        int64               `json:"conversions"`
	CreatedAt          time.Time           `json:"created_at"`
	VerifiedAt         *time.Time          `json:"verified_at,omitempty"`
	PaidAt             *time.Time          `json:"paid_at,omitempty"`
}

// HasCachedVerification indica se o resultado do oráculo já foi persistido
// em uma tentativa anterior
func (p *AdPlacement) HasCachedVerification() bool {
	return p.VerificationResult != nil
}

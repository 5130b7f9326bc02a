package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatorEarnings é derivado do histórico de placements pagos. Nunca é
// mutado de forma independente: a recomputação é a fonte da verdade
type CreatorEarnings struct {
	CreatorAddress string          `json:"creator_address"`
	TotalEarnings  decimal.Decimal `json:"total_earnings"`
	PaidPlacements int             `json:"paid_placements"`
	LastPayoutAt   *time.Time      `json:"last_payout_at,omitempty"`
	ComputedAt     time.Time       `json:"computed_at"`
}

// PayoutResult é a resposta estruturada de uma liquidação individual
type PayoutResult struct {
	Success       bool            `json:"success"`
	PlacementID   string          `json:"placement_id,omitempty"`
	CreatorPayout decimal.Decimal `json:"creator_payout"`
	TxRef         string          `json:"tx_ref,omitempty"`
	Error         string          `json:"error,omitempty"`
}

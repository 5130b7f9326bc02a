package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VerifyPlacementRequest registra no contrato que o placement passou pela
// verificação de conteúdo. O contrato identifica campanhas pelo id numérico
// atribuído no deploy do escrow
type VerifyPlacementRequest struct {
	CampaignID int64  `json:"campaign_id"`
	EpisodeID  string `json:"episode_id"`
}

// PaymentRequest libera fundos do escrow para o endereço do criador
type PaymentRequest struct {
	PlacementID    string          `json:"placement_id"`
	CampaignID     int64           `json:"campaign_id"`
	RecipientAddr  string          `json:"recipient_address"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
}

// TxReceipt é a referência da transação confirmada pelo gateway
type TxReceipt struct {
	TxRef       string    `json:"tx_ref"`
	BlockNumber int64     `json:"block_number"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// PayoutRecord é uma entrada do histórico on-chain de pagamentos
type PayoutRecord struct {
	TxRef       string          `json:"tx_ref"`
	PlacementID string          `json:"placement_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	PaidAt      time.Time       `json:"paid_at"`
}

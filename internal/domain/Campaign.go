package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCancelled CampaignStatus = "cancelled"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// VerificationCriteria define os critérios que o oráculo de IA usa para
// aprovar um placement desta campanha
type VerificationCriteria struct {
	MinQualityScore  float64  `json:"min_quality_score"`
	RequiredElements []string `json:"required_elements"`
	ComplianceChecks []string `json:"compliance_checks"`
	NaturalnessMin   float64  `json:"naturalness_min"`
	MatchingFloor    float64  `json:"matching_floor"`
}

type Campaign struct {
	ID              string               `json:"id"`
	BrandID         string               `json:"brand_id"`
	BrandName       string               `json:"brand_name"`
	TargetAudience  []string             `json:"target_audience"`
	Category        string               `json:"category"`
	Budget          decimal.Decimal      `json:"budget"`
	Currency        string               `json:"currency"`
	PayoutPerView   decimal.Decimal      `json:"payout_per_view"`
	TotalSpent      decimal.Decimal      `json:"total_spent"`
	Status          CampaignStatus       `json:"status"`
	Criteria        VerificationCriteria `json:"criteria"`
	ContractAddress *string              `json:"contract_address,omitempty"`
	OnChainID       int64                `json:"on_chain_id"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// RemainingBudget retorna o saldo ainda disponível para pagamentos
func (c *Campaign) RemainingBudget() decimal.Decimal {
	return c.Budget.Sub(c.TotalSpent)
}

func (c *Campaign) IsTerminal() bool {
	return c.Status == CampaignStatusCancelled || c.Status == CampaignStatusCompleted
}

type MatchStatus string

const (
	MatchStatusProposed MatchStatus = "proposed"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusRejected MatchStatus = "rejected"
)

// ContentMatch é uma entrada da lista de conteúdos casados com a campanha
type ContentMatch struct {
	CampaignID         string      `json:"campaign_id"`
	EpisodeID          string      `json:"episode_id"`
	CompatibilityScore float64     `json:"compatibility_score"`
	Status             MatchStatus `json:"status"`
	MatchedAt          time.Time   `json:"matched_at"`
}

// MatchCandidate é o resultado do motor de matching antes de qualquer
// decisão da marca
type MatchCandidate struct {
	EpisodeID          string  `json:"episode_id"`
	EpisodeTitle       string  `json:"episode_title"`
	CompatibilityScore float64 `json:"compatibility_score"`
	QualityScore       float64 `json:"quality_score"`
}

package domain

// VerificationRequest é o payload enviado ao oráculo de IA para julgar se o
// anúncio foi colocado de forma autêntica e adequada no episódio
type VerificationRequest struct {
	EpisodeID        string   `json:"episode_id"`
	CampaignID       string   `json:"campaign_id"`
	MinQualityScore  float64  `json:"min_quality_score"`
	RequiredElements []string `json:"required_elements"`
	ComplianceChecks []string `json:"compliance_checks"`
	NaturalnessMin   float64  `json:"naturalness_min"`
}

// VerificationOutcome é a resposta do oráculo. Verified == false é uma
// rejeição de conteúdo, não uma falha de infraestrutura
type VerificationOutcome struct {
	Verified     bool    `json:"verified"`
	QualityScore float64 `json:"quality_score"`
	Details      string  `json:"details"`
}

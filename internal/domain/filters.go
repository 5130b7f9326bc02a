package domain

// Filtros explícitos por entidade: cada campo opcional enumera exatamente o
// efeito que tem sobre a consulta, em vez de montar mapas dinâmicos

type CampaignFilters struct {
	Status  []CampaignStatus
	BrandID string
	Limit   int
	Offset  int
}

type EpisodeFilters struct {
	Category       string
	CreatorAddress string
	MinQuality     float64
	Limit          int
	Offset         int
}

type PlacementFilters struct {
	CampaignID string
	EpisodeID  string
	Status     []PlacementStatus
	Limit      int
	Offset     int
}

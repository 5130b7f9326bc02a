package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/infrastructure/repository"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/domain"
	"github.com/vfg2006/adchain-api/pkg/utils"
)

// Pesos do score de compatibilidade: sobreposição temática, qualidade do
// conteúdo e engajamento histórico
const (
	topicWeight      = 0.5
	qualityWeight    = 0.3
	engagementWeight = 0.2
)

// Matcher pontua a compatibilidade campanha x episódio e mantém a lista de
// matches da campanha com semântica de upsert
type Matcher interface {
	FindMatches(ctx context.Context, campaignID string) ([]*domain.MatchCandidate, error)
	ScoreCompatibility(campaign *domain.Campaign, episode *domain.Episode) float64
	AcceptMatch(ctx context.Context, campaignID, episodeID string) (*domain.ContentMatch, error)
	RejectMatch(ctx context.Context, campaignID, episodeID string) (*domain.ContentMatch, error)
}

type Service struct {
	cfg          config.Matching
	campaignRepo repository.CampaignRepository
	episodeRepo  repository.EpisodeRepository
}

func NewService(
	cfg *config.Config,
	campaignRepo repository.CampaignRepository,
	episodeRepo repository.EpisodeRepository,
) *Service {
	return &Service{
		cfg:          cfg.Matching,
		campaignRepo: campaignRepo,
		episodeRepo:  episodeRepo,
	}
}

// FindMatches pontua os episódios candidatos e retorna apenas os que passam
// do piso de matching da campanha, em ordem estável: score decrescente,
// qualidade decrescente e criação mais antiga primeiro
func (s *Service) FindMatches(ctx context.Context, campaignID string) ([]*domain.MatchCandidate, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar campanha: %w", err)
	}
	if campaign == nil {
		return nil, domain.ErrNotFound
	}

	episodes, err := s.episodeRepo.ListEpisodes(domain.EpisodeFilters{})
	if err != nil {
		return nil, fmt.Errorf("erro ao listar episódios: %w", err)
	}

	floor := s.matchingFloor(campaign)

	type scored struct {
		episode *domain.Episode
		score   float64
	}

	candidates := make([]scored, 0, len(episodes))
	for _, episode := range episodes {
		score := s.ScoreCompatibility(campaign, episode)
		if score < floor {
			continue
		}
		candidates = append(candidates, scored{episode: episode, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].episode.QualityScore != candidates[j].episode.QualityScore {
			return candidates[i].episode.QualityScore > candidates[j].episode.QualityScore
		}
		return candidates[i].episode.CreatedAt.Before(candidates[j].episode.CreatedAt)
	})

	if s.cfg.MaxCandidates > 0 && len(candidates) > s.cfg.MaxCandidates {
		candidates = candidates[:s.cfg.MaxCandidates]
	}

	result := make([]*domain.MatchCandidate, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, &domain.MatchCandidate{
			EpisodeID:          c.episode.ID,
			EpisodeTitle:       c.episode.Title,
			CompatibilityScore: utils.RoundWithTwoDecimalPlace(c.score),
			QualityScore:       c.episode.QualityScore,
		})
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"episodes":    len(episodes),
		"candidates":  len(result),
		"floor":       floor,
	}).Info("Matching de campanha concluído")

	return result, nil
}

// ScoreCompatibility é a primitiva de pontuação de um único par, reusada
// pelo matching em lote e pela pontuação sob demanda. Determinística: sem
// aleatoriedade, mesmo resultado para as mesmas entradas
func (s *Service) ScoreCompatibility(campaign *domain.Campaign, episode *domain.Episode) float64 {
	topical := s.topicalOverlap(campaign, episode)

	score := topicWeight*topical +
		qualityWeight*clamp01(episode.QualityScore) +
		engagementWeight*clamp01(episode.EngagementRate)

	return clamp01(score)
}

// topicalOverlap mede a fração dos termos-alvo da campanha presentes nos
// tópicos do episódio. Campanha sem alvo casa amplamente, mas com a
// penalidade de match amplo
func (s *Service) topicalOverlap(campaign *domain.Campaign, episode *domain.Episode) float64 {
	terms := make([]string, 0, len(campaign.TargetAudience)+1)
	for _, t := range campaign.TargetAudience {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			terms = append(terms, t)
		}
	}
	if category := strings.ToLower(strings.TrimSpace(campaign.Category)); category != "" {
		terms = append(terms, category)
	}

	if len(terms) == 0 {
		return s.cfg.BroadMatchPenalty
	}

	topics := make(map[string]bool, len(episode.Topics)+1)
	for _, topic := range episode.Topics {
		topics[strings.ToLower(strings.TrimSpace(topic))] = true
	}
	if category := strings.ToLower(strings.TrimSpace(episode.Category)); category != "" {
		topics[category] = true
	}

	matched := 0
	for _, term := range terms {
		if topics[term] {
			matched++
		}
	}

	return float64(matched) / float64(len(terms))
}

// AcceptMatch promove uma entrada proposta para aceita, ou insere uma nova
// com score recém computado quando a marca aceita um par ainda não pontuado
func (s *Service) AcceptMatch(ctx context.Context, campaignID, episodeID string) (*domain.ContentMatch, error) {
	existing, err := s.campaignRepo.GetMatch(campaignID, episodeID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar match existente: %w", err)
	}

	match := &domain.ContentMatch{
		CampaignID: campaignID,
		EpisodeID:  episodeID,
		Status:     domain.MatchStatusAccepted,
		MatchedAt:  time.Now().UTC(),
	}

	if existing != nil {
		match.CompatibilityScore = existing.CompatibilityScore
	} else {
		score, err := s.scorePair(campaignID, episodeID)
		if err != nil {
			return nil, err
		}
		match.CompatibilityScore = score
	}

	if err := s.campaignRepo.UpsertMatch(match); err != nil {
		return nil, fmt.Errorf("erro ao aceitar match: %w", err)
	}

	return match, nil
}

// RejectMatch marca a entrada existente como rejeitada, ou insere um stub
// rejeitado de score zero para impedir rematching futuro
func (s *Service) RejectMatch(ctx context.Context, campaignID, episodeID string) (*domain.ContentMatch, error) {
	existing, err := s.campaignRepo.GetMatch(campaignID, episodeID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar match existente: %w", err)
	}

	match := &domain.ContentMatch{
		CampaignID: campaignID,
		EpisodeID:  episodeID,
		Status:     domain.MatchStatusRejected,
		MatchedAt:  time.Now().UTC(),
	}

	if existing != nil {
		match.CompatibilityScore = existing.CompatibilityScore
	}

	if err := s.campaignRepo.UpsertMatch(match); err != nil {
		return nil, fmt.Errorf("erro ao rejeitar match: %w", err)
	}

	return match, nil
}

func (s *Service) scorePair(campaignID, episodeID string) (float64, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return 0, fmt.Errorf("erro ao buscar campanha: %w", err)
	}
	if campaign == nil {
		return 0, domain.ErrNotFound
	}

	episode, err := s.episodeRepo.GetByID(episodeID)
	if err != nil {
		return 0, fmt.Errorf("erro ao buscar episódio: %w", err)
	}
	if episode == nil {
		return 0, domain.ErrNotFound
	}

	return s.ScoreCompatibility(campaign, episode), nil
}

func (s *Service) matchingFloor(campaign *domain.Campaign) float64 {
	if campaign.Criteria.MatchingFloor > 0 {
		return campaign.Criteria.MatchingFloor
	}
	return s.cfg.DefaultFloor
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

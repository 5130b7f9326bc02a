package matching

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/adchain-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Matching: config.Matching{
			DefaultFloor:      0.5,
			BroadMatchPenalty: 0.3,
			MaxCandidates:     50,
		},
	}
}

func TestService_ScoreCompatibility(t *testing.T) {
	service := NewService(testConfig(), nil, nil)

	tests := []struct {
		name     string
		campaign *domain.Campaign
		episode  *domain.Episode
		expected float64
	}{
		{
			name: "Sobreposição total de tópicos",
			campaign: &domain.Campaign{
				TargetAudience: []string{"tecnologia", "golang"},
				Category:       "software",
			},
			episode: &domain.Episode{
				Topics:         []string{"tecnologia", "golang"},
				Category:       "software",
				QualityScore:   0.8,
				EngagementRate: 0.5,
			},
			// 0.5*1.0 + 0.3*0.8 + 0.2*0.5
			expected: 0.84,
		},
		{
			name: "Sobreposição parcial de tópicos",
			campaign: &domain.Campaign{
				TargetAudience: []string{"tecnologia", "esportes"},
			},
			episode: &domain.Episode{
				Topics:         []string{"tecnologia"},
				QualityScore:   0.6,
				EngagementRate: 0.4,
			},
			// 0.5*0.5 + 0.3*0.6 + 0.2*0.4
			expected: 0.51,
		},
		{
			name:     "Campanha sem alvo recebe penalidade de match amplo",
			campaign: &domain.Campaign{},
			episode: &domain.Episode{
				Topics:         []string{"tecnologia"},
				QualityScore:   1.0,
				EngagementRate: 1.0,
			},
			// 0.5*0.3 + 0.3*1.0 + 0.2*1.0
			expected: 0.65,
		},
		{
			name: "Comparação de tópicos ignora maiúsculas e espaços",
			campaign: &domain.Campaign{
				TargetAudience: []string{" Tecnologia "},
			},
			episode: &domain.Episode{
				Topics:       []string{"TECNOLOGIA"},
				QualityScore: 1.0,
			},
			// 0.5*1.0 + 0.3*1.0 + 0.2*0.0
			expected: 0.8,
		},
		{
			name: "Métricas fora da faixa são saturadas em 1",
			campaign: &domain.Campaign{
				TargetAudience: []string{"tecnologia"},
			},
			episode: &domain.Episode{
				Topics:         []string{"tecnologia"},
				QualityScore:   2.5,
				EngagementRate: 3.0,
			},
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := service.ScoreCompatibility(tt.campaign, tt.episode)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestService_FindMatches(t *testing.T) {
	campaign := &domain.Campaign{
		ID:             "camp_001",
		TargetAudience: []string{"tecnologia"},
	}

	episodes := []*domain.Episode{
		{
			ID:             "ep_baixo",
			Title:          "Episódio fora do tema",
			Topics:         []string{"esportes"},
			QualityScore:   0.9,
			EngagementRate: 0.9,
			CreatedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "ep_medio",
			Title:          "Episódio médio",
			Topics:         []string{"tecnologia"},
			QualityScore:   0.6,
			EngagementRate: 0.5,
			CreatedAt:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "ep_alto",
			Title:          "Episódio forte",
			Topics:         []string{"tecnologia"},
			QualityScore:   0.9,
			EngagementRate: 0.5,
			CreatedAt:      time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	setup := func(t *testing.T, cfg *config.Config) (*Service, *mocks.MockCampaignRepository, *mocks.MockEpisodeRepository) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockEpisodeRepo := mocks.NewMockEpisodeRepository(ctrl)
		return NewService(cfg, mockCampaignRepo, mockEpisodeRepo), mockCampaignRepo, mockEpisodeRepo
	}

	t.Run("Filtra pelo piso e ordena por score decrescente", func(t *testing.T) {
		service, mockCampaignRepo, mockEpisodeRepo := setup(t, testConfig())

		mockCampaignRepo.EXPECT().GetByID("camp_001").Return(campaign, nil)
		mockEpisodeRepo.EXPECT().ListEpisodes(domain.EpisodeFilters{}).Return(episodes, nil)

		candidates, err := service.FindMatches(context.Background(), "camp_001")

		assert.NoError(t, err)
		assert.Len(t, candidates, 2)
		assert.Equal(t, "ep_alto", candidates[0].EpisodeID)
		assert.Equal(t, "ep_medio", candidates[1].EpisodeID)
		assert.Greater(t, candidates[0].CompatibilityScore, candidates[1].CompatibilityScore)
	})

	t.Run("Piso da campanha prevalece sobre o piso padrão", func(t *testing.T) {
		service, mockCampaignRepo, mockEpisodeRepo := setup(t, testConfig())

		strict := *campaign
		strict.Criteria.MatchingFloor = 0.8

		mockCampaignRepo.EXPECT().GetByID("camp_001").Return(&strict, nil)
		mockEpisodeRepo.EXPECT().ListEpisodes(domain.EpisodeFilters{}).Return(episodes, nil)

		candidates, err := service.FindMatches(context.Background(), "camp_001")

		assert.NoError(t, err)
		assert.Len(t, candidates, 1)
		assert.Equal(t, "ep_alto", candidates[0].EpisodeID)
	})

	t.Run("Trunca no limite de candidatos", func(t *testing.T) {
		cfg := testConfig()
		cfg.Matching.MaxCandidates = 1
		service, mockCampaignRepo, mockEpisodeRepo := setup(t, cfg)

		mockCampaignRepo.EXPECT().GetByID("camp_001").Return(campaign, nil)
		mockEpisodeRepo.EXPECT().ListEpisodes(domain.EpisodeFilters{}).Return(episodes, nil)

		candidates, err := service.FindMatches(context.Background(), "camp_001")

		assert.NoError(t, err)
		assert.Len(t, candidates, 1)
		assert.Equal(t, "ep_alto", candidates[0].EpisodeID)
	})

	t.Run("Empate de score desempata pelo episódio mais antigo", func(t *testing.T) {
		service, mockCampaignRepo, mockEpisodeRepo := setup(t, testConfig())

		older := &domain.Episode{
			ID:           "ep_antigo",
			Topics:       []string{"tecnologia"},
			QualityScore: 0.8,
			CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		newer := &domain.Episode{
			ID:           "ep_recente",
			Topics:       []string{"tecnologia"},
			QualityScore: 0.8,
			CreatedAt:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		}

		mockCampaignRepo.EXPECT().GetByID("camp_001").Return(campaign, nil)
		mockEpisodeRepo.EXPECT().ListEpisodes(domain.EpisodeFilters{}).Return([]*domain.Episode{newer, older}, nil)

		candidates, err := service.FindMatches(context.Background(), "camp_001")

		assert.NoError(t, err)
		assert.Len(t, candidates, 2)
		assert.Equal(t, "ep_antigo", candidates[0].EpisodeID)
		assert.Equal(t, "ep_recente", candidates[1].EpisodeID)
	})

	t.Run("Campanha inexistente retorna ErrNotFound", func(t *testing.T) {
		service, mockCampaignRepo, _ := setup(t, testConfig())

		mockCampaignRepo.EXPECT().GetByID("camp_999").Return(nil, nil)

		candidates, err := service.FindMatches(context.Background(), "camp_999")

		assert.Nil(t, candidates)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestService_AcceptMatch(t *testing.T) {
	t.Run("Match proposto preserva o score original", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		service := NewService(testConfig(), mockCampaignRepo, nil)

		existing := &domain.ContentMatch{
			CampaignID:         "camp_001",
			EpisodeID:          "ep_001",
			CompatibilityScore: 0.73,
			Status:             domain.MatchStatusProposed,
		}

		mockCampaignRepo.EXPECT().GetMatch("camp_001", "ep_001").Return(existing, nil)
		mockCampaignRepo.EXPECT().
			UpsertMatch(gomock.Any()).
			DoAndReturn(func(match *domain.ContentMatch) error {
				assert.Equal(t, domain.MatchStatusAccepted, match.Status)
				assert.Equal(t, 0.73, match.CompatibilityScore)
				return nil
			})

		match, err := service.AcceptMatch(context.Background(), "camp_001", "ep_001")

		assert.NoError(t, err)
		assert.Equal(t, domain.MatchStatusAccepted, match.Status)
		assert.Equal(t, 0.73, match.CompatibilityScore)
	})

	t.Run("Par ainda não pontuado recebe score recém computado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockEpisodeRepo := mocks.NewMockEpisodeRepository(ctrl)
		service := NewService(testConfig(), mockCampaignRepo, mockEpisodeRepo)

		mockCampaignRepo.EXPECT().GetMatch("camp_001", "ep_001").Return(nil, nil)
		mockCampaignRepo.EXPECT().GetByID("camp_001").Return(&domain.Campaign{
			ID:             "camp_001",
			TargetAudience: []string{"tecnologia"},
		}, nil)
		mockEpisodeRepo.EXPECT().GetByID("ep_001").Return(&domain.Episode{
			ID:           "ep_001",
			Topics:       []string{"tecnologia"},
			QualityScore: 1.0,
		}, nil)
		mockCampaignRepo.EXPECT().UpsertMatch(gomock.Any()).Return(nil)

		match, err := service.AcceptMatch(context.Background(), "camp_001", "ep_001")

		assert.NoError(t, err)
		assert.Equal(t, domain.MatchStatusAccepted, match.Status)
		assert.InDelta(t, 0.8, match.CompatibilityScore, 1e-9)
	})
}

func TestService_RejectMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := NewService(testConfig(), mockCampaignRepo, nil)

	t.Run("Match existente é marcado como rejeitado", func(t *testing.T) {
		existing := &domain.ContentMatch{
			CampaignID:         "camp_001",
			EpisodeID:          "ep_001",
			CompatibilityScore: 0.73,
			Status:             domain.MatchStatusProposed,
		}

		mockCampaignRepo.EXPECT().GetMatch("camp_001", "ep_001").Return(existing, nil)
		mockCampaignRepo.EXPECT().UpsertMatch(gomock.Any()).Return(nil)

		match, err := service.RejectMatch(context.Background(), "camp_001", "ep_001")

		assert.NoError(t, err)
		assert.Equal(t, domain.MatchStatusRejected, match.Status)
		assert.Equal(t, 0.73, match.CompatibilityScore)
	})

	t.Run("Par desconhecido vira stub rejeitado de score zero", func(t *testing.T) {
		mockCampaignRepo.EXPECT().GetMatch("camp_001", "ep_002").Return(nil, nil)
		mockCampaignRepo.EXPECT().UpsertMatch(gomock.Any()).Return(nil)

		match, err := service.RejectMatch(context.Background(), "camp_001", "ep_002")

		assert.NoError(t, err)
		assert.Equal(t, domain.MatchStatusRejected, match.Status)
		assert.Equal(t, 0.0, match.CompatibilityScore)
	})
}

package fraudfiltering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/adchain-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestService(cfg config.Fraud) *Service {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	return &Service{
		cfg:       cfg,
		seen:      make(map[string]time.Time),
		sources:   make(map[string][]time.Time),
		lastPrune: base,
		now:       func() time.Time { return base },
	}
}

func validView(viewerID string, at time.Time) domain.ViewEvent {
	return domain.ViewEvent{
		EpisodeID: "ep_001",
		ViewerID:  viewerID,
		Timestamp: at,
		Duration:  120,
		SourceIP:  "10.0.0.1",
		UserAgent: "podcast-app/1.0",
	}
}

func TestService_Evaluate(t *testing.T) {
	cfg := config.Fraud{
		DedupWindowSeconds: 60,
		BurstWindowSeconds: 60,
		BurstThreshold:     3,
	}
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		views    []domain.ViewEvent
		expected []string
	}{
		{
			name:     "Lote vazio retorna lista vazia",
			views:    []domain.ViewEvent{},
			expected: []string{},
		},
		{
			name: "View válida é aceita",
			views: []domain.ViewEvent{
				validView("viewer-001", base),
			},
			expected: []string{"viewer-001"},
		},
		{
			name: "View sem episódio é rejeitada",
			views: func() []domain.ViewEvent {
				v := validView("viewer-001", base)
				v.EpisodeID = ""
				return []domain.ViewEvent{v}
			}(),
			expected: []string{},
		},
		{
			name: "Viewer id muito curto é rejeitado",
			views: []domain.ViewEvent{
				validView("ab", base),
			},
			expected: []string{},
		},
		{
			name: "Viewer id com caracteres inválidos é rejeitado",
			views: []domain.ViewEvent{
				validView("viewer 001!", base),
			},
			expected: []string{},
		},
		{
			name: "Duração zero sem conclusão é rejeitada",
			views: func() []domain.ViewEvent {
				v := validView("viewer-001", base)
				v.Duration = 0
				return []domain.ViewEvent{v}
			}(),
			expected: []string{},
		},
		{
			name: "Duração zero com flag de conclusão é aceita",
			views: func() []domain.ViewEvent {
				v := validView("viewer-001", base)
				v.Duration = 0
				v.Completed = true
				return []domain.ViewEvent{v}
			}(),
			expected: []string{"viewer-001"},
		},
		{
			name: "Duplicata dentro da janela de deduplicação é rejeitada",
			views: []domain.ViewEvent{
				validView("viewer-001", base),
				validView("viewer-001", base.Add(10*time.Second)),
			},
			expected: []string{"viewer-001"},
		},
		{
			name: "Mesmo viewer em episódios diferentes não é duplicata",
			views: func() []domain.ViewEvent {
				first := validView("viewer-001", base)
				second := validView("viewer-001", base)
				second.EpisodeID = "ep_002"
				return []domain.ViewEvent{first, second}
			}(),
			expected: []string{"viewer-001", "viewer-001"},
		},
		{
			name: "Rajada da mesma origem acima do limiar é rejeitada",
			views: []domain.ViewEvent{
				validView("viewer-001", base),
				validView("viewer-002", base.Add(time.Second)),
				validView("viewer-003", base.Add(2*time.Second)),
				validView("viewer-004", base.Add(3*time.Second)),
			},
			expected: []string{"viewer-001", "viewer-002", "viewer-003"},
		},
		{
			name: "Origens distintas não compartilham contagem de rajada",
			views: func() []domain.ViewEvent {
				views := []domain.ViewEvent{
					validView("viewer-001", base),
					validView("viewer-002", base.Add(time.Second)),
					validView("viewer-003", base.Add(2*time.Second)),
				}
				other := validView("viewer-004", base.Add(3*time.Second))
				other.SourceIP = "10.0.0.2"
				return append(views, other)
			}(),
			expected: []string{"viewer-001", "viewer-002", "viewer-003", "viewer-004"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(cfg)

			accepted := service.Evaluate(tt.views)

			viewers := make([]string, 0, len(accepted))
			for _, view := range accepted {
				viewers = append(viewers, view.ViewerID)
			}
			assert.Equal(t, tt.expected, viewers)
		})
	}
}

func TestService_Evaluate_DuplicataForaDaJanela(t *testing.T) {
	cfg := config.Fraud{
		DedupWindowSeconds: 60,
		BurstWindowSeconds: 60,
		BurstThreshold:     30,
	}
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	service := newTestService(cfg)

	first := service.Evaluate([]domain.ViewEvent{validView("viewer-001", base)})
	assert.Len(t, first, 1)

	// Mesma chave de deduplicação não se repete fora da janela: o timestamp
	// avança mais que a janela e cai em outro minuto
	second := service.Evaluate([]domain.ViewEvent{validView("viewer-001", base.Add(2*time.Minute))})
	assert.Len(t, second, 1)
}

func TestService_DetectFraud(t *testing.T) {
	cfg := config.Fraud{
		ViewsPerViewerMax:   20.0,
		VelocitySpikeFactor: 10.0,
	}

	tests := []struct {
		name        string
		audit       *domain.ViewAudit
		repoErr     error
		expected    bool
		expectedErr error
	}{
		{
			name: "Padrão saudável não é sinalizado",
			audit: &domain.ViewAudit{
				EpisodeID:     "ep_001",
				TotalViews:    1000,
				UniqueViewers: 400,
				LastHourViews: 50,
				HourlyAverage: 40.0,
			},
			expected: false,
		},
		{
			name: "Razão de views por viewer acima do limite sinaliza fraude",
			audit: &domain.ViewAudit{
				EpisodeID:     "ep_001",
				TotalViews:    10000,
				UniqueViewers: 100,
				LastHourViews: 50,
				HourlyAverage: 40.0,
			},
			expected: true,
		},
		{
			name: "Pico de velocidade acima do fator sinaliza fraude",
			audit: &domain.ViewAudit{
				EpisodeID:     "ep_001",
				TotalViews:    1000,
				UniqueViewers: 400,
				LastHourViews: 500,
				HourlyAverage: 40.0,
			},
			expected: true,
		},
		{
			name: "Razão exatamente no limite não sinaliza",
			audit: &domain.ViewAudit{
				EpisodeID:     "ep_001",
				TotalViews:    2000,
				UniqueViewers: 100,
				LastHourViews: 0,
				HourlyAverage: 40.0,
			},
			expected: false,
		},
		{
			name:        "Episódio inexistente retorna ErrNotFound",
			audit:       nil,
			expectedErr: domain.ErrNotFound,
		},
		{
			name:        "Erro do repositório é propagado",
			repoErr:     errors.New("conexão recusada"),
			expectedErr: errors.New("conexão recusada"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockEpisodeRepo := mocks.NewMockEpisodeRepository(ctrl)
			mockEpisodeRepo.EXPECT().
				GetViewAudit("ep_001").
				Return(tt.audit, tt.repoErr)

			service := newTestService(cfg)
			service.episodeRepo = mockEpisodeRepo

			flagged, err := service.DetectFraud(context.Background(), "ep_001")

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, flagged)
		})
	}
}

package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/adchain-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// fakeVerifier permite controlar o resultado de cada passo de verificação
// sem montar o orquestrador real
type fakeVerifier struct {
	verify func(ctx context.Context, placementID string) (*domain.AdPlacement, error)
}

func (f *fakeVerifier) VerifyPlacement(ctx context.Context, placementID string) (*domain.AdPlacement, error) {
	return f.verify(ctx, placementID)
}

func (f *fakeVerifier) EnsurePlacement(ctx context.Context, campaignID, episodeID string) (*domain.AdPlacement, error) {
	return nil, errors.New("não usado neste teste")
}

type fakeFraudFilter struct {
	detect func(ctx context.Context, episodeID string) (bool, error)
}

func (f *fakeFraudFilter) Evaluate(views []domain.ViewEvent) []domain.ViewEvent {
	return views
}

func (f *fakeFraudFilter) DetectFraud(ctx context.Context, episodeID string) (bool, error) {
	return f.detect(ctx, episodeID)
}

func TestPipelineSyncService_RunJob(t *testing.T) {
	t.Run("Nome fora do registro retorna ErrUnknownJob", func(t *testing.T) {
		service := NewPipelineSyncService(&config.Config{}, JobDependencies{})

		report, err := service.RunJob(context.Background(), domain.JobName("inexistente"))

		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrUnknownJob)
	})

	t.Run("Disparo concorrente do mesmo job retorna ErrJobRunning", func(t *testing.T) {
		service := NewPipelineSyncService(&config.Config{}, JobDependencies{})

		started := make(chan struct{})
		release := make(chan struct{})
		service.jobs[domain.JobCleanup] = func(ctx context.Context) (*domain.JobReport, error) {
			close(started)
			<-release
			return &domain.JobReport{Job: domain.JobCleanup}, nil
		}

		done := make(chan error, 1)
		go func() {
			_, err := service.RunJob(context.Background(), domain.JobCleanup)
			done <- err
		}()

		<-started
		_, err := service.RunJob(context.Background(), domain.JobCleanup)
		assert.ErrorIs(t, err, ErrJobRunning)

		close(release)
		assert.NoError(t, <-done)
	})

	t.Run("Relatório da última execução fica disponível no status", func(t *testing.T) {
		service := NewPipelineSyncService(&config.Config{}, JobDependencies{})

		service.jobs[domain.JobCleanup] = func(ctx context.Context) (*domain.JobReport, error) {
			return &domain.JobReport{Job: domain.JobCleanup, Processed: 7, Succeeded: 7}, nil
		}

		report, err := service.RunJob(context.Background(), domain.JobCleanup)
		assert.NoError(t, err)
		assert.Equal(t, 7, report.Processed)

		status := service.GetStatus()
		entry, ok := status[string(domain.JobCleanup)].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, false, entry["running"])
		assert.Equal(t, report, entry["last_report"])
	})

	t.Run("Job all agrega relatórios e isola falhas", func(t *testing.T) {
		service := NewPipelineSyncService(&config.Config{}, JobDependencies{})

		ok := func(job domain.JobName, processed int) JobFunc {
			return func(ctx context.Context) (*domain.JobReport, error) {
				return &domain.JobReport{Job: job, Processed: processed, Succeeded: processed}, nil
			}
		}

		service.jobs[domain.JobPendingVerifications] = ok(domain.JobPendingVerifications, 3)
		service.jobs[domain.JobAutomatedPayouts] = ok(domain.JobAutomatedPayouts, 2)
		service.jobs[domain.JobAnalyticsMetrics] = func(ctx context.Context) (*domain.JobReport, error) {
			return nil, errors.New("banco indisponível")
		}
		service.jobs[domain.JobFraudScan] = ok(domain.JobFraudScan, 1)
		service.jobs[domain.JobCleanup] = ok(domain.JobCleanup, 4)

		report, err := service.RunJob(context.Background(), domain.JobAll)

		assert.NoError(t, err)
		assert.Equal(t, domain.JobAll, report.Job)
		assert.Equal(t, 10, report.Processed)
		assert.Equal(t, 10, report.Succeeded)
		assert.Equal(t, 1, report.Failed)
		assert.Len(t, report.Errors, 1)
	})
}

func TestJobs_RunPendingVerifications(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPlacementRepo := mocks.NewMockPlacementRepository(ctrl)

	cfg := &config.Config{
		VerificationJob: config.VerificationJob{BatchSize: 50},
	}

	pending := []*domain.AdPlacement{
		{ID: "plc_ok", Status: domain.PlacementStatusPending},
		{ID: "plc_ainda_pendente", Status: domain.PlacementStatusPending},
		{ID: "plc_falha", Status: domain.PlacementStatusPending},
	}

	mockPlacementRepo.EXPECT().
		ListPlacements(domain.PlacementFilters{
			Status: []domain.PlacementStatus{domain.PlacementStatusPending},
			Limit:  50,
		}).
		Return(pending, nil)

	verifier := &fakeVerifier{
		verify: func(ctx context.Context, placementID string) (*domain.AdPlacement, error) {
			switch placementID {
			case "plc_ok":
				return &domain.AdPlacement{ID: placementID, Status: domain.PlacementStatusVerified}, nil
			case "plc_ainda_pendente":
				// Falha on-chain deixou o placement pendente para o próximo ciclo
				return &domain.AdPlacement{ID: placementID, Status: domain.PlacementStatusPending}, nil
			default:
				return nil, errors.New("oráculo indisponível")
			}
		},
	}

	j := newJobs(cfg, JobDependencies{
		PlacementRepo: mockPlacementRepo,
		Verifier:      verifier,
	})

	report, err := j.runPendingVerifications(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failed)
}

func TestJobs_RunFraudScan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEpisodeRepo := mocks.NewMockEpisodeRepository(ctrl)

	episodes := []*domain.Episode{
		{ID: "ep_sem_views", ViewCount: 0},
		{ID: "ep_novo_fraudulento", ViewCount: 1000, FraudFlagged: false},
		{ID: "ep_estavel", ViewCount: 500, FraudFlagged: false},
	}

	mockEpisodeRepo.EXPECT().ListEpisodes(domain.EpisodeFilters{}).Return(episodes, nil)

	// Só o episódio cujo veredito mudou recebe escrita da flag
	mockEpisodeRepo.EXPECT().SetFraudFlag("ep_novo_fraudulento", true).Return(nil)

	filter := &fakeFraudFilter{
		detect: func(ctx context.Context, episodeID string) (bool, error) {
			return episodeID == "ep_novo_fraudulento", nil
		},
	}

	j := newJobs(&config.Config{}, JobDependencies{
		EpisodeRepo: mockEpisodeRepo,
		FraudFilter: filter,
	})

	report, err := j.runFraudScan(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Failed)
}

func TestJobs_RunAnalyticsMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEpisodeRepo := mocks.NewMockEpisodeRepository(ctrl)
	mockEpisodeRepo.EXPECT().RecalculateEarningsPerView().Return(int64(12), nil)

	j := newJobs(&config.Config{}, JobDependencies{EpisodeRepo: mockEpisodeRepo})

	report, err := j.runAnalyticsMetrics(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 12, report.Processed)
	assert.Equal(t, 12, report.Succeeded)
}

func TestJobs_RunCleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEpisodeRepo := mocks.NewMockEpisodeRepository(ctrl)
	mockEpisodeRepo.EXPECT().DeleteViewersOlderThan(90).Return(int64(30), nil)

	cfg := &config.Config{
		CleanupJob: config.CleanupJob{RetentionDays: 90},
	}

	j := newJobs(cfg, JobDependencies{EpisodeRepo: mockEpisodeRepo})

	report, err := j.runCleanup(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 30, report.Processed)
	assert.Contains(t, report.Message, "retenção de 90 dias")
}

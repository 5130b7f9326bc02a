package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/infrastructure/repository"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/domain"
	"github.com/vfg2006/adchain-api/internal/usecases/fraudfiltering"
	"github.com/vfg2006/adchain-api/internal/usecases/settling"
	"github.com/vfg2006/adchain-api/internal/usecases/verifying"
)

// JobDependencies agrupa tudo que os jobs do pipeline consomem
type JobDependencies struct {
	PlacementRepo repository.PlacementRepository
	EpisodeRepo   repository.EpisodeRepository
	Verifier      verifying.Orchestrator
	Settler       settling.Settler
	FraudFilter   fraudfiltering.FraudFilter
}

type jobs struct {
	appConfig *config.Config
	deps      JobDependencies
}

func newJobs(appConfig *config.Config, deps JobDependencies) *jobs {
	return &jobs{appConfig: appConfig, deps: deps}
}

// runPendingVerifications varre os placements pendentes em lote e executa um
// passo da verificação para cada um. Falhas transitórias (oráculo ou chain
// fora do ar) contam como erro do item e o lote segue
func (j *jobs) runPendingVerifications(ctx context.Context) (*domain.JobReport, error) {
	report := &domain.JobReport{
		Job:       domain.JobPendingVerifications,
		StartedAt: time.Now(),
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
	}()

	placements, err := j.deps.PlacementRepo.ListPlacements(domain.PlacementFilters{
		Status: []domain.PlacementStatus{domain.PlacementStatusPending},
		Limit:  j.appConfig.VerificationJob.BatchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao listar placements pendentes: %w", err)
	}

	if len(placements) == 0 {
		report.Message = "nenhum placement pendente de verificação"
		return report, nil
	}

	for _, placement := range placements {
		report.Processed++

		updated, err := j.deps.Verifier.VerifyPlacement(ctx, placement.ID)
		if err != nil {
			logrus.WithError(err).WithField("placement_id", placement.ID).
				Warn("Falha ao verificar placement no lote")
			report.AddError(fmt.Errorf("placement %s: %w", placement.ID, err))
			continue
		}

		if updated.Status == domain.PlacementStatusPending {
			// Sem mudança de estado neste passo
			report.Skipped++
			continue
		}

		report.Succeeded++
	}

	report.Message = fmt.Sprintf(
		"%d processados, %d transicionados, %d falhas",
		report.Processed, report.Succeeded, report.Failed,
	)
	return report, nil
}

// runAutomatedPayouts delega ao motor de liquidação, que já produz o
// relatório do lote
func (j *jobs) runAutomatedPayouts(ctx context.Context) (*domain.JobReport, error) {
	return j.deps.Settler.ProcessAutomatedPayouts(ctx)
}

// runAnalyticsMetrics recalcula o earnings_per_view dos episódios com views
func (j *jobs) runAnalyticsMetrics(ctx context.Context) (*domain.JobReport, error) {
	report := &domain.JobReport{
		Job:       domain.JobAnalyticsMetrics,
		StartedAt: time.Now(),
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
	}()

	updated, err := j.deps.EpisodeRepo.RecalculateEarningsPerView()
	if err != nil {
		return nil, fmt.Errorf("erro ao recalcular métricas dos episódios: %w", err)
	}

	report.Processed = int(updated)
	report.Succeeded = int(updated)
	report.Message = fmt.Sprintf("%d episódios com métricas recalculadas", updated)
	return report, nil
}

// runFraudScan reavalia o padrão de views de cada episódio e atualiza a
// flag de fraude quando o veredito muda. A flag é consultiva: marca o
// episódio para revisão sem bloquear pagamentos
func (j *jobs) runFraudScan(ctx context.Context) (*domain.JobReport, error) {
	report := &domain.JobReport{
		Job:       domain.JobFraudScan,
		StartedAt: time.Now(),
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
	}()

	episodes, err := j.deps.EpisodeRepo.ListEpisodes(domain.EpisodeFilters{})
	if err != nil {
		return nil, fmt.Errorf("erro ao listar episódios para varredura de fraude: %w", err)
	}

	for _, episode := range episodes {
		if episode.ViewCount == 0 {
			report.Skipped++
			continue
		}

		report.Processed++

		flagged, err := j.deps.FraudFilter.DetectFraud(ctx, episode.ID)
		if err != nil {
			report.AddError(fmt.Errorf("episódio %s: %w", episode.ID, err))
			continue
		}

		if flagged == episode.FraudFlagged {
			report.Succeeded++
			continue
		}

		if err := j.deps.EpisodeRepo.SetFraudFlag(episode.ID, flagged); err != nil {
			report.AddError(fmt.Errorf("episódio %s: %w", episode.ID, err))
			continue
		}

		logrus.WithFields(logrus.Fields{
			"episode_id": episode.ID,
			"flagged":    flagged,
		}).Warn("Flag de fraude do episódio atualizada")
		report.Succeeded++
	}

	report.Message = fmt.Sprintf(
		"%d episódios avaliados, %d falhas",
		report.Processed, report.Failed,
	)
	return report, nil
}

// runCleanup remove registros de viewers além da janela de retenção
func (j *jobs) runCleanup(ctx context.Context) (*domain.JobReport, error) {
	report := &domain.JobReport{
		Job:       domain.JobCleanup,
		StartedAt: time.Now(),
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
	}()

	retention := j.appConfig.CleanupJob.RetentionDays
	removed, err := j.deps.EpisodeRepo.DeleteViewersOlderThan(retention)
	if err != nil {
		return nil, fmt.Errorf("erro ao limpar registros de viewers: %w", err)
	}

	report.Processed = int(removed)
	report.Succeeded = int(removed)
	report.Message = fmt.Sprintf("%d registros de viewers removidos (retenção de %d dias)", removed, retention)
	return report, nil
}

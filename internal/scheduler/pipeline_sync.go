package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/domain"
)

// JobFunc é a assinatura de um job do pipeline. O relatório descreve o que
// foi processado; um erro no retorno indica falha no disparo do job
type JobFunc func(ctx context.Context) (*domain.JobReport, error)

// ErrUnknownJob indica um nome de job fora do registro
var ErrUnknownJob = fmt.Errorf("job desconhecido")

// ErrJobRunning indica um disparo enquanto a execução anterior ainda roda
var ErrJobRunning = fmt.Errorf("job já em andamento")

// PipelineSyncService agenda e executa os jobs do pipeline de verificação e
// pagamento. Os jobs ficam num registro tipado por nome: agendamento cron e
// gatilho manual passam pelo mesmo caminho de execução, com guarda de
// sobreposição por job
type PipelineSyncService struct {
	scheduler *gocron.Scheduler
	appConfig *config.Config

	jobs     map[domain.JobName]JobFunc
	jobOrder []domain.JobName

	mu              sync.Mutex
	running         map[domain.JobName]bool
	lastStartedAt   map[domain.JobName]time.Time
	lastCompletedAt map[domain.JobName]time.Time
	lastReport      map[domain.JobName]*domain.JobReport
}

// NewPipelineSyncService cria o serviço com o registro de jobs montado a
// partir das dependências do pipeline
func NewPipelineSyncService(appConfig *config.Config, deps JobDependencies) *PipelineSyncService {
	s := &PipelineSyncService{
		scheduler:       gocron.NewScheduler(time.Local),
		appConfig:       appConfig,
		running:         make(map[domain.JobName]bool),
		lastStartedAt:   make(map[domain.JobName]time.Time),
		lastCompletedAt: make(map[domain.JobName]time.Time),
		lastReport:      make(map[domain.JobName]*domain.JobReport),
	}

	jobs := newJobs(appConfig, deps)

	// A ordem importa para o job "all": verificação antes de pagamento, e
	// limpeza por último
	s.jobOrder = []domain.JobName{
		domain.JobPendingVerifications,
		domain.JobAutomatedPayouts,
		domain.JobAnalyticsMetrics,
		domain.JobFraudScan,
		domain.JobCleanup,
	}
	s.jobs = map[domain.JobName]JobFunc{
		domain.JobPendingVerifications: jobs.runPendingVerifications,
		domain.JobAutomatedPayouts:     jobs.runAutomatedPayouts,
		domain.JobAnalyticsMetrics:     jobs.runAnalyticsMetrics,
		domain.JobFraudScan:            jobs.runFraudScan,
		domain.JobCleanup:              jobs.runCleanup,
	}

	return s
}

// Start agenda os jobs habilitados por configuração e inicia o agendador
func (s *PipelineSyncService) Start(ctx context.Context) error {
	schedules := []struct {
		name    domain.JobName
		cron    string
		enabled bool
	}{
		{domain.JobPendingVerifications, s.appConfig.VerificationJob.CronSchedule, s.appConfig.VerificationJob.Enabled},
		{domain.JobAutomatedPayouts, s.appConfig.PayoutJob.CronSchedule, s.appConfig.PayoutJob.Enabled},
		{domain.JobAnalyticsMetrics, s.appConfig.AnalyticsJob.CronSchedule, s.appConfig.AnalyticsJob.Enabled},
		{domain.JobFraudScan, s.appConfig.FraudScanJob.CronSchedule, s.appConfig.FraudScanJob.Enabled},
		{domain.JobCleanup, s.appConfig.CleanupJob.CronSchedule, s.appConfig.CleanupJob.Enabled},
	}

	scheduled := 0
	for _, entry := range schedules {
		if !entry.enabled {
			logrus.WithField("job", entry.name).Info("Job do pipeline desabilitado por configuração")
			continue
		}

		name := entry.name
		_, err := s.scheduler.Cron(entry.cron).Do(func() {
			if _, err := s.RunJob(context.Background(), name); err != nil {
				logrus.WithError(err).WithField("job", name).Error("Erro na execução agendada do job")
			}
		})
		if err != nil {
			return fmt.Errorf("erro ao agendar job %s: %w", name, err)
		}

		logrus.WithFields(logrus.Fields{
			"job":  name,
			"cron": entry.cron,
		}).Info("Job do pipeline agendado")
		scheduled++
	}

	if scheduled == 0 {
		logrus.Info("Nenhum job do pipeline habilitado, agendador não iniciado")
		return nil
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do pipeline")
		s.scheduler.Stop()
	}()

	return nil
}

// RunJob executa um job pelo nome, sincronamente, e devolve o relatório.
// O nome "all" executa todos os jobs do registro em ordem fixa; a falha de
// um job não interrompe os demais
func (s *PipelineSyncService) RunJob(ctx context.Context, name domain.JobName) (*domain.JobReport, error) {
	if name == domain.JobAll {
		return s.runAll(ctx)
	}

	job, ok := s.jobs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}

	if !s.tryAcquire(name) {
		return nil, fmt.Errorf("%w: %s", ErrJobRunning, name)
	}
	defer s.release(name)

	logrus.WithField("job", name).Info("Iniciando execução de job do pipeline")

	report, err := job(ctx)
	if err != nil {
		logrus.WithError(err).WithField("job", name).Error("Job do pipeline falhou")
		return nil, err
	}

	s.mu.Lock()
	s.lastReport[name] = report
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"job":       name,
		"processed": report.Processed,
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
		"skipped":   report.Skipped,
		"duration":  report.Duration.String(),
	}).Info("Job do pipeline concluído")

	return report, nil
}

func (s *PipelineSyncService) runAll(ctx context.Context) (*domain.JobReport, error) {
	aggregate := &domain.JobReport{
		Job:       domain.JobAll,
		StartedAt: time.Now(),
	}

	for _, name := range s.jobOrder {
		report, err := s.RunJob(ctx, name)
		if err != nil {
			aggregate.AddError(fmt.Errorf("%s: %w", name, err))
			continue
		}

		aggregate.Processed += report.Processed
		aggregate.Succeeded += report.Succeeded
		aggregate.Failed += report.Failed
		aggregate.Skipped += report.Skipped
		aggregate.Errors = append(aggregate.Errors, report.Errors...)
	}

	aggregate.Duration = time.Since(aggregate.StartedAt)
	aggregate.Message = fmt.Sprintf("%d jobs executados", len(s.jobOrder))
	return aggregate, nil
}

func (s *PipelineSyncService) tryAcquire(name domain.JobName) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running[name] {
		logrus.WithField("job", name).Info("Job já em andamento, ignorando disparo")
		return false
	}

	s.running[name] = true
	s.lastStartedAt[name] = time.Now()
	return true
}

func (s *PipelineSyncService) release(name domain.JobName) {
	s.mu.Lock()
	s.running[name] = false
	s.lastCompletedAt[name] = time.Now()
	s.mu.Unlock()
}

// GetStatus retorna o estado atual de cada job registrado
func (s *PipelineSyncService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := make(map[string]any, len(s.jobOrder))
	for _, name := range s.jobOrder {
		entry := map[string]any{
			"running":           s.running[name],
			"last_started_at":   s.lastStartedAt[name],
			"last_completed_at": s.lastCompletedAt[name],
		}
		if report := s.lastReport[name]; report != nil {
			entry["last_report"] = report
		}
		status[string(name)] = entry
	}

	return status
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/infrastructure/repository"
	"github.com/vfg2006/adchain-api/internal/api/handler"
	"github.com/vfg2006/adchain-api/internal/api/handler/router"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/scheduler"
	"github.com/vfg2006/adchain-api/internal/usecases/authenticating"
	"github.com/vfg2006/adchain-api/internal/usecases/fraudfiltering"
	"github.com/vfg2006/adchain-api/internal/usecases/matching"
	"github.com/vfg2006/adchain-api/internal/usecases/settling"
	"github.com/vfg2006/adchain-api/internal/usecases/verifying"
	"github.com/vfg2006/adchain-api/internal/usecases/viewtracking"
	"github.com/vfg2006/adchain-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Services agrupa as dependências expostas pela API
type Services struct {
	Authenticator authenticating.Authenticator
	FraudFilter   fraudfiltering.FraudFilter
	ViewLedger    viewtracking.ViewLedger
	Matcher       matching.Matcher
	Orchestrator  verifying.Orchestrator
	Settler       settling.Settler
	Pipeline      *scheduler.PipelineSyncService
	CampaignRepo  repository.CampaignRepository
	EpisodeRepo   repository.EpisodeRepository
}

func New(config *config.Config, services Services) (*Server, error) {
	rt := router.New(
		router.WithFallbacks(handler.NotFoundHandler(), handler.MethodNotAllowedHandler()),
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Views(services.FraudFilter, services.ViewLedger)...),
		router.WithRoutes(handler.Episodes(services.ViewLedger, services.FraudFilter, services.EpisodeRepo)...),
		router.WithRoutes(handler.Campaigns(services.Matcher, services.Orchestrator, services.CampaignRepo)...),
		router.WithRoutes(handler.Placements(services.Orchestrator)...),
		router.WithRoutes(handler.Payouts(services.Settler)...),
		router.WithRoutes(handler.Jobs(services.Pipeline)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(services.Authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}

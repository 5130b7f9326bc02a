package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/infrastructure/database/postgres"
	"github.com/vfg2006/adchain-api/infrastructure/integrator/chain"
	"github.com/vfg2006/adchain-api/infrastructure/integrator/chain/chainclient"
	"github.com/vfg2006/adchain-api/infrastructure/integrator/oracle"
	"github.com/vfg2006/adchain-api/infrastructure/integrator/oracle/oracleclient"
	"github.com/vfg2006/adchain-api/infrastructure/repository"
	"github.com/vfg2006/adchain-api/internal/api"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/scheduler"
	"github.com/vfg2006/adchain-api/internal/usecases/authenticating"
	"github.com/vfg2006/adchain-api/internal/usecases/fraudfiltering"
	"github.com/vfg2006/adchain-api/internal/usecases/matching"
	"github.com/vfg2006/adchain-api/internal/usecases/settling"
	"github.com/vfg2006/adchain-api/internal/usecases/verifying"
	"github.com/vfg2006/adchain-api/internal/usecases/viewtracking"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	campaignRepo := repository.NewCampaignRepository(pgConn)
	episodeRepo := repository.NewEpisodeRepository(pgConn)
	placementRepo := repository.NewPlacementRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	oracleClient := oracleclient.NewClient(cfg)
	oracleVerifier := oracle.New(cfg, oracleClient)

	chainClient := chainclient.NewClient(cfg)
	chainGateway := chain.New(cfg, chainClient)

	fraudFilter := fraudfiltering.NewService(cfg, episodeRepo)
	viewLedger := viewtracking.NewService(episodeRepo)
	matcher := matching.NewService(cfg, campaignRepo, episodeRepo)
	orchestrator := verifying.NewService(cfg, placementRepo, campaignRepo, oracleVerifier, chainGateway)
	settler := settling.NewService(placementRepo, campaignRepo, episodeRepo, chainGateway)

	pipeline := scheduler.NewPipelineSyncService(cfg, scheduler.JobDependencies{
		PlacementRepo: placementRepo,
		EpisodeRepo:   episodeRepo,
		Verifier:      orchestrator,
		Settler:       settler,
		FraudFilter:   fraudFilter,
	})

	if err := pipeline.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do pipeline")
	} else {
		logrus.Info("Agendador do pipeline iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		FraudFilter:   fraudFilter,
		ViewLedger:    viewLedger,
		Matcher:       matcher,
		Orchestrator:  orchestrator,
		Settler:       settler,
		Pipeline:      pipeline,
		CampaignRepo:  campaignRepo,
		EpisodeRepo:   episodeRepo,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Oracle          Oracle          `mapstructure:",squash"`
	Chain           Chain           `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	Matching        Matching        `mapstructure:",squash"`
	Fraud           Fraud           `mapstructure:",squash"`
	VerificationJob VerificationJob `mapstructure:",squash"`
	PayoutJob       PayoutJob       `mapstructure:",squash"`
	AnalyticsJob    AnalyticsJob    `mapstructure:",squash"`
	FraudScanJob    FraudScanJob    `mapstructure:",squash"`
	CleanupJob      CleanupJob      `mapstructure:",squash"`
	SecretKey       string          `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Oracle configura o cliente do oráculo de verificação de conteúdo
type Oracle struct {
	URL            string `mapstructure:"oracle_url"`
	APIKey         string `mapstructure:"oracle_api_key"`
	TimeoutSeconds int    `mapstructure:"oracle_timeout_seconds"`
}

// Chain configura o gateway do contrato de escrow on-chain
type Chain struct {
	GatewayURL     string `mapstructure:"chain_gateway_url"`
	APIKey         string `mapstructure:"chain_api_key"`
	EscrowAddress  string `mapstructure:"chain_escrow_address"`
	TimeoutSeconds int    `mapstructure:"chain_timeout_seconds"`
}

// Matching configura o motor de compatibilidade campanha x episódio
type Matching struct {
	DefaultFloor      float64 `mapstructure:"matching_default_floor"`
	BroadMatchPenalty float64 `mapstructure:"matching_broad_match_penalty"`
	MaxCandidates     int     `mapstructure:"matching_max_candidates"`
}

// Fraud configura os limiares do filtro de fraude
type Fraud struct {
	DedupWindowSeconds  int     `mapstructure:"fraud_dedup_window_seconds"`
	BurstWindowSeconds  int     `mapstructure:"fraud_burst_window_seconds"`
	BurstThreshold      int     `mapstructure:"fraud_burst_threshold"`
	ViewsPerViewerMax   float64 `mapstructure:"fraud_views_per_viewer_max"`
	VelocitySpikeFactor float64 `mapstructure:"fraud_velocity_spike_factor"`
}

type VerificationJob struct {
	CronSchedule string `mapstructure:"verification_job_cron"`
	BatchSize    int    `mapstructure:"verification_job_batch_size"`
	Enabled      bool   `mapstructure:"verification_job_enabled"`
}

type PayoutJob struct {
	CronSchedule string `mapstructure:"payout_job_cron"`
	Enabled      bool   `mapstructure:"payout_job_enabled"`
}

type AnalyticsJob struct {
	CronSchedule string `mapstructure:"analytics_job_cron"`
	Enabled      bool   `mapstructure:"analytics_job_enabled"`
}

type FraudScanJob struct {
	CronSchedule string `mapstructure:"fraud_scan_job_cron"`
	Enabled      bool   `mapstructure:"fraud_scan_job_enabled"`
}

type CleanupJob struct {
	CronSchedule  string `mapstructure:"cleanup_job_cron"`
	RetentionDays int    `mapstructure:"cleanup_job_retention_days"`
	Enabled       bool   `mapstructure:"cleanup_job_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adchain")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("ORACLE_URL", "http://localhost:9100")
	viper.SetDefault("ORACLE_API_KEY", "your_oracle_key")
	viper.SetDefault("ORACLE_TIMEOUT_SECONDS", 30)

	viper.SetDefault("CHAIN_GATEWAY_URL", "http://localhost:9200")
	viper.SetDefault("CHAIN_API_KEY", "your_chain_key")
	viper.SetDefault("CHAIN_ESCROW_ADDRESS", "0x0000000000000000000000000000000000000000")
	viper.SetDefault("CHAIN_TIMEOUT_SECONDS", 30)

	viper.SetDefault("MATCHING_DEFAULT_FLOOR", 0.5)
	viper.SetDefault("MATCHING_BROAD_MATCH_PENALTY", 0.3)
	viper.SetDefault("MATCHING_MAX_CANDIDATES", 50)

	viper.SetDefault("FRAUD_DEDUP_WINDOW_SECONDS", 60)
	viper.SetDefault("FRAUD_BURST_WINDOW_SECONDS", 60)
	viper.SetDefault("FRAUD_BURST_THRESHOLD", 30)
	viper.SetDefault("FRAUD_VIEWS_PER_VIEWER_MAX", 20.0)
	viper.SetDefault("FRAUD_VELOCITY_SPIKE_FACTOR", 10.0)

	// Defaults para os jobs do pipeline
	viper.SetDefault("VERIFICATION_JOB_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("VERIFICATION_JOB_BATCH_SIZE", 50)
	viper.SetDefault("VERIFICATION_JOB_ENABLED", false)

	viper.SetDefault("PAYOUT_JOB_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("PAYOUT_JOB_ENABLED", false)

	viper.SetDefault("ANALYTICS_JOB_CRON", "30 * * * *") // A cada hora, no minuto 30
	viper.SetDefault("ANALYTICS_JOB_ENABLED", false)

	viper.SetDefault("FRAUD_SCAN_JOB_CRON", "0 */6 * * *") // A cada 6 horas
	viper.SetDefault("FRAUD_SCAN_JOB_ENABLED", false)

	viper.SetDefault("CLEANUP_JOB_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("CLEANUP_JOB_RETENTION_DAYS", 90)
	viper.SetDefault("CLEANUP_JOB_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile carrega o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}

package handler

import (
	"net/http"

	"github.com/vfg2006/adchain-api/infrastructure/repository"
	"github.com/vfg2006/adchain-api/internal/api/handler/router"
	"github.com/vfg2006/adchain-api/internal/scheduler"
	"github.com/vfg2006/adchain-api/internal/usecases/authenticating"
	"github.com/vfg2006/adchain-api/internal/usecases/fraudfiltering"
	"github.com/vfg2006/adchain-api/internal/usecases/matching"
	"github.com/vfg2006/adchain-api/internal/usecases/settling"
	"github.com/vfg2006/adchain-api/internal/usecases/verifying"
	"github.com/vfg2006/adchain-api/internal/usecases/viewtracking"
	"github.com/vfg2006/adchain-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Views é a rota aberta de ingestão de eventos dos players
func Views(fraudFilter fraudfiltering.FraudFilter, ledger viewtracking.ViewLedger) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/views",
			Method:  http.MethodPost,
			Handler: IngestViews(fraudFilter, ledger),
		},
	}
}

func Episodes(
	ledger viewtracking.ViewLedger,
	fraudFilter fraudfiltering.FraudFilter,
	episodeRepo repository.EpisodeRepository,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/episodes/:id/stats",
			Method:      http.MethodGet,
			Handler:     GetEpisodeStats(ledger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/episodes/:id/fraud-check",
			Method:      http.MethodPost,
			Handler:     RunFraudCheck(fraudFilter, episodeRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
	}
}

func Campaigns(
	matcher matching.Matcher,
	orchestrator verifying.Orchestrator,
	campaignRepo repository.CampaignRepository,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns/:id/matches",
			Method:      http.MethodGet,
			Handler:     FindCampaignMatches(matcher),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/match-history",
			Method:      http.MethodGet,
			Handler:     ListCampaignMatches(campaignRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/matches/:episode_id/accept",
			Method:      http.MethodPost,
			Handler:     AcceptCampaignMatch(matcher, orchestrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/matches/:episode_id/reject",
			Method:      http.MethodPost,
			Handler:     RejectCampaignMatch(matcher),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Placements(orchestrator verifying.Orchestrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/placements/:id/verify",
			Method:      http.MethodPost,
			Handler:     VerifyPlacement(orchestrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
	}
}

func Payouts(settler settling.Settler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns/:id/episodes/:episode_id/payout",
			Method:      http.MethodPost,
			Handler:     ProcessPayout(settler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
		{
			Path:        "/v1/creators/:address/earnings",
			Method:      http.MethodGet,
			Handler:     GetCreatorEarnings(settler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Jobs(pipeline *scheduler.PipelineSyncService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/jobs/:name/run",
			Method:      http.MethodPost,
			Handler:     RunJob(pipeline),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
		{
			Path:        "/v1/jobs/status",
			Method:      http.MethodGet,
			Handler:     GetJobStatus(pipeline),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
	}
}

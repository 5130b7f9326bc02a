package oracle

import (
	"context"
	"errors"

	oracledomain "github.com/vfg2006/adchain-api/infrastructure/integrator/oracle/domain"
	"github.com/vfg2006/adchain-api/infrastructure/integrator/oracle/oracleclient"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/domain"
)

// Verifier é a fronteira com o oráculo de IA que julga se um anúncio foi
// colocado de forma autêntica no episódio
type Verifier interface {
	Verify(ctx context.Context, campaign *domain.Campaign, episodeID string) (*oracledomain.VerificationOutcome, error)
}

type OracleService struct {
	cfg    *config.Config
	Client oracleclient.Client
}

func New(cfg *config.Config, client oracleclient.Client) Verifier {
	return &OracleService{
		cfg:    cfg,
		Client: client,
	}
}

// Verify monta a requisição com os critérios da campanha e traduz falhas de
// infraestrutura do cliente para a taxonomia do pipeline
func (s *OracleService) Verify(ctx context.Context, campaign *domain.Campaign, episodeID string) (*oracledomain.VerificationOutcome, error) {
	req := &oracledomain.VerificationRequest{
		EpisodeID:        episodeID,
		CampaignID:       campaign.ID,
		MinQualityScore:  campaign.Criteria.MinQualityScore,
		RequiredElements: campaign.Criteria.RequiredElements,
		ComplianceChecks: campaign.Criteria.ComplianceChecks,
		NaturalnessMin:   campaign.Criteria.NaturalnessMin,
	}

	outcome, err := s.Client.Verify(ctx, req)
	if err != nil {
		var transient *oracleclient.TransientError
		if errors.As(err, &transient) || errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.NewTransientError("oracle.Verify", err)
		}
		return nil, err
	}

	return outcome, nil
}

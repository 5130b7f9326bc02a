package verifying

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/infrastructure/integrator/chain"
	"github.com/vfg2006/adchain-api/infrastructure/integrator/oracle"
	oracledomain "github.com/vfg2006/adchain-api/infrastructure/integrator/oracle/domain"
	"github.com/vfg2006/adchain-api/infrastructure/repository"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/domain"
	"github.com/vfg2006/adchain-api/pkg/utils"
)

// Orchestrator dirige a máquina de estados de um placement:
// pending -> verified|rejected. A transição verified exige o registro
// on-chain; falha na etapa on-chain mantém o placement pendente com o
// resultado do oráculo cacheado, para retry sem novo custo de IA
type Orchestrator interface {
	VerifyPlacement(ctx context.Context, placementID string) (*domain.AdPlacement, error)
	EnsurePlacement(ctx context.Context, campaignID, episodeID string) (*domain.AdPlacement, error)
}

type Service struct {
	placementRepo repository.PlacementRepository
	campaignRepo  repository.CampaignRepository
	oracleSvc     oracle.Verifier
	gateway       chain.Gateway
	oracleTimeout time.Duration
	chainTimeout  time.Duration
}

func NewService(
	cfg *config.Config,
	placementRepo repository.PlacementRepository,
	campaignRepo repository.CampaignRepository,
	oracleSvc oracle.Verifier,
	gateway chain.Gateway,
) *Service {
	return &Service{
		placementRepo: placementRepo,
		campaignRepo:  campaignRepo,
		oracleSvc:     oracleSvc,
		gateway:       gateway,
		oracleTimeout: time.Duration(cfg.Oracle.TimeoutSeconds) * time.Second,
		chainTimeout:  time.Duration(cfg.Chain.TimeoutSeconds) * time.Second,
	}
}

// EnsurePlacement cria o placement pendente para o par se ainda não existir.
// Usado quando um match é aceito ou quando um gatilho manual propõe o par
func (s *Service) EnsurePlacement(ctx context.Context, campaignID, episodeID string) (*domain.AdPlacement, error) {
	existing, err := s.placementRepo.GetByCampaignAndEpisode(campaignID, episodeID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar placement: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id do placement: %w", err)
	}

	placement := &domain.AdPlacement{
		ID:         id,
		CampaignID: campaignID,
		EpisodeID:  episodeID,
		Status:     domain.PlacementStatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.placementRepo.Create(placement); err != nil {
		return nil, fmt.Errorf("erro ao criar placement: %w", err)
	}

	// Em corrida de criação o ON CONFLICT ignora a segunda inserção;
	// reler garante que retornamos a linha vencedora
	created, err := s.placementRepo.GetByCampaignAndEpisode(campaignID, episodeID)
	if err != nil {
		return nil, fmt.Errorf("erro ao reler placement: %w", err)
	}

	return created, nil
}

// VerifyPlacement executa um passo da máquina de estados. Placement já
// verificado, pago ou rejeitado é um no-op idempotente. Erros do oráculo
// propagam sem mudança de estado; erros on-chain mantêm o placement
// pendente com o resultado persistido para auditoria
func (s *Service) VerifyPlacement(ctx context.Context, placementID string) (*domain.AdPlacement, error) {
	placement, err := s.placementRepo.GetByID(placementID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar placement: %w", err)
	}
	if placement == nil {
		return nil, domain.ErrNotFound
	}

	if placement.Status != domain.PlacementStatusPending {
		logrus.WithFields(logrus.Fields{
			"placement_id": placementID,
			"status":       placement.Status,
		}).Debug("Placement fora de pending, nada a verificar")
		return placement, nil
	}

	campaign, err := s.campaignRepo.GetByID(placement.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar campanha do placement: %w", err)
	}
	if campaign == nil {
		return nil, domain.ErrNotFound
	}

	result := placement.VerificationResult
	if result == nil {
		outcome, err := s.callOracle(ctx, campaign, placement.EpisodeID)
		if err != nil {
			return nil, err
		}

		result = &domain.VerificationResult{
			Verified:     outcome.Verified,
			QualityScore: outcome.QualityScore,
			Details:      outcome.Details,
			EvaluatedAt:  time.Now().UTC(),
		}

		// Persistir o snapshot antes da etapa on-chain: o custo de IA não
		// se repete quando a chain falha e o passo é reexecutado
		if err := s.placementRepo.SaveVerificationResult(placement.ID, result); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return s.placementRepo.GetByID(placementID)
			}
			return nil, fmt.Errorf("erro ao persistir resultado do oráculo: %w", err)
		}

		placement.VerificationResult = result
		placement.QualityScore = result.QualityScore
	} else {
		logrus.WithField("placement_id", placementID).Info("Reusando resultado de verificação cacheado")
	}

	if !result.Verified {
		if err := s.placementRepo.MarkRejected(placement.ID); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return s.placementRepo.GetByID(placementID)
			}
			return nil, fmt.Errorf("erro ao rejeitar placement: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"placement_id":  placementID,
			"quality_score": result.QualityScore,
		}).Info("Placement rejeitado pelo oráculo de verificação")

		placement.Status = domain.PlacementStatusRejected
		return placement, nil
	}

	txRef, err := s.callGateway(ctx, campaign.OnChainID, placement.EpisodeID)
	if err != nil {
		// Falha on-chain é transitória: o placement permanece pendente e o
		// próximo ciclo tenta de novo só a etapa da chain
		logrus.WithError(err).WithField("placement_id", placementID).
			Warn("Falha on-chain na verificação, placement permanece pendente")
		return nil, err
	}

	if err := s.placementRepo.MarkVerified(placement.ID, txRef); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return s.placementRepo.GetByID(placementID)
		}
		return nil, fmt.Errorf("erro ao marcar placement como verificado: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"placement_id":  placementID,
		"quality_score": result.QualityScore,
		"tx_ref":        txRef,
	}).Info("Placement verificado com sucesso")

	placement.Status = domain.PlacementStatusVerified
	placement.VerificationTxRef = &txRef
	return placement, nil
}

func (s *Service) callOracle(ctx context.Context, campaign *domain.Campaign, episodeID string) (*oracledomain.VerificationOutcome, error) {
	if s.oracleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.oracleTimeout)
		defer cancel()
	}

	return s.oracleSvc.Verify(ctx, campaign, episodeID)
}

func (s *Service) callGateway(ctx context.Context, campaignOnChainID int64, episodeID string) (string, error) {
	if s.chainTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.chainTimeout)
		defer cancel()
	}

	return s.gateway.VerifyPlacement(ctx, campaignOnChainID, episodeID)
}

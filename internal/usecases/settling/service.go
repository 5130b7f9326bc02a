package settling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/infrastructure/integrator/chain"
	chaindomain "github.com/vfg2006/adchain-api/infrastructure/integrator/chain/domain"
	"github.com/vfg2006/adchain-api/infrastructure/repository"
	"github.com/vfg2006/adchain-api/internal/domain"
)

// Settler converte placements verificados em pagamentos on-chain e
// atualizações contábeis duráveis. Exatamente um pagamento por placement:
// tentativas concorrentes ou repetidas observam ErrAlreadyPaid
type Settler interface {
	ProcessPayouts(ctx context.Context, campaignID, episodeID string) (*domain.PayoutResult, error)
	ProcessAutomatedPayouts(ctx context.Context) (*domain.JobReport, error)
	GetCreatorEarnings(ctx context.Context, creatorAddress string) (*domain.CreatorEarnings, error)
}

type Service struct {
	placementRepo repository.PlacementRepository
	campaignRepo  repository.CampaignRepository
	episodeRepo   repository.EpisodeRepository
	gateway       chain.Gateway

	// Cache opcional de leitura dos agregados de criador, invalidado a cada
	// pagamento bem sucedido. A recomputação é a fonte da verdade
	cacheMu       sync.Mutex
	earningsCache map[string]*domain.CreatorEarnings
}

func NewService(
	placementRepo repository.PlacementRepository,
	campaignRepo repository.CampaignRepository,
	episodeRepo repository.EpisodeRepository,
	gateway chain.Gateway,
) *Service {
	return &Service{
		placementRepo: placementRepo,
		campaignRepo:  campaignRepo,
		episodeRepo:   episodeRepo,
		gateway:       gateway,
		earningsCache: make(map[string]*domain.CreatorEarnings),
	}
}

// ProcessPayouts liquida o placement do par (campanha, episódio).
// Pré-condições: placement verificado e orçamento restante suficiente para
// o valor devido (views * payout por view). Valor devido acima do saldo é
// recusado — sem clamping, sem pagamento parcial. Em falha, nenhum estado
// persistido é mutado
func (s *Service) ProcessPayouts(ctx context.Context, campaignID, episodeID string) (*domain.PayoutResult, error) {
	fail := func(err error) (*domain.PayoutResult, error) {
		return &domain.PayoutResult{Success: false, Error: err.Error()}, err
	}

	placement, err := s.placementRepo.GetByCampaignAndEpisode(campaignID, episodeID)
	if err != nil {
		return fail(fmt.Errorf("erro ao buscar placement: %w", err))
	}
	if placement == nil {
		return fail(domain.ErrNotFound)
	}

	if placement.Status == domain.PlacementStatusPaid {
		return fail(domain.ErrAlreadyPaid)
	}
	if placement.Status != domain.PlacementStatusVerified {
		return fail(domain.ErrPlacementNotVerified)
	}

	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return fail(fmt.Errorf("erro ao buscar campanha: %w", err))
	}
	if campaign == nil {
		return fail(domain.ErrNotFound)
	}

	episode, err := s.episodeRepo.GetByID(episodeID)
	if err != nil {
		return fail(fmt.Errorf("erro ao buscar episódio: %w", err))
	}
	if episode == nil {
		return fail(domain.ErrNotFound)
	}

	owed := campaign.PayoutPerView.Mul(decimal.NewFromInt(placement.ViewCount))
	if !owed.IsPositive() {
		return fail(domain.ErrNothingOwed)
	}

	if owed.GreaterThan(campaign.RemainingBudget()) {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"episode_id":  episodeID,
			"owed":        owed.String(),
			"remaining":   campaign.RemainingBudget().String(),
		}).Warn("Pagamento recusado: valor devido excede orçamento restante")
		return fail(domain.ErrInsufficientBudget)
	}

	txRef, err := s.gateway.ProcessPayment(ctx, &chaindomain.PaymentRequest{
		PlacementID:   placement.ID,
		CampaignID:    campaign.OnChainID,
		RecipientAddr: episode.CreatorAddress,
		Amount:        owed,
		Currency:      campaign.Currency,
	})
	if err != nil {
		return fail(err)
	}

	err = s.placementRepo.SettlePayout(ctx, &repository.SettleParams{
		PlacementID: placement.ID,
		CampaignID:  campaign.ID,
		EpisodeID:   episode.ID,
		Amount:      owed,
		TxRef:       txRef,
	})
	if err != nil {
		// O pagamento on-chain já saiu: a inconsistência precisa de revisão
		// manual e não pode ser escondida como falha comum
		logrus.WithError(err).WithFields(logrus.Fields{
			"placement_id": placement.ID,
			"tx_ref":       txRef,
		}).Error("Pagamento on-chain efetuado mas liquidação local falhou")

		if errors.Is(err, domain.ErrAlreadyPaid) || errors.Is(err, domain.ErrInsufficientBudget) {
			return fail(domain.ErrConflict)
		}
		return fail(err)
	}

	s.invalidateEarnings(episode.CreatorAddress)

	logrus.WithFields(logrus.Fields{
		"placement_id": placement.ID,
		"campaign_id":  campaignID,
		"episode_id":   episodeID,
		"amount":       owed.String(),
		"tx_ref":       txRef,
	}).Info("Placement liquidado com sucesso")

	return &domain.PayoutResult{
		Success:       true,
		PlacementID:   placement.ID,
		CreatorPayout: owed,
		TxRef:         txRef,
	}, nil
}

// ProcessAutomatedPayouts varre os placements verificados com valor devido e
// liquida um a um. A falha de um placement não aborta o lote
func (s *Service) ProcessAutomatedPayouts(ctx context.Context) (*domain.JobReport, error) {
	report := &domain.JobReport{
		Job:       domain.JobAutomatedPayouts,
		StartedAt: time.Now(),
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
	}()

	placements, err := s.placementRepo.ListPlacements(domain.PlacementFilters{
		Status: []domain.PlacementStatus{domain.PlacementStatusVerified},
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao listar placements verificados: %w", err)
	}

	if len(placements) == 0 {
		report.Message = "nenhum placement verificado aguardando pagamento"
		return report, nil
	}

	for _, placement := range placements {
		if placement.ViewCount <= 0 {
			report.Skipped++
			continue
		}

		report.Processed++

		result, err := s.ProcessPayouts(ctx, placement.CampaignID, placement.EpisodeID)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"placement_id": placement.ID,
				"campaign_id":  placement.CampaignID,
				"episode_id":   placement.EpisodeID,
			}).Error("Falha ao liquidar placement no lote automático")
			report.AddError(fmt.Errorf("placement %s: %w", placement.ID, err))
			continue
		}

		if result.Success {
			report.Succeeded++
		}
	}

	report.Message = fmt.Sprintf(
		"%d liquidados, %d falhas, %d ignorados",
		report.Succeeded, report.Failed, report.Skipped,
	)

	return report, nil
}

// GetCreatorEarnings recomputa o agregado do criador a partir dos
// placements pagos. O cache serve apenas leituras repetidas e é invalidado
// a cada pagamento
func (s *Service) GetCreatorEarnings(ctx context.Context, creatorAddress string) (*domain.CreatorEarnings, error) {
	s.cacheMu.Lock()
	if cached, ok := s.earningsCache[creatorAddress]; ok {
		s.cacheMu.Unlock()
		return cached, nil
	}
	s.cacheMu.Unlock()

	earnings, err := s.placementRepo.SumPaidByCreator(creatorAddress)
	if err != nil {
		return nil, fmt.Errorf("erro ao recomputar ganhos do criador: %w", err)
	}

	s.cacheMu.Lock()
	s.earningsCache[creatorAddress] = earnings
	s.cacheMu.Unlock()

	return earnings, nil
}

func (s *Service) invalidateEarnings(creatorAddress string) {
	s.cacheMu.Lock()
	delete(s.earningsCache, creatorAddress)
	s.cacheMu.Unlock()
}

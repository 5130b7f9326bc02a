package settling

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	chaindomain "github.com/vfg2006/adchain-api/infrastructure/integrator/chain/domain"
	chainmocks "github.com/vfg2006/adchain-api/infrastructure/integrator/chain/mocks"
	"github.com/vfg2006/adchain-api/infrastructure/repository"
	"github.com/vfg2006/adchain-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adchain-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type settlingMocks struct {
	placementRepo *mocks.MockPlacementRepository
	campaignRepo  *mocks.MockCampaignRepository
	episodeRepo   *mocks.MockEpisodeRepository
	gateway       *chainmocks.MockGateway
}

func newSettlingService(t *testing.T) (*Service, settlingMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := settlingMocks{
		placementRepo: mocks.NewMockPlacementRepository(ctrl),
		campaignRepo:  mocks.NewMockCampaignRepository(ctrl),
		episodeRepo:   mocks.NewMockEpisodeRepository(ctrl),
		gateway:       chainmocks.NewMockGateway(ctrl),
	}

	return NewService(m.placementRepo, m.campaignRepo, m.episodeRepo, m.gateway), m
}

func verifiedPlacement(viewCount int64) *domain.AdPlacement {
	return &domain.AdPlacement{
		ID:         "plc_001",
		CampaignID: "camp_001",
		EpisodeID:  "ep_001",
		Status:     domain.PlacementStatusVerified,
		ViewCount:  viewCount,
	}
}

func fundedCampaign(budget, totalSpent string) *domain.Campaign {
	return &domain.Campaign{
		ID:            "camp_001",
		OnChainID:     42,
		Budget:        decimal.RequireFromString(budget),
		TotalSpent:    decimal.RequireFromString(totalSpent),
		PayoutPerView: decimal.RequireFromString("0.001"),
		Currency:      "USDC",
	}
}

func creatorEpisode() *domain.Episode {
	return &domain.Episode{
		ID:             "ep_001",
		CreatorAddress: "0xcreator",
	}
}

func TestService_ProcessPayouts(t *testing.T) {
	t.Run("Liquida o valor devido dentro do orçamento", func(t *testing.T) {
		service, m := newSettlingService(t)

		// 500 views a 0.001 = 0.5 devido; orçamento 1 com 0.4 gasto comporta
		m.placementRepo.EXPECT().
			GetByCampaignAndEpisode("camp_001", "ep_001").
			Return(verifiedPlacement(500), nil)
		m.campaignRepo.EXPECT().GetByID("camp_001").Return(fundedCampaign("1", "0.4"), nil)
		m.episodeRepo.EXPECT().GetByID("ep_001").Return(creatorEpisode(), nil)

		m.gateway.EXPECT().
			ProcessPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *chaindomain.PaymentRequest) (string, error) {
				assert.Equal(t, "plc_001", req.PlacementID)
				assert.Equal(t, int64(42), req.CampaignID)
				assert.Equal(t, "0xcreator", req.RecipientAddr)
				assert.True(t, req.Amount.Equal(decimal.RequireFromString("0.5")))
				assert.Equal(t, "USDC", req.Currency)
				return "0xpay001", nil
			})

		m.placementRepo.EXPECT().
			SettlePayout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params *repository.SettleParams) error {
				assert.Equal(t, "plc_001", params.PlacementID)
				assert.True(t, params.Amount.Equal(decimal.RequireFromString("0.5")))
				assert.Equal(t, "0xpay001", params.TxRef)
				return nil
			})

		result, err := service.ProcessPayouts(context.Background(), "camp_001", "ep_001")

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "plc_001", result.PlacementID)
		assert.True(t, result.CreatorPayout.Equal(decimal.RequireFromString("0.5")))
		assert.Equal(t, "0xpay001", result.TxRef)
	})

	t.Run("Valor devido acima do saldo é recusado sem chamar a chain", func(t *testing.T) {
		service, m := newSettlingService(t)

		// 0.5 devido contra saldo restante de 0.41: recusa, sem clamping
		m.placementRepo.EXPECT().
			GetByCampaignAndEpisode("camp_001", "ep_001").
			Return(verifiedPlacement(500), nil)
		m.campaignRepo.EXPECT().GetByID("camp_001").Return(fundedCampaign("1", "0.59"), nil)
		m.episodeRepo.EXPECT().GetByID("ep_001").Return(creatorEpisode(), nil)

		result, err := service.ProcessPayouts(context.Background(), "camp_001", "ep_001")

		assert.ErrorIs(t, err, domain.ErrInsufficientBudget)
		assert.False(t, result.Success)
	})

	t.Run("Placement já pago retorna ErrAlreadyPaid", func(t *testing.T) {
		service, m := newSettlingService(t)

		paid := verifiedPlacement(500)
		paid.Status = domain.PlacementStatusPaid

		m.placementRepo.EXPECT().
			GetByCampaignAndEpisode("camp_001", "ep_001").
			Return(paid, nil)

		result, err := service.ProcessPayouts(context.Background(), "camp_001", "ep_001")

		assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
		assert.False(t, result.Success)
	})

	t.Run("Placement pendente retorna ErrPlacementNotVerified", func(t *testing.T) {
		service, m := newSettlingService(t)

		pending := verifiedPlacement(500)
		pending.Status = domain.PlacementStatusPending

		m.placementRepo.EXPECT().
			GetByCampaignAndEpisode("camp_001", "ep_001").
			Return(pending, nil)

		result, err := service.ProcessPayouts(context.Background(), "camp_001", "ep_001")

		assert.ErrorIs(t, err, domain.ErrPlacementNotVerified)
		assert.False(t, result.Success)
	})

	t.Run("Placement sem views retorna ErrNothingOwed", func(t *testing.T) {
		service, m := newSettlingService(t)

		m.placementRepo.EXPECT().
			GetByCampaignAndEpisode("camp_001", "ep_001").
			Return(verifiedPlacement(0), nil)
		m.campaignRepo.EXPECT().GetByID("camp_001").Return(fundedCampaign("1", "0"), nil)
		m.episodeRepo.EXPECT().GetByID("ep_001").Return(creatorEpisode(), nil)

		result, err := service.ProcessPayouts(context.Background(), "camp_001", "ep_001")

		assert.ErrorIs(t, err, domain.ErrNothingOwed)
		assert.False(t, result.Success)
	})

	t.Run("Par sem placement retorna ErrNotFound", func(t *testing.T) {
		service, m := newSettlingService(t)

		m.placementRepo.EXPECT().
			GetByCampaignAndEpisode("camp_001", "ep_999").
			Return(nil, nil)

		result, err := service.ProcessPayouts(context.Background(), "camp_001", "ep_999")

		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.False(t, result.Success)
	})

	t.Run("Falha da chain não muta estado persistido", func(t *testing.T) {
		service, m := newSettlingService(t)

		m.placementRepo.EXPECT().
			GetByCampaignAndEpisode("camp_001", "ep_001").
			Return(verifiedPlacement(500), nil)
		m.campaignRepo.EXPECT().GetByID("camp_001").Return(fundedCampaign("1", "0"), nil)
		m.episodeRepo.EXPECT().GetByID("ep_001").Return(creatorEpisode(), nil)
		m.gateway.EXPECT().
			ProcessPayment(gomock.Any(), gomock.Any()).
			Return("", errors.New("gateway indisponível"))

		result, err := service.ProcessPayouts(context.Background(), "camp_001", "ep_001")

		assert.Error(t, err)
		assert.False(t, result.Success)
	})

	t.Run("Conflito após pagamento on-chain vira ErrConflict", func(t *testing.T) {
		service, m := newSettlingService(t)

		m.placementRepo.EXPECT().
			GetByCampaignAndEpisode("camp_001", "ep_001").
			Return(verifiedPlacement(500), nil)
		m.campaignRepo.EXPECT().GetByID("camp_001").Return(fundedCampaign("1", "0"), nil)
		m.episodeRepo.EXPECT().GetByID("ep_001").Return(creatorEpisode(), nil)
		m.gateway.EXPECT().
			ProcessPayment(gomock.Any(), gomock.Any()).
			Return("0xpay001", nil)
		m.placementRepo.EXPECT().
			SettlePayout(gomock.Any(), gomock.Any()).
			Return(domain.ErrAlreadyPaid)

		result, err := service.ProcessPayouts(context.Background(), "camp_001", "ep_001")

		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.False(t, result.Success)
	})
}

func TestService_ProcessAutomatedPayouts(t *testing.T) {
	t.Run("Liquida o lote e isola falhas individuais", func(t *testing.T) {
		service, m := newSettlingService(t)

		ok := verifiedPlacement(500)
		broken := &domain.AdPlacement{
			ID:         "plc_002",
			CampaignID: "camp_002",
			EpisodeID:  "ep_002",
			Status:     domain.PlacementStatusVerified,
			ViewCount:  100,
		}
		noViews := &domain.AdPlacement{
			ID:         "plc_003",
			CampaignID: "camp_003",
			EpisodeID:  "ep_003",
			Status:     domain.PlacementStatusVerified,
			ViewCount:  0,
		}

		m.placementRepo.EXPECT().
			ListPlacements(domain.PlacementFilters{
				Status: []domain.PlacementStatus{domain.PlacementStatusVerified},
			}).
			Return([]*domain.AdPlacement{ok, broken, noViews}, nil)

		// Liquidação do primeiro placement
		m.placementRepo.EXPECT().
			GetByCampaignAndEpisode("camp_001", "ep_001").
			Return(ok, nil)
		m.campaignRepo.EXPECT().GetByID("camp_001").Return(fundedCampaign("1", "0"), nil)
		m.episodeRepo.EXPECT().GetByID("ep_001").Return(creatorEpisode(), nil)
		m.gateway.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).Return("0xpay001", nil)
		m.placementRepo.EXPECT().SettlePayout(gomock.Any(), gomock.Any()).Return(nil)

		// Segundo placement falha na busca e não aborta o lote
		m.placementRepo.EXPECT().
			GetByCampaignAndEpisode("camp_002", "ep_002").
			Return(nil, errors.New("conexão recusada"))

		report, err := service.ProcessAutomatedPayouts(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 2, report.Processed)
		assert.Equal(t, 1, report.Succeeded)
		assert.Equal(t, 1, report.Failed)
		assert.Equal(t, 1, report.Skipped)
	})

	t.Run("Lote vazio retorna relatório sem processamento", func(t *testing.T) {
		service, m := newSettlingService(t)

		m.placementRepo.EXPECT().
			ListPlacements(gomock.Any()).
			Return([]*domain.AdPlacement{}, nil)

		report, err := service.ProcessAutomatedPayouts(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0, report.Processed)
		assert.Equal(t, "nenhum placement verificado aguardando pagamento", report.Message)
	})
}

func TestService_GetCreatorEarnings(t *testing.T) {
	service, m := newSettlingService(t)

	earnings := &domain.CreatorEarnings{
		CreatorAddress: "0xcreator",
		TotalEarnings:  decimal.RequireFromString("1.5"),
		PaidPlacements: 3,
	}

	// Uma única recomputação serve leituras repetidas via cache
	m.placementRepo.EXPECT().
		SumPaidByCreator("0xcreator").
		Return(earnings, nil).
		Times(1)

	first, err := service.GetCreatorEarnings(context.Background(), "0xcreator")
	assert.NoError(t, err)
	assert.Equal(t, earnings, first)

	second, err := service.GetCreatorEarnings(context.Background(), "0xcreator")
	assert.NoError(t, err)
	assert.Equal(t, earnings, second)
}

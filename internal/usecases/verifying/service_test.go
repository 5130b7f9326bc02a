package verifying

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	chainmocks "github.com/vfg2006/adchain-api/infrastructure/integrator/chain/mocks"
	oracledomain "github.com/vfg2006/adchain-api/infrastructure/integrator/oracle/domain"
	oraclemocks "github.com/vfg2006/adchain-api/infrastructure/integrator/oracle/mocks"
	"github.com/vfg2006/adchain-api/infrastructure/repository/mocks"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type verifyingMocks struct {
	placementRepo *mocks.MockPlacementRepository
	campaignRepo  *mocks.MockCampaignRepository
	oracle        *oraclemocks.MockVerifier
	gateway       *chainmocks.MockGateway
}

func newVerifyingService(t *testing.T) (*Service, verifyingMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := verifyingMocks{
		placementRepo: mocks.NewMockPlacementRepository(ctrl),
		campaignRepo:  mocks.NewMockCampaignRepository(ctrl),
		oracle:        oraclemocks.NewMockVerifier(ctrl),
		gateway:       chainmocks.NewMockGateway(ctrl),
	}

	cfg := &config.Config{
		Oracle: config.Oracle{TimeoutSeconds: 5},
		Chain:  config.Chain{TimeoutSeconds: 5},
	}

	return NewService(cfg, m.placementRepo, m.campaignRepo, m.oracle, m.gateway), m
}

func pendingPlacement() *domain.AdPlacement {
	return &domain.AdPlacement{
		ID:         "plc_001",
		CampaignID: "camp_001",
		EpisodeID:  "ep_001",
		Status:     domain.PlacementStatusPending,
		CreatedAt:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func placementCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:        "camp_001",
		OnChainID: 42,
	}
}

func TestService_VerifyPlacement(t *testing.T) {
	t.Run("Oráculo aprova e a chain registra a verificação", func(t *testing.T) {
		service, m := newVerifyingService(t)

		m.placementRepo.EXPECT().GetByID("plc_001").Return(pendingPlacement(), nil)
		m.campaignRepo.EXPECT().GetByID("camp_001").Return(placementCampaign(), nil)
		m.oracle.EXPECT().
			Verify(gomock.Any(), gomock.Any(), "ep_001").
			Return(&oracledomain.VerificationOutcome{
				Verified:     true,
				QualityScore: 0.91,
				Details:      "conteúdo aprovado",
			}, nil)
		m.placementRepo.EXPECT().
			SaveVerificationResult("plc_001", gomock.Any()).
			Return(nil)
		m.gateway.EXPECT().
			VerifyPlacement(gomock.Any(), int64(42), "ep_001").
			Return("0xabc123", nil)
		m.placementRepo.EXPECT().
			MarkVerified("plc_001", "0xabc123").
			Return(nil)

		placement, err := service.VerifyPlacement(context.Background(), "plc_001")

		assert.NoError(t, err)
		assert.Equal(t, domain.PlacementStatusVerified, placement.Status)
		assert.NotNil(t, placement.VerificationTxRef)
		assert.Equal(t, "0xabc123", *placement.VerificationTxRef)
		assert.Equal(t, 0.91, placement.QualityScore)
	})

	t.Run("Oráculo rejeita e a chain não é chamada", func(t *testing.T) {
		service, m := newVerifyingService(t)

		m.placementRepo.EXPECT().GetByID("plc_001").Return(pendingPlacement(), nil)
		m.campaignRepo.EXPECT().GetByID("camp_001").Return(placementCampaign(), nil)
		m.oracle.EXPECT().
			Verify(gomock.Any(), gomock.Any(), "ep_001").
			Return(&oracledomain.VerificationOutcome{
				Verified:     false,
				QualityScore: 0.31,
				Details:      "qualidade abaixo do mínimo",
			}, nil)
		m.placementRepo.EXPECT().
			SaveVerificationResult("plc_001", gomock.Any()).
			Return(nil)
		m.placementRepo.EXPECT().MarkRejected("plc_001").Return(nil)

		placement, err := service.VerifyPlacement(context.Background(), "plc_001")

		assert.NoError(t, err)
		assert.Equal(t, domain.PlacementStatusRejected, placement.Status)
	})

	t.Run("Falha on-chain mantém o placement pendente com o resultado persistido", func(t *testing.T) {
		service, m := newVerifyingService(t)

		m.placementRepo.EXPECT().GetByID("plc_001").Return(pendingPlacement(), nil)
		m.campaignRepo.EXPECT().GetByID("camp_001").Return(placementCampaign(), nil)
		m.oracle.EXPECT().
			Verify(gomock.Any(), gomock.Any(), "ep_001").
			Return(&oracledomain.VerificationOutcome{Verified: true, QualityScore: 0.9}, nil)
		m.placementRepo.EXPECT().
			SaveVerificationResult("plc_001", gomock.Any()).
			Return(nil)
		m.gateway.EXPECT().
			VerifyPlacement(gomock.Any(), int64(42), "ep_001").
			Return("", errors.New("gateway indisponível"))

		placement, err := service.VerifyPlacement(context.Background(), "plc_001")

		assert.Nil(t, placement)
		assert.Error(t, err)
	})

	t.Run("Retry reusa o resultado cacheado sem chamar o oráculo", func(t *testing.T) {
		service, m := newVerifyingService(t)

		cached := pendingPlacement()
		cached.VerificationResult = &domain.VerificationResult{
			Verified:     true,
			QualityScore: 0.9,
			EvaluatedAt:  time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC),
		}

		m.placementRepo.EXPECT().GetByID("plc_001").Return(cached, nil)
		m.campaignRepo.EXPECT().GetByID("camp_001").Return(placementCampaign(), nil)
		m.gateway.EXPECT().
			VerifyPlacement(gomock.Any(), int64(42), "ep_001").
			Return("0xdef456", nil)
		m.placementRepo.EXPECT().
			MarkVerified("plc_001", "0xdef456").
			Return(nil)

		placement, err := service.VerifyPlacement(context.Background(), "plc_001")

		assert.NoError(t, err)
		assert.Equal(t, domain.PlacementStatusVerified, placement.Status)
	})

	t.Run("Placement fora de pending é no-op idempotente", func(t *testing.T) {
		service, m := newVerifyingService(t)

		verified := pendingPlacement()
		verified.Status = domain.PlacementStatusVerified

		m.placementRepo.EXPECT().GetByID("plc_001").Return(verified, nil)

		placement, err := service.VerifyPlacement(context.Background(), "plc_001")

		assert.NoError(t, err)
		assert.Equal(t, domain.PlacementStatusVerified, placement.Status)
	})

	t.Run("Erro do oráculo propaga sem mudança de estado", func(t *testing.T) {
		service, m := newVerifyingService(t)

		m.placementRepo.EXPECT().GetByID("plc_001").Return(pendingPlacement(), nil)
		m.campaignRepo.EXPECT().GetByID("camp_001").Return(placementCampaign(), nil)
		m.oracle.EXPECT().
			Verify(gomock.Any(), gomock.Any(), "ep_001").
			Return(nil, errors.New("oráculo indisponível"))

		placement, err := service.VerifyPlacement(context.Background(), "plc_001")

		assert.Nil(t, placement)
		assert.Error(t, err)
	})

	t.Run("Conflito de escrita concorrente relê o estado vencedor", func(t *testing.T) {
		service, m := newVerifyingService(t)

		winner := pendingPlacement()
		winner.Status = domain.PlacementStatusVerified

		m.placementRepo.EXPECT().GetByID("plc_001").Return(pendingPlacement(), nil)
		m.campaignRepo.EXPECT().GetByID("camp_001").Return(placementCampaign(), nil)
		m.oracle.EXPECT().
			Verify(gomock.Any(), gomock.Any(), "ep_001").
			Return(&oracledomain.VerificationOutcome{Verified: true, QualityScore: 0.9}, nil)
		m.placementRepo.EXPECT().
			SaveVerificationResult("plc_001", gomock.Any()).
			Return(domain.ErrConflict)
		m.placementRepo.EXPECT().GetByID("plc_001").Return(winner, nil)

		placement, err := service.VerifyPlacement(context.Background(), "plc_001")

		assert.NoError(t, err)
		assert.Equal(t, domain.PlacementStatusVerified, placement.Status)
	})

	t.Run("Placement inexistente retorna ErrNotFound", func(t *testing.T) {
		service, m := newVerifyingService(t)

		m.placementRepo.EXPECT().GetByID("plc_999").Return(nil, nil)

		placement, err := service.VerifyPlacement(context.Background(), "plc_999")

		assert.Nil(t, placement)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestService_EnsurePlacement(t *testing.T) {
	t.Run("Par já coberto retorna o placement existente", func(t *testing.T) {
		service, m := newVerifyingService(t)

		existing := pendingPlacement()
		m.placementRepo.EXPECT().
			GetByCampaignAndEpisode("camp_001", "ep_001").
			Return(existing, nil)

		placement, err := service.EnsurePlacement(context.Background(), "camp_001", "ep_001")

		assert.NoError(t, err)
		assert.Equal(t, existing, placement)
	})

	t.Run("Par novo cria placement pendente e relê a linha vencedora", func(t *testing.T) {
		service, m := newVerifyingService(t)

		created := pendingPlacement()

		gomock.InOrder(
			m.placementRepo.EXPECT().
				GetByCampaignAndEpisode("camp_001", "ep_001").
				Return(nil, nil),
			m.placementRepo.EXPECT().
				Create(gomock.Any()).
				DoAndReturn(func(placement *domain.AdPlacement) error {
					assert.NotEmpty(t, placement.ID)
					assert.Equal(t, domain.PlacementStatusPending, placement.Status)
					return nil
				}),
			m.placementRepo.EXPECT().
				GetByCampaignAndEpisode("camp_001", "ep_001").
				Return(created, nil),
		)

		placement, err := service.EnsurePlacement(context.Background(), "camp_001", "ep_001")

		assert.NoError(t, err)
		assert.Equal(t, created, placement)
	})
}

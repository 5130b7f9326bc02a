package chain

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/adchain-api/infrastructure/integrator/chain/chainclient"
	chaindomain "github.com/vfg2006/adchain-api/infrastructure/integrator/chain/domain"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/domain"
)

// Gateway é a fronteira com o contrato de escrow on-chain. Nenhuma chamada é
// idempotente por si só: a idempotência é responsabilidade do orquestrador
type Gateway interface {
	VerifyPlacement(ctx context.Context, campaignOnChainID int64, episodeID string) (string, error)
	ProcessPayment(ctx context.Context, req *chaindomain.PaymentRequest) (string, error)
	GetPayoutHistory(ctx context.Context, address string) ([]chaindomain.PayoutRecord, error)
	GetWalletBalance(ctx context.Context, address, currency string) (decimal.Decimal, error)
}

type ChainService struct {
	cfg    *config.Config
	Client chainclient.Client
}

func New(cfg *config.Config, client chainclient.Client) Gateway {
	return &ChainService{
		cfg:    cfg,
		Client: client,
	}
}

// VerifyPlacement registra a verificação no contrato e retorna a referência
// da transação. Qualquer falha (rede ou revert) é transitória: o placement
// permanece pendente e o próximo ciclo tenta de novo
func (s *ChainService) VerifyPlacement(ctx context.Context, campaignOnChainID int64, episodeID string) (string, error) {
	receipt, err := s.Client.VerifyPlacement(ctx, &chaindomain.VerifyPlacementRequest{
		CampaignID: campaignOnChainID,
		EpisodeID:  episodeID,
	})
	if err != nil {
		return "", domain.NewTransientError("chain.VerifyPlacement", err)
	}

	return receipt.TxRef, nil
}

func (s *ChainService) ProcessPayment(ctx context.Context, req *chaindomain.PaymentRequest) (string, error) {
	receipt, err := s.Client.ProcessPayment(ctx, req)
	if err != nil {
		return "", domain.NewTransientError("chain.ProcessPayment", err)
	}

	return receipt.TxRef, nil
}

func (s *ChainService) GetPayoutHistory(ctx context.Context, address string) ([]chaindomain.PayoutRecord, error) {
	records, err := s.Client.GetPayoutHistory(ctx, address)
	if err != nil {
		return nil, domain.NewTransientError("chain.GetPayoutHistory", err)
	}

	return records, nil
}

func (s *ChainService) GetWalletBalance(ctx context.Context, address, currency string) (decimal.Decimal, error) {
	balance, err := s.Client.GetWalletBalance(ctx, address, currency)
	if err != nil {
		return decimal.Zero, domain.NewTransientError("chain.GetWalletBalance", err)
	}

	return balance, nil
}

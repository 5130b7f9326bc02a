package chainclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"
	chaindomain "github.com/vfg2006/adchain-api/infrastructure/integrator/chain/domain"
	"github.com/vfg2006/adchain-api/internal/config"
)

type Client interface {
	VerifyPlacement(ctx context.Context, req *chaindomain.VerifyPlacementRequest) (*chaindomain.TxReceipt, error)
	ProcessPayment(ctx context.Context, req *chaindomain.PaymentRequest) (*chaindomain.TxReceipt, error)
	GetPayoutHistory(ctx context.Context, address string) ([]chaindomain.PayoutRecord, error)
	GetWalletBalance(ctx context.Context, address, currency string) (decimal.Decimal, error)
}

type ChainClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.Chain.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ChainClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}

func (c *ChainClient) VerifyPlacement(ctx context.Context, req *chaindomain.VerifyPlacementRequest) (*chaindomain.TxReceipt, error) {
	receipt := &chaindomain.TxReceipt{}
	if err := c.post(ctx, "/v1/placements/verify", req, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (c *ChainClient) ProcessPayment(ctx context.Context, req *chaindomain.PaymentRequest) (*chaindomain.TxReceipt, error) {
	receipt := &chaindomain.TxReceipt{}
	if err := c.post(ctx, "/v1/payments", req, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (c *ChainClient) GetPayoutHistory(ctx context.Context, address string) ([]chaindomain.PayoutRecord, error) {
	records := make([]chaindomain.PayoutRecord, 0)
	endpoint := fmt.Sprintf("/v1/payouts/%s", address)
	if err := c.get(ctx, endpoint, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *ChainClient) GetWalletBalance(ctx context.Context, address, currency string) (decimal.Decimal, error) {
	var response struct {
		Balance decimal.Decimal `json:"balance"`
	}

	endpoint := fmt.Sprintf("/v1/wallets/%s/balance", address)
	query := url.Values{"currency": []string{currency}}
	if err := c.get(ctx, endpoint, query, &response); err != nil {
		return decimal.Zero, err
	}

	return response.Balance, nil
}

func (c *ChainClient) post(ctx context.Context, endpoint string, payload, out any) error {
	target, err := c.buildURL(endpoint, nil)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao serializar a requisição: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *ChainClient) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	target, err := c.buildURL(endpoint, query)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	return c.do(req, out)
}

func (c *ChainClient) buildURL(endpoint string, query url.Values) (string, error) {
	base, err := url.Parse(c.config.Chain.GatewayURL)
	if err != nil {
		return "", fmt.Errorf("erro ao analisar a URL base: %w", err)
	}

	base.Path = path.Join(base.Path, endpoint)
	if query != nil {
		base.RawQuery = query.Encode()
	}

	return base.String(), nil
}

func (c *ChainClient) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.config.Chain.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("requisição ao gateway falhou com status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return nil
}

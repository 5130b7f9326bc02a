package oracleclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	oracledomain "github.com/vfg2006/adchain-api/infrastructure/integrator/oracle/domain"
	"github.com/vfg2006/adchain-api/internal/config"
)

type Client interface {
	Verify(ctx context.Context, req *oracledomain.VerificationRequest) (*oracledomain.VerificationOutcome, error)
}

// TransientError sinaliza falha de rede ou indisponibilidade do oráculo,
// distinguível de uma rejeição de conteúdo
type TransientError struct {
	Status string
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("oráculo indisponível: %s", e.Status)
}

type OracleClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.Oracle.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OracleClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}

// Verify envia o par (episódio, campanha) para avaliação do oráculo de IA.
// Erros de rede e respostas 5xx viram TransientError; respostas 4xx são
// falhas duras de requisição
func (c *OracleClient) Verify(ctx context.Context, verifReq *oracledomain.VerificationRequest) (*oracledomain.VerificationOutcome, error) {
	endpoint, err := url.Parse(c.config.Oracle.URL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/v1/verify")

	body, err := json.Marshal(verifReq)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar a requisição: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Oracle.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransientError{Status: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &TransientError{Status: resp.Status}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição ao oráculo falhou com status: %s", resp.Status)
	}

	outcome := &oracledomain.VerificationOutcome{}
	if err := json.NewDecoder(resp.Body).Decode(outcome); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return outcome, nil
}

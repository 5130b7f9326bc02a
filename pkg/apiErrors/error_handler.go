package apiErrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vfg2006/adchain-api/internal/domain"
)

// Códigos de erro da API
const (
	// Erros de autenticação (AUTH)
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_004" // Token inválido
	ErrExpiredToken          = "AUTH_005" // Token expirado
	ErrInsufficientPrivilege = "AUTH_006" // Privilégios insuficientes

	// Erros de validação (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrMethodNotAllowed    = "VAL_004" // Método HTTP não suportado pela rota

	// Erros de recurso (RES)
	ErrResourceNotFound = "RES_001" // Recurso não encontrado
	ErrResourceConflict = "RES_002" // Conflito com o estado atual do recurso

	// Erros do pipeline de verificação e pagamento (PIPE)
	ErrPlacementNotVerified = "PIPE_001" // Placement ainda não verificado
	ErrAlreadyPaid          = "PIPE_002" // Placement já pago
	ErrInsufficientBudget   = "PIPE_003" // Orçamento restante insuficiente
	ErrNothingOwed          = "PIPE_004" // Nenhum valor devido
	ErrOracleRejected       = "PIPE_005" // Conteúdo rejeitado pelo oráculo
	ErrJobUnavailable       = "PIPE_006" // Job desconhecido ou em andamento

	// Erros do servidor (SRV)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrResourceNotFound:      http.StatusNotFound,
	ErrResourceConflict:      http.StatusConflict,
	ErrPlacementNotVerified:  http.StatusUnprocessableEntity,
	ErrAlreadyPaid:           http.StatusConflict,
	ErrInsufficientBudget:    http.StatusUnprocessableEntity,
	ErrNothingOwed:           http.StatusUnprocessableEntity,
	ErrOracleRejected:        http.StatusUnprocessableEntity,
	ErrJobUnavailable:        http.StatusConflict,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// WriteDomainError traduz um erro de domínio do pipeline para a resposta
// HTTP correspondente. Erros fora da taxonomia viram erro interno; falhas
// transitórias de serviço externo viram 502
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, ErrResourceNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		WriteError(w, ErrResourceConflict, err.Error(), nil)
	case errors.Is(err, domain.ErrPlacementNotVerified):
		WriteError(w, ErrPlacementNotVerified, err.Error(), nil)
	case errors.Is(err, domain.ErrAlreadyPaid):
		WriteError(w, ErrAlreadyPaid, err.Error(), nil)
	case errors.Is(err, domain.ErrInsufficientBudget):
		WriteError(w, ErrInsufficientBudget, err.Error(), nil)
	case errors.Is(err, domain.ErrNothingOwed):
		WriteError(w, ErrNothingOwed, err.Error(), nil)
	case errors.Is(err, domain.ErrOracleRejected):
		WriteError(w, ErrOracleRejected, err.Error(), nil)
	case domain.IsTransient(err):
		WriteError(w, ErrExternalService, err.Error(), nil)
	default:
		WriteError(w, ErrInternalServer, "Erro interno do servidor", nil)
	}
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}

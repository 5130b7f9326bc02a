package domain

import (
	"errors"
	"fmt"
)

// Taxonomia de erros do pipeline. O orquestrador e o motor de liquidação
// retornam estes tipos; o scheduler captura por item, loga e segue o lote

var (
	// ErrOracleRejected indica que o conteúdo falhou na verificação de IA.
	// Terminal para o placement: sem retry sem conteúdo novo
	ErrOracleRejected = errors.New("conteúdo rejeitado pelo oráculo de verificação")

	// ErrPlacementNotVerified indica pagamento solicitado para um placement
	// que ainda não chegou ao status verified
	ErrPlacementNotVerified = errors.New("placement não está verificado")

	// ErrAlreadyPaid indica que o placement já foi liquidado; a tentativa
	// perdedora observa o estado já aplicado
	ErrAlreadyPaid = errors.New("placement já foi pago")

	// ErrInsufficientBudget indica que o valor devido excede o saldo
	// restante da campanha
	ErrInsufficientBudget = errors.New("orçamento da campanha insuficiente")

	// ErrNothingOwed indica que o placement verificado não acumulou views
	ErrNothingOwed = errors.New("nenhum valor devido para o placement")

	// ErrConflict indica que uma atualização otimista perdeu a corrida;
	// seguro repetir uma vez
	ErrConflict = errors.New("conflito de concorrência na atualização")

	// ErrNotFound é retornado quando a entidade referenciada não existe
	ErrNotFound = errors.New("registro não encontrado")
)

// TransientError marca falhas de infraestrutura (rede, timeout, congestão
// on-chain). Sem mudança de estado; o próximo ciclo agendado tenta de novo
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("falha transitória em %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError envolve um erro de infraestrutura para retry posterior
func NewTransientError(op string, err error) *TransientError {
	return &TransientError{Op: op, Err: err}
}

// IsTransient informa se o erro deve ser tratado como retryável
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

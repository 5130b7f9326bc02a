package authenticating

import "errors"

// Erros de autenticação da superfície administrativa
var (
	ErrInvalidCredentials  = errors.New("credenciais inválidas")
	ErrUserDisabled        = errors.New("usuário desativado")
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrInvalidToken        = errors.New("token inválido")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
)

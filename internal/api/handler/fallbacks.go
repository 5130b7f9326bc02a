package handler

import (
	"net/http"

	"github.com/vfg2006/adchain-api/pkg/apiErrors"
)

// NotFoundHandler responde rotas desconhecidas com o envelope de erro da API
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "rota não encontrada", nil)
	})
}

// MethodNotAllowedHandler responde métodos não suportados na rota
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "método não suportado para esta rota", nil)
	})
}

package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/adchain-api/internal/usecases/verifying"
	"github.com/vfg2006/adchain-api/pkg/apiErrors"
)

// VerifyPlacement executa sob demanda um passo da verificação do placement.
// Placement fora de pending é um no-op que devolve o estado atual
func VerifyPlacement(orchestrator verifying.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		placementID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if placementID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do placement não informado", nil)
			return
		}

		placement, err := orchestrator.VerifyPlacement(r.Context(), placementID)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(placement)
	}
}

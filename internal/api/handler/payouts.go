package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/adchain-api/internal/usecases/settling"
	"github.com/vfg2006/adchain-api/pkg/apiErrors"
)

// ProcessPayout liquida o placement verificado do par campanha x episódio
func ProcessPayout(settler settling.Settler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		campaignID := params.ByName("id")
		episodeID := params.ByName("episode_id")
		if campaignID == "" || episodeID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "IDs da campanha e do episódio são obrigatórios", nil)
			return
		}

		result, err := settler.ProcessPayouts(r.Context(), campaignID, episodeID)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// GetCreatorEarnings retorna o agregado de ganhos do criador por endereço
func GetCreatorEarnings(settler settling.Settler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := httprouter.ParamsFromContext(r.Context()).ByName("address")
		if address == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Endereço do criador não informado", nil)
			return
		}

		earnings, err := settler.GetCreatorEarnings(r.Context(), address)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(earnings)
	}
}

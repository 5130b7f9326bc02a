package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/infrastructure/repository"
	"github.com/vfg2006/adchain-api/internal/usecases/fraudfiltering"
	"github.com/vfg2006/adchain-api/internal/usecases/viewtracking"
	"github.com/vfg2006/adchain-api/pkg/apiErrors"
)

// GetEpisodeStats retorna os agregados de audiência e ganhos de um episódio
func GetEpisodeStats(ledger viewtracking.ViewLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		episodeID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if episodeID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do episódio não informado", nil)
			return
		}

		stats, err := ledger.GetStats(r.Context(), episodeID)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}
}

// FraudCheckResponse é o veredito consultivo da varredura de fraude
type FraudCheckResponse struct {
	EpisodeID string `json:"episode_id"`
	Flagged   bool   `json:"flagged"`
}

// RunFraudCheck reavalia o padrão de views do episódio sob demanda e
// persiste a flag consultiva. O veredito não bloqueia pagamentos
func RunFraudCheck(fraudFilter fraudfiltering.FraudFilter, episodeRepo repository.EpisodeRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		episodeID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if episodeID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do episódio não informado", nil)
			return
		}

		flagged, err := fraudFilter.DetectFraud(r.Context(), episodeID)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		if err := episodeRepo.SetFraudFlag(episodeID, flagged); err != nil {
			logrus.WithError(err).WithField("episode_id", episodeID).
				Error("Erro ao persistir flag de fraude do episódio")
			apiErrors.WriteDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(FraudCheckResponse{
			EpisodeID: episodeID,
			Flagged:   flagged,
		})
	}
}

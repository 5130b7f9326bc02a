package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/internal/domain"
	"github.com/vfg2006/adchain-api/internal/usecases/fraudfiltering"
	"github.com/vfg2006/adchain-api/internal/usecases/viewtracking"
	"github.com/vfg2006/adchain-api/pkg/apiErrors"
)

// ViewIngestResponse resume o destino de um lote de eventos de view
type ViewIngestResponse struct {
	Received int `json:"received"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// IngestViews recebe um lote de eventos de view dos players, passa pelo
// filtro de fraude e registra apenas os aceitos. Eventos rejeitados são
// descartados silenciosamente: a resposta informa só as contagens
func IngestViews(fraudFilter fraudfiltering.FraudFilter, ledger viewtracking.ViewLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var events []domain.ViewEvent

		if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if len(events) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum evento de view informado", nil)
			return
		}

		for i := range events {
			if events[i].Timestamp.IsZero() {
				events[i].Timestamp = time.Now().UTC()
			}
			if events[i].SourceIP == "" {
				events[i].SourceIP = r.RemoteAddr
			}
			if events[i].UserAgent == "" {
				events[i].UserAgent = r.UserAgent()
			}
		}

		accepted := fraudFilter.Evaluate(events)

		recorded := 0
		for _, event := range accepted {
			if err := ledger.RecordView(r.Context(), event.EpisodeID, event.ViewerID); err != nil {
				logrus.WithError(err).WithField("episode_id", event.EpisodeID).
					Error("Erro ao registrar view aceita")
				continue
			}
			recorded++
		}

		response := ViewIngestResponse{
			Received: len(events),
			Accepted: recorded,
			Rejected: len(events) - recorded,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(response)
	}
}

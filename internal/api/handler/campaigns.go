package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/infrastructure/repository"
	"github.com/vfg2006/adchain-api/internal/usecases/matching"
	"github.com/vfg2006/adchain-api/internal/usecases/verifying"
	"github.com/vfg2006/adchain-api/pkg/apiErrors"
)

// FindCampaignMatches pontua os episódios do catálogo contra a campanha e
// retorna os candidatos acima do piso de compatibilidade
func FindCampaignMatches(matcher matching.Matcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não informado", nil)
			return
		}

		candidates, err := matcher.FindMatches(r.Context(), campaignID)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(candidates)
	}
}

// ListCampaignMatches retorna o histórico de matches decididos da campanha
func ListCampaignMatches(campaignRepo repository.CampaignRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não informado", nil)
			return
		}

		matches, err := campaignRepo.ListMatches(campaignID)
		if err != nil {
			logrus.WithError(err).WithField("campaign_id", campaignID).
				Error("Erro ao listar matches da campanha")
			apiErrors.WriteDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(matches)
	}
}

// AcceptCampaignMatch aceita o par campanha x episódio e garante o placement
// pendente correspondente, que entra na fila de verificação
func AcceptCampaignMatch(matcher matching.Matcher, orchestrator verifying.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		campaignID := params.ByName("id")
		episodeID := params.ByName("episode_id")
		if campaignID == "" || episodeID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "IDs da campanha e do episódio são obrigatórios", nil)
			return
		}

		match, err := matcher.AcceptMatch(r.Context(), campaignID, episodeID)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		placement, err := orchestrator.EnsurePlacement(r.Context(), campaignID, episodeID)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"match":     match,
			"placement": placement,
		})
	}
}

// RejectCampaignMatch marca o par como rejeitado, impedindo rematching
func RejectCampaignMatch(matcher matching.Matcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		campaignID := params.ByName("id")
		episodeID := params.ByName("episode_id")
		if campaignID == "" || episodeID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "IDs da campanha e do episódio são obrigatórios", nil)
			return
		}

		match, err := matcher.RejectMatch(r.Context(), campaignID, episodeID)
		if err != nil {
			apiErrors.WriteDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(match)
	}
}

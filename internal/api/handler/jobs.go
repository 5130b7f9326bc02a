package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/internal/domain"
	"github.com/vfg2006/adchain-api/internal/scheduler"
	"github.com/vfg2006/adchain-api/pkg/apiErrors"
)

// RunJob dispara manualmente um job do pipeline e devolve o relatório da
// execução. O nome "all" executa todos os jobs em ordem fixa
func RunJob(pipeline *scheduler.PipelineSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobName := httprouter.ParamsFromContext(r.Context()).ByName("name")
		if jobName == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do job não especificado", nil)
			return
		}

		report, err := pipeline.RunJob(r.Context(), domain.JobName(jobName))
		if err != nil {
			switch {
			case errors.Is(err, scheduler.ErrUnknownJob):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			case errors.Is(err, scheduler.ErrJobRunning):
				apiErrors.WriteError(w, apiErrors.ErrJobUnavailable, err.Error(), nil)
			default:
				logrus.WithError(err).WithField("job", jobName).Error("Erro ao executar job manualmente")
				apiErrors.WriteDomainError(w, err)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	}
}

// GetJobStatus retorna o estado atual dos jobs do pipeline
func GetJobStatus(pipeline *scheduler.PipelineSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pipeline.GetStatus())
	}
}

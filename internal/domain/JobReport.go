package domain

import "time"

type JobName string

const (
	JobPendingVerifications JobName = "pending-verifications"
	JobAutomatedPayouts     JobName = "automated-payouts"
	JobAnalyticsMetrics     JobName = "analytics-metrics"
	JobFraudScan            JobName = "fraud-scan"
	JobCleanup              JobName = "cleanup"
	JobAll                  JobName = "all"
)

// JobReport é o resultado estruturado de uma execução de job, manual ou
// agendada. Processed == 0 significa "nada a fazer"; um erro no disparo é
// reportado pelo retorno da função, não por este struct
type JobReport struct {
	Job       JobName       `json:"job"`
	Processed int           `json:"processed"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Message   string        `json:"message"`
	Errors    []string      `json:"errors,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

func (r *JobReport) AddError(err error) {
	r.Failed++
	r.Errors = append(r.Errors, err.Error())
}

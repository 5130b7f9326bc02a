package domain

import "time"

// ViewEvent é o sinal bruto de audiência. Ele nunca é persistido: apenas a
// decisão de aceitação e os contadores resultantes são duráveis
type ViewEvent struct {
	EpisodeID string    `json:"episode_id"`
	ViewerID  string    `json:"viewer_id"`
	Timestamp time.Time `json:"timestamp"`
	Duration  int64     `json:"duration_seconds"`
	Completed bool      `json:"completed"`
	SourceIP  string    `json:"source_ip"`
	UserAgent string    `json:"user_agent"`
}

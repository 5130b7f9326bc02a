package fraudfiltering

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/infrastructure/repository"
	"github.com/vfg2006/adchain-api/internal/config"
	"github.com/vfg2006/adchain-api/internal/domain"
)

// FraudFilter avalia eventos de view brutos contra as heurísticas de fraude.
// Evaluate nunca retorna erro: entrada malformada degrada para rejeição
type FraudFilter interface {
	Evaluate(views []domain.ViewEvent) []domain.ViewEvent
	DetectFraud(ctx context.Context, episodeID string) (bool, error)
}

type Service struct {
	cfg         config.Fraud
	episodeRepo repository.EpisodeRepository

	// Janelas em memória para deduplicação e detecção de rajadas. O estado
	// é podado a cada avaliação para não crescer sem limite
	mu        sync.Mutex
	seen      map[string]time.Time
	sources   map[string][]time.Time
	lastPrune time.Time

	now func() time.Time
}

func NewService(cfg *config.Config, episodeRepo repository.EpisodeRepository) *Service {
	return &Service{
		cfg:         cfg.Fraud,
		episodeRepo: episodeRepo,
		seen:        make(map[string]time.Time),
		sources:     make(map[string][]time.Time),
		lastPrune:   time.Now(),
		now:         time.Now,
	}
}

// Evaluate retorna o subconjunto de views aceitas, na ordem de chegada.
// Rejeita: duração não positiva sem flag de conclusão, viewer id com
// formato inválido, duplicata dentro da janela de deduplicação e rajadas
// acima do limiar por par IP + user agent
func (s *Service) Evaluate(views []domain.ViewEvent) []domain.ViewEvent {
	if len(views) == 0 {
		return []domain.ViewEvent{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune()

	accepted := make([]domain.ViewEvent, 0, len(views))
	for _, view := range views {
		if reason := s.rejectReason(view); reason != "" {
			logrus.WithFields(logrus.Fields{
				"episode_id": view.EpisodeID,
				"viewer_id":  view.ViewerID,
				"reason":     reason,
			}).Debug("View rejeitada pelo filtro de fraude")
			continue
		}

		s.seen[dedupKey(view)] = view.Timestamp
		sourceKey := view.SourceIP + "|" + view.UserAgent
		s.sources[sourceKey] = append(s.sources[sourceKey], view.Timestamp)

		accepted = append(accepted, view)
	}

	return accepted
}

func (s *Service) rejectReason(view domain.ViewEvent) string {
	if view.EpisodeID == "" {
		return "episódio ausente"
	}

	if !validViewerID(view.ViewerID) {
		return "viewer id com formato inválido"
	}

	if view.Duration <= 0 && !view.Completed {
		return "duração não positiva sem conclusão"
	}

	if firstSeen, ok := s.seen[dedupKey(view)]; ok {
		window := time.Duration(s.cfg.DedupWindowSeconds) * time.Second
		if view.Timestamp.Sub(firstSeen) < window && firstSeen.Sub(view.Timestamp) < window {
			return "duplicata na janela de deduplicação"
		}
	}

	sourceKey := view.SourceIP + "|" + view.UserAgent
	if s.burstExceeded(sourceKey, view.Timestamp) {
		return "rajada de views da mesma origem"
	}

	return ""
}

func (s *Service) burstExceeded(sourceKey string, at time.Time) bool {
	window := time.Duration(s.cfg.BurstWindowSeconds) * time.Second

	count := 0
	for _, ts := range s.sources[sourceKey] {
		if at.Sub(ts) < window && ts.Sub(at) < window {
			count++
		}
	}

	return count >= s.cfg.BurstThreshold
}

// prune descarta entradas fora das janelas de interesse
func (s *Service) prune() {
	now := s.now()
	if now.Sub(s.lastPrune) < time.Minute {
		return
	}
	s.lastPrune = now

	dedupWindow := time.Duration(s.cfg.DedupWindowSeconds) * time.Second
	for key, ts := range s.seen {
		if now.Sub(ts) > dedupWindow {
			delete(s.seen, key)
		}
	}

	burstWindow := time.Duration(s.cfg.BurstWindowSeconds) * time.Second
	for key, timestamps := range s.sources {
		kept := timestamps[:0]
		for _, ts := range timestamps {
			if now.Sub(ts) <= burstWindow {
				kept = append(kept, ts)
			}
		}
		if len(kept) == 0 {
			delete(s.sources, key)
			continue
		}
		s.sources[key] = kept
	}
}

// DetectFraud audita o padrão histórico de views de um episódio. É
// consultivo: sinaliza, mas não muta estado; quem chama decide a remediação
func (s *Service) DetectFraud(ctx context.Context, episodeID string) (bool, error) {
	audit, err := s.episodeRepo.GetViewAudit(episodeID)
	if err != nil {
		return false, fmt.Errorf("erro ao obter auditoria de views: %w", err)
	}

	if audit == nil {
		return false, domain.ErrNotFound
	}

	if audit.UniqueViewers > 0 {
		ratio := float64(audit.TotalViews) / float64(audit.UniqueViewers)
		if ratio > s.cfg.ViewsPerViewerMax {
			logrus.WithFields(logrus.Fields{
				"episode_id":     episodeID,
				"total_views":    audit.TotalViews,
				"unique_viewers": audit.UniqueViewers,
				"ratio":          ratio,
			}).Warn("Padrão de fraude detectado: razão views por viewer acima do limite")
			return true, nil
		}
	}

	if audit.HourlyAverage > 0 {
		spike := float64(audit.LastHourViews) / audit.HourlyAverage
		if spike > s.cfg.VelocitySpikeFactor {
			logrus.WithFields(logrus.Fields{
				"episode_id":      episodeID,
				"last_hour_views": audit.LastHourViews,
				"hourly_average":  audit.HourlyAverage,
			}).Warn("Padrão de fraude detectado: pico de velocidade de views")
			return true, nil
		}
	}

	return false, nil
}

func dedupKey(view domain.ViewEvent) string {
	return view.EpisodeID + "|" + view.ViewerID + "|" + view.Timestamp.Truncate(time.Minute).Format(time.RFC3339)
}

// validViewerID aceita ids no alfabeto de nanoid/uuid com tamanho plausível
func validViewerID(id string) bool {
	if len(id) < 3 || len(id) > 64 {
		return false
	}

	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}

	return true
}

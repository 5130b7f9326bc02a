package viewtracking

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adchain-api/infrastructure/repository"
	"github.com/vfg2006/adchain-api/internal/domain"
)

const lockStripes = 64

// ViewLedger registra views aceitas e expõe os agregados por episódio.
// RecordView nunca retorna erro para entrada inválida: ignora e segue
type ViewLedger interface {
	RecordView(ctx context.Context, episodeID, viewerID string) error
	GetStats(ctx context.Context, episodeID string) (*domain.EpisodeStats, error)
}

type Service struct {
	episodeRepo repository.EpisodeRepository

	// Mutex por faixa de episódio: serializa incrementos concorrentes no
	// mesmo episódio sem um lock global
	locks [lockStripes]sync.Mutex
}

func NewService(episodeRepo repository.EpisodeRepository) *Service {
	return &Service{
		episodeRepo: episodeRepo,
	}
}

// RecordView incrementa o contador do episódio e recomputa o campo derivado
// earnings_per_view. Idempotente por view lógica aceita: a deduplicação já
// aconteceu no filtro de fraude
func (s *Service) RecordView(ctx context.Context, episodeID, viewerID string) error {
	if episodeID == "" || viewerID == "" {
		logrus.WithFields(logrus.Fields{
			"episode_id": episodeID,
			"viewer_id":  viewerID,
		}).Debug("View ignorada: identificadores ausentes")
		return nil
	}

	lock := s.lockFor(episodeID)
	lock.Lock()
	defer lock.Unlock()

	err := s.episodeRepo.IncrementView(ctx, episodeID, viewerID)
	if err != nil {
		if err == domain.ErrNotFound {
			logrus.WithField("episode_id", episodeID).Debug("View ignorada: episódio não encontrado")
			return nil
		}
		return fmt.Errorf("erro ao registrar view: %w", err)
	}

	return nil
}

func (s *Service) GetStats(ctx context.Context, episodeID string) (*domain.EpisodeStats, error) {
	stats, err := s.episodeRepo.GetStats(episodeID)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter estatísticas do episódio: %w", err)
	}

	if stats == nil {
		return nil, domain.ErrNotFound
	}

	return stats, nil
}

func (s *Service) lockFor(episodeID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(episodeID))
	return &s.locks[h.Sum32()%lockStripes]
}

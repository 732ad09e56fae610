package usecases

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	domainerrors "artifact-vault.backend/internal/domain/errors"
	"artifact-vault.backend/internal/domain/repositories"
	"artifact-vault.backend/pkg/logger"
	"artifact-vault.backend/pkg/metrics"
)

const (
	syncQueueSize    = 1024
	syncMaxAttempts  = 3
	syncTaskTimeout  = 15 * time.Second
	syncRetryBackoff = 2 * time.Second
)

type syncTask struct {
	name    string
	attempt int
	run     func(ctx context.Context) error
}

// Syncer reconciles local mutations against the remote persistence service.
// Local state is already applied when a task is enqueued; a failing task is
// retried independently and never rolls anything back, so the library keeps
// working when the backend is unreachable.
type Syncer struct {
	artifacts repositories.ArtifactRepository
	catalogs  repositories.CatalogRepository
	folders   repositories.FolderRepository
	wallets   repositories.WalletRepository

	tasks chan syncTask
	stop  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// NewSyncer creates a syncer over the persistence repositories
func NewSyncer(
	artifacts repositories.ArtifactRepository,
	catalogs repositories.CatalogRepository,
	folders repositories.FolderRepository,
	wallets repositories.WalletRepository,
) *Syncer {
	return &Syncer{
		artifacts: artifacts,
		catalogs:  catalogs,
		folders:   folders,
		wallets:   wallets,
		tasks:     make(chan syncTask, syncQueueSize),
		stop:      make(chan struct{}),
	}
}

// Start launches the background drain loop
func (s *Syncer) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop shuts the drain loop down; pending tasks are abandoned
func (s *Syncer) Stop() {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
}

// Enqueue schedules one reconciliation task. It never blocks the mutation
// path: when the queue is full the task is dropped with a log line.
func (s *Syncer) Enqueue(name string, run func(ctx context.Context) error) {
	s.enqueue(syncTask{name: name, attempt: 1, run: run})
}

func (s *Syncer) enqueue(t syncTask) {
	select {
	case s.tasks <- t:
	default:
		metrics.SyncFailures.Inc()
		logger.Warn(context.Background(), "sync queue full, dropping task", zap.String("task", t.name))
	}
}

func (s *Syncer) loop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.stop:
			return
		case t := <-s.tasks:
			s.execute(t)
		}
	}
}

func (s *Syncer) execute(t syncTask) {
	ctx, cancel := context.WithTimeout(context.Background(), syncTaskTimeout)
	err := t.run(ctx)
	cancel()
	if err == nil {
		return
	}

	// The referenced entity vanished remotely; the local reference is
	// already gone or about to be, so the task has nothing left to do.
	if errors.Is(err, domainerrors.ErrForeignKey) {
		logger.Warn(ctx, "referenced entity vanished remotely, dropping task",
			zap.String("task", t.name), zap.Error(err))
		return
	}

	metrics.SyncFailures.Inc()
	if t.attempt >= syncMaxAttempts {
		logger.Error(ctx, "giving up on sync task",
			zap.String("task", t.name), zap.Int("attempts", t.attempt), zap.Error(err))
		return
	}

	logger.Warn(ctx, "sync task failed, retrying",
		zap.String("task", t.name), zap.Int("attempt", t.attempt), zap.Error(err))
	t.attempt++

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		select {
		case <-s.stop:
		case <-time.After(syncRetryBackoff):
			s.enqueue(t)
		}
	}()
}

package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

const sessionPurgeInterval = time.Hour

// StorefrontFacade exposes the subset of application functionality required by the worker.
type StorefrontFacade interface {
	NotificationsForDispatch(ctx context.Context, limit int) ([]model.Notification, error)
	PublishNotification(n model.Notification)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// Notifier drains unsent notifications concurrently and prunes expired
// sessions in the background.
type Notifier struct {
	facade       StorefrontFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewNotifier constructs the notification dispatcher worker pool.
func NewNotifier(facade StorefrontFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Notifier {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Notifier{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Notification, batchSize*workers),
	}
}

// Start launches background processing.
func (n *Notifier) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel

	for i := 0; i < n.workers; i++ {
		n.wg.Add(1)
		go n.worker(runCtx)
	}

	n.wg.Add(1)
	go n.dispatch(runCtx)

	n.wg.Add(1)
	go n.purgeSessions(runCtx)
}

// Stop waits for all workers to finish.
func (n *Notifier) Stop() {
	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.mu.Unlock()

	n.wg.Wait()
}

func (n *Notifier) dispatch(ctx context.Context) {
	defer n.wg.Done()
	defer close(n.jobs)
	ticker := time.NewTicker(n.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.fetchAndDispatch(ctx)
		}
	}
}

func (n *Notifier) fetchAndDispatch(ctx context.Context) {
	batch, err := n.facade.NotificationsForDispatch(ctx, n.batchSize)
	if err != nil {
		n.logger.Error("claim notifications failed", slog.String("error", err.Error()))
		return
	}
	for _, notification := range batch {
		select {
		case <-ctx.Done():
			return
		case n.jobs <- notification:
		}
	}
}

func (n *Notifier) worker(ctx context.Context) {
	defer n.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case notification, ok := <-n.jobs:
			if !ok {
				return
			}
			n.facade.PublishNotification(notification)
		}
	}
}

func (n *Notifier) purgeSessions(ctx context.Context) {
	defer n.wg.Done()
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := n.facade.PurgeExpiredSessions(ctx)
			if err != nil {
				n.logger.Error("purge expired sessions failed", slog.String("error", err.Error()))
				continue
			}
			if removed > 0 {
				n.logger.Info("expired sessions purged", slog.Int64("count", removed))
			}
		}
	}
}

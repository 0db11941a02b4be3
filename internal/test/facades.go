package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// NotifierFacadeStub mimics worker interactions with the application facade.
type NotifierFacadeStub struct {
	Batches   [][]model.Notification
	ClaimFn   func(context.Context, int) ([]model.Notification, error)
	PublishFn func(model.Notification)
	PurgeFn   func(context.Context) (int64, error)

	Published []model.Notification
	Purges    int32

	mu             sync.Mutex
	claimCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *NotifierFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *NotifierFacadeStub) Unlock() { s.mu.Unlock() }

// NotificationsForDispatch returns batches from the configured queue.
func (s *NotifierFacadeStub) NotificationsForDispatch(ctx context.Context, limit int) ([]model.Notification, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.claimCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// PublishNotification records published notifications.
func (s *NotifierFacadeStub) PublishNotification(n model.Notification) {
	if s.PublishFn != nil {
		s.PublishFn(n)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Published = append(s.Published, n)
}

// PurgeExpiredSessions counts purge invocations.
func (s *NotifierFacadeStub) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	if s.PurgeFn != nil {
		return s.PurgeFn(ctx)
	}
	atomic.AddInt32(&s.Purges, 1)
	return 0, nil
}

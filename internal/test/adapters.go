package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/meatmarket/internal/cache/redis"
	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/events"
)

// GatewayStub simulates the payment gateway client.
type GatewayStub struct {
	ChargeFn func(context.Context, decimal.Decimal, string) (string, error)
	RefundFn func(context.Context, string, decimal.Decimal) error

	Charges []GatewayCharge
	Refunds []GatewayRefund
}

// GatewayCharge records one Charge invocation.
type GatewayCharge struct {
	Amount    decimal.Decimal
	Reference string
}

// GatewayRefund records one Refund invocation.
type GatewayRefund struct {
	GatewayRef string
	Amount     decimal.Decimal
}

// Charge records the call and returns a deterministic reference.
func (s *GatewayStub) Charge(ctx context.Context, amount decimal.Decimal, reference string) (string, error) {
	s.Charges = append(s.Charges, GatewayCharge{Amount: amount, Reference: reference})
	if s.ChargeFn != nil {
		return s.ChargeFn(ctx, amount, reference)
	}
	return "ref-" + reference, nil
}

// Refund records the call.
func (s *GatewayStub) Refund(ctx context.Context, gatewayRef string, amount decimal.Decimal) error {
	s.Refunds = append(s.Refunds, GatewayRefund{GatewayRef: gatewayRef, Amount: amount})
	if s.RefundFn != nil {
		return s.RefundFn(ctx, gatewayRef, amount)
	}
	return nil
}

// PublisherRecorder captures published events.
type PublisherRecorder struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent is one recorded Publish invocation.
type PublishedEvent struct {
	Topic    string
	Key      string
	Envelope *events.Envelope
}

// Publish stores the event for later assertions.
func (p *PublisherRecorder) Publish(topic, key string, envelope *events.Envelope) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, PublishedEvent{Topic: topic, Key: key, Envelope: envelope})
}

// Published returns a copy of the recorded events.
func (p *PublisherRecorder) Published() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]PublishedEvent(nil), p.Events...)
}

// LocationCacheStub keeps live locations in a map.
type LocationCacheStub struct {
	Locations map[int64]redis.Location
	SetErr    error
	GetErr    error
}

// NewLocationCacheStub constructs stub cache with initialized map.
func NewLocationCacheStub() *LocationCacheStub {
	return &LocationCacheStub{Locations: make(map[int64]redis.Location)}
}

// Set stores the location.
func (s *LocationCacheStub) Set(ctx context.Context, deliveryID int64, loc redis.Location) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.Locations[deliveryID] = loc
	return nil
}

// Get returns the stored location or ErrNoLocation.
func (s *LocationCacheStub) Get(ctx context.Context, deliveryID int64) (*redis.Location, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if loc, ok := s.Locations[deliveryID]; ok {
		return &loc, nil
	}
	return nil, redis.ErrNoLocation
}

// FinanceRepositoryStub provides canned report data for tests.
type FinanceRepositoryStub struct {
	BalancesVal  []model.AccountBalance
	Txs          []model.FinanceTransaction
	ExpensesList []model.Expense
	PNL          *model.ProfitAndLoss
	Flow         *model.CashFlow
	VAT          *model.VATReport
	NextExpense  int64
	Err          error
}

// Balances returns configured account balances.
func (s *FinanceRepositoryStub) Balances(ctx context.Context) ([]model.AccountBalance, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.BalancesVal, nil
}

// Transactions returns configured ledger movements.
func (s *FinanceRepositoryStub) Transactions(ctx context.Context, from, to time.Time) ([]model.FinanceTransaction, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Txs, nil
}

// CreateExpense stores the expense.
func (s *FinanceRepositoryStub) CreateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.NextExpense == 0 {
		s.NextExpense = 1
	}
	stored := *expense
	stored.ID = s.NextExpense
	s.NextExpense++
	s.ExpensesList = append(s.ExpensesList, stored)
	return &stored, nil
}

// ListExpenses returns stored expenses.
func (s *FinanceRepositoryStub) ListExpenses(ctx context.Context, from, to time.Time) ([]model.Expense, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.ExpensesList, nil
}

// ProfitAndLoss returns the configured report.
func (s *FinanceRepositoryStub) ProfitAndLoss(ctx context.Context, from, to time.Time) (*model.ProfitAndLoss, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.PNL == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.PNL, nil
}

// CashFlow returns the configured report.
func (s *FinanceRepositoryStub) CashFlow(ctx context.Context, from, to time.Time) (*model.CashFlow, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Flow == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Flow, nil
}

// VATReport returns the configured report.
func (s *FinanceRepositoryStub) VATReport(ctx context.Context, from, to time.Time) (*model.VATReport, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.VAT == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.VAT, nil
}

package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// MemoryStore is an in-memory ledger backend. Writes are staged on the
// transaction and become visible on Commit; one transaction runs at a time.
type MemoryStore struct {
	writeMu sync.Mutex
	mu      sync.RWMutex

	funds       []*domain.Fund
	investments []*domain.Investment
	swaps       []*domain.Swap
	events      []*domain.OutboxEvent
	sequences   map[string]int64

	// Failure injection.
	BeginErr  error
	CommitErr error
	ListErr   error

	Funds       *MemoryFundRepository
	Investments *MemoryInvestmentRepository
	Swaps       *MemorySwapRepository
	Sequences   *MemorySequenceRepository
	Outbox      *MemoryOutboxRepository
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{sequences: make(map[string]int64)}
	s.Funds = &MemoryFundRepository{s: s}
	s.Investments = &MemoryInvestmentRepository{s: s}
	s.Swaps = &MemorySwapRepository{s: s}
	s.Sequences = &MemorySequenceRepository{s: s}
	s.Outbox = &MemoryOutboxRepository{s: s}
	return s
}

// Store exposes the repositories as a usecase.Store.
func (s *MemoryStore) Store() usecase.Store {
	return usecase.Store{
		TxManager:   s,
		Funds:       s.Funds,
		Investments: s.Investments,
		Swaps:       s.Swaps,
		Sequences:   s.Sequences,
		Outbox:      s.Outbox,
	}
}

// Begin implements usecase.TransactionManager.
func (s *MemoryStore) Begin(ctx context.Context) (usecase.Transaction, error) {
	if s.BeginErr != nil {
		return nil, s.BeginErr
	}
	s.writeMu.Lock()
	return &MemoryTransaction{s: s, sequences: make(map[string]int64)}, nil
}

// Events returns committed outbox events.
func (s *MemoryStore) Events() []*domain.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.OutboxEvent(nil), s.events...)
}

// InvestmentCount returns the number of committed ledger records.
func (s *MemoryStore) InvestmentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.investments)
}

// MemoryTransaction stages writes until Commit.
type MemoryTransaction struct {
	s    *MemoryStore
	done bool

	funds       []*domain.Fund
	updates     []*domain.Fund
	investments []*domain.Investment
	swaps       []*domain.Swap
	events      []*domain.OutboxEvent
	sequences   map[string]int64
}

func (t *MemoryTransaction) Commit(ctx context.Context) error {
	if t.done {
		return fmt.Errorf("transaction already closed")
	}
	if t.s.CommitErr != nil {
		return t.s.CommitErr
	}

	t.s.mu.Lock()
	t.s.funds = append(t.s.funds, t.funds...)
	for _, u := range t.updates {
		for i, f := range t.s.funds {
			if f.ID == u.ID {
				t.s.funds[i] = u
			}
		}
	}
	t.s.investments = append(t.s.investments, t.investments...)
	t.s.swaps = append(t.s.swaps, t.swaps...)
	t.s.events = append(t.s.events, t.events...)
	for name, v := range t.sequences {
		t.s.sequences[name] = v
	}
	t.s.mu.Unlock()

	t.done = true
	t.s.writeMu.Unlock()
	return nil
}

func (t *MemoryTransaction) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.s.writeMu.Unlock()
	return nil
}

func asMemoryTx(tx usecase.Transaction) *MemoryTransaction {
	mtx, ok := tx.(*MemoryTransaction)
	if !ok {
		panic(fmt.Sprintf("mocks: unexpected transaction type %T", tx))
	}
	return mtx
}

// MemorySequenceRepository implements usecase.SequenceRepository.
type MemorySequenceRepository struct {
	s *MemoryStore

	NextFunc func(ctx context.Context, tx usecase.Transaction, name string) (int64, error)
}

func (r *MemorySequenceRepository) Next(ctx context.Context, tx usecase.Transaction, name string) (int64, error) {
	if r.NextFunc != nil {
		return r.NextFunc(ctx, tx, name)
	}
	mtx := asMemoryTx(tx)
	current, ok := mtx.sequences[name]
	if !ok {
		r.s.mu.RLock()
		current = r.s.sequences[name]
		r.s.mu.RUnlock()
	}
	mtx.sequences[name] = current + 1
	return current + 1, nil
}

// MemoryFundRepository implements usecase.FundRepository.
type MemoryFundRepository struct {
	s *MemoryStore

	CreateFunc func(ctx context.Context, tx usecase.Transaction, fund *domain.Fund) error
}

func (r *MemoryFundRepository) Create(ctx context.Context, tx usecase.Transaction, fund *domain.Fund) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, tx, fund)
	}
	mtx := asMemoryTx(tx)
	copied := *fund
	mtx.funds = append(mtx.funds, &copied)
	return nil
}

func (r *MemoryFundRepository) Update(ctx context.Context, tx usecase.Transaction, fund *domain.Fund) error {
	mtx := asMemoryTx(tx)
	copied := *fund
	mtx.updates = append(mtx.updates, &copied)
	return nil
}

func (r *MemoryFundRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Fund, error) {
	mtx := asMemoryTx(tx)
	for _, f := range mtx.funds {
		if f.ID == id {
			copied := *f
			return &copied, nil
		}
	}
	return r.GetByID(ctx, id)
}

func (r *MemoryFundRepository) GetByID(ctx context.Context, id string) (*domain.Fund, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, f := range r.s.funds {
		if f.ID == id {
			copied := *f
			return &copied, nil
		}
	}
	return nil, domain.ErrFundNotFound
}

func (r *MemoryFundRepository) List(ctx context.Context) ([]*domain.Fund, error) {
	if r.s.ListErr != nil {
		return nil, r.s.ListErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Fund, 0, len(r.s.funds))
	for _, f := range r.s.funds {
		copied := *f
		out = append(out, &copied)
	}
	return out, nil
}

// MemoryInvestmentRepository implements usecase.InvestmentRepository.
type MemoryInvestmentRepository struct {
	s *MemoryStore

	CreateFunc func(ctx context.Context, tx usecase.Transaction, investment *domain.Investment) error
}

func (r *MemoryInvestmentRepository) Create(ctx context.Context, tx usecase.Transaction, investment *domain.Investment) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, tx, investment)
	}
	mtx := asMemoryTx(tx)
	copied := *investment
	mtx.investments = append(mtx.investments, &copied)
	return nil
}

func (r *MemoryInvestmentRepository) ExistsByTxHash(ctx context.Context, tx usecase.Transaction, txHash string) (bool, error) {
	mtx := asMemoryTx(tx)
	for _, inv := range mtx.investments {
		if inv.TxHash == txHash {
			return true, nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, inv := range r.s.investments {
		if inv.TxHash == txHash {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryInvestmentRepository) ListByFund(ctx context.Context, fundID string) ([]*domain.Investment, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterByFund(all, fundID), nil
}

func (r *MemoryInvestmentRepository) List(ctx context.Context) ([]*domain.Investment, error) {
	if r.s.ListErr != nil {
		return nil, r.s.ListErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Investment, 0, len(r.s.investments))
	for _, inv := range r.s.investments {
		copied := *inv
		out = append(out, &copied)
	}
	return out, nil
}

// MemorySwapRepository implements usecase.SwapRepository.
type MemorySwapRepository struct {
	s *MemoryStore
}

func (r *MemorySwapRepository) Create(ctx context.Context, tx usecase.Transaction, swap *domain.Swap) error {
	mtx := asMemoryTx(tx)
	copied := *swap
	mtx.swaps = append(mtx.swaps, &copied)
	return nil
}

func (r *MemorySwapRepository) ListByFund(ctx context.Context, fundID string) ([]*domain.Swap, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Swap, 0, len(all))
	for _, s := range all {
		if s.FundID == fundID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemorySwapRepository) List(ctx context.Context) ([]*domain.Swap, error) {
	if r.s.ListErr != nil {
		return nil, r.s.ListErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Swap, 0, len(r.s.swaps))
	for _, s := range r.s.swaps {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

// MemoryOutboxRepository implements usecase.OutboxRepository.
type MemoryOutboxRepository struct {
	s *MemoryStore
}

func (r *MemoryOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	mtx := asMemoryTx(tx)
	mtx.events = append(mtx.events, event)
	return nil
}

func (r *MemoryOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range r.s.events {
		if !e.Published && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *MemoryOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (r *MemoryOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.events[:0]
	for _, e := range r.s.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, e)
	}
	r.s.events = kept
	return nil
}

// SequentialIDGenerator returns evt-1, evt-2, ...
type SequentialIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func (g *SequentialIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("evt-%d", g.counter)
}

// MapCache implements usecase.Cache over a map.
type MapCache struct {
	mu   sync.Mutex
	data map[string]string

	GetErr error
}

func NewMapCache() *MapCache {
	return &MapCache{data: make(map[string]string)}
}

func (c *MapCache) Get(ctx context.Context, key string) (string, error) {
	if c.GetErr != nil {
		return "", c.GetErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", usecase.ErrCacheMiss
	}
	return v, nil
}

func (c *MapCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *MapCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if v, ok := c.data[key]; ok {
		fmt.Sscan(v, &n)
	}
	n++
	c.data[key] = fmt.Sprint(n)
	return n, nil
}

func (c *MapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached keys.
func (c *MapCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

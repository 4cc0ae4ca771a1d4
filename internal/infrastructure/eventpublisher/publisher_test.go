package eventpublisher

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
	"github.com/iho/fundledger/internal/usecase/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestProcessEventsPublishesAndMarks(t *testing.T) {
	repo := &stubOutboxRepo{
		events: []*domain.OutboxEvent{{ID: "evt-1", EventType: domain.EventTypeFundCreated}},
	}
	pub := &stubPublisher{}
	ep := newTestPublisher(repo, pub)

	if err := ep.processEvents(context.Background()); err != nil {
		t.Fatalf("processEvents failed: %v", err)
	}

	if len(pub.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.published))
	}
	if len(repo.marked) != 1 || repo.marked[0] != "evt-1" {
		t.Fatalf("expected event to be marked published, got %#v", repo.marked)
	}
	if got := testutil.ToFloat64(ep.published); got != 1 {
		t.Fatalf("expected published counter 1, got %v", got)
	}
}

func TestProcessEventsContinuesOnPublishError(t *testing.T) {
	repo := &stubOutboxRepo{
		events: []*domain.OutboxEvent{
			{ID: "evt-1", EventType: domain.EventTypeInvestmentRecorded},
			{ID: "evt-2", EventType: domain.EventTypeInvestmentRecorded},
		},
	}
	pub := &stubPublisher{
		errorsByID: map[string]error{"evt-1": errors.New("fail")},
	}
	ep := newTestPublisher(repo, pub)

	if err := ep.processEvents(context.Background()); err != nil {
		t.Fatalf("processEvents returned error: %v", err)
	}

	if len(pub.published) != 1 || pub.published[0].ID != "evt-2" {
		t.Fatalf("expected only evt-2 to be published, got %#v", pub.published)
	}
	if len(repo.marked) != 1 || repo.marked[0] != "evt-2" {
		t.Fatalf("expected only evt-2 to be marked, got %#v", repo.marked)
	}
	if got := testutil.ToFloat64(ep.failed); got != 1 {
		t.Fatalf("expected failed counter 1, got %v", got)
	}
}

func TestTickPrunesPublishedEvents(t *testing.T) {
	repo := &stubOutboxRepo{}
	ep := newTestPublisher(repo, &stubPublisher{})
	ep.retention = time.Hour
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	ep.now = func() time.Time { return now }

	ep.tick(context.Background())

	if !repo.prunedBefore.Equal(now.Add(-time.Hour)) {
		t.Fatalf("expected prune cutoff %v, got %v", now.Add(-time.Hour), repo.prunedBefore)
	}
}

func TestStartDrainsMemoryOutbox(t *testing.T) {
	store := mocks.NewMemoryStore()
	facade := usecase.NewFacade(store.Store(), usecase.FacadeConfig{
		IDGen:  &mocks.SequentialIDGenerator{},
		Logger: zerolog.Nop(),
	})

	if _, err := facade.Funds.CreateFund(context.Background(), usecase.CreateFundInput{
		FundName: "Alpha", FundSymbol: "AF", VaultProxy: "0xV", ComptrollerProxy: "0xC",
		DenominationAsset: "USDC", Creator: "0xM",
	}); err != nil {
		t.Fatalf("create fund: %v", err)
	}

	pub := &stubPublisher{}
	ep := NewEventPublisher(Config{
		OutboxRepo: store.Store().Outbox,
		Publisher:  pub,
		Logger:     zerolog.Nop(),
		Interval:   5 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ep.Start(ctx) }()

	deadline := time.After(time.Second)
	for len(pub.snapshot()) == 0 {
		select {
		case <-deadline:
			cancel()
			t.Fatal("event was not published")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}

	events := pub.snapshot()
	if events[0].EventType != domain.EventTypeFundCreated {
		t.Fatalf("expected fund.created, got %s", events[0].EventType)
	}
	if remaining, _ := store.Store().Outbox.GetUnpublished(context.Background(), 10); len(remaining) != 0 {
		t.Fatalf("expected outbox to be drained, got %d", len(remaining))
	}
}

func TestStartStopsOnContextCancellation(t *testing.T) {
	ep := newTestPublisher(&stubOutboxRepo{}, &stubPublisher{})
	ep.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ep.Start(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop after cancel")
	}
}

func TestLogPublisherWritesPayload(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(zerolog.New(&buf))

	err := p.Publish(context.Background(), &domain.OutboxEvent{
		ID: "evt-1", EventType: domain.EventTypeSwapRecorded, AggregateType: domain.AggregateTypeSwap,
		AggregateID: "3", Payload: map[string]any{"fundId": "1"},
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte(`"payload":{"fundId":"1"}`)) {
		t.Fatalf("expected payload in log, got %s", buf.String())
	}
}

func newTestPublisher(repo *stubOutboxRepo, pub *stubPublisher) *EventPublisher {
	return NewEventPublisher(Config{
		OutboxRepo: repo,
		Publisher:  pub,
		Logger:     zerolog.Nop(),
		BatchSize:  10,
		Interval:   5 * time.Millisecond,
		Published:  prometheus.NewCounter(prometheus.CounterOpts{Name: "test_published_total"}),
		Failed:     prometheus.NewCounter(prometheus.CounterOpts{Name: "test_failed_total"}),
	})
}

type stubOutboxRepo struct {
	events       []*domain.OutboxEvent
	marked       []string
	prunedBefore time.Time
}

func (s *stubOutboxRepo) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	return nil
}

func (s *stubOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if len(s.events) <= limit {
		return append([]*domain.OutboxEvent(nil), s.events...), nil
	}
	return append([]*domain.OutboxEvent(nil), s.events[:limit]...), nil
}

func (s *stubOutboxRepo) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	s.marked = append(s.marked, id)
	return nil
}

func (s *stubOutboxRepo) DeletePublished(ctx context.Context, before time.Time) error {
	s.prunedBefore = before
	return nil
}

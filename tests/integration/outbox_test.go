package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/eventpublisher"
	"github.com/iho/fundledger/internal/usecase"
	"github.com/iho/fundledger/tests/testutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event *domain.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestOutboxEventsArePublished(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	testDB.TruncateAll(ctx)
	store := testDB.Store()
	facade := testDB.Facade()

	fundID := testDB.CreateTestFund(ctx, facade, "Delta Fund", "0xVaultD")
	_, err := facade.Investments.RecordInvestment(ctx, usecase.RecordInvestmentInput{
		FundID:          fundID,
		InvestorAddress: "0xA",
		Type:            string(domain.InvestmentDeposit),
		Amount:          "100",
		Shares:          "100",
		SharePrice:      "1",
		TxHash:          "0xout",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	pending, err := store.Outbox.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("unpublished: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending events, got %d", len(pending))
	}

	pub := &recordingPublisher{}
	worker := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: store.Outbox,
		Publisher:  pub,
		Logger:     zerolog.Nop(),
		Interval:   20 * time.Millisecond,
	})

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Start(runCtx)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for pub.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	cancel()
	<-done

	if pub.count() != 2 {
		t.Fatalf("expected 2 published events, got %d", pub.count())
	}

	pending, err = store.Outbox.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("unpublished: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected outbox drained, got %d pending", len(pending))
	}
}

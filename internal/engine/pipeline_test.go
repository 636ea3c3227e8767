package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/spendsignal/spendsignal/internal/classify"
	"github.com/spendsignal/spendsignal/internal/dedup"
	"github.com/spendsignal/spendsignal/internal/model"
	"github.com/spendsignal/spendsignal/internal/testutil"
)

const gpayPackage = "com.google.android.apps.nbu.paisa.user"

type fakeTxnStore struct {
	inserted      []model.TransactionCandidate
	insertErr     error
	recentPending bool
	recentErr     error
	mu            sync.Mutex
}

func (s *fakeTxnStore) InsertPending(_ context.Context, c model.TransactionCandidate) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return "", s.insertErr
	}
	s.inserted = append(s.inserted, c)
	return fmt.Sprintf("txn-%d", len(s.inserted)), nil
}

func (s *fakeTxnStore) HasRecentPending(context.Context, float64, time.Duration) (bool, error) {
	return s.recentPending, s.recentErr
}

func (s *fakeTxnStore) MarkProcessed(context.Context, string) error { return nil }
func (s *fakeTxnStore) Delete(context.Context, string) error        { return nil }

func (s *fakeTxnStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inserted)
}

type fakeReminderStore struct {
	deleteRecentCalls int
	mu                sync.Mutex
}

func (s *fakeReminderStore) Insert(context.Context, model.PaymentReminder) (string, error) {
	return "reminder-1", nil
}

func (s *fakeReminderStore) DeleteRecent(context.Context, time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteRecentCalls++
	return nil
}

func newTestPipeline() (*Pipeline, *fakeTxnStore, *fakeReminderStore, *testutil.FakeClock) {
	clock := testutil.NewFakeClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	txns := &fakeTxnStore{}
	rems := &fakeReminderStore{}
	p := New(clock, txns, rems, dedup.NewNameCache(clock, 0))
	return p, txns, rems, clock
}

func TestIncomeSMSSuppressedAfterNotification(t *testing.T) {
	p, txns, rems, clock := newTestPipeline()
	ctx := context.Background()

	verdict, _ := p.HandleNotification(ctx, model.Notification{
		ObservedAt: clock.Now(),
		Package:    gpayPackage,
		Title:      "Anita sent you ₹500",
		Text:       "Money is in your bank account",
	})
	if verdict != classify.VerdictAccepted {
		t.Fatalf("notification verdict = %v, want accepted", verdict)
	}

	// The bank's SMS for the same payment lands five seconds later.
	clock.Advance(5 * time.Second)
	verdict, cand := p.HandleSMS(ctx, "Rs. 500 credited to your account via UPI", clock.Now())
	if verdict != classify.VerdictSuppressed {
		t.Fatalf("SMS verdict = %v, want suppressed", verdict)
	}
	if cand != nil {
		t.Error("suppressed SMS should produce no candidate")
	}
	if txns.count() != 1 {
		t.Fatalf("got %d stored transactions, want 1", txns.count())
	}
	if rems.deleteRecentCalls != 1 {
		t.Errorf("got %d DeleteRecent calls, want 1", rems.deleteRecentCalls)
	}
}

func TestIncomeSMSAcceptedAfterWindowExpires(t *testing.T) {
	p, txns, _, clock := newTestPipeline()
	ctx := context.Background()

	p.HandleNotification(ctx, model.Notification{
		ObservedAt: clock.Now(),
		Package:    gpayPackage,
		Title:      "Anita sent you ₹500",
		Text:       "Money is in your bank account",
	})

	clock.Advance(11 * time.Second)
	verdict, _ := p.HandleSMS(ctx, "Rs. 500 credited to your account via UPI", clock.Now())
	if verdict != classify.VerdictAccepted {
		t.Fatalf("SMS verdict = %v, want accepted after the window", verdict)
	}
	if txns.count() != 2 {
		t.Fatalf("got %d stored transactions, want 2", txns.count())
	}
}

func TestExpenseSMSNeverDeduplicated(t *testing.T) {
	p, txns, _, clock := newTestPipeline()
	ctx := context.Background()

	p.HandleNotification(ctx, model.Notification{
		ObservedAt: clock.Now(),
		Package:    gpayPackage,
		Title:      "Anita sent you ₹450",
		Text:       "Money is in your bank account",
	})

	// An expense for the same amount is a different payment.
	verdict, _ := p.HandleSMS(ctx, "Rs. 450 debited for purchase at AMAZON on 01-03-25 via UPI", clock.Now())
	if verdict != classify.VerdictAccepted {
		t.Fatalf("SMS verdict = %v, want accepted", verdict)
	}
	if txns.count() != 2 {
		t.Fatalf("got %d stored transactions, want 2", txns.count())
	}
}

func TestStoreFailureStillArmsIncomeWindow(t *testing.T) {
	p, txns, _, clock := newTestPipeline()
	ctx := context.Background()
	txns.insertErr = errors.New("disk full")

	p.HandleNotification(ctx, model.Notification{
		ObservedAt: clock.Now(),
		Package:    gpayPackage,
		Title:      "Anita sent you ₹500",
		Text:       "Money is in your bank account",
	})

	// Even though the insert failed, the SMS twin must not slip through as
	// a second copy of the same payment.
	txns.insertErr = nil
	clock.Advance(5 * time.Second)
	verdict, _ := p.HandleSMS(ctx, "Rs. 500 credited to your account via UPI", clock.Now())
	if verdict != classify.VerdictSuppressed {
		t.Fatalf("SMS verdict = %v, want suppressed", verdict)
	}
}

func TestIncomeFallsBackToStoreLookup(t *testing.T) {
	p, txns, _, clock := newTestPipeline()
	ctx := context.Background()

	// Nothing in the in-memory window (fresh process), but the store
	// already holds a matching pending income.
	txns.recentPending = true
	verdict, _ := p.HandleSMS(ctx, "Rs. 500 credited to your account via UPI", clock.Now())
	if verdict != classify.VerdictSuppressed {
		t.Fatalf("SMS verdict = %v, want suppressed via store lookup", verdict)
	}

	// A store error means "not a duplicate": a doubled entry is
	// recoverable, a silently dropped payment is not.
	txns.recentPending = false
	txns.recentErr = errors.New("db locked")
	verdict, _ = p.HandleSMS(ctx, "Rs. 900 credited to your account via UPI", clock.Now())
	if verdict != classify.VerdictAccepted {
		t.Fatalf("SMS verdict = %v, want accepted on store error", verdict)
	}
}

func TestSplitwiseIdempotentAcrossDeliveries(t *testing.T) {
	p, txns, _, clock := newTestPipeline()
	ctx := context.Background()

	n := model.Notification{
		ObservedAt: clock.Now(),
		Package:    classify.SplitwisePackage,
		Title:      "Dinner (₹600.00)",
		Text:       "– You owe ₹200.00",
	}

	verdict, _ := p.HandleNotification(ctx, n)
	if verdict != classify.VerdictAccepted {
		t.Fatalf("first verdict = %v, want accepted", verdict)
	}

	clock.Advance(time.Hour)
	verdict, _ = p.HandleNotification(ctx, n)
	if verdict != classify.VerdictSuppressed {
		t.Fatalf("second verdict = %v, want suppressed", verdict)
	}
	if txns.count() != 1 {
		t.Fatalf("got %d stored transactions, want 1", txns.count())
	}
}

func TestHandleSignalRoutesByChannel(t *testing.T) {
	p, txns, _, clock := newTestPipeline()
	ctx := context.Background()

	verdict, cands := p.HandleSignal(ctx, model.RawSignal{
		ObservedAt: clock.Now(),
		Channel:    model.ChannelSMS,
		Text:       "Rs. 450 debited for purchase at AMAZON on 01-03-25 via UPI",
	})
	if verdict != classify.VerdictAccepted {
		t.Fatalf("verdict = %v, want accepted", verdict)
	}
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	if txns.count() != 1 {
		t.Fatalf("got %d stored transactions, want 1", txns.count())
	}

	verdict, _ = p.HandleSignal(ctx, model.RawSignal{
		ObservedAt: clock.Now(),
		Channel:    "carrier-pigeon",
		Text:       "Rs. 450 debited",
	})
	if verdict != classify.VerdictRejected {
		t.Fatal("unknown channel should be rejected")
	}
}

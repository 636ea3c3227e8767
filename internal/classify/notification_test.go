package classify

import (
	"testing"
	"time"

	"github.com/spendsignal/spendsignal/internal/model"
)

// fakeCache is a ProcessedCache with no TTL semantics: a name is new
// exactly once.
type fakeCache struct {
	seen map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{seen: make(map[string]bool)}
}

func (c *fakeCache) MarkIfNew(name string) bool {
	if c.seen[name] {
		return false
	}
	c.seen[name] = true
	return true
}

const gpayPackage = "com.google.android.apps.nbu.paisa.user"

func TestClassifyPaymentApp(t *testing.T) {
	now := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		n           model.Notification
		wantVerdict Verdict
		wantAmount  float64
		wantSender  string
	}{
		{
			name: "incoming payment",
			n: model.Notification{
				ObservedAt: now,
				Package:    gpayPackage,
				Title:      "Anita Sharma sent you ₹500",
				Text:       "Money is in your bank account",
			},
			wantVerdict: VerdictAccepted,
			wantAmount:  500,
			wantSender:  "Anita Sharma",
		},
		{
			name: "paid you phrasing",
			n: model.Notification{
				ObservedAt: now,
				Package:    "com.phonepe.app",
				Title:      "Payment received",
				Text:       "Rohit paid you ₹1,250.50",
			},
			wantVerdict: VerdictAccepted,
			wantAmount:  1250.50,
		},
		{
			name: "promotional text rejected",
			n: model.Notification{
				ObservedAt: now,
				Package:    gpayPackage,
				Title:      "You received a reward!",
				Text:       "Scratch card worth ₹100 waiting",
			},
			wantVerdict: VerdictRejected,
		},
		{
			name: "loan offer rejected",
			n: model.Notification{
				ObservedAt: now,
				Package:    "net.one97.paytm",
				Title:      "Personal loan credited instantly",
				Text:       "Get up to ₹5,00,000",
			},
			wantVerdict: VerdictRejected,
		},
		{
			name: "no income keyword rejected",
			n: model.Notification{
				ObservedAt: now,
				Package:    gpayPackage,
				Title:      "Payment request",
				Text:       "Ravi is requesting ₹200",
			},
			wantVerdict: VerdictRejected,
		},
		{
			name: "no amount rejected",
			n: model.Notification{
				ObservedAt: now,
				Package:    gpayPackage,
				Title:      "You received money",
				Text:       "Check your account",
			},
			wantVerdict: VerdictRejected,
		},
		{
			name: "unknown app rejected",
			n: model.Notification{
				ObservedAt: now,
				Package:    "com.example.game",
				Title:      "Somebody sent you ₹999",
				Text:       "",
			},
			wantVerdict: VerdictRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewNotificationClassifier(newFakeCache())
			candidates, verdict := c.Classify(tt.n)
			if verdict != tt.wantVerdict {
				t.Fatalf("verdict = %v, want %v", verdict, tt.wantVerdict)
			}
			if verdict != VerdictAccepted {
				return
			}
			if len(candidates) != 1 {
				t.Fatalf("got %d candidates, want 1", len(candidates))
			}
			got := candidates[0]
			if got.Amount != tt.wantAmount {
				t.Errorf("amount = %v, want %v", got.Amount, tt.wantAmount)
			}
			if got.Direction != model.DirectionIncome {
				t.Errorf("direction = %v, want income", got.Direction)
			}
			if got.Source != model.SourceUPI {
				t.Errorf("source = %v, want upi", got.Source)
			}
			if tt.wantSender != "" && got.Merchant != tt.wantSender {
				t.Errorf("sender = %q, want %q", got.Merchant, tt.wantSender)
			}
		})
	}
}

func TestClassifySplitwiseSingle(t *testing.T) {
	now := time.Date(2025, 3, 1, 21, 0, 0, 0, time.UTC)
	c := NewNotificationClassifier(newFakeCache())

	n := model.Notification{
		ObservedAt: now,
		Package:    SplitwisePackage,
		Title:      "Dinner (₹600.00)",
		Text:       "– You owe ₹200.00",
	}

	candidates, verdict := c.Classify(n)
	if verdict != VerdictAccepted {
		t.Fatalf("verdict = %v, want accepted", verdict)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}

	got := candidates[0]
	if got.Amount != 200 {
		t.Errorf("amount = %v, want 200", got.Amount)
	}
	if got.Direction != model.DirectionExpense {
		t.Errorf("direction = %v, want expense", got.Direction)
	}
	if got.Description != "Dinner" {
		t.Errorf("description = %q, want %q", got.Description, "Dinner")
	}
	if got.Split == nil {
		t.Fatal("expected split info")
	}
	if got.Split.Numerator != 1 || got.Split.Denominator != 3 {
		t.Errorf("split = %d/%d, want 1/3", got.Split.Numerator, got.Split.Denominator)
	}
	if got.Split.TotalAmount != 600 {
		t.Errorf("split total = %v, want 600", got.Split.TotalAmount)
	}

	// The same expense within the cache TTL is a no-op.
	candidates, verdict = c.Classify(n)
	if verdict != VerdictSuppressed {
		t.Fatalf("second verdict = %v, want suppressed", verdict)
	}
	if candidates != nil {
		t.Fatalf("expected no candidates on repeat, got %v", candidates)
	}
}

func TestClassifySplitwiseMissingShareDefaultsToHalf(t *testing.T) {
	c := NewNotificationClassifier(newFakeCache())

	candidates, verdict := c.Classify(model.Notification{
		ObservedAt: time.Now(),
		Package:    SplitwisePackage,
		Title:      "Groceries (₹840.00)",
		Text:       "You owe money for this expense",
	})
	if verdict != VerdictAccepted {
		t.Fatalf("verdict = %v, want accepted", verdict)
	}
	got := candidates[0]
	if got.Amount != 420 {
		t.Errorf("amount = %v, want 420", got.Amount)
	}
	if got.Split.Numerator != 1 || got.Split.Denominator != 2 {
		t.Errorf("split = %d/%d, want 1/2", got.Split.Numerator, got.Split.Denominator)
	}
}

func TestClassifySplitwiseRejectsNonOwe(t *testing.T) {
	c := NewNotificationClassifier(newFakeCache())

	_, verdict := c.Classify(model.Notification{
		ObservedAt: time.Now(),
		Package:    SplitwisePackage,
		Title:      "Dinner (₹600.00)",
		Text:       "Priya owes you ₹200.00",
	})
	if verdict != VerdictRejected {
		t.Fatalf("verdict = %v, want rejected", verdict)
	}
}

func TestClassifySplitwiseBundle(t *testing.T) {
	now := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	cache := newFakeCache()
	c := NewNotificationClassifier(cache)

	n := model.Notification{
		ObservedAt: now,
		Package:    SplitwisePackage,
		Ticker:     `Cab ride (₹450.00) – you owe ₹150.00`,
		Title:      "Splitwise",
		Text:       "3 new expenses",
		Lines: []string{
			"Breakfast (₹300.00)",
			"Movie tickets (₹800.00)",
			"Cab ride (₹450.00)",
		},
	}

	candidates, verdict := c.Classify(n)
	if verdict != VerdictAccepted {
		t.Fatalf("verdict = %v, want accepted", verdict)
	}
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(candidates))
	}

	byName := make(map[string]model.TransactionCandidate)
	for _, cand := range candidates {
		byName[cand.Description] = cand
	}

	// The ticker names the cab ride with its exact share.
	cab := byName["Cab ride"]
	if cab.Amount != 150 {
		t.Errorf("cab amount = %v, want 150", cab.Amount)
	}
	if cab.Split.Numerator != 1 || cab.Split.Denominator != 3 {
		t.Errorf("cab split = %d/%d, want 1/3", cab.Split.Numerator, cab.Split.Denominator)
	}

	// Every other line defaults to an even split.
	breakfast := byName["Breakfast"]
	if breakfast.Amount != 150 {
		t.Errorf("breakfast amount = %v, want 150", breakfast.Amount)
	}
	if breakfast.Split.Numerator != 1 || breakfast.Split.Denominator != 2 {
		t.Errorf("breakfast split = %d/%d, want 1/2", breakfast.Split.Numerator, breakfast.Split.Denominator)
	}

	// Re-delivering the same bundle within the TTL is a no-op.
	candidates, verdict = c.Classify(n)
	if verdict != VerdictSuppressed {
		t.Fatalf("second verdict = %v, want suppressed", verdict)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates on repeat, got %d", len(candidates))
	}
}

func TestClassifySplitwiseBundlePartiallyProcessed(t *testing.T) {
	cache := newFakeCache()
	cache.seen["breakfast"] = true
	c := NewNotificationClassifier(cache)

	candidates, verdict := c.Classify(model.Notification{
		ObservedAt: time.Now(),
		Package:    SplitwisePackage,
		Ticker:     `Cab ride (₹450.00) – you owe ₹150.00`,
		Lines: []string{
			"Breakfast (₹300.00)",
			"Cab ride (₹450.00)",
		},
	})
	if verdict != VerdictAccepted {
		t.Fatalf("verdict = %v, want accepted", verdict)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].Description != "Cab ride" {
		t.Errorf("description = %q, want %q", candidates[0].Description, "Cab ride")
	}
}

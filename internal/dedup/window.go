// Package dedup holds the short-lived state that suppresses duplicate
// candidates: a seconds-scale amount window for the SMS-vs-notification race
// and a day-scale cache of already-processed expense names. Both are safe
// for concurrent use from multiple ingestion paths and purge expired entries
// lazily on each lookup.
package dedup

import (
	"math"
	"sync"
	"time"

	"github.com/spendsignal/spendsignal/internal/common"
)

// DefaultIncomeWindowTTL is how long a notification-sourced income
// suppresses a same-amount SMS income.
const DefaultIncomeWindowTTL = 10 * time.Second

// IncomeWindow tracks recently seen income amounts from the notification
// channel. The notification channel is treated as authoritative for incoming
// payments, so a same-amount SMS arriving within the window is a duplicate.
type IncomeWindow struct {
	clock common.Clock
	seen  map[int64]time.Time
	ttl   time.Duration
	mu    sync.Mutex
}

// NewIncomeWindow creates a window with the given TTL; ttl <= 0 uses the
// default.
func NewIncomeWindow(clock common.Clock, ttl time.Duration) *IncomeWindow {
	if ttl <= 0 {
		ttl = DefaultIncomeWindowTTL
	}
	return &IncomeWindow{
		clock: clock,
		ttl:   ttl,
		seen:  make(map[int64]time.Time),
	}
}

// Record notes that an income of the given amount was just accepted from
// the notification channel.
func (w *IncomeWindow) Record(amount float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.purge(w.clock.Now())
	w.seen[amountKey(amount)] = w.clock.Now()
}

// SeenRecently reports whether an income of the given amount was recorded
// within the window.
func (w *IncomeWindow) SeenRecently(amount float64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.purge(w.clock.Now())
	_, ok := w.seen[amountKey(amount)]
	return ok
}

func (w *IncomeWindow) purge(now time.Time) {
	for k, at := range w.seen {
		if now.Sub(at) > w.ttl {
			delete(w.seen, k)
		}
	}
}

// amountKey keys amounts by paise so float representations of the same
// amount collide.
func amountKey(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

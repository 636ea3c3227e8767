// Package correlate infers "a payment probably just happened" from
// accessibility-tree text snapshots of known UPI apps.
//
// The signal is a PIN-entry screen (a run of masked glyphs) followed a few
// seconds later by nothing contradicting it, or an explicit success screen.
// Either way the correlator only knows that *some* payment happened in *some*
// app; it emits a reminder to log a transaction, never an amount.
package correlate

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/spendsignal/spendsignal/internal/common"
	"github.com/spendsignal/spendsignal/internal/model"
	"github.com/spendsignal/spendsignal/internal/service"
)

const (
	// DefaultConfirmDelay is how long after a PIN-entry screen the
	// correlator waits before assuming the payment went through.
	DefaultConfirmDelay = 3 * time.Second
	// DefaultDebounce is the minimum gap between emitted reminders.
	DefaultDebounce = 30 * time.Second
)

// upiApps is the fixed set of packages whose accessibility text is watched.
var upiApps = map[string]bool{
	"com.google.android.apps.nbu.paisa.user": true,
	"com.phonepe.app":                        true,
	"net.one97.paytm":                        true,
	"in.org.npci.upiapp":                     true,
}

// pinMaskRe matches a standalone run of 4-6 masked PIN glyphs.
var pinMaskRe = regexp.MustCompile(`(?:^|\s)[●•*]{4,6}(?:\s|$)`)

// successKeywords confirm a completed payment immediately, without waiting
// out the PIN timer.
var successKeywords = []string{
	"success",
	"paid",
	"sent",
	"debited",
	"transferred",
	"completed",
}

// Config holds the correlator's timing knobs.
type Config struct {
	ConfirmDelay time.Duration
	Debounce     time.Duration
}

// DefaultConfig returns the default timing configuration.
func DefaultConfig() Config {
	return Config{
		ConfirmDelay: DefaultConfirmDelay,
		Debounce:     DefaultDebounce,
	}
}

// Correlator is a small state machine over accessibility snapshots. It is
// either idle or waiting out the confirmation delay after a PIN entry; a
// newer PIN entry preempts a pending timer, so only the most recent PIN
// sequence can fire.
type Correlator struct {
	clock       common.Clock
	reminders   service.ReminderStore
	timer       common.Timer
	lastPackage string
	lastEmitAt  time.Time
	config      Config
	mu          sync.Mutex
}

// New creates a correlator with default timing.
func New(clock common.Clock, reminders service.ReminderStore) *Correlator {
	return NewWithConfig(clock, reminders, DefaultConfig())
}

// NewWithConfig creates a correlator with custom timing.
func NewWithConfig(clock common.Clock, reminders service.ReminderStore, config Config) *Correlator {
	if config.ConfirmDelay <= 0 {
		config.ConfirmDelay = DefaultConfirmDelay
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	return &Correlator{
		clock:     clock,
		reminders: reminders,
		config:    config,
	}
}

// Observe feeds one accessibility snapshot into the state machine.
// Snapshots from packages outside the UPI-app set are ignored.
func (c *Correlator) Observe(packageName, text string) {
	if !upiApps[packageName] {
		return
	}

	if containsSuccess(text) {
		c.confirmNow(packageName)
		return
	}

	if pinMaskRe.MatchString(text) {
		c.armTimer(packageName)
	}
}

// armTimer starts (or restarts) the PIN confirmation timer. An in-flight
// timer is always cancelled first.
func (c *Correlator) armTimer(packageName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.lastPackage = packageName
	c.timer = c.clock.AfterFunc(c.config.ConfirmDelay, c.onTimerFired)

	slog.Debug("PIN entry detected, confirmation timer armed",
		"package", packageName,
		"delay", c.config.ConfirmDelay)
}

// confirmNow handles an explicit success screen: cancel any pending timer
// and emit immediately, subject to the debounce.
func (c *Correlator) confirmNow(packageName string) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.lastPackage = ""

	now := c.clock.Now()
	emit := now.Sub(c.lastEmitAt) > c.config.Debounce
	if emit {
		c.lastEmitAt = now
	}
	c.mu.Unlock()

	if emit {
		c.emit(packageName, now)
	}
}

func (c *Correlator) onTimerFired() {
	c.mu.Lock()
	packageName := c.lastPackage
	c.timer = nil
	c.lastPackage = ""

	now := c.clock.Now()
	emit := packageName != "" && now.Sub(c.lastEmitAt) > c.config.Debounce
	if emit {
		c.lastEmitAt = now
	}
	c.mu.Unlock()

	if emit {
		c.emit(packageName, now)
	}
}

// emit hands the reminder to the store. Best-effort: a store failure is
// logged and the correlator state stays as-is.
func (c *Correlator) emit(packageName string, at time.Time) {
	reminder := model.PaymentReminder{
		SourceApp:  packageName,
		ObservedAt: at,
	}
	if _, err := c.reminders.Insert(context.Background(), reminder); err != nil {
		slog.Warn("Failed to store payment reminder",
			"package", packageName,
			"error", err)
		return
	}
	slog.Debug("Payment reminder emitted", "package", packageName)
}

func containsSuccess(text string) bool {
	t := strings.ToLower(text)
	for _, k := range successKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

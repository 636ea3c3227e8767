// Package engine wires the ingestion paths together: raw signals go through
// classification and deduplication, and accepted candidates are handed to
// the external stores. All three paths may fire concurrently; the dedup
// state is the only shared mutable resource and guards itself.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/spendsignal/spendsignal/internal/classify"
	"github.com/spendsignal/spendsignal/internal/common"
	"github.com/spendsignal/spendsignal/internal/correlate"
	"github.com/spendsignal/spendsignal/internal/dedup"
	"github.com/spendsignal/spendsignal/internal/model"
	"github.com/spendsignal/spendsignal/internal/service"
)

// Pipeline routes raw signals to their channel-specific handlers.
type Pipeline struct {
	clock        common.Clock
	transactions service.TransactionStore
	reminders    service.ReminderStore
	notifier     *classify.NotificationClassifier
	incomes      *dedup.IncomeWindow
	correlator   *correlate.Correlator
	incomeWindow time.Duration
}

// New creates a pipeline over the given collaborators. The processed cache
// backs Splitwise idempotence; pass a dedup.NameCache or a
// dedup.BoltNameCache for persistence across restarts.
func New(clock common.Clock, transactions service.TransactionStore, reminders service.ReminderStore, processed classify.ProcessedCache) *Pipeline {
	return &Pipeline{
		clock:        clock,
		transactions: transactions,
		reminders:    reminders,
		notifier:     classify.NewNotificationClassifier(processed),
		incomes:      dedup.NewIncomeWindow(clock, dedup.DefaultIncomeWindowTTL),
		correlator:   correlate.New(clock, reminders),
		incomeWindow: dedup.DefaultIncomeWindowTTL,
	}
}

// HandleSignal routes a raw signal by channel. Notification signals routed
// through here carry only flat text; callers with structured notification
// extras should use HandleNotification directly.
func (p *Pipeline) HandleSignal(ctx context.Context, sig model.RawSignal) (classify.Verdict, []model.TransactionCandidate) {
	switch sig.Channel {
	case model.ChannelSMS:
		verdict, cand := p.HandleSMS(ctx, sig.Text, sig.ObservedAt)
		if cand == nil {
			return verdict, nil
		}
		return verdict, []model.TransactionCandidate{*cand}
	case model.ChannelNotification:
		return p.HandleNotification(ctx, model.Notification{
			ObservedAt: sig.ObservedAt,
			Package:    sig.SourceApp,
			Text:       sig.Text,
		})
	case model.ChannelAccessibility:
		p.HandleAccessibility(sig)
		return classify.VerdictRejected, nil
	default:
		slog.Debug("Ignoring signal from unknown channel", "channel", sig.Channel)
		return classify.VerdictRejected, nil
	}
}

// HandleSMS classifies one SMS body and stores the accepted candidate.
//
// Income candidates are checked against the notification-income window
// first: for incoming payments the notification channel is faster and
// authoritative, so a same-amount SMS arriving inside the window is the
// same payment seen twice.
func (p *Pipeline) HandleSMS(ctx context.Context, text string, observedAt time.Time) (classify.Verdict, *model.TransactionCandidate) {
	candidate, verdict := classify.SMS(text, observedAt)
	if verdict != classify.VerdictAccepted {
		slog.Debug("SMS not classified", "verdict", verdict.String())
		return verdict, nil
	}

	if candidate.Direction == model.DirectionIncome && p.isDuplicateIncome(ctx, candidate.Amount) {
		// The payment is already recorded; any still-open reminder for
		// this window is stale too.
		if err := p.reminders.DeleteRecent(ctx, p.incomeWindow); err != nil {
			slog.Warn("Failed to clear recent reminders", "error", err)
		}
		slog.Debug("SMS income suppressed as duplicate", "amount", candidate.Amount)
		return classify.VerdictSuppressed, nil
	}

	p.store(ctx, *candidate)
	return classify.VerdictAccepted, candidate
}

// HandleNotification classifies a structured notification and stores every
// accepted candidate. Accepted income amounts are recorded in the dedup
// window before the store insert, so a store failure cannot reopen the race.
func (p *Pipeline) HandleNotification(ctx context.Context, n model.Notification) (classify.Verdict, []model.TransactionCandidate) {
	candidates, verdict := p.notifier.Classify(n)
	if verdict != classify.VerdictAccepted {
		slog.Debug("Notification not classified",
			"package", n.Package,
			"verdict", verdict.String())
		return verdict, nil
	}

	for _, candidate := range candidates {
		if candidate.Direction == model.DirectionIncome {
			p.incomes.Record(candidate.Amount)
		}
		p.store(ctx, candidate)
	}
	return classify.VerdictAccepted, candidates
}

// HandleAccessibility feeds an accessibility snapshot to the correlator.
func (p *Pipeline) HandleAccessibility(sig model.RawSignal) {
	p.correlator.Observe(sig.SourceApp, sig.Text)
}

// isDuplicateIncome consults the in-memory window first and falls back to
// the store's recent-pending lookup. Store errors are treated as "not a
// duplicate": inserting twice is recoverable by the user, silently dropping
// a real payment is not.
func (p *Pipeline) isDuplicateIncome(ctx context.Context, amount float64) bool {
	if p.incomes.SeenRecently(amount) {
		return true
	}
	recent, err := p.transactions.HasRecentPending(ctx, amount, p.incomeWindow)
	if err != nil {
		slog.Warn("Recent-pending lookup failed", "error", err)
		return false
	}
	return recent
}

// store hands a candidate to the transaction store. Best-effort: failures
// are logged and never touch dedup state.
func (p *Pipeline) store(ctx context.Context, candidate model.TransactionCandidate) {
	if err := candidate.Validate(); err != nil {
		slog.Warn("Dropping invalid candidate", "error", err)
		return
	}
	id, err := p.transactions.InsertPending(ctx, candidate)
	if err != nil {
		slog.Warn("Failed to store candidate",
			"amount", candidate.Amount,
			"direction", candidate.Direction,
			"error", err)
		return
	}
	slog.Debug("Stored pending transaction",
		"id", id,
		"amount", candidate.Amount,
		"direction", candidate.Direction,
		"source", candidate.Source)
}

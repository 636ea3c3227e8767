package classify

import (
	"strings"

	"github.com/spendsignal/spendsignal/internal/extract"
	"github.com/spendsignal/spendsignal/internal/model"
)

// SplitwisePackage is the Android package name of the Splitwise app, which
// gets its own notification handling.
const SplitwisePackage = "com.Splitwise.SplitwiseMobile"

// appSourceTags maps known payment-app packages to the payment source their
// notifications imply. Packages not listed here default to UPI.
var appSourceTags = map[string]model.SourceTag{
	"com.google.android.apps.nbu.paisa.user": model.SourceUPI,
	"com.phonepe.app":                        model.SourceUPI,
	"net.one97.paytm":                        model.SourceUPI,
	"in.org.npci.upiapp":                     model.SourceUPI,
	"in.amazon.mShop.android.shopping":       model.SourceUPI,
	"com.dreamplug.androidapp":               model.SourceCreditCard,
}

// paymentApps is the fixed set of packages whose notifications are
// interpreted at all. Everything else is rejected unseen.
var paymentApps = map[string]bool{
	"com.google.android.apps.nbu.paisa.user": true,
	"com.phonepe.app":                        true,
	"net.one97.paytm":                        true,
	"in.org.npci.upiapp":                     true,
	"in.amazon.mShop.android.shopping":       true,
	"com.dreamplug.androidapp":               true,
	SplitwisePackage:                         true,
}

// ProcessedCache remembers which expense names were already turned into
// candidates recently, so bundled or repeated notifications stay idempotent.
// MarkIfNew reports whether the name was new and marks it processed.
type ProcessedCache interface {
	MarkIfNew(name string) bool
}

// NotificationClassifier classifies notification signals from payment apps.
type NotificationClassifier struct {
	processed ProcessedCache
}

// NewNotificationClassifier creates a classifier backed by the given
// processed-name cache.
func NewNotificationClassifier(processed ProcessedCache) *NotificationClassifier {
	return &NotificationClassifier{processed: processed}
}

// Classify routes a notification to the Splitwise or payment-app path.
// It may return several candidates for a single bundled notification.
func (c *NotificationClassifier) Classify(n model.Notification) ([]model.TransactionCandidate, Verdict) {
	if !paymentApps[n.Package] {
		return nil, VerdictRejected
	}
	if n.Package == SplitwisePackage {
		return c.classifySplitwise(n)
	}
	return c.classifyPaymentApp(n)
}

// classifyPaymentApp handles incoming-payment notifications from UPI apps.
// Only income is inferred here: expense confirmations from these apps are
// covered by the SMS channel and the accessibility correlator.
func (c *NotificationClassifier) classifyPaymentApp(n model.Notification) ([]model.TransactionCandidate, Verdict) {
	text := n.Title + " " + n.Text
	t := strings.ToLower(text)

	if containsAny(t, notificationExclusions) {
		return nil, VerdictRejected
	}
	if !containsAny(t, incomeKeywords) {
		return nil, VerdictRejected
	}

	amount, ok := extract.Amount(text)
	if !ok || amount <= 0 {
		return nil, VerdictRejected
	}

	sender, _ := extract.Sender(text)
	description := sender
	if description == "" {
		description = "Received"
	}

	source, ok := appSourceTags[n.Package]
	if !ok {
		source = model.SourceUPI
	}

	return []model.TransactionCandidate{{
		ObservedAt:  n.ObservedAt,
		Amount:      amount,
		Direction:   model.DirectionIncome,
		Source:      source,
		Merchant:    sender,
		Description: description,
		RawText:     text,
	}}, VerdictAccepted
}

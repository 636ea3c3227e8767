package classify

import (
	"strings"
	"time"

	"github.com/spendsignal/spendsignal/internal/extract"
	"github.com/spendsignal/spendsignal/internal/model"
)

// SMS classifies a bank SMS body into a transaction candidate.
//
// Exclusion keywords are checked first and override everything else: an OTP
// or bill reminder is rejected even if it also carries an amount and a
// debit keyword.
func SMS(text string, observedAt time.Time) (*model.TransactionCandidate, Verdict) {
	t := strings.ToLower(text)

	if containsAny(t, smsExclusions) {
		return nil, VerdictRejected
	}

	debit := containsAny(t, debitKeywords)
	credit := containsAny(t, creditKeywords)
	if !debit && !credit {
		return nil, VerdictRejected
	}

	amount, ok := extract.Amount(text)
	if !ok {
		return nil, VerdictRejected
	}

	// A bill-payment confirmation reads like a credit ("payment received
	// towards your card") but the user is paying the card off.
	ccBill := containsAny(t, creditCardBillPhrases)

	direction := model.DirectionIncome
	if ccBill || debit {
		direction = model.DirectionExpense
	}

	merchant, _ := extract.Merchant(text)

	description := merchant
	if description == "" {
		if direction == model.DirectionExpense {
			description = "Payment"
		} else {
			description = "Received"
		}
	}

	candidate := &model.TransactionCandidate{
		ObservedAt:  observedAt,
		Amount:      amount,
		Direction:   direction,
		Source:      inferSource(t),
		Merchant:    merchant,
		Description: description,
		RawText:     text,
	}
	if ccBill {
		candidate.CategoryHint = CreditCardBillHint
	}

	return candidate, VerdictAccepted
}

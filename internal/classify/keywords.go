package classify

import (
	"regexp"

	"github.com/spendsignal/spendsignal/internal/model"
)

// Keyword tables are matched against lowercased text. Exclusions always run
// before direction detection and override it.

// smsExclusions screens out non-transactional SMS: OTPs, bill reminders,
// and promotional text.
var smsExclusions = []string{
	"otp",
	"one time password",
	"verification code",
	"bill due",
	"is due",
	"due on",
	"minimum due",
	"min due",
	"will be debited",
	"recharge now",
	"offer",
	"win ",
	"congratulations",
	"pre-approved",
	"loan approved",
	"emi due",
}

// notificationExclusions is the broader screen for payment-app pushes, which
// routinely carry promotional, loan, and offer text alongside real payments.
var notificationExclusions = append([]string{
	"loan",
	"reward",
	"cashback",
	"invite",
	"refer",
	"voucher",
	"scratch card",
	"deal",
	"discount",
}, smsExclusions...)

var debitKeywords = []string{
	"debited",
	"spent",
	"paid",
	"withdrawn",
	"deducted",
	"purchase",
	"sent",
	"charged",
}

var creditKeywords = []string{
	"credited",
	"received",
	"deposited",
	"refund",
}

// creditCardBillPhrases mark bill-payment confirmations. These use
// credit-style wording but are expenses: the user is paying off a card.
var creditCardBillPhrases = []string{
	"towards your credit card",
	"credit card bill",
	"card bill payment",
	"payment credited to your card",
	"towards your card ending",
}

// CreditCardBillHint is the category name suggested for credit-card bill
// payments. The caller resolves it to an actual category.
const CreditCardBillHint = "Credit Card Bill"

var incomeKeywords = []string{
	"received",
	"sent you",
	"paid you",
	"credited",
}

// bankCardRe matches "<word> card" so issuer-branded card mentions
// ("ICICI Card", "bank card 1234") classify as credit card. The captured
// word lets the rule skip "debit card", which belongs to the next rule.
var bankCardRe = regexp.MustCompile(`\b([a-z]+)\s+card\b`)

func matchBankCard(text string) bool {
	for _, m := range bankCardRe.FindAllStringSubmatch(text, -1) {
		if m[1] != "debit" {
			return true
		}
	}
	return false
}

type sourceRule struct {
	match func(string) bool
	name  string
	tag   model.SourceTag
}

// sourceRules are evaluated in order; the first matching rule wins.
var sourceRules = []sourceRule{
	{
		name: "upi",
		tag:  model.SourceUPI,
		match: func(t string) bool {
			return containsAny(t, []string{"upi", "trf to", "vpa"})
		},
	},
	{
		name: "credit-card",
		tag:  model.SourceCreditCard,
		match: func(t string) bool {
			return containsAny(t, []string{"credit card", "cc "}) || matchBankCard(t)
		},
	},
	{
		name: "debit-card",
		tag:  model.SourceDebitCard,
		match: func(t string) bool {
			return containsAny(t, []string{"debit card", "atm"})
		},
	},
	{
		name: "auto-debit",
		tag:  model.SourceAutoDebit,
		match: func(t string) bool {
			if containsAny(t, []string{"nach"}) {
				return true
			}
			return containsAny(t, []string{"auto"}) && containsAny(t, []string{"debit"})
		},
	},
	{
		name: "bank-transfer",
		tag:  model.SourceBankTransfer,
		match: func(t string) bool {
			return containsAny(t, []string{"neft", "imps", "rtgs"})
		},
	},
}

// inferSource returns the payment source tag for lowercased text.
func inferSource(t string) model.SourceTag {
	for _, r := range sourceRules {
		if r.match(t) {
			return r.tag
		}
	}
	return model.SourceOther
}

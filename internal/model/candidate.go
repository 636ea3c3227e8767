package model

import (
	"fmt"
	"time"
)

// Direction classifies a transaction as money leaving or entering.
type Direction string

const (
	// DirectionExpense represents money leaving the user's accounts.
	DirectionExpense Direction = "expense"
	// DirectionIncome represents money entering the user's accounts.
	DirectionIncome Direction = "income"
)

// SourceTag identifies the payment instrument inferred from the text.
type SourceTag string

const (
	// SourceUPI represents UPI transfers.
	SourceUPI SourceTag = "upi"
	// SourceCreditCard represents credit card payments.
	SourceCreditCard SourceTag = "credit_card"
	// SourceDebitCard represents debit card or ATM transactions.
	SourceDebitCard SourceTag = "debit_card"
	// SourceAutoDebit represents mandated auto-debits (NACH, standing instructions).
	SourceAutoDebit SourceTag = "auto_debit"
	// SourceBankTransfer represents NEFT/IMPS/RTGS transfers.
	SourceBankTransfer SourceTag = "bank_transfer"
	// SourceOther is the fallback when no instrument keyword matched.
	SourceOther SourceTag = "other"
)

// SplitInfo records the user's share of a shared expense as a simple
// fraction of the total.
type SplitInfo struct {
	ShareAmount float64
	TotalAmount float64
	Numerator   int
	Denominator int
}

// Validate ensures the split fraction is a proper fraction.
func (s *SplitInfo) Validate() error {
	if s.Numerator <= 0 || s.Denominator <= 0 {
		return fmt.Errorf("split ratio must be positive, got %d/%d", s.Numerator, s.Denominator)
	}
	if s.Numerator >= s.Denominator {
		return fmt.Errorf("split ratio must be a proper fraction, got %d/%d", s.Numerator, s.Denominator)
	}
	return nil
}

// TransactionCandidate is an unconfirmed transaction extracted from a raw
// signal. Immutable once created; the caller confirms or discards it later.
type TransactionCandidate struct {
	ObservedAt   time.Time
	Merchant     string
	Description  string
	RawText      string
	CategoryHint string
	Direction    Direction
	Source       SourceTag
	Split        *SplitInfo
	Amount       float64
}

// Validate ensures the candidate has valid data before it is handed to a
// store.
func (c *TransactionCandidate) Validate() error {
	if c.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %.2f", c.Amount)
	}
	if c.Direction != DirectionExpense && c.Direction != DirectionIncome {
		return fmt.Errorf("invalid direction %q", c.Direction)
	}
	if c.Split != nil {
		if err := c.Split.Validate(); err != nil {
			return err
		}
	}
	return nil
}

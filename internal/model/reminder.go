package model

import "time"

// PaymentReminder is a best-effort signal that the user likely completed a
// payment in a known UPI app and should log a transaction for it. It carries
// no amount; only the app it was observed in.
type PaymentReminder struct {
	ObservedAt time.Time
	SourceApp  string
}

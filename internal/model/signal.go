// Package model defines the core domain models used throughout the application.
package model

import "time"

// Channel identifies which observation channel produced a signal.
type Channel string

const (
	// ChannelSMS represents signals read from SMS bodies.
	ChannelSMS Channel = "sms"
	// ChannelNotification represents signals read from system notifications.
	ChannelNotification Channel = "notification"
	// ChannelAccessibility represents signals read from accessibility-tree text.
	ChannelAccessibility Channel = "accessibility"
)

// RawSignal is a single timestamped text payload from an OS-level listener.
// Signals are ephemeral: created per OS event, consumed immediately, never
// persisted.
type RawSignal struct {
	ObservedAt time.Time
	Channel    Channel
	SourceApp  string
	Text       string
}

// Notification carries the structured pieces of a system notification.
// Title and Ticker come from the notification itself; Lines holds the
// individual lines of a bundled (inbox-style) notification, oldest first.
type Notification struct {
	ObservedAt time.Time
	Package    string
	Title      string
	Text       string
	Ticker     string
	Lines      []string
}

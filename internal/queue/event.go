// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationConfirmedEvent is published when a citizen's registration
// is committed.  It carries enough for downstream consumers (notifier,
// analytics) to act without querying the primary database.
type RegistrationConfirmedEvent struct {
	RegistrationID uint64 `json:"registration_id"`
	ProtocolNumber string `json:"protocol_number"`
	UserID         uint64 `json:"user_id"`
	ItemID         uint64 `json:"item_id"`
	ItemKind       string `json:"item_kind"`
	ItemTitle      string `json:"item_title"`
	StartsAt       string `json:"starts_at"`
	ConfirmedAt    string `json:"confirmed_at"`
}

// ItemCancelledEvent is published after an event or program is
// cancelled and its confirmed registrations were cascade-cancelled.
type ItemCancelledEvent struct {
	ItemID                 uint64 `json:"item_id"`
	ItemKind               string `json:"item_kind"`
	ItemTitle              string `json:"item_title"`
	CancelledRegistrations int64  `json:"cancelled_registrations"`
	CancelledAt            string `json:"cancelled_at"`
}

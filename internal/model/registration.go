package model

import "time"

// Registration statuses.  A registration is created CONFIRMED and can
// only move to CANCELLED; rows are never deleted.
const (
	RegistrationConfirmed = "CONFIRMED"
	RegistrationCancelled = "CANCELLED"
)

// Registration records a citizen's confirmed place on a content item.
// FormData holds the answers submitted against the item's form schema at
// creation time; it is validated once and stored verbatim afterwards,
// so it may no longer match an evolved schema.
//
// Fields:
//  ID             – primary key identifier.
//  ItemID         – content item being registered for.
//  UserID         – citizen who registered.
//  ProtocolNumber – human-readable confirmation code (EVT-/PRG-…).
//  Status         – CONFIRMED or CANCELLED.
//  FormData       – field-id → answer map, opaque after creation.
//  CancelledAt    – set only when Status is CANCELLED.
type Registration struct {
	ID             uint64         // registrations.id
	ItemID         uint64         // registrations.item_id
	UserID         uint64         // registrations.user_id
	ProtocolNumber string         // registrations.protocol_number
	Status         string         // registrations.status
	FormData       map[string]any // registrations.form_data (JSON)
	CancelledAt    *time.Time     // registrations.cancelled_at (nullable)
	CreatedAt      time.Time      // registrations.created_at
}

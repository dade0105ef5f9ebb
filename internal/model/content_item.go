package model

import "time"

// Kind discriminates the two registrable entity families.  Events and
// programs share an identical lifecycle and capacity contract; the kind
// only affects the protocol number prefix, the highlight flag (programs
// only) and attendance intents (events only).
const (
	KindEvent   = "EVENT"
	KindProgram = "PROGRAM"
)

// Content item lifecycle states.  CLOSED and CANCELLED are terminal.
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusClosed    = "CLOSED"
	StatusCancelled = "CANCELLED"
)

// Registration modes.  INFORMATIVE items are display-only and never
// accept registrations.
const (
	ModeRegistration = "REGISTRATION"
	ModeInformative  = "INFORMATIVE"
)

// ContentItem represents an event or program published on the portal.
// Capacity is a simple slot count: TotalSlots is nil for unlimited
// items, otherwise the number of confirmed registrations may never
// exceed it.
//
// Fields:
//  ID               – primary key identifier.
//  Kind             – EVENT or PROGRAM.
//  Slug             – unique URL identifier derived from the title.
//  Title            – display title.
//  Description      – plain-text summary (rich text lives elsewhere).
//  Status           – DRAFT, PUBLISHED, CLOSED or CANCELLED.
//  RegistrationMode – REGISTRATION or INFORMATIVE.
//  TotalSlots       – capacity, nil meaning unlimited.
//  FormSchema       – ordered field definitions collected at registration
//                     time; required when RegistrationMode=REGISTRATION.
//  IsHighlighted    – program-only home page highlight flag.
//  StartsAt         – when the event/program begins.
type ContentItem struct {
	ID               uint64     // content_items.id
	Kind             string     // content_items.kind
	Slug             string     // content_items.slug
	Title            string     // content_items.title
	Description      string     // content_items.description
	Status           string     // content_items.status
	RegistrationMode string     // content_items.registration_mode
	TotalSlots       *int       // content_items.total_slots (nullable)
	FormSchema       []FieldDef // content_items.form_schema (JSON, nullable)
	IsHighlighted    bool       // content_items.is_highlighted
	StartsAt         time.Time  // content_items.starts_at
	CreatedAt        time.Time  // content_items.created_at
	UpdatedAt        time.Time  // content_items.updated_at
}

// AcceptsRegistrations reports whether the item is in a state that can
// take a new registration.  Capacity is checked separately.
func (i *ContentItem) AcceptsRegistrations() bool {
	return i.Status == StatusPublished && i.RegistrationMode == ModeRegistration
}

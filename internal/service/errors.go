// Package service implements the registration and capacity management
// engine: the transactional rules that keep items, registrations,
// highlights and intents consistent.  Handlers call into this package
// and translate the errors below into HTTP responses; nothing here is
// retried internally.
package service

import "errors"

// Terminal, caller-visible failure kinds.  Form validation failures
// (missing schema, missing required fields) surface as the error types
// of the form package and are not duplicated here.
var (
	// ErrNotFound covers items and registrations that are absent or
	// not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrNotPublished is returned for citizen actions on an item that
	// is not in PUBLISHED status.
	ErrNotPublished = errors.New("item is not published")

	// ErrRegistrationModeDisabled is returned when registering for an
	// informative item.
	ErrRegistrationModeDisabled = errors.New("item does not accept registrations")

	// ErrIllegalTransition is returned when a status change is not in
	// the legal transition set.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrInvalidHighlight is returned when a highlight is requested on
	// an item that is not a published program.
	ErrInvalidHighlight = errors.New("only published programs can be highlighted")

	// ErrInvalidCapacity is returned when an admin tries to reduce
	// capacity below the current confirmed-registration count, or to a
	// value below one.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrCapacityExceeded is returned when the transactional recheck
	// finds no slot left.
	ErrCapacityExceeded = errors.New("no slots available")

	// ErrDuplicateRegistration is returned when the user already holds
	// a confirmed registration for the item.
	ErrDuplicateRegistration = errors.New("registration already exists")

	// ErrAlreadyCancelled is returned when cancelling a registration
	// that is already cancelled.
	ErrAlreadyCancelled = errors.New("registration already cancelled")

	// ErrTooLateToCancel is returned when the item has already started.
	ErrTooLateToCancel = errors.New("too late to cancel")
)

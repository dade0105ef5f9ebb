// Package repository provides data access to the MySQL store.  Sentinel
// errors defined here let higher layers distinguish failure scenarios
// without inspecting driver errors; storage-level constraint violations
// are translated before they leave this package.
package repository

import "errors"

// ErrItemNotFound is returned when a content item does not exist.
var ErrItemNotFound = errors.New("content item not found")

// ErrRegistrationNotFound is returned when a registration does not
// exist or is not visible to the calling user.
var ErrRegistrationNotFound = errors.New("registration not found")

// ErrDuplicateActive is returned when inserting a registration violates
// the unique (item_id, active_user_id) constraint, i.e. the user
// already holds a confirmed registration for the item.
var ErrDuplicateActive = errors.New("active registration already exists")

// ErrSlugExists is returned when creating an item with a slug that is
// already taken.
var ErrSlugExists = errors.New("slug already exists")

// Package lifecycle encodes the legal status transitions of a content
// item.  The set is small, closed and hard-coded: this is not a
// configurable workflow engine.
package lifecycle

import "github.com/munihub/civic-portal/internal/model"

// transitions maps a current status to the statuses it may move to.
// CLOSED and CANCELLED are terminal.
var transitions = map[string][]string{
	model.StatusDraft:     {model.StatusPublished, model.StatusCancelled},
	model.StatusPublished: {model.StatusClosed, model.StatusCancelled},
	model.StatusClosed:    {},
	model.StatusCancelled: {},
}

// CanTransition reports whether moving from to target is legal.
func CanTransition(from, target string) bool {
	for _, s := range transitions[from] {
		if s == target {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is one of the four known statuses.
func IsValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/munihub/civic-portal/internal/model"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, target string
		want         bool
	}{
		{model.StatusDraft, model.StatusPublished, true},
		{model.StatusDraft, model.StatusCancelled, true},
		{model.StatusDraft, model.StatusClosed, false},
		{model.StatusPublished, model.StatusClosed, true},
		{model.StatusPublished, model.StatusCancelled, true},
		{model.StatusPublished, model.StatusDraft, false},
		{model.StatusClosed, model.StatusPublished, false},
		{model.StatusClosed, model.StatusCancelled, false},
		{model.StatusCancelled, model.StatusPublished, false},
		{model.StatusCancelled, model.StatusDraft, false},
		{model.StatusDraft, model.StatusDraft, false},
		{"UNKNOWN", model.StatusPublished, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CanTransition(c.from, c.target), "%s -> %s", c.from, c.target)
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{model.StatusDraft, model.StatusPublished, model.StatusClosed, model.StatusCancelled} {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus("ARCHIVED"))
	assert.False(t, IsValidStatus(""))
}

package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Summer Reading Program", "summer-reading-program"},
		{"  Town Hall — Budget 2026!  ", "town-hall-budget-2026"},
		{"Yoga   in the Park", "yoga-in-the-park"},
		{"---", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Slugify(c.title), "title %q", c.title)
	}
}

func TestSlugWithSuffix(t *testing.T) {
	got, err := SlugWithSuffix("Summer Reading Program")
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^summer-reading-program-[0-9a-z]{6}$`), got)

	other, err := SlugWithSuffix("Summer Reading Program")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(other, "summer-reading-program-"))
	require.NotEqual(t, got, other)
}

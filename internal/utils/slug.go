package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

const slugAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Slugify derives a URL-safe slug from a title: lower-cased, with runs
// of non-alphanumeric characters collapsed into single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SlugWithSuffix derives a slug from the title and appends a short
// random suffix.  Used when the plain slug is already taken.
func SlugWithSuffix(title string) (string, error) {
	suffix := make([]byte, 6)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		suffix[i] = slugAlphabet[n.Int64()]
	}
	return Slugify(title) + "-" + string(suffix), nil
}

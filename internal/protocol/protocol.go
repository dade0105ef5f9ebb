// Package protocol issues the human-readable confirmation codes handed
// to citizens on a successful registration.
package protocol

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/munihub/civic-portal/internal/model"
)

const (
	base36    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffixLen = 5
	prefixEvt = "EVT"
	prefixPrg = "PRG"
)

// Generate returns a code of the form EVT-20260831-K7Q2M (PRG- for
// programs) using the given reference time for the date part.  The
// random suffix makes no uniqueness promise; the registrations table
// does not index it and collisions are tolerated.
func Generate(kind string, now time.Time) (string, error) {
	prefix := prefixEvt
	if kind == model.KindProgram {
		prefix = prefixPrg
	}
	b := make([]byte, suffixLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = base36[int(b[i])%len(base36)]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.UTC().Format("20060102"), string(b)), nil
}

package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits (~1 trillion) of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// newPageID retries on the (unlikely) collision with an existing page. If the system
// RNG fails we fall back to a uuid suffix rather than handing out a bad id.
func newPageID(exists func(string) bool) string {
	for i := 0; i < 8; i++ {
		id, err := newRandomID("page")
		if err != nil {
			break
		}
		if exists == nil || !exists(id) {
			return id
		}
	}
	for {
		id := "page-" + uuid.NewString()
		if exists == nil || !exists(id) {
			return id
		}
	}
}

func newEventID() string {
	return "evt-" + uuid.NewString()
}

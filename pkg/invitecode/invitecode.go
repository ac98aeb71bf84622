// Package invitecode produces the short opaque tokens that grant join
// rights to a group. Generation is pure: uniqueness against stored codes
// is the caller's responsibility (generate-and-verify with bounded retry).
package invitecode

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// TTL is the validity window of a freshly generated code. Fixed policy,
// not configurable.
const TTL = 7 * 24 * time.Hour

// Length is the number of hex characters in a code (6 random bytes).
const Length = 12

// Generate returns a random invite code and its expiry timestamp.
// 6 bytes of entropy give a 2^48 code space, large enough that collisions
// with stored codes are rare; callers must still verify and retry.
func Generate() (string, time.Time, error) {
	b := make([]byte, Length/2)
	if _, err := rand.Read(b); err != nil {
		return "", time.Time{}, fmt.Errorf("generate invite code: %w", err)
	}
	return hex.EncodeToString(b), time.Now().Add(TTL), nil
}

// Package token maps internal numeric profile ids to the UUID-shaped opaque
// strings the mobile client uses. The mapping is a plain bijection, not a
// security measure: the same internal id always yields the same token, and
// the id is recoverable from the final hex segment.
package token

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/climblink/backend/internal/domain"
)

// prefix matches the fixed UUID stem the legacy client was seeded with.
const prefix = "550e8400-e29b-41d4-a716-"

// Encode derives the external token for an internal profile id. The id is
// written as the zero-padded 12-hex-digit tail of the UUID.
func Encode(id int) string {
	return fmt.Sprintf("%s%012x", prefix, id)
}

// Decode recovers the internal id from an external token. Bare integer
// strings are accepted too, since older clients sent numeric ids directly.
func Decode(tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, domain.ErrInvalidToken
	}
	if id, err := strconv.Atoi(tok); err == nil {
		if id <= 0 {
			return 0, domain.ErrInvalidToken
		}
		return id, nil
	}
	if !strings.HasPrefix(tok, prefix) {
		return 0, domain.ErrInvalidToken
	}
	suffix := tok[len(prefix):]
	if len(suffix) != 12 {
		return 0, domain.ErrInvalidToken
	}
	id, err := strconv.ParseInt(suffix, 16, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidToken
	}
	return int(id), nil
}

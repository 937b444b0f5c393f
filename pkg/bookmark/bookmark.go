// Package bookmark defines the location-token contract the favorites store
// depends on, plus a portable file-backed implementation.
//
// A token is an opaque byte string standing in for a resolved filesystem
// path. The store never inspects token bytes; it only asks a Codec to mint
// one for a path or to resolve one back to a path for comparison and
// display. Platform-specific alias formats can be slotted in behind the same
// interface.
package bookmark

import "fmt"

// Codec mints and resolves opaque location tokens.
type Codec interface {
	// Encode returns a token for an absolute path. It fails with a
	// *TokenError when no stable token can be minted, e.g. the target
	// does not exist.
	Encode(absPath string) ([]byte, error)

	// Decode resolves a token back to an absolute path. stale reports that
	// the target may have moved since the token was minted; a best-effort
	// path is still returned alongside it. Decode fails only when the token
	// bytes are corrupt.
	Decode(token []byte) (path string, stale bool, err error)
}

// TokenError reports that a token could not be minted or parsed.
type TokenError struct {
	Path string // target path, when known
	Msg  string
	Err  error
}

func (e *TokenError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("bookmark %s: %s", e.Path, e.Msg)
	}
	return "bookmark: " + e.Msg
}

func (e *TokenError) Unwrap() error { return e.Err }

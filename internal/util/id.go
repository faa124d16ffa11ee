package util

import "github.com/google/uuid"

// NewID returns an opaque, collision-resistant identifier. Used for both
// session and message ids; carries no structural meaning.
func NewID() string {
	return uuid.NewString()
}

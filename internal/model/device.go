package model

import "time"

// Device is process-lifetime per-device state: tier classification and the
// daily image-quota counter. Device ids are opaque and unauthenticated.
// Records are never deleted; the counter resets lazily on access.
type Device struct {
	ID              string
	Tier            Tier
	DailyImageCount int
	LastResetAt     time.Time
	FirstSeenAt     time.Time
}

package model

import "time"

// MaxParticipants caps session membership. A session is strictly pairwise.
const MaxParticipants = 2

// Session is a rendezvous context between at most two devices. Sessions are
// discovered via a caller-supplied 6-digit code and identified by an opaque
// id. A burned session stays in the table as an inactive tombstone: Active is
// false and Participants, LastSeen and Messages are empty.
type Session struct {
	ID           string
	Code         string
	Active       bool
	Participants ParticipantSet
	LastSeen     map[string]time.Time
	ExpiresAt    *time.Time
	Messages     []Message
	CreatedAt    time.Time
}

// Expired reports whether the session's deadline, if any, has passed.
// Sessions created by pro-tier devices carry no deadline.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// StatusResult is the best-effort session probe result. Unknown sessions
// report inactive with zero participants rather than an error.
type StatusResult struct {
	Active           bool `json:"active"`
	ParticipantCount int  `json:"participantCount"`
}

package store

import (
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/burnlink/relay-server-go/internal/errors"
	"github.com/burnlink/relay-server-go/internal/model"
	"github.com/burnlink/relay-server-go/internal/util"
)

// CreateSession allocates a new session with the creating device as its only
// participant. Rendezvous codes are not unique across sessions; join resolves
// collisions by creation order. Free-tier creators get a fixed deadline that
// is never extended; pro creators get none.
func (s *Store) CreateSession(code, deviceID string) (string, error) {
	if !util.IsValidRendezvousCode(code) {
		return "", apperrors.InvalidInput("code", "must be a 6-digit numeric string")
	}
	if deviceID == "" {
		return "", apperrors.MissingRequired("deviceId")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	device := s.deviceLocked(deviceID, now)

	sess := &model.Session{
		ID:           util.NewID(),
		Code:         code,
		Active:       true,
		Participants: model.NewParticipantSet(),
		LastSeen:     map[string]time.Time{deviceID: now},
		CreatedAt:    now,
	}
	sess.Participants.Add(deviceID)

	if device.Tier == model.TierFree {
		expiresAt := now.Add(s.cfg.FreeSessionTTL)
		sess.ExpiresAt = &expiresAt
	}

	s.sessions[sess.ID] = sess
	s.order = append(s.order, sess.ID)

	s.collector.SessionCreated(sess.ID, deviceID)
	log.Info().
		Str("sessionId", sess.ID).
		Str("code", util.MaskCode(code)).
		Str("tier", string(device.Tier)).
		Msg("session created")

	return sess.ID, nil
}

// JoinSession resolves a rendezvous code to a session and adds the device.
// When several active sessions share the code, the oldest one wins. An
// expired match is burned in place and the join fails; there is no silent
// resurrection. Rejoining as an existing participant is an idempotent
// reconnect.
func (s *Store) JoinSession(code, deviceID string) (string, error) {
	if !util.IsValidRendezvousCode(code) {
		return "", apperrors.InvalidInput("code", "must be a 6-digit numeric string")
	}
	if deviceID == "" {
		return "", apperrors.MissingRequired("deviceId")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.findByCodeLocked(code)
	if sess == nil {
		return "", apperrors.NotFound("Session")
	}

	now := time.Now()
	if sess.Expired(now) {
		s.burnLocked(sess, model.BurnReasonExpired)
		return "", apperrors.NotFound("Session")
	}

	if sess.Participants.Has(deviceID) {
		return sess.ID, nil
	}

	if sess.Participants.Len() >= model.MaxParticipants {
		log.Warn().
			Str("sessionId", sess.ID).
			Msg("third device rejected")
		return "", apperrors.CapacityExceeded()
	}

	sess.Participants.Add(deviceID)
	sess.LastSeen[deviceID] = now

	s.collector.DeviceSeen(deviceID)
	log.Info().
		Str("sessionId", sess.ID).
		Msg("device joined session")

	return sess.ID, nil
}

func (s *Store) findByCodeLocked(code string) *model.Session {
	for _, id := range s.order {
		sess := s.sessions[id]
		if sess.Active && sess.Code == code {
			return sess
		}
	}
	return nil
}

// EndSession burns the session. Ending an already-burned session is a no-op
// success; only an unknown id is an error.
func (s *Store) EndSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return apperrors.NotFound("Session")
	}
	if !sess.Active {
		return nil
	}

	s.burnLocked(sess, model.BurnReasonEnded)
	return nil
}

// Status is a best-effort probe: unknown sessions report inactive with zero
// participants instead of an error. It performs no expiry check; only join
// and message operations trigger the lazy expiry burn.
func (s *Store) Status(sessionID string) model.StatusResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return model.StatusResult{}
	}
	return model.StatusResult{
		Active:           sess.Active,
		ParticipantCount: sess.Participants.Len(),
	}
}

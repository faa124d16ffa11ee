package store

import (
	"time"

	apperrors "github.com/burnlink/relay-server-go/internal/errors"
	"github.com/burnlink/relay-server-go/internal/model"
)

// Heartbeat records a liveness ping and runs the staleness check. It is the
// only mechanism that detects a silently-disconnected peer; nothing is
// pushed, the surviving device discovers the burn on its next ping.
//
// Unlike join, a heartbeat from an unknown device does not fail on a full
// session: membership is granted when a slot is free and silently skipped
// when not. Join's strict capacity error is the membership gate; heartbeat
// stays lenient so a reconnecting device never kills its own session.
func (s *Store) Heartbeat(sessionID, deviceID string) (ended bool, err error) {
	if deviceID == "" {
		return false, apperrors.MissingRequired("deviceId")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || !sess.Active {
		return false, apperrors.NotFound("Session")
	}

	now := time.Now()
	if sess.Participants.Add(deviceID) {
		sess.LastSeen[deviceID] = now
	}

	if len(sess.LastSeen) < 2 {
		return false, nil
	}

	for other, lastSeen := range sess.LastSeen {
		if other == deviceID {
			continue
		}
		if now.Sub(lastSeen) > s.cfg.OfflineTimeout {
			s.burnLocked(sess, model.BurnReasonStale)
			return true, nil
		}
	}

	return false, nil
}

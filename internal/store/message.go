package store

import (
	"time"

	"github.com/burnlink/relay-server-go/internal/config"
	apperrors "github.com/burnlink/relay-server-go/internal/errors"
	"github.com/burnlink/relay-server-go/internal/model"
	"github.com/burnlink/relay-server-go/internal/util"
)

// PostMessage appends an encrypted envelope to the session's ledger and
// returns the stored message verbatim. The payload is opaque; only the
// structural presence of ciphertext and nonce is checked. Free-tier senders
// are held to the daily image quota.
func (s *Store) PostMessage(sessionID string, params model.PostMessageParams) (*model.Message, error) {
	if !params.Payload.Valid() {
		return nil, apperrors.InvalidInput("payload", "ciphertext and nonce are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess, err := s.liveSessionLocked(sessionID, now)
	if err != nil {
		return nil, err
	}

	senderID := params.SenderID
	if senderID == "" {
		senderID = config.UnknownSender
	}

	kind := model.NormalizeKind(params.Kind)
	fileName := ""
	if kind == model.KindImage {
		fileName = params.FileName

		device := s.deviceLocked(senderID, now)
		if device.Tier == model.TierFree && device.DailyImageCount >= s.cfg.FreeDailyImageQuota {
			return nil, apperrors.QuotaExceeded("image")
		}
		device.DailyImageCount++
	}

	msg := model.Message{
		ID:       util.NewID(),
		SenderID: senderID,
		Kind:     kind,
		Payload:  params.Payload,
		FileName: fileName,
		SentAt:   now,
	}
	sess.Messages = append(sess.Messages, msg)

	s.collector.MessagePosted(sess.ID, kind)

	return &msg, nil
}

// ListMessages returns the full ledger in append order. No pagination — a
// session's ledger only lives for minutes.
func (s *Store) ListMessages(sessionID string) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.liveSessionLocked(sessionID, time.Now())
	if err != nil {
		return nil, err
	}

	out := make([]model.Message, len(sess.Messages))
	copy(out, sess.Messages)
	return out, nil
}

// liveSessionLocked resolves a session for message operations, applying the
// same lazy expiry burn as join. Callers hold s.mu.
func (s *Store) liveSessionLocked(sessionID string, now time.Time) (*model.Session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok || !sess.Active {
		return nil, apperrors.NotFound("Session")
	}
	if sess.Expired(now) {
		s.burnLocked(sess, model.BurnReasonExpired)
		return nil, apperrors.NotFound("Session")
	}
	return sess, nil
}

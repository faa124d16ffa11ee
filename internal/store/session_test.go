package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/burnlink/relay-server-go/internal/errors"
	"github.com/burnlink/relay-server-go/internal/metrics"
	"github.com/burnlink/relay-server-go/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(Config{
		OfflineTimeout:      20 * time.Second,
		FreeSessionTTL:      10 * time.Minute,
		FreeDailyImageQuota: 5,
	}, metrics.NewCollector())
}

// expireSession rewinds the session's deadline so it is already past.
func expireSession(t *testing.T, s *Store, sessionID string) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	require.True(t, ok)
	require.NotNil(t, sess.ExpiresAt, "session has no deadline to rewind")
	past := time.Now().Add(-time.Second)
	sess.ExpiresAt = &past
}

func TestCreateSession(t *testing.T) {
	t.Run("creates session with creator as sole participant", func(t *testing.T) {
		s := newTestStore(t)

		id, err := s.CreateSession("123456", "dev1")
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		status := s.Status(id)
		assert.True(t, status.Active)
		assert.Equal(t, 1, status.ParticipantCount)
	})

	t.Run("free-tier creator gets a deadline", func(t *testing.T) {
		s := newTestStore(t)

		id, err := s.CreateSession("123456", "dev1")
		require.NoError(t, err)

		s.mu.Lock()
		sess := s.sessions[id]
		require.NotNil(t, sess.ExpiresAt)
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), *sess.ExpiresAt, 2*time.Second)
		s.mu.Unlock()
	})

	t.Run("pro-tier creator gets no deadline", func(t *testing.T) {
		s := newTestStore(t)
		s.SetTier("dev1", model.TierPro)

		id, err := s.CreateSession("123456", "dev1")
		require.NoError(t, err)

		s.mu.Lock()
		assert.Nil(t, s.sessions[id].ExpiresAt)
		s.mu.Unlock()
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		s := newTestStore(t)

		for _, code := range []string{"", "12345", "1234567", "abcdef", "12 456"} {
			_, err := s.CreateSession(code, "dev1")
			assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.GetCode(err), "code %q", code)
		}
	})

	t.Run("rejects empty deviceId", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.CreateSession("123456", "")
		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
	})

	t.Run("allows duplicate codes across sessions", func(t *testing.T) {
		s := newTestStore(t)

		id1, err := s.CreateSession("123456", "dev1")
		require.NoError(t, err)
		id2, err := s.CreateSession("123456", "dev2")
		require.NoError(t, err)

		assert.NotEqual(t, id1, id2)
	})
}

func TestJoinSession(t *testing.T) {
	t.Run("second device joins by code", func(t *testing.T) {
		s := newTestStore(t)

		created, _ := s.CreateSession("123456", "dev1")
		joined, err := s.JoinSession("123456", "dev2")
		require.NoError(t, err)

		assert.Equal(t, created, joined)
		assert.Equal(t, 2, s.Status(created).ParticipantCount)
	})

	t.Run("unknown code fails with not found", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.JoinSession("999999", "dev2")
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})

	t.Run("third device fails with capacity exceeded", func(t *testing.T) {
		s := newTestStore(t)

		id, _ := s.CreateSession("123456", "dev1")
		_, err := s.JoinSession("123456", "dev2")
		require.NoError(t, err)

		_, err = s.JoinSession("123456", "dev3")
		assert.Equal(t, apperrors.ErrCodeCapacityExceeded, apperrors.GetCode(err))
		assert.Equal(t, 2, s.Status(id).ParticipantCount)
	})

	t.Run("rejoin by existing participant is idempotent", func(t *testing.T) {
		s := newTestStore(t)

		id, _ := s.CreateSession("123456", "dev1")
		s.JoinSession("123456", "dev2")

		again, err := s.JoinSession("123456", "dev2")
		require.NoError(t, err)
		assert.Equal(t, id, again)
		assert.Equal(t, 2, s.Status(id).ParticipantCount)
	})

	t.Run("code collision resolves to the oldest active session", func(t *testing.T) {
		s := newTestStore(t)

		first, _ := s.CreateSession("123456", "dev1")
		second, _ := s.CreateSession("123456", "dev2")

		joined, err := s.JoinSession("123456", "dev3")
		require.NoError(t, err)
		assert.Equal(t, first, joined)
		assert.NotEqual(t, second, joined)
	})

	t.Run("burned oldest session yields the code to the next one", func(t *testing.T) {
		s := newTestStore(t)

		first, _ := s.CreateSession("123456", "dev1")
		second, _ := s.CreateSession("123456", "dev2")
		require.NoError(t, s.EndSession(first))

		joined, err := s.JoinSession("123456", "dev3")
		require.NoError(t, err)
		assert.Equal(t, second, joined)
	})

	t.Run("expired session is burned in place and join fails", func(t *testing.T) {
		s := newTestStore(t)

		id, _ := s.CreateSession("123456", "dev1")
		expireSession(t, s, id)

		_, err := s.JoinSession("123456", "dev2")
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))

		status := s.Status(id)
		assert.False(t, status.Active)
		assert.Equal(t, 0, status.ParticipantCount)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.JoinSession("12345", "dev1")
		assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.GetCode(err))

		_, err = s.JoinSession("123456", "")
		assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
	})
}

func TestEndSession(t *testing.T) {
	t.Run("burn clears participants and messages atomically", func(t *testing.T) {
		s := newTestStore(t)

		id, _ := s.CreateSession("123456", "dev1")
		s.JoinSession("123456", "dev2")
		_, err := s.PostMessage(id, model.PostMessageParams{
			SenderID: "dev1",
			Payload:  model.EncryptedPayload{Ciphertext: "c", Nonce: "n"},
		})
		require.NoError(t, err)

		require.NoError(t, s.EndSession(id))

		status := s.Status(id)
		assert.False(t, status.Active)
		assert.Equal(t, 0, status.ParticipantCount)

		_, err = s.ListMessages(id)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})

	t.Run("ending an ended session is a no-op success", func(t *testing.T) {
		s := newTestStore(t)

		id, _ := s.CreateSession("123456", "dev1")
		require.NoError(t, s.EndSession(id))
		require.NoError(t, s.EndSession(id))
	})

	t.Run("unknown session fails with not found", func(t *testing.T) {
		s := newTestStore(t)

		err := s.EndSession("no-such-session")
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})
}

func TestStatus(t *testing.T) {
	t.Run("unknown session reports inactive, never errors", func(t *testing.T) {
		s := newTestStore(t)

		status := s.Status("no-such-session")
		assert.False(t, status.Active)
		assert.Equal(t, 0, status.ParticipantCount)
	})

	t.Run("does not trigger the lazy expiry burn", func(t *testing.T) {
		s := newTestStore(t)

		id, _ := s.CreateSession("123456", "dev1")
		expireSession(t, s, id)

		// Status is a pure probe: the session stays active until a join
		// or message operation touches it.
		assert.True(t, s.Status(id).Active)
		assert.Equal(t, 1, s.ActiveSessionCount())
	})
}

func TestParticipantCapInvariant(t *testing.T) {
	// No sequence of join and heartbeat calls grows a session past two
	// participants.
	s := newTestStore(t)

	id, _ := s.CreateSession("123456", "dev1")
	s.JoinSession("123456", "dev2")
	s.JoinSession("123456", "dev3")
	s.Heartbeat(id, "dev4")
	s.Heartbeat(id, "dev1")
	s.JoinSession("123456", "dev5")
	s.Heartbeat(id, "dev5")

	assert.Equal(t, 2, s.Status(id).ParticipantCount)
}

package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burnlink/relay-server-go/internal/model"
)

func TestDeviceRegistry(t *testing.T) {
	t.Run("first sight creates a free-tier record", func(t *testing.T) {
		s := newTestStore(t)

		device := s.GetOrCreateDevice("dev1")
		assert.Equal(t, "dev1", device.ID)
		assert.Equal(t, model.TierFree, device.Tier)
		assert.Equal(t, 0, device.DailyImageCount)
		assert.WithinDuration(t, time.Now(), device.LastResetAt, time.Second)
	})

	t.Run("record survives its sessions", func(t *testing.T) {
		s := newTestStore(t)

		id, _ := s.CreateSession("123456", "dev1")
		require.NoError(t, s.EndSession(id))

		device := s.GetOrCreateDevice("dev1")
		assert.WithinDuration(t, time.Now(), device.FirstSeenAt, time.Second)
	})

	t.Run("stale counter resets lazily on access", func(t *testing.T) {
		s := newTestStore(t)

		s.mu.Lock()
		s.devices["dev1"] = &model.Device{
			ID:              "dev1",
			Tier:            model.TierFree,
			DailyImageCount: 5,
			LastResetAt:     time.Now().Add(-25 * time.Hour),
		}
		s.mu.Unlock()

		device := s.GetOrCreateDevice("dev1")
		assert.Equal(t, 0, device.DailyImageCount)
		assert.WithinDuration(t, time.Now(), device.LastResetAt, time.Second)
	})

	t.Run("fresh counter is untouched", func(t *testing.T) {
		s := newTestStore(t)

		s.mu.Lock()
		resetAt := time.Now().Add(-time.Hour)
		s.devices["dev1"] = &model.Device{
			ID:              "dev1",
			Tier:            model.TierFree,
			DailyImageCount: 3,
			LastResetAt:     resetAt,
		}
		s.mu.Unlock()

		device := s.GetOrCreateDevice("dev1")
		assert.Equal(t, 3, device.DailyImageCount)
		assert.Equal(t, resetAt, device.LastResetAt)
	})

	t.Run("SetTier reclassifies a device", func(t *testing.T) {
		s := newTestStore(t)

		s.SetTier("dev1", model.TierPro)
		assert.Equal(t, model.TierPro, s.GetOrCreateDevice("dev1").Tier)
	})
}

// A join racing a create on the same code, and a heartbeat burn racing a
// post, must all observe the store's single lock. The race detector is the
// real assertion here.
func TestStoreConcurrentAccess(t *testing.T) {
	s := newTestStore(t)

	id, _ := s.CreateSession("123456", "dev1")
	s.JoinSession("123456", "dev2")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				switch n % 4 {
				case 0:
					s.PostMessage(id, model.PostMessageParams{
						SenderID: "dev1",
						Payload:  model.EncryptedPayload{Ciphertext: "c", Nonce: "n"},
					})
				case 1:
					s.Heartbeat(id, "dev2")
				case 2:
					s.ListMessages(id)
				case 3:
					s.Status(id)
				}
			}
		}(i)
	}
	wg.Wait()

	// Whatever interleaving happened, a burned session must be fully empty.
	require.NoError(t, s.EndSession(id))
	status := s.Status(id)
	assert.False(t, status.Active)
	assert.Equal(t, 0, status.ParticipantCount)
}

package store

import (
	"time"

	"github.com/burnlink/relay-server-go/internal/config"
	"github.com/burnlink/relay-server-go/internal/model"
)

// deviceLocked returns the device record, creating it on first sight and
// applying the lazy daily quota reset. Callers hold s.mu. Records are
// process-lifetime; nothing ever deletes them.
func (s *Store) deviceLocked(deviceID string, now time.Time) *model.Device {
	device, ok := s.devices[deviceID]
	if !ok {
		device = &model.Device{
			ID:          deviceID,
			Tier:        model.TierFree,
			LastResetAt: now,
			FirstSeenAt: now,
		}
		s.devices[deviceID] = device
		return device
	}

	if now.Sub(device.LastResetAt) > config.QuotaResetInterval {
		device.DailyImageCount = 0
		device.LastResetAt = now
	}
	return device
}

// GetOrCreateDevice returns a copy of the device record after the lazy reset.
func (s *Store) GetOrCreateDevice(deviceID string) model.Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.deviceLocked(deviceID, time.Now())
}

// SetTier reclassifies a device. The relay itself never changes tiers; this
// is the hook for the out-of-band upgrade path.
func (s *Store) SetTier(deviceID string, tier model.Tier) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deviceLocked(deviceID, time.Now()).Tier = tier
}

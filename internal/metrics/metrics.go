// Package metrics keeps in-process counters for the relay's lifecycle events
// and emits a structured log line for each one.
package metrics

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/burnlink/relay-server-go/internal/model"
)

type Collector struct {
	sessionsCreated atomic.Int64
	sessionsBurned  atomic.Int64
	messagesPosted  atomic.Int64
	imagesPosted    atomic.Int64

	mu          sync.Mutex
	devicesSeen map[string]struct{}
}

func NewCollector() *Collector {
	return &Collector{
		devicesSeen: make(map[string]struct{}),
	}
}

func (c *Collector) SessionCreated(sessionID, deviceID string) {
	c.sessionsCreated.Add(1)
	c.DeviceSeen(deviceID)

	log.Info().
		Str("metric", "session_created").
		Str("sessionId", sessionID).
		Msg("relay metric")
}

func (c *Collector) SessionBurned(sessionID string, reason model.BurnReason) {
	c.sessionsBurned.Add(1)

	log.Info().
		Str("metric", "session_burned").
		Str("sessionId", sessionID).
		Str("reason", string(reason)).
		Msg("relay metric")
}

func (c *Collector) MessagePosted(sessionID string, kind model.MessageKind) {
	c.messagesPosted.Add(1)
	if kind == model.KindImage {
		c.imagesPosted.Add(1)
	}

	log.Debug().
		Str("metric", "message_posted").
		Str("sessionId", sessionID).
		Str("kind", string(kind)).
		Msg("relay metric")
}

func (c *Collector) DeviceSeen(deviceID string) {
	c.mu.Lock()
	c.devicesSeen[deviceID] = struct{}{}
	c.mu.Unlock()
}

// Snapshot is a point-in-time view of the counters. ActiveSessions is
// supplied by the store at read time; because expiry is lazy, sessions past
// their deadline that nothing has touched still count as active.
type Snapshot struct {
	SessionsCreated int64 `json:"sessionsCreated"`
	SessionsBurned  int64 `json:"sessionsBurned"`
	ActiveSessions  int   `json:"activeSessions"`
	MessagesPosted  int64 `json:"messagesPosted"`
	ImagesPosted    int64 `json:"imagesPosted"`
	DevicesSeen     int   `json:"devicesSeen"`
}

func (c *Collector) Snapshot(activeSessions int) Snapshot {
	c.mu.Lock()
	devices := len(c.devicesSeen)
	c.mu.Unlock()

	return Snapshot{
		SessionsCreated: c.sessionsCreated.Load(),
		SessionsBurned:  c.sessionsBurned.Load(),
		ActiveSessions:  activeSessions,
		MessagesPosted:  c.messagesPosted.Load(),
		ImagesPosted:    c.imagesPosted.Load(),
		DevicesSeen:     devices,
	}
}

// Package store owns all session and device state for the relay. It is the
// single exclusivity domain the rest of the process talks to: one mutex
// guards the session table, its creation-order index and the device registry,
// so membership changes, message appends and burns are observed atomically.
//
// Expiry and staleness are checked lazily, only when a session is touched by
// a subsequent operation. There is no background sweeper: a free-tier session
// past its deadline that nothing revisits stays in the table marked active
// (and counts as active in the stats snapshot) until the next touch burns it.
package store

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/burnlink/relay-server-go/internal/metrics"
	"github.com/burnlink/relay-server-go/internal/model"
)

type Config struct {
	OfflineTimeout      time.Duration
	FreeSessionTTL      time.Duration
	FreeDailyImageQuota int
}

type Store struct {
	mu sync.Mutex

	sessions map[string]*model.Session
	// order holds session ids oldest-first. Join resolves rendezvous-code
	// collisions by scanning this slice, so the tie-break is deterministic:
	// first match in creation order wins.
	order   []string
	devices map[string]*model.Device

	cfg       Config
	collector *metrics.Collector
}

func New(cfg Config, collector *metrics.Collector) *Store {
	return &Store{
		sessions:  make(map[string]*model.Session),
		devices:   make(map[string]*model.Device),
		cfg:       cfg,
		collector: collector,
	}
}

// burnLocked clears a session atomically: inactive flag, participants,
// last-seen map and message ledger all go in one step. Callers hold s.mu.
// The entry itself stays in the table as a tombstone so end stays idempotent
// and status can still answer for the id.
func (s *Store) burnLocked(sess *model.Session, reason model.BurnReason) {
	sess.Active = false
	sess.Participants.Clear()
	for id := range sess.LastSeen {
		delete(sess.LastSeen, id)
	}
	sess.Messages = nil

	s.collector.SessionBurned(sess.ID, reason)
	log.Info().
		Str("sessionId", sess.ID).
		Str("reason", string(reason)).
		Msg("session burned")
}

// ActiveSessionCount reports sessions whose active flag is set. Lazily
// expired sessions that have not been touched are still counted.
func (s *Store) ActiveSessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, sess := range s.sessions {
		if sess.Active {
			count++
		}
	}
	return count
}

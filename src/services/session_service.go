package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
	"github.com/DrHac-GH/firstrade-tax-app/src/models"
)

// Session owns all state for one client session: the raw row collections,
// the current rate table and the derived transaction collections. Every
// recalculation replaces whole collections; nothing is patched in place.
// The mutex covers all fields; there is no other shared mutable state.
type Session struct {
	ID string

	mu sync.Mutex

	GainLossRows []models.GainLossRow
	DividendRows []models.HistoryRow
	InterestRows []models.HistoryRow

	Rates models.RateTable

	CapitalGains []models.CapitalGainTransaction
	Dividends    []models.DividendTransaction
	Interest     []models.InterestTransaction

	// fetchGeneration guards against a stale in-flight rate response
	// clobbering newer state; fetchBusy gates starting a second fetch
	// while one is outstanding.
	fetchGeneration uint64
	fetchBusy       bool
}

// SessionStore keeps live sessions in an expiring in-memory cache. Expiry
// is the only eviction; nothing survives it.
type SessionStore struct {
	sessions *cache.Cache
	ttl      time.Duration
}

func NewSessionStore(ttl, cleanupInterval time.Duration) *SessionStore {
	return &SessionStore{
		sessions: cache.New(ttl, cleanupInterval),
		ttl:      ttl,
	}
}

// Create registers a new empty session.
func (s *SessionStore) Create() *Session {
	sess := &Session{
		ID:    uuid.NewString(),
		Rates: models.RateTable{},
	}
	s.sessions.Set(sess.ID, sess, cache.DefaultExpiration)
	logger.L.Info("Session created", "sessionID", sess.ID)
	return sess
}

// Get returns the session for id and slides its expiration window.
func (s *SessionStore) Get(id string) (*Session, bool) {
	v, found := s.sessions.Get(id)
	if !found {
		return nil, false
	}
	sess := v.(*Session)
	s.sessions.Set(id, sess, cache.DefaultExpiration)
	return sess, true
}

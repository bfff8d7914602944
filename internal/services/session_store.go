package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/betpay/betpay-wallet/internal/bridge"
	"github.com/betpay/betpay-wallet/internal/submission"
)

const (
	DefaultSessionTTL        = 30 * time.Minute
	DefaultSessionMaxEntries = 10000
)

// WizardSession is one wizard hosted for a remote shell.
type WizardSession struct {
	ID          string
	Coordinator *submission.Coordinator
	Effects     *bridge.Recorder
	CreatedAt   time.Time

	mu      sync.Mutex
	outcome *submission.Outcome
}

// SetOutcome records the outcome of the last action, nil clears it.
func (s *WizardSession) SetOutcome(outcome *submission.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcome = outcome
}

func (s *WizardSession) Outcome() *submission.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// SessionStore keeps the wizard sessions of the HTTP front-end.
type SessionStore interface {
	Store(session *WizardSession) error
	Get(id string) (*WizardSession, bool)
	Len() int
}

var _ SessionStore = (*InMemorySessionStore)(nil)

// InMemorySessionStore keeps sessions in an LRU. A session expires after ttl without activity,
// which is how a user navigating away abandons the draft.
type InMemorySessionStore struct {
	cache *expirable.LRU[string, *WizardSession]
}

// NewInMemorySessionStore creates a new InMemorySessionStore. onEvict, if set, is called for every
// session that expires or is pushed out by newer ones.
func NewInMemorySessionStore(ttl time.Duration, maxEntries int, onEvict func(*WizardSession)) (*InMemorySessionStore, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("maxEntries must be greater than zero")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be greater than zero")
	}

	var evictCallback expirable.EvictCallback[string, *WizardSession]
	if onEvict != nil {
		evictCallback = func(_ string, session *WizardSession) {
			onEvict(session)
		}
	}

	return &InMemorySessionStore{
		cache: expirable.NewLRU(maxEntries, evictCallback, ttl),
	}, nil
}

func (s *InMemorySessionStore) Store(session *WizardSession) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session id cannot be empty")
	}
	s.cache.Add(session.ID, session)
	return nil
}

// Get returns the session and extends its lifetime.
func (s *InMemorySessionStore) Get(id string) (*WizardSession, bool) {
	session, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	s.cache.Add(id, session)
	return session, true
}

func (s *InMemorySessionStore) Len() int {
	return s.cache.Len()
}

// File: internal/session/store.go
package session

import (
	"sync"

	"bluestock_client/internal/shared"

	"go.uber.org/zap"
)

// Snapshot is an immutable view of the session state. Identity and Token
// are set and cleared together; a snapshot never holds one without the
// other, except for the rehydrated case where the identity is a zero value
// pending its first authenticated fetch.
type Snapshot struct {
	Identity shared.UserIdentity
	Token    string
}

// IsAuthenticated is derived: true iff a token is held.
func (s Snapshot) IsAuthenticated() bool {
	return s.Token != ""
}

// Store is the single source of truth for "who is logged in". It is a
// single shared cell; Establish and Clear are whole-state replacements, so
// readers can never observe a half-applied transition.
type Store struct {
	mu      sync.RWMutex
	current Snapshot

	storage TokenStorage
	logger  *zap.Logger
}

// NewStore creates an empty session store. storage receives the durable
// token writes; it may be NoopStorage in tests.
func NewStore(storage TokenStorage, logger *zap.Logger) *Store {
	if storage == nil {
		storage = NoopStorage{}
	}
	return &Store{storage: storage, logger: logger}
}

// Establish atomically replaces the session with the given identity/token
// pair and persists the token. Inputs are trusted: they are produced only
// by a successful auth exchange, so there is no error path for the state
// change itself. A failed durable write is logged and does not undo the
// in-memory session.
func (s *Store) Establish(identity shared.UserIdentity, token string) {
	// The durable write happens under the same lock as the swap, so the
	// persisted token can never lag behind a later transition.
	s.mu.Lock()
	s.current = Snapshot{Identity: identity, Token: token}
	err := s.storage.Save(token)
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("failed to persist session token", zap.Error(err))
	}
	s.logger.Info("session established", zap.String("userID", identity.ID))
}

// Clear resets the session to empty and removes the persisted token.
// Idempotent: clearing an empty store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	wasAuthenticated := s.current.IsAuthenticated()
	s.current = Snapshot{}
	err := s.storage.Delete()
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("failed to remove persisted session token", zap.Error(err))
	}
	if wasAuthenticated {
		s.logger.Info("session cleared")
	}
}

// Read returns the current snapshot. Never blocks beyond the read lock,
// never fails.
func (s *Store) Read() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Rehydrate restores an optimistic session from a previously persisted
// token, if one exists. The identity is unknown until the first
// authenticated call; presence of the token is treated as proof of validity
// until the gateway rejects it, at which point the authenticated transport
// clears the store. Returns true when a token was restored.
func (s *Store) Rehydrate() bool {
	token, err := s.storage.Load()
	if err != nil {
		s.logger.Warn("failed to load persisted session token", zap.Error(err))
		return false
	}
	if token == "" {
		return false
	}

	s.mu.Lock()
	s.current = Snapshot{Token: token}
	s.mu.Unlock()

	s.logger.Info("session rehydrated from persisted token")
	return true
}

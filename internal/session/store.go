// Package session owns the opaque session token issued by the portal
// backend at login. The token is never inspected for validity on the
// client; the server's 401 is the only authoritative signal that a
// session has ended.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// EnvToken overrides the persisted token when set.
const EnvToken = "UHEALTH_TOKEN"

// Store is the single owner of the session token. It keeps the current
// value in memory, persists it to a single file across runs, and fans
// out an invalidation signal when the backend rejects the session.
//
// Reads fail closed: any storage error is reported as "no token", which
// pushes the navigation guard toward requiring a fresh login.
type Store struct {
	path string

	mu    sync.RWMutex
	token string

	invalidated chan struct{}
}

// NewStore creates a store persisting to the given file path and loads
// any existing token. Precedence: env var > file > empty.
func NewStore(path string) *Store {
	s := &Store{
		path:        path,
		invalidated: make(chan struct{}, 1),
	}
	s.token = loadToken(path)
	return s
}

func loadToken(path string) string {
	if tok := os.Getenv(EnvToken); tok != "" {
		return tok
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Token returns the current session token, or "" when absent.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Present reports whether a session token is held. Presence, not
// validity: the token is opaque.
func (s *Store) Present() bool {
	return s.Token() != ""
}

// Set stores a freshly issued token and persists it.
func (s *Store) Set(token string) error {
	token = strings.TrimSpace(token)
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("session: create state dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("session: save token: %w", err)
	}
	return nil
}

// Clear removes the token from memory and disk. Used by logout and by
// the navigation guard when it finds a stray value on a failed check.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		// Memory is already cleared; a leftover file only means the
		// next run starts with a token the server will reject.
		return
	}
}

// Invalidate clears the token and signals subscribers that the session
// ended server-side. The signal is delivered before Invalidate returns,
// so callers propagating a 401 are guaranteed the navigation layer can
// already observe it.
func (s *Store) Invalidate() {
	s.Clear()
	select {
	case s.invalidated <- struct{}{}:
	default: // a signal is already pending; one redirect is enough
	}
}

// Invalidations is the channel the navigation layer subscribes to for
// session-ended signals.
func (s *Store) Invalidations() <-chan struct{} {
	return s.invalidated
}

// Package session owns the bearer token lifecycle. The token is the
// only client state that survives restarts; it lives in a small diskv
// slot under a fixed key until logout or server-side invalidation.
package session

import (
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const tokenKey = "token"

// Store is the persistence contract for the session token.
type Store interface {
	// SetToken persists the token and marks the session authenticated.
	SetToken(token string) error
	// Token reads the persisted token; ok is false when absent.
	Token() (token string, ok bool)
	// Clear removes the token. Clearing an already-cleared session is a
	// no-op, not an error; callers must also discard user, habit, and
	// badge state.
	Clear() error
}

// Load creates a Store backed by diskv using the provided config.
func Load(cfg Config) (Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	return &store{d: diskv.New(diskv.Options{
		BasePath:     cfg.BasePath(),
		CacheSizeMax: 1024, // a token, nothing more
	})}, nil
}

type store struct {
	d *diskv.Diskv
}

func (s *store) SetToken(token string) error {
	return s.d.Write(tokenKey, []byte(strings.TrimSpace(token)))
}

func (s *store) Token() (string, bool) {
	val, err := s.d.Read(tokenKey)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(val))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *store) Clear() error {
	if !s.d.Has(tokenKey) {
		return nil
	}
	return s.d.Erase(tokenKey)
}

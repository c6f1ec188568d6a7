package mem

import (
	"sync"
	"time"
)

type RefreshTokenStore interface {
	Set(jti string, userID string, ttl time.Duration)

	// Consume returns the userID for jti if not expired, and removes the
	// entry (single-use rotation). Returns "" if missing/expired.
	Consume(jti string) string

	// RevokeUser drops every outstanding refresh token of one user. Called
	// when a rotated-out token is presented again: the old copy may be in
	// the wrong hands, so the whole family dies and the user logs in anew.
	RevokeUser(userID string)
}

type entry struct {
	userID    string
	expiresAt time.Time
}

type RefreshTokens struct {
	mu     sync.Mutex
	data   map[string]entry
	byUser map[string]map[string]struct{}
}

func NewRefreshTokens() *RefreshTokens {
	return &RefreshTokens{
		data:   make(map[string]entry),
		byUser: make(map[string]map[string]struct{}),
	}
}

func (s *RefreshTokens) Set(jti string, userID string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[jti] = entry{
		userID:    userID,
		expiresAt: time.Now().Add(ttl),
	}
	if s.byUser[userID] == nil {
		s.byUser[userID] = make(map[string]struct{})
	}
	s.byUser[userID][jti] = struct{}{}
}

func (s *RefreshTokens) Consume(jti string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[jti]
	if !ok {
		return ""
	}
	s.remove(jti, e.userID)
	if time.Now().After(e.expiresAt) {
		return ""
	}
	return e.userID
}

func (s *RefreshTokens) RevokeUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for jti := range s.byUser[userID] {
		delete(s.data, jti)
	}
	delete(s.byUser, userID)
}

func (s *RefreshTokens) remove(jti, userID string) {
	delete(s.data, jti)
	if set := s.byUser[userID]; set != nil {
		delete(set, jti)
		if len(set) == 0 {
			delete(s.byUser, userID)
		}
	}
}

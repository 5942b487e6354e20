// Package auth gates the API behind an email/password sign-in. Identity is an
// external concern; the provider is an interface so the static env-seeded
// implementation can be swapped out.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned when the email/password pair is rejected.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Identity is the signed-in user.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Provider authenticates an email/password pair.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
}

// StaticProvider accepts a single credential pair from configuration.
type StaticProvider struct {
	email    string
	password string
	uid      string
}

func NewStaticProvider(email, password string) *StaticProvider {
	return &StaticProvider{email: email, password: password, uid: uuid.NewString()}
}

func (p *StaticProvider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(p.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(p.password)) == 1
	if !emailOK || !passOK {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{UID: p.uid, Email: p.email}, nil
}

// Sessions maps issued bearer tokens to identities. Tokens live for the
// process lifetime; there is no refresh or expiry.
type Sessions struct {
	mu sync.RWMutex
	m  map[string]Identity
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[string]Identity)}
}

// Issue stores the identity under a fresh token and returns the token.
func (s *Sessions) Issue(id Identity) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.m[token] = id
	s.mu.Unlock()
	return token
}

// Lookup resolves a token back to its identity.
func (s *Sessions) Lookup(token string) (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.m[token]
	return id, ok
}

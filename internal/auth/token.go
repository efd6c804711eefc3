package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// refreshSkew refreshes tokens this long before they actually expire.
const refreshSkew = 60 * time.Second

// SavingTokenSource refreshes expired tokens through the OAuth config and
// hands every fresh token to onSave before use, so a refresh that cannot
// be persisted never silently rotates the stored refresh token.
type SavingTokenSource struct {
	cfg    *oauth2.Config
	onSave func(*oauth2.Token) error

	mu    sync.Mutex
	token *oauth2.Token
}

var _ oauth2.TokenSource = (*SavingTokenSource)(nil)

// NewSavingTokenSource wraps a stored token. onSave may be nil when the
// caller does not need persistence.
func NewSavingTokenSource(cfg *oauth2.Config, token *oauth2.Token, onSave func(*oauth2.Token) error) *SavingTokenSource {
	return &SavingTokenSource{cfg: cfg, onSave: onSave, token: token}
}

// Token returns a valid token, refreshing and persisting it when the
// stored one is within refreshSkew of expiry.
func (s *SavingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Until(s.token.Expiry) > refreshSkew {
		return s.token, nil
	}

	fresh, err := s.cfg.TokenSource(context.Background(), s.token).Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}
	if s.onSave != nil {
		if err := s.onSave(fresh); err != nil {
			return nil, fmt.Errorf("persisting refreshed token: %w", err)
		}
	}
	s.token = fresh
	return fresh, nil
}

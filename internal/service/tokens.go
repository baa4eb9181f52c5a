package service

import (
	"context"

	"github.com/alexanderramin/shopfloor/internal/repository"
)

// SessionTokens serves the stored bearer token to the MES client and
// forgets it when the backend rejects it.
type SessionTokens struct {
	sessions repository.SessionRepo
}

func NewSessionTokens(sessions repository.SessionRepo) *SessionTokens {
	return &SessionTokens{sessions: sessions}
}

func (t *SessionTokens) Token(ctx context.Context) (string, error) {
	s, err := t.sessions.Get(ctx)
	if err != nil {
		return "", err
	}
	return s.Token, nil
}

// Invalidate clears the token but keeps any remembered login.
func (t *SessionTokens) Invalidate(ctx context.Context) error {
	return t.sessions.ClearToken(ctx)
}

func requireToken(ctx context.Context, sessions repository.SessionRepo) error {
	s, err := sessions.Get(ctx)
	if err != nil {
		return err
	}
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

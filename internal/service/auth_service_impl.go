package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shopfloor/internal/auth"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/mes"
	"github.com/alexanderramin/shopfloor/internal/repository"
)

type authService struct {
	client    mes.Client
	sessions  repository.SessionRepo
	publicKey string
	observer  UseCaseObserver
}

func NewAuthService(
	client mes.Client,
	sessions repository.SessionRepo,
	publicKey string,
	observers ...UseCaseObserver,
) AuthService {
	return &authService{
		client:    client,
		sessions:  sessions,
		publicKey: publicKey,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Login encrypts the password, exchanges it for a token and stores the
// token. With remember set the encrypted password is kept for
// LoginRemembered; without it any earlier remembered login is dropped.
func (s *authService) Login(ctx context.Context, username, password string, remember bool) (info *domain.UserInfo, err error) {
	defer observe(ctx, s.observer, "login", time.Now(), map[string]any{"remember": remember}, &err)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	encrypted, err := auth.EncryptPassword(s.publicKey, password)
	if err != nil {
		return nil, err
	}
	if err := s.exchange(ctx, username, encrypted); err != nil {
		return nil, err
	}

	if remember {
		err = s.sessions.SaveRemembered(ctx, username, encrypted)
	} else {
		err = s.sessions.ClearRemembered(ctx)
	}
	if err != nil {
		return nil, err
	}
	return s.client.GetInfo(ctx)
}

// LoginRemembered re-sends the stored encrypted password.
func (s *authService) LoginRemembered(ctx context.Context) (info *domain.UserInfo, err error) {
	defer observe(ctx, s.observer, "login-remembered", time.Now(), nil, &err)

	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.RememberMe || sess.Username == "" || sess.EncryptedPassword == "" {
		return nil, ErrNoRememberedLogin
	}
	if err := s.exchange(ctx, sess.Username, sess.EncryptedPassword); err != nil {
		return nil, err
	}
	return s.client.GetInfo(ctx)
}

func (s *authService) exchange(ctx context.Context, username, encrypted string) error {
	token, err := s.client.LoginMobile(ctx, username, encrypted)
	if err != nil {
		return fmt.Errorf("logging in as %s: %w", username, err)
	}
	return s.sessions.SaveToken(ctx, token)
}

// Logout tells the backend when a token is held, then clears the token and
// the remembered login. Local state is cleared even when the backend call
// fails.
func (s *authService) Logout(ctx context.Context) (err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "logout", time.Now(), fields, &err)

	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return err
	}
	if sess.LoggedIn() {
		if backendErr := s.client.Logout(ctx); backendErr != nil {
			fields["backend_error"] = backendErr.Error()
		}
	}
	return s.sessions.ClearAll(ctx)
}

func (s *authService) Whoami(ctx context.Context) (info *domain.UserInfo, err error) {
	defer observe(ctx, s.observer, "whoami", time.Now(), nil, &err)

	if err := requireToken(ctx, s.sessions); err != nil {
		return nil, err
	}
	return s.client.GetInfo(ctx)
}

func (s *authService) RememberedLogin(ctx context.Context) (*domain.RememberedLogin, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.RememberedLogin{
		Username:          sess.Username,
		EncryptedPassword: sess.EncryptedPassword,
		RememberMe:        sess.RememberMe,
	}, nil
}

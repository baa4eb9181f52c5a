package mes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexanderramin/shopfloor/internal/domain"
)

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginMobile exchanges a username and RSA-encrypted password for a token.
func (c *httpClient) LoginMobile(ctx context.Context, username, encryptedPassword string) (string, error) {
	env, err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/loginMobile",
		body:   loginBody{Username: username, Password: encryptedPassword},
	})
	if err != nil {
		return "", err
	}
	if env.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return env.Token, nil
}

// GetInfo returns the logged-in user's profile. Users without roles get
// domain.DefaultRole.
func (c *httpClient) GetInfo(ctx context.Context) (*domain.UserInfo, error) {
	env, err := c.call(ctx, request{method: http.MethodGet, path: "/getInfo"})
	if err != nil {
		return nil, err
	}

	var info domain.UserInfo
	if err := decodeRaw(env.User, &info); err != nil {
		return nil, fmt.Errorf("decoding user info: %w", err)
	}
	info.Roles = env.Roles
	if len(info.Roles) == 0 {
		info.Roles = []string{domain.DefaultRole}
	}
	info.Permissions = env.Permissions
	if info.Permissions == nil {
		info.Permissions = []string{}
	}
	return &info, nil
}

func (c *httpClient) Logout(ctx context.Context) error {
	_, err := c.call(ctx, request{method: http.MethodPost, path: "/logout"})
	return err
}

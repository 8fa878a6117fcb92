package supabase

import (
	"context"
	"net/http"
)

type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

// SignInWithPassword exchanges credentials for a session at the auth endpoint.
func (c *Client) SignInWithPassword(ctx context.Context, email string, password string) (*Session, error) {
	req, err := c.request(WithAccessToken(ctx, ""))
	if err != nil {
		return nil, err
	}
	var session Session
	req.SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&session)
	if err := c.execute(req, http.MethodPost, "/auth/v1/token", &Error{}); err != nil {
		return nil, err
	}
	return &session, nil
}

// RefreshSession exchanges a refresh token for a new session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	req, err := c.request(WithAccessToken(ctx, ""))
	if err != nil {
		return nil, err
	}
	var session Session
	req.SetQueryParam("grant_type", "refresh_token").
		SetBody(map[string]string{"refresh_token": refreshToken}).
		SetResult(&session)
	if err := c.execute(req, http.MethodPost, "/auth/v1/token", &Error{}); err != nil {
		return nil, err
	}
	return &session, nil
}

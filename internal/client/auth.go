// ABOUTME: Login, signup, and logout against the auth endpoints
// ABOUTME: Successful authentication overwrites the stored bearer token

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Login exchanges email and password for a token. The backend expects an
// OAuth2 password form where the email is sent as username.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, validationError("email and password are required")
	}

	form := url.Values{}
	form.Set("username", strings.TrimSpace(email))
	form.Set("password", password)

	var token Token
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		public:      true,
	}, &token)
	if err != nil {
		return nil, err
	}
	if err := c.persist(token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Signup registers a new account and signs it in
func (c *Client) Signup(ctx context.Context, input SignupInput) (*Token, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	body, err := jsonBody(input)
	if err != nil {
		return nil, err
	}

	var token Token
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/signup",
		body:        body,
		contentType: "application/json",
		public:      true,
	}, &token)
	if err != nil {
		return nil, err
	}
	if err := c.persist(token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *Client) persist(token Token) error {
	if token.AccessToken == "" {
		return &Error{Kind: KindDecode, Status: http.StatusOK, Message: "backend returned an empty access token"}
	}
	if err := c.store.Save(token.AccessToken); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Logout forgets the stored token. No request is made.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a token is stored
func (c *Client) IsAuthenticated() bool {
	return c.token() != ""
}

// Token returns the stored bearer token, or "" when signed out
func (c *Client) Token() string {
	return c.token()
}

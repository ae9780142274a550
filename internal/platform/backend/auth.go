package backend

import (
	"context"
)

// User is the authenticated principal as the auth service reports it.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an issued token pair plus the principal it belongs to.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers a principal with the auth service and returns the
// session issued for it.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var sess Session
	resp, err := c.request(ctx, "").
		SetBody(credentials{Email: email, Password: password}).
		SetResult(&sess).
		Post(authPath + "/signup")
	if err := c.classify("backend.auth.signup", resp, err); err != nil {
		return nil, err
	}
	return &sess, nil
}

// SignIn exchanges email/password credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var sess Session
	resp, err := c.request(ctx, "").
		SetQueryParam("grant_type", "password").
		SetBody(credentials{Email: email, Password: password}).
		SetResult(&sess).
		Post(authPath + "/token")
	if err := c.classify("backend.auth.signin", resp, err); err != nil {
		return nil, err
	}
	return &sess, nil
}

// SignOut revokes the session behind the given access token.
func (c *Client) SignOut(ctx context.Context, token string) error {
	resp, err := c.request(ctx, token).Post(authPath + "/logout")
	return c.classify("backend.auth.signout", resp, err)
}

// GetUser resolves the principal behind an access token.
func (c *Client) GetUser(ctx context.Context, token string) (*User, error) {
	var user User
	resp, err := c.request(ctx, token).
		SetResult(&user).
		Get(authPath + "/user")
	if err := c.classify("backend.auth.get_user", resp, err); err != nil {
		return nil, err
	}
	return &user, nil
}

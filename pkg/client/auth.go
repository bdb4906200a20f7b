package client

import (
	"context"
	"net/url"
)

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Login authenticates with the form-encoded login endpoint, stores the bearer
// token and re-arms the forced-logout guard for the new session.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	var resp authResponse
	if err := c.doForm(ctx, "/auth/login", form, &resp); err != nil {
		return User{}, err
	}
	c.SetToken(resp.AccessToken)
	return resp.User, nil
}

func (c *Client) Register(ctx context.Context, email, fullName, password string) (User, error) {
	body := map[string]string{"email": email, "full_name": fullName, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, "POST", "/auth/register", nil, body, &resp); err != nil {
		return User{}, err
	}
	c.SetToken(resp.AccessToken)
	return resp.User, nil
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	if err := c.doJSON(ctx, "GET", "/auth/me", nil, nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

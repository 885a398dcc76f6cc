package domain

import (
	"context"
	"time"
)

// Client owns zero or more accounts.
type Client struct {
	ID             string
	FirstNames     string
	LastNames      string
	DocumentNumber string
	Email          string
	Phone          string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins first and last names for display.
func (c *Client) FullName() string {
	return c.FirstNames + " " + c.LastNames
}

type clientContextKey struct{}

// ContextWithClient stores the authenticated client in the context.
func ContextWithClient(ctx context.Context, client *Client) context.Context {
	return context.WithValue(ctx, clientContextKey{}, client)
}

// ClientFromContext extracts the authenticated client, if any.
func ClientFromContext(ctx context.Context) (*Client, bool) {
	client, ok := ctx.Value(clientContextKey{}).(*Client)
	return client, ok
}

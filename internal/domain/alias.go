package domain

import "time"

// Alias maps a human-friendly token to an account. Only active aliases
// resolve; inactive rows remain as history.
type Alias struct {
	ID        string
	Value     string
	AccountID string
	ClientID  string
	Active    bool
	CreatedAt time.Time
}

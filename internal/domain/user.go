package domain

import "time"

// User is an identity-keyed record: at most one per caller principal.
// The principal doubles as the storage key, so registration can detect
// duplicates with a single Contains check.
type User struct {
	ID         Principal `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	BTCAddress *string   `json:"btc_address,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

package store

import (
	"context"
	"errors"
)

// ErrTokenNotFound is returned by TokenStore.Get for unknown users. It marks
// a precondition failure for dependent operations, not a storage fault.
var ErrTokenNotFound = errors.New("no token record for user")

// TokenRecord is the volatile per-user credential cache entry. ExpiresAt is
// seconds since epoch, derived from issued_at + expires_in at issuance or
// refresh time.
type TokenRecord struct {
	UserID       string `json:"user_id" dynamodbav:"user_id"`
	AccessToken  string `json:"access_token" dynamodbav:"access_token"`
	RefreshToken string `json:"refresh_token" dynamodbav:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at" dynamodbav:"expires_at"`
}

// TokenStore holds at most one record per user id, last write wins. The
// store never evicts on expiry; staleness is the caller's responsibility.
type TokenStore interface {
	Put(ctx context.Context, record TokenRecord) error
	Get(ctx context.Context, userID string) (*TokenRecord, error)
}

// StateStore records in-flight authorization state nonces server-side so
// each one survives exactly one callback.
type StateStore interface {
	Save(ctx context.Context, state string) error
	// Consume reports whether the state was present and removes it.
	Consume(ctx context.Context, state string) (bool, error)
}

package services

import "errors"

// Failure taxonomy of the session manager. Provider-facing failures wrap the
// upstream discord.StatusError so callers keep the status code and body.
var (
	// ErrStateMismatch marks a callback whose echoed state does not match
	// the one issued for the attempt. Rejected before any token exchange.
	ErrStateMismatch = errors.New("authorization state mismatch")
	// ErrTokenExchange marks a failed authorization-code exchange.
	ErrTokenExchange = errors.New("token exchange failed")
	// ErrIdentityFetch marks a failed identity lookup after a successful
	// exchange. Treated as a token-exchange-stage failure by handlers.
	ErrIdentityFetch = errors.New("identity fetch failed")
	// ErrRefresh marks a failed refresh-token exchange.
	ErrRefresh = errors.New("token refresh failed")
	// ErrMetadataPush marks a failed role-connection write.
	ErrMetadataPush = errors.New("metadata push failed")
	// ErrMetadataFetch marks a failed role-connection read.
	ErrMetadataFetch = errors.New("metadata fetch failed")
)

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Richard0070/api-denzel/crypt"
	"github.com/Richard0070/api-denzel/discord"
	"github.com/Richard0070/api-denzel/store"
)

// OAuthService orchestrates the three-legged authorization flow against the
// identity provider and maintains the per-user token cache.
type OAuthService interface {
	BeginAuthorization(ctx context.Context) (url string, state string, err error)
	CompleteAuthorization(ctx context.Context, code, providedState, expectedState string) (userID string, err error)
	GetFreshAccessToken(ctx context.Context, userID string) (string, error)
	SyncMetadata(ctx context.Context, userID string, metadata map[string]any) error
	GetMetadata(ctx context.Context, userID string) (*discord.RoleConnection, error)
}

type OAuthServiceImpl struct {
	provider     discord.Provider
	tokens       store.TokenStore
	states       store.StateStore
	platformName string

	// now is the single clock source for every expiry decision, injected so
	// refresh timing is deterministic under test.
	now func() time.Time

	// userLocks serializes the expiry-check-and-refresh per user id, so two
	// near-simultaneous requests cannot trigger two refresh calls.
	userLocks sync.Map
}

func NewOAuthServiceImpl(provider discord.Provider, tokens store.TokenStore, states store.StateStore, platformName string) *OAuthServiceImpl {
	return &OAuthServiceImpl{
		provider:     provider,
		tokens:       tokens,
		states:       states,
		platformName: platformName,
		now:          time.Now,
	}
}

// BeginAuthorization mints a fresh single-use state, records it server-side
// and returns the provider authorization URL together with the state. The
// caller persists the state client-side and redirects the user to the URL.
// No Token Store side effects.
func (s *OAuthServiceImpl) BeginAuthorization(ctx context.Context) (string, string, error) {
	state, err := crypt.GenerateState(16)
	if err != nil {
		return "", "", err
	}

	if err := s.states.Save(ctx, state); err != nil {
		return "", "", fmt.Errorf("save authorization state: %w", err)
	}

	return s.provider.AuthorizeURL(state), state, nil
}

// CompleteAuthorization validates the echoed state, exchanges the code,
// resolves the external user id via an identity fetch and stores the
// resulting token record. The record is keyed by the identity-fetch id, never
// by anything in the token response. Replayed authorization codes are the
// provider's problem; no local deduplication is performed.
func (s *OAuthServiceImpl) CompleteAuthorization(ctx context.Context, code, providedState, expectedState string) (string, error) {
	if providedState == "" || providedState != expectedState {
		return "", ErrStateMismatch
	}

	ok, err := s.states.Consume(ctx, providedState)
	if err != nil {
		return "", fmt.Errorf("consume authorization state: %w", err)
	}
	if !ok {
		return "", ErrStateMismatch
	}

	tokens, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}
	issuedAt := s.now()

	identity, err := s.provider.FetchIdentity(ctx, tokens.AccessToken)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIdentityFetch, err)
	}

	userID := identity.UserID()
	record := store.TokenRecord{
		UserID:       userID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    issuedAt.Unix() + tokens.ExpiresIn,
	}
	if err := s.tokens.Put(ctx, record); err != nil {
		return "", fmt.Errorf("store token record: %w", err)
	}

	return userID, nil
}

// GetFreshAccessToken returns a usable access token for the user, refreshing
// it first when the stored one has expired. This is the only path that
// mutates a record after creation.
func (s *OAuthServiceImpl) GetFreshAccessToken(ctx context.Context, userID string) (string, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	record, err := s.tokens.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	if record.ExpiresAt > s.now().Unix() {
		return record.AccessToken, nil
	}

	refreshed, err := s.provider.RefreshToken(ctx, record.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	issuedAt := s.now()

	// The provider may rotate the refresh token; keep the old one when the
	// response omits it.
	refreshToken := refreshed.RefreshToken
	if refreshToken == "" {
		refreshToken = record.RefreshToken
	}

	updated := store.TokenRecord{
		UserID:       userID,
		AccessToken:  refreshed.AccessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    issuedAt.Unix() + refreshed.ExpiresIn,
	}
	if err := s.tokens.Put(ctx, updated); err != nil {
		return "", fmt.Errorf("store refreshed record: %w", err)
	}

	return updated.AccessToken, nil
}

// SyncMetadata pushes the key/value map to the user's role connection. The
// only durable side effect is the token refresh GetFreshAccessToken may have
// performed; the metadata itself is never persisted locally, so repeating the
// call replays an identical provider write.
func (s *OAuthServiceImpl) SyncMetadata(ctx context.Context, userID string, metadata map[string]any) error {
	accessToken, err := s.GetFreshAccessToken(ctx, userID)
	if err != nil {
		return err
	}

	conn := discord.RoleConnection{
		PlatformName: s.platformName,
		Metadata:     metadata,
	}
	if err := s.provider.PushMetadata(ctx, accessToken, conn); err != nil {
		return fmt.Errorf("%w: %w", ErrMetadataPush, err)
	}
	return nil
}

// GetMetadata reads back the user's current role connection from the provider.
func (s *OAuthServiceImpl) GetMetadata(ctx context.Context, userID string) (*discord.RoleConnection, error) {
	accessToken, err := s.GetFreshAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	conn, err := s.provider.FetchMetadata(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetadataFetch, err)
	}
	return conn, nil
}

func (s *OAuthServiceImpl) userLock(userID string) *sync.Mutex {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

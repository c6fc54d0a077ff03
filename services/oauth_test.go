package services

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Richard0070/api-denzel/discord"
	"github.com/Richard0070/api-denzel/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider counts every provider call and returns canned responses, so
// tests can assert exactly how many network calls an operation would make.
type stubProvider struct {
	mu sync.Mutex

	exchangeCalls int
	refreshCalls  int
	identityCalls int
	pushCalls     int
	fetchCalls    int

	exchangeResp *discord.TokenResponse
	exchangeErr  error
	refreshResp  *discord.TokenResponse
	refreshErr   error
	identityID   string
	pushErr      error
	fetchResp    *discord.RoleConnection
	fetchErr     error

	lastRefreshToken string
	lastPushToken    string
	lastPush         discord.RoleConnection
}

func (p *stubProvider) AuthorizeURL(state string) string {
	return "https://discord.com/api/oauth2/authorize?client_id=1234&state=" + state
}

func (p *stubProvider) ExchangeCode(ctx context.Context, code string) (*discord.TokenResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exchangeCalls++
	return p.exchangeResp, p.exchangeErr
}

func (p *stubProvider) RefreshToken(ctx context.Context, refreshToken string) (*discord.TokenResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshCalls++
	p.lastRefreshToken = refreshToken
	return p.refreshResp, p.refreshErr
}

func (p *stubProvider) FetchIdentity(ctx context.Context, accessToken string) (*discord.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.identityCalls++
	identity := &discord.Identity{}
	identity.User.ID = p.identityID
	return identity, nil
}

func (p *stubProvider) PushMetadata(ctx context.Context, accessToken string, conn discord.RoleConnection) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushCalls++
	p.lastPushToken = accessToken
	p.lastPush = conn
	return p.pushErr
}

func (p *stubProvider) FetchMetadata(ctx context.Context, accessToken string) (*discord.RoleConnection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetchCalls++
	return p.fetchResp, p.fetchErr
}

func newTestService(p *stubProvider) (*OAuthServiceImpl, *store.MemoryTokenStore) {
	tokens := store.NewMemoryTokenStore()
	states := store.NewMemoryStateStore(5 * time.Minute)
	svc := NewOAuthServiceImpl(p, tokens, states, "")
	return svc, tokens
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestBeginAuthorization_StateFormat(t *testing.T) {
	svc, _ := newTestService(&stubProvider{})

	url, state, err := svc.BeginAuthorization(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile("^[0-9a-f]{32}$"), state)
	assert.Contains(t, url, "state="+state)
}

func TestCompleteAuthorization_StoresRecord(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := &stubProvider{
		exchangeResp: &discord.TokenResponse{AccessToken: "AT1", RefreshToken: "RT1", ExpiresIn: 604800},
		identityID:   "42",
	}
	svc, tokens := newTestService(p)
	svc.now = fixedClock(now)
	ctx := context.Background()

	_, state, err := svc.BeginAuthorization(ctx)
	require.NoError(t, err)

	userID, err := svc.CompleteAuthorization(ctx, "abc", state, state)
	require.NoError(t, err)
	assert.Equal(t, "42", userID)

	record, err := tokens.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "AT1", record.AccessToken)
	assert.Equal(t, "RT1", record.RefreshToken)
	assert.Equal(t, now.Unix()+604800, record.ExpiresAt)
}

func TestCompleteAuthorization_StateMismatchSkipsExchange(t *testing.T) {
	p := &stubProvider{
		exchangeResp: &discord.TokenResponse{AccessToken: "AT1", ExpiresIn: 3600},
		identityID:   "42",
	}
	svc, _ := newTestService(p)
	ctx := context.Background()

	_, state, err := svc.BeginAuthorization(ctx)
	require.NoError(t, err)

	_, err = svc.CompleteAuthorization(ctx, "abc", "tampered", state)
	assert.ErrorIs(t, err, ErrStateMismatch)
	assert.Zero(t, p.exchangeCalls)
}

func TestCompleteAuthorization_StateSingleUse(t *testing.T) {
	p := &stubProvider{
		exchangeResp: &discord.TokenResponse{AccessToken: "AT1", RefreshToken: "RT1", ExpiresIn: 3600},
		identityID:   "42",
	}
	svc, _ := newTestService(p)
	ctx := context.Background()

	_, state, err := svc.BeginAuthorization(ctx)
	require.NoError(t, err)

	_, err = svc.CompleteAuthorization(ctx, "abc", state, state)
	require.NoError(t, err)

	// replaying the same state must fail before another exchange
	_, err = svc.CompleteAuthorization(ctx, "abc", state, state)
	assert.ErrorIs(t, err, ErrStateMismatch)
	assert.Equal(t, 1, p.exchangeCalls)
}

func TestCompleteAuthorization_ExchangeFailure(t *testing.T) {
	p := &stubProvider{
		exchangeErr: &discord.StatusError{StatusCode: http.StatusBadRequest, Body: `{"error":"invalid_grant"}`},
	}
	svc, _ := newTestService(p)
	ctx := context.Background()

	_, state, err := svc.BeginAuthorization(ctx)
	require.NoError(t, err)

	_, err = svc.CompleteAuthorization(ctx, "used-up", state, state)
	require.ErrorIs(t, err, ErrTokenExchange)
	assert.Contains(t, err.Error(), "invalid_grant")
	assert.Zero(t, p.identityCalls)
}

func TestGetFreshAccessToken_NotFound(t *testing.T) {
	p := &stubProvider{}
	svc, _ := newTestService(p)

	_, err := svc.GetFreshAccessToken(context.Background(), "42")
	assert.ErrorIs(t, err, store.ErrTokenNotFound)
	assert.Zero(t, p.refreshCalls)
}

func TestGetFreshAccessToken_ValidTokenUnchanged(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := &stubProvider{}
	svc, tokens := newTestService(p)
	svc.now = fixedClock(now)
	ctx := context.Background()

	require.NoError(t, tokens.Put(ctx, store.TokenRecord{
		UserID: "42", AccessToken: "AT1", RefreshToken: "RT1", ExpiresAt: now.Unix() + 60,
	}))

	got, err := svc.GetFreshAccessToken(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "AT1", got)
	assert.Zero(t, p.refreshCalls)
}

func TestGetFreshAccessToken_ExpiredTriggersOneRefresh(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := &stubProvider{
		refreshResp: &discord.TokenResponse{AccessToken: "AT2", ExpiresIn: 3600},
	}
	svc, tokens := newTestService(p)
	svc.now = fixedClock(now)
	ctx := context.Background()

	require.NoError(t, tokens.Put(ctx, store.TokenRecord{
		UserID: "42", AccessToken: "AT1", RefreshToken: "RT1", ExpiresAt: now.Unix() - 1,
	}))

	got, err := svc.GetFreshAccessToken(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "AT2", got)
	assert.Equal(t, 1, p.refreshCalls)
	assert.Equal(t, "RT1", p.lastRefreshToken)

	record, err := tokens.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "AT2", record.AccessToken)
	assert.Equal(t, now.Unix()+3600, record.ExpiresAt)
	// refresh response omitted a refresh token, the old one is retained
	assert.Equal(t, "RT1", record.RefreshToken)
}

func TestGetFreshAccessToken_RotatedRefreshTokenReplaces(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := &stubProvider{
		refreshResp: &discord.TokenResponse{AccessToken: "AT2", RefreshToken: "RT2", ExpiresIn: 3600},
	}
	svc, tokens := newTestService(p)
	svc.now = fixedClock(now)
	ctx := context.Background()

	require.NoError(t, tokens.Put(ctx, store.TokenRecord{
		UserID: "42", AccessToken: "AT1", RefreshToken: "RT1", ExpiresAt: now.Unix(),
	}))

	_, err := svc.GetFreshAccessToken(ctx, "42")
	require.NoError(t, err)

	record, err := tokens.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "RT2", record.RefreshToken)
}

func TestGetFreshAccessToken_RefreshFailure(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := &stubProvider{
		refreshErr: &discord.StatusError{StatusCode: http.StatusUnauthorized, Body: "revoked"},
	}
	svc, tokens := newTestService(p)
	svc.now = fixedClock(now)
	ctx := context.Background()

	require.NoError(t, tokens.Put(ctx, store.TokenRecord{
		UserID: "42", AccessToken: "AT1", RefreshToken: "RT1", ExpiresAt: now.Unix() - 1,
	}))

	_, err := svc.GetFreshAccessToken(ctx, "42")
	require.ErrorIs(t, err, ErrRefresh)
	assert.Contains(t, err.Error(), "revoked")

	// the stale record stays in place; the failure is the caller's to handle
	record, getErr := tokens.Get(ctx, "42")
	require.NoError(t, getErr)
	assert.Equal(t, "AT1", record.AccessToken)
}

func TestSyncMetadata_UnknownUserNoNetworkCalls(t *testing.T) {
	p := &stubProvider{}
	svc, _ := newTestService(p)

	err := svc.SyncMetadata(context.Background(), "42", map[string]any{"is_verified": true})
	assert.ErrorIs(t, err, store.ErrTokenNotFound)
	assert.Zero(t, p.refreshCalls)
	assert.Zero(t, p.pushCalls)
}

func TestSyncMetadata_PushesWithFreshToken(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := &stubProvider{}
	svc, tokens := newTestService(p)
	svc.now = fixedClock(now)
	ctx := context.Background()

	require.NoError(t, tokens.Put(ctx, store.TokenRecord{
		UserID: "42", AccessToken: "AT1", RefreshToken: "RT1", ExpiresAt: now.Unix() + 3600,
	}))

	err := svc.SyncMetadata(ctx, "42", map[string]any{"is_verified": true})
	require.NoError(t, err)

	assert.Equal(t, 1, p.pushCalls)
	assert.Equal(t, "AT1", p.lastPushToken)
	assert.Equal(t, map[string]any{"is_verified": true}, p.lastPush.Metadata)
	assert.Empty(t, p.lastPush.PlatformName)
}

func TestSyncMetadata_Idempotent(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := &stubProvider{}
	svc, tokens := newTestService(p)
	svc.now = fixedClock(now)
	ctx := context.Background()

	require.NoError(t, tokens.Put(ctx, store.TokenRecord{
		UserID: "42", AccessToken: "AT1", RefreshToken: "RT1", ExpiresAt: now.Unix() + 3600,
	}))

	meta := map[string]any{"is_verified": true}
	require.NoError(t, svc.SyncMetadata(ctx, "42", meta))
	first := p.lastPush
	require.NoError(t, svc.SyncMetadata(ctx, "42", meta))

	// nothing caches the first push; the provider sees two identical writes
	assert.Equal(t, 2, p.pushCalls)
	assert.Equal(t, first, p.lastPush)
}

func TestSyncMetadata_PushFailureKeepsRecord(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := &stubProvider{
		pushErr: &discord.StatusError{StatusCode: http.StatusBadGateway, Body: "upstream"},
	}
	svc, tokens := newTestService(p)
	svc.now = fixedClock(now)
	ctx := context.Background()

	require.NoError(t, tokens.Put(ctx, store.TokenRecord{
		UserID: "42", AccessToken: "AT1", RefreshToken: "RT1", ExpiresAt: now.Unix() + 3600,
	}))

	err := svc.SyncMetadata(ctx, "42", map[string]any{"is_verified": true})
	require.ErrorIs(t, err, ErrMetadataPush)

	_, getErr := tokens.Get(ctx, "42")
	assert.NoError(t, getErr)
}

func TestGetMetadata(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := &stubProvider{
		fetchResp: &discord.RoleConnection{Metadata: map[string]any{"level": float64(7)}},
	}
	svc, tokens := newTestService(p)
	svc.now = fixedClock(now)
	ctx := context.Background()

	require.NoError(t, tokens.Put(ctx, store.TokenRecord{
		UserID: "42", AccessToken: "AT1", RefreshToken: "RT1", ExpiresAt: now.Unix() + 3600,
	}))

	conn, err := svc.GetMetadata(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"level": float64(7)}, conn.Metadata)
}

func TestGetMetadata_UnknownUserNoNetworkCalls(t *testing.T) {
	p := &stubProvider{}
	svc, _ := newTestService(p)

	_, err := svc.GetMetadata(context.Background(), "42")
	assert.ErrorIs(t, err, store.ErrTokenNotFound)
	assert.Zero(t, p.fetchCalls)
}

func TestGetFreshAccessToken_ConcurrentSingleRefresh(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := &stubProvider{
		refreshResp: &discord.TokenResponse{AccessToken: "AT2", ExpiresIn: 3600},
	}
	svc, tokens := newTestService(p)
	svc.now = fixedClock(now)
	ctx := context.Background()

	require.NoError(t, tokens.Put(ctx, store.TokenRecord{
		UserID: "42", AccessToken: "AT1", RefreshToken: "RT1", ExpiresAt: now.Unix() - 1,
	}))

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := 0; i < len(results); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := svc.GetFreshAccessToken(ctx, "42")
			assert.NoError(t, err)
			results[i] = token
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, p.refreshCalls)
	assert.Equal(t, strings.Repeat("AT2,", 8), strings.Join(results, ",")+",")
}

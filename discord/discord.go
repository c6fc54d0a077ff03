package discord

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/Richard0070/api-denzel/config"
)

// Provider is the surface of the identity provider consumed by the session
// manager. Everything behind it is one network call with no retries.
type Provider interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error)
	FetchIdentity(ctx context.Context, accessToken string) (*Identity, error)
	PushMetadata(ctx context.Context, accessToken string, conn RoleConnection) error
	FetchMetadata(ctx context.Context, accessToken string) (*RoleConnection, error)
}

type discordProvider struct {
	cfg    config.DiscordConfig
	client *client
}

func NewProvider(cfg config.DiscordConfig) Provider {
	return &discordProvider{
		cfg:    cfg,
		client: newClient(10 * time.Second),
	}
}

func (p *discordProvider) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", p.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", p.cfg.Scopes)
	q.Set("state", state)

	return p.cfg.BaseURL + "/api/oauth2/authorize?" + q.Encode()
}

func (p *discordProvider) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	data := url.Values{}
	data.Set("client_id", p.cfg.ClientID)
	data.Set("client_secret", p.cfg.ClientSecret)
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", p.cfg.RedirectURI)

	return p.requestToken(ctx, data)
}

func (p *discordProvider) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	data := url.Values{}
	data.Set("client_id", p.cfg.ClientID)
	data.Set("client_secret", p.cfg.ClientSecret)
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)

	return p.requestToken(ctx, data)
}

func (p *discordProvider) requestToken(ctx context.Context, data url.Values) (*TokenResponse, error) {
	var resp TokenResponse
	if err := p.client.PostFormJSON(ctx, p.cfg.BaseURL+"/api/v10/oauth2/token", data, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("empty access token in provider response")
	}
	return &resp, nil
}

func (p *discordProvider) FetchIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	var identity Identity
	if err := p.client.GetJSONWithToken(ctx, p.cfg.BaseURL+"/api/v10/oauth2/@me", accessToken, &identity); err != nil {
		return nil, err
	}
	if identity.UserID() == "" {
		return nil, fmt.Errorf("provider identity carries no user id")
	}
	return &identity, nil
}

func (p *discordProvider) roleConnectionURL() string {
	return p.cfg.BaseURL + "/api/v10/users/@me/applications/" + p.cfg.AppID + "/role-connection"
}

func (p *discordProvider) PushMetadata(ctx context.Context, accessToken string, conn RoleConnection) error {
	return p.client.PutJSONWithToken(ctx, p.roleConnectionURL(), accessToken, conn, nil)
}

func (p *discordProvider) FetchMetadata(ctx context.Context, accessToken string) (*RoleConnection, error) {
	var conn RoleConnection
	if err := p.client.GetJSONWithToken(ctx, p.roleConnectionURL(), accessToken, &conn); err != nil {
		return nil, err
	}
	return &conn, nil
}

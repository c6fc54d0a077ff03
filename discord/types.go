package discord

// TokenResponse is the JSON shape of the provider's token endpoint, for both
// the authorization_code and refresh_token grants.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope,omitempty"`
}

// Identity is the authorization info returned by /oauth2/@me. Depending on
// the granted scopes the user id arrives nested under "user" or at the top
// level, so both are decoded.
type Identity struct {
	ID   string `json:"id"`
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

// UserID returns the external user id regardless of where the provider put it.
func (i *Identity) UserID() string {
	if i.User.ID != "" {
		return i.User.ID
	}
	return i.ID
}

// RoleConnection is the payload of the role-connection endpoint. Metadata
// values must be strings, numbers or booleans.
type RoleConnection struct {
	PlatformName     string         `json:"platform_name,omitempty"`
	PlatformUsername string         `json:"platform_username,omitempty"`
	Metadata         map[string]any `json:"metadata"`
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	AppID        string
	RedirectURI  string
	// BaseURL is overridable so tests can point the client at a stub server.
	BaseURL string
	Scopes  string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type DynamoDBConfig struct {
	Region          string
	TokensTableName string
}

type CardsConfig struct {
	WelcomeTemplate string
	RankTemplate    string
	FontPath        string
}

type Config struct {
	Env         string
	GatewayAddr string
	CorsOrigins string
	Tracing     bool

	// TokenStore selects the token record backend: memory, redis or dynamo.
	TokenStore string
	// StateStore selects the authorization state backend: memory or redis.
	StateStore string

	// PlatformName and DefaultMetadata are pushed to the role-connection
	// endpoint when a caller does not supply its own metadata map.
	PlatformName    string
	DefaultMetadata map[string]any

	Discord  DiscordConfig
	Redis    RedisConfig
	DynamoDB DynamoDBConfig
	Cards    CardsConfig
}

func Load() Config {
	cfg := Config{
		Env:         getEnv("ENV", "DEV"),
		GatewayAddr: getEnv("GATEWAY_ADDR", ":8080"),
		CorsOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		Tracing:     getEnvBool("TRACING", false),
		TokenStore:  getEnv("TOKEN_STORE", "memory"),
		StateStore:  getEnv("STATE_STORE", "memory"),

		PlatformName: getEnv("PLATFORM_NAME", ""),

		Discord: DiscordConfig{
			ClientID:     os.Getenv("DISCORD_CLIENT_ID"),
			ClientSecret: os.Getenv("DISCORD_CLIENT_SECRET"),
			AppID:        os.Getenv("DISCORD_APP_ID"),
			RedirectURI:  getEnv("DISCORD_REDIRECT_URI", "http://localhost:8080/discord-oauth-callback"),
			BaseURL:      getEnv("DISCORD_BASE_URL", "https://discord.com"),
			Scopes:       getEnv("DISCORD_SCOPES", "identify role_connections.write"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		DynamoDB: DynamoDBConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			TokensTableName: getEnv("DYNAMODB_TOKENS_TABLE", "discord_tokens"),
		},
		Cards: CardsConfig{
			// Blank paths make the renderer fall back to a drawn background
			// and its builtin font, so cards work without bundled assets.
			WelcomeTemplate: os.Getenv("WELCOME_CARD_TEMPLATE"),
			RankTemplate:    os.Getenv("RANK_CARD_TEMPLATE"),
			FontPath:        os.Getenv("CARD_FONT_PATH"),
		},
	}

	if raw := os.Getenv("DEFAULT_METADATA"); raw != "" {
		meta := map[string]any{}
		if err := json.Unmarshal([]byte(raw), &meta); err == nil {
			cfg.DefaultMetadata = meta
		}
	}

	return cfg
}

// ValidateSecrets reports the first missing credential required to talk to
// the identity provider.
func (c Config) ValidateSecrets() error {
	if c.Discord.ClientID == "" {
		return fmt.Errorf("DISCORD_CLIENT_ID is required")
	}
	if c.Discord.ClientSecret == "" {
		return fmt.Errorf("DISCORD_CLIENT_SECRET is required")
	}
	if c.Discord.AppID == "" {
		return fmt.Errorf("DISCORD_APP_ID is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

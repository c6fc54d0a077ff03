package main

import (
	"context"
	"log"
	"time"

	"github.com/Richard0070/api-denzel/auth"
	"github.com/Richard0070/api-denzel/cards"
	"github.com/Richard0070/api-denzel/discord"
	"github.com/Richard0070/api-denzel/services"
	"github.com/Richard0070/api-denzel/store"
)

type Stores struct {
	tokens store.TokenStore
	states store.StateStore
}

type Services struct {
	OAuth services.OAuthService
	Cards *cards.Renderer

	Stores *Stores
}

type Shutdowner interface {
	Shutdown(context.Context) error
}

func BuildServices(app *App) *Services {
	cfg := app.Config

	var tokens store.TokenStore
	switch cfg.TokenStore {
	case "redis":
		tokens = store.NewRedisTokenStore(app.Redis)
	case "dynamo":
		tokens = store.NewDynamoDbTokenStore(app.DynamoDB, cfg.DynamoDB.TokensTableName)
	default:
		tokens = store.NewMemoryTokenStore()
	}

	stateTTL := auth.StateCookieMaxAge * time.Second

	var states store.StateStore
	switch cfg.StateStore {
	case "redis":
		states = store.NewRedisStateStore(app.Redis, stateTTL)
	default:
		states = store.NewMemoryStateStore(stateTTL)
	}

	provider := discord.NewProvider(cfg.Discord)
	oauthSvc := services.NewOAuthServiceImpl(provider, tokens, states, cfg.PlatformName)

	renderer := cards.NewRenderer(cards.Options{
		WelcomeTemplate: cfg.Cards.WelcomeTemplate,
		RankTemplate:    cfg.Cards.RankTemplate,
		FontPath:        cfg.Cards.FontPath,
	})

	return &Services{
		OAuth: oauthSvc,
		Cards: renderer,

		Stores: &Stores{
			tokens: tokens,
			states: states,
		},
	}
}

func (s *Services) Shutdown(ctx context.Context) error {
	log.Println("shutting down services")

	if s.Stores != nil {
		if err := s.Stores.Shutdown(ctx); err != nil {
			log.Printf("stores shutdown error: %v", err)
		}
	}

	log.Println("services shutdown complete")
	return nil
}

func (s *Stores) Shutdown(ctx context.Context) error {
	log.Println("shutting down stores")

	shutdownIfPossible := func(name string, v any) {
		if sh, ok := v.(Shutdowner); ok {
			if err := sh.Shutdown(ctx); err != nil {
				log.Printf("%s store shutdown error: %v", name, err)
			}
		}
	}

	shutdownIfPossible("tokens", s.tokens)
	shutdownIfPossible("states", s.states)

	log.Println("stores shutdown complete")
	return nil
}

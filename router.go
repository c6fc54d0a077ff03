package main

import (
	"log"
	"strings"
	"time"

	"github.com/Richard0070/api-denzel/auth"
	"github.com/Richard0070/api-denzel/cards"
	"github.com/Richard0070/api-denzel/health"
	"github.com/Richard0070/api-denzel/logging"
	"github.com/Richard0070/api-denzel/middleware"
	"github.com/Richard0070/api-denzel/responses"
	"github.com/Richard0070/api-denzel/routers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func BuildRouter(app *App) *gin.Engine {
	r := gin.New()

	applyCors(r, app)
	applyLogging(r, app)
	applyRateLimiting(r, app)
	applyTracing(r, app)
	applySwagger(r, app)

	registerRoutes(r, app, app.Services)

	return r
}

func applyCors(r *gin.Engine, app *App) {
	origins := strings.Split(app.Config.CorsOrigins, ",")
	r.Use(cors.New(
		cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
		},
	))
}

func applyLogging(r *gin.Engine, app *App) {
	baseLogger := logging.CreateLogger(app.Config.Env)
	r.Use(logging.LoggerMiddleware(baseLogger))
}

func applyRateLimiting(r *gin.Engine, app *App) {
	rateLimiter := middleware.NewRedisRateLimiter(app.Redis)
	r.Use(middleware.RateLimiterMiddleware(rateLimiter, 100, time.Minute))
}

func applyTracing(r *gin.Engine, app *App) {
	if !app.Config.Tracing {
		return
	}

	tp, err := StartTracing()
	if err != nil {
		log.Fatalf("failed to start tracing: %v", err)
	}

	app.TracerProvider = tp
	r.Use(otelgin.Middleware("api-denzel"))
}

func applySwagger(r *gin.Engine, app *App) {
	if app.Config.Env == "PROD" {
		return
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func registerRoutes(r *gin.Engine, app *App, s *Services) {
	r.GET("/test", func(ctx *gin.Context) {
		responses.JSONSuccess(ctx, "ok")
	})

	var checks []health.ReadinessCheck
	if c, ok := s.Stores.tokens.(health.ReadinessCheck); ok {
		checks = append(checks, c)
	}
	if c, ok := s.Stores.states.(health.ReadinessCheck); ok {
		checks = append(checks, c)
	}
	routers.RegisterHealthRoutes(health.NewHealthHandler(checks...), r)

	routers.RegisterAuthRoutes(
		auth.NewLinkedRolesHandler(s.OAuth, app.Config.DefaultMetadata, app.Config.Env == "PROD"),
		r,
	)

	routers.RegisterCardRoutes(
		cards.NewCardsHandler(s.Cards),
		r,
	)
}

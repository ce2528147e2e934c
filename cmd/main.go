package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"loki-mcp/config"
	_ "loki-mcp/docs"
	"loki-mcp/internal/controller"
	"loki-mcp/internal/health"
	"loki-mcp/internal/logql"
	"loki-mcp/internal/loki"
	"loki-mcp/internal/middleware"
	"loki-mcp/internal/parser"
	"loki-mcp/internal/repository"
	"loki-mcp/internal/scheduler"
	"loki-mcp/internal/service"
	"loki-mcp/internal/tools"
)

// @title           Loki MCP API
// @version         1.0
// @description     Semantic log querying over Grafana Loki: error summaries, pod restarts, regex search and namespace/pod inventory.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /
// @schemes   http https

// @tag.name         logs
// @tag.description  Error summaries, restarts, search and pod logs

// @tag.name         inventory
// @tag.description  Namespaces and pods that have logs

// @tag.name         tools
// @tag.description  Static tool table and tool invocation

// @tag.name         health
// @tag.description  Liveness and Loki readiness

func main() {
	app := fx.New(
		fx.NopLogger,
		// Core Dependencies
		fx.Provide(
			NewConfig,
		),
		// Infrastructure Dependencies
		fx.Provide(
			NewGinEngine,
			loki.NewClient,
			parser.NewLokiResultParser,
			NewLogRepository,
			NewQueryBuilder,
			health.NewStatus,
			service.NewLogQueryService,
			tools.NewRegistry,
			controller.NewLogController,
			controller.NewToolController,
			controller.NewHealthController,
		),
		fx.Invoke(RegisterAPIRoutes,
			RegisterScheduler,
		),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second) // Timeout for startup
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}
	<-app.Done()

	// Initiate shutdown
	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second) // Timeout for graceful shutdown
	defer cancelStop()
	log.Info().Msg("Shutting down application...")
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown due to error or timeout")
	}
	log.Info().Msg("Shutdown complete. Exiting.")
}

func NewConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	if err := config.ConfigureLogger(cfg.Logging); err != nil {
		return nil, err
	}
	return cfg, nil
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	// Configure CORS
	allowAll := len(cfg.Server.AllowOrigins) == 0 || (len(cfg.Server.AllowOrigins) == 1 && cfg.Server.AllowOrigins[0] == "*")
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.AllowOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// Add swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// NewLogRepository wraps the Loki repository with retries when LOKI_MAX_RETRIES > 0.
func NewLogRepository(cfg *config.Config, client loki.Client, resultParser parser.ResultParser) repository.LogRepository {
	return loki.NewRetryingLogRepository(loki.NewLokiLogRepository(client, resultParser), cfg.Loki.MaxRetries)
}

func NewQueryBuilder(cfg *config.Config) *logql.Builder {
	return logql.NewBuilder(cfg.Loki.PodLabel, cfg.Loki.MaxLimit)
}

func RegisterAPIRoutes(
	lifecycle fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	logController *controller.LogController,
	toolController *controller.ToolController,
	healthController *controller.HealthController,
) {
	controller.RegisterLogRoutes(router, logController)
	controller.RegisterToolRoutes(router, toolController)
	controller.RegisterHealthRoutes(router, healthController)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Str("addr", server.Addr).Str("loki_url", cfg.Loki.URL).Msg("Starting HTTP server")
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error().Err(err).Msg("HTTP server ListenAndServe error")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Shutting down HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}

// --- Invoker Functions ---

func RegisterScheduler(lc fx.Lifecycle, cfg *config.Config, client loki.Client, status *health.Status) {
	scheduler.NewScheduler(lc, cfg, client, status)
}

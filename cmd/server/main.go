package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signal-council/internal/advisor"
	"signal-council/internal/bot"
	"signal-council/internal/cache"
	"signal-council/internal/config"
	"signal-council/internal/db"
	"signal-council/internal/director"
	"signal-council/internal/engine"
	"signal-council/internal/handler"
	"signal-council/internal/job"
	"signal-council/internal/provider"
	"signal-council/internal/repository"
	"signal-council/internal/service"
	"signal-council/internal/specialist"
	"signal-council/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "signal-council/docs"
)

var (
	loadEnvFunc      = godotenv.Load
	loadConfigFunc   = config.Load
	initPostgresFunc = db.InitPostgres
	initRedisFunc    = cache.InitRedis
	initTracerFunc   = tracing.InitTracer
	newPnLSourceFunc = func(tracer trace.Tracer, baseURL string) job.PnLSource {
		return provider.NewHTTPPnLSource(tracer, baseURL)
	}
	startResolverFunc      = func(j *job.OutcomeResolverJob, ctx context.Context) { go j.Start(ctx) }
	startBotFunc           = bot.StartTelegramBot
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Signal Council API
// @version         1.0
// @description     Weighted council of trading strategies producing graded, self-adjusting decisions.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	decisionRepo := repository.NewDecisionRepository(db.Pool, tracer)
	perfRepo := repository.NewPerformanceRepository(db.Pool, tracer)

	directors := director.FromGroups(specialist.DefaultGroups())
	council := engine.New(tracer, directors, decisionRepo, perfRepo, engine.Config{
		TrustAlpha:     cfg.TrustAlpha,
		MaterialityPnL: cfg.MaterialityPnLPct,
	})

	perfService := service.NewPerformanceService(tracer, council, perfRepo, cache.Client,
		time.Duration(cfg.PerfCacheTTLSecs)*time.Second)

	var llm advisor.LLMClient
	if cfg.OpenAIAPIKey != "" {
		llm = advisor.NewOpenAIClient(cfg.OpenAIAPIKey)
	}
	explainer := advisor.NewExplainerService(tracer, llm, cfg.OpenAIModel)

	// Automatic outcome resolution only runs with a pnl feed configured;
	// outcomes can always be posted through the API regardless.
	var pnlSource job.PnLSource
	if cfg.PnLSourceURL != "" {
		pnlSource = newPnLSourceFunc(tracer, cfg.PnLSourceURL)
	}
	resolver := job.NewOutcomeResolverJob(tracer, decisionRepo, pnlSource, council,
		time.Duration(cfg.ResolverPollSecs)*time.Second,
		time.Duration(cfg.OutcomeDeadlineHrs)*time.Hour,
		cfg.ResolverBatchSize)
	startResolverFunc(resolver, ctx)

	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startBotFunc(decisionRepo, perfService, explainer)

	h := handler.New(tracer, council, decisionRepo, perfService)
	h.SetExplainer(explainer)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("signal-council"))

	h.RegisterRoutes(r, handler.APIKeyAuth(cfg.APIKey), handler.RateLimit(cfg.RateLimitPerMin))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

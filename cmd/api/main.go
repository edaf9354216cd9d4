package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"not-project-backend/internal/common/pagination"
	secconfig "not-project-backend/internal/config"
	"not-project-backend/internal/infra/assetstore"
	"not-project-backend/internal/infra/captcha"
	"not-project-backend/internal/infra/db"
	"not-project-backend/internal/infra/image"
	"not-project-backend/internal/infra/mailer"
	"not-project-backend/internal/observability/logging"
	"not-project-backend/internal/observability/slo"
	"not-project-backend/internal/observability/tracing"
	"not-project-backend/internal/resilience/circuitbreaker"
	env "not-project-backend/pkg/config"

	pgRepo "not-project-backend/internal/infra/adapter/persistence/postgres"
	assetUC "not-project-backend/internal/usecase/asset"
	catUC "not-project-backend/internal/usecase/category"
	contactUC "not-project-backend/internal/usecase/contact"
	saveUC "not-project-backend/internal/usecase/save"
	storyUC "not-project-backend/internal/usecase/story"
	userUC "not-project-backend/internal/usecase/user"

	hhttp "not-project-backend/internal/handler/http"
	hcategory "not-project-backend/internal/handler/http/category"
	hcontact "not-project-backend/internal/handler/http/contact"
	"not-project-backend/internal/handler/http/requestid"
	hstory "not-project-backend/internal/handler/http/story"
	huser "not-project-backend/internal/handler/http/user"

	_ "not-project-backend/docs" // swagger docs
)

// @title           The Not Project API
// @version         1.0
// @description     REST API for the publishing platform: stories, categories,
// @description     newsletter signups, bookmarks, and the contact relay.

// @contact.name   Editorial Team
// @contact.email  thenotprojectcity@gmail.com

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer JWT issued by the auth provider, or X-API-Key for service callers.

func main() {
	logger := initLogger()
	secCfg := loadSecurityConfig(logger)
	validateJWTSecret(logger, secCfg)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := setupServer(ctx, logger, database, secCfg)
	runServer(ctx, cancel, logger, handler)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadSecurityConfig reads the security policy file. The file is required:
// starting without an issuer and audience pinned down would accept tokens
// from anywhere.
func loadSecurityConfig(logger *slog.Logger) *secconfig.SecurityConfig {
	path := env.GetEnvString("SECURITY_CONFIG_PATH", "config/security.yaml")
	cfg, err := secconfig.LoadSecurityConfig(path)
	if err != nil {
		logger.Error("failed to load security configuration",
			slog.String("path", path),
			slog.Any("error", err))
		os.Exit(1)
	}

	// The auth middleware reads issuer and audience from the environment at
	// route registration, so mirror the file there.
	_ = os.Setenv("JWT_ISSUER", cfg.GetJWTIssuer())
	_ = os.Setenv("JWT_AUDIENCE", cfg.GetJWTAudience())

	logger.Info("security configuration loaded",
		slog.String("path", path),
		slog.String("issuer", cfg.GetJWTIssuer()),
		slog.String("audience", cfg.GetJWTAudience()),
		slog.Int("public_endpoints", len(cfg.GetPublicEndpoints())))
	return cfg
}

// validateJWTSecret enforces minimum secret strength at startup.
func validateJWTSecret(logger *slog.Logger, cfg *secconfig.SecurityConfig) {
	secretEnv := cfg.GetJWTSecretEnv()
	secret := os.Getenv(secretEnv)
	if secret == "" {
		logger.Error("JWT secret must be set", slog.String("env", secretEnv))
		os.Exit(1)
	}
	// Minimum 32 characters (256 bits) for HS256.
	if len(secret) < 32 {
		logger.Error("JWT secret must be at least 32 characters (256 bits)",
			slog.String("env", secretEnv))
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT secret must not be a common weak value",
				slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
	if secretEnv != "JWT_SECRET" {
		_ = os.Setenv("JWT_SECRET", secret)
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// setupOutbound builds the contact relay's external clients. Missing
// credentials degrade to no-op implementations so local development works
// without a Resend or reCAPTCHA account.
func setupOutbound(logger *slog.Logger) (mailer.Mailer, captcha.Verifier, map[string]*circuitbreaker.CircuitBreaker) {
	breakers := make(map[string]*circuitbreaker.CircuitBreaker)

	var mail mailer.Mailer
	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		m := mailer.NewResendMailer(mailer.ResendConfig{APIKey: apiKey})
		breakers["mailer"] = m.Breaker()
		mail = m
	} else {
		logger.Warn("RESEND_API_KEY not set, outbound email disabled")
		mail = mailer.NewNoopMailer()
	}

	var verifier captcha.Verifier
	if secret := os.Getenv("RECAPTCHA_SECRET"); secret != "" {
		v := captcha.NewRecaptchaVerifier(captcha.RecaptchaConfig{Secret: secret})
		breakers["captcha"] = v.Breaker()
		verifier = v
	} else {
		logger.Warn("RECAPTCHA_SECRET not set, captcha verification disabled")
		verifier = captcha.NewAllowAll()
	}

	return mail, verifier, breakers
}

// setupAssetPipeline builds the S3-backed asset store and the image
// normalizer in front of it. The bucket and public base URL are required:
// without them, story creation cannot persist uploads.
func setupAssetPipeline(ctx context.Context, logger *slog.Logger) *assetUC.Pipeline {
	storeCfg := assetstore.S3Config{
		Region:        env.GetEnvString("S3_REGION", "us-east-1"),
		Bucket:        os.Getenv("S3_BUCKET"),
		PublicBaseURL: os.Getenv("ASSET_PUBLIC_BASE_URL"),
		UsePathStyle:  env.GetEnvBool("S3_USE_PATH_STYLE", false),
	}
	if storeCfg.Bucket == "" {
		logger.Error("S3_BUCKET is required")
		os.Exit(1)
	}
	if storeCfg.PublicBaseURL == "" {
		logger.Error("ASSET_PUBLIC_BASE_URL is required")
		os.Exit(1)
	}

	store, err := assetstore.NewS3Store(ctx, storeCfg)
	if err != nil {
		logger.Error("failed to initialize asset store", slog.Any("error", err))
		os.Exit(1)
	}

	// Decoding large images is memory-bound; decodes run one at a time
	// unless IMAGE_MAX_CONCURRENCY raises the limit.
	normalizer := image.NewNormalizer(int64(env.GetEnvInt("IMAGE_MAX_CONCURRENCY", 1)))
	return assetUC.NewPipeline(store, normalizer)
}

// rateLimiterFrom builds a limiter from a configured rule.
func rateLimiterFrom(logger *slog.Logger, name string, rule secconfig.RateLimitRule) *hhttp.RateLimiter {
	window, err := rule.ParsedWindow()
	if err != nil {
		// Validation already parsed the window; this is unreachable unless
		// the config was mutated after load.
		logger.Error("invalid rate limit window", slog.String("rule", name), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("rate limit configured",
		slog.String("rule", name),
		slog.Int("limit", rule.Limit),
		slog.Duration("window", window))
	return hhttp.NewRateLimiter(rule.Limit, window)
}

// setupServer wires repositories, services, routes, and middleware.
func setupServer(ctx context.Context, logger *slog.Logger, database *sql.DB, secCfg *secconfig.SecurityConfig) http.Handler {
	pipeline := setupAssetPipeline(ctx, logger)
	mail, verifier, breakers := setupOutbound(logger)

	// Repository traffic goes through a breaker so a dead database sheds
	// load fast; health probes keep the raw pool to observe the real state.
	guarded := circuitbreaker.NewDBCircuitBreaker(database)
	breakers["database"] = guarded.Breaker()

	storySvc := &storyUC.Service{Repo: pgRepo.NewStoryRepo(guarded), Assets: pipeline}
	catSvc := &catUC.Service{Repo: pgRepo.NewCategoryRepo(guarded)}
	userSvc := &userUC.Service{
		Repo:        pgRepo.NewUserRepo(guarded),
		Subscribers: pgRepo.NewSubscriberRepo(guarded),
	}
	saveSvc := &saveUC.Service{Repo: pgRepo.NewSaveRepo(guarded)}
	contactSvc := &contactUC.Service{
		Verifier: verifier,
		Mailer:   mail,
		Config: contactUC.Config{
			From:       env.GetEnvString("CONTACT_FROM", "The Not Project <no-reply@thenotproject.com>"),
			Recipients: env.GetEnvStringList("CONTACT_RECIPIENTS", []string{"thenotprojectcity@gmail.com"}),
		},
	}

	mux := http.NewServeMux()
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: getVersion(), Breakers: breakers})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	hstory.Register(mux, storySvc, saveSvc, pagination.LoadFromEnv(), logger)
	hcategory.Register(mux, catSvc)
	huser.Register(mux, userSvc, rateLimiterFrom(logger, "subscribe", secCfg.GetSubscribeRateLimit()))
	hcontact.Register(mux, contactSvc, rateLimiterFrom(logger, "contact", secCfg.GetContactRateLimit()))

	return applyMiddleware(logger, mux)
}

// applyMiddleware wraps the mux in the shared middleware chain, innermost
// first: metrics and validation closest to the handlers, panic recovery and
// CORS at the edge.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	// Multipart story uploads carry images; the cap bounds memory, not
	// legitimate use.
	maxBody := int64(env.GetEnvInt("MAX_REQUEST_BODY_MB", 32)) << 20
	requestTimeout := env.GetEnvDuration("REQUEST_TIMEOUT", 60*time.Second)
	if err := env.ValidateDurationRange(requestTimeout, 1*time.Second, 5*time.Minute); err != nil {
		logger.Warn("REQUEST_TIMEOUT out of range, using default", slog.Any("error", err))
		requestTimeout = 60 * time.Second
	}
	allowedOrigins := env.GetEnvStringList("ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	logger.Info("CORS enabled", slog.Any("allowed_origins", allowedOrigins))

	chain := hhttp.MetricsMiddleware(handler)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.LimitRequestBody(maxBody)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = hhttp.CORS(allowedOrigins)(chain)
	return chain
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, handler http.Handler) {
	// Fold request outcomes into the SLO gauges once a minute.
	go slo.Start(ctx, time.Minute)

	addr := ":" + env.GetEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", getVersion()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Stop the SLO flush loop and in-flight request contexts.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/collegematch/college-match-finder/internal/cache"
	"github.com/collegematch/college-match-finder/internal/catalog"
	"github.com/collegematch/college-match-finder/internal/config"
	"github.com/collegematch/college-match-finder/internal/errors"
	"github.com/collegematch/college-match-finder/internal/matching"
	"github.com/collegematch/college-match-finder/internal/middleware"
	"github.com/collegematch/college-match-finder/internal/monitoring"
)

const version = "1.0.0"

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, cfgErrs := config.Load(os.Getenv("CONFIG_FILE"))
	if len(cfgErrs) > 0 {
		for _, err := range cfgErrs {
			slog.Error("Configuration error", "error", err)
		}
		os.Exit(1)
	}

	loadStart := time.Now()
	engine, err := matching.LoadEngine(cfg.AffordabilityPath, cfg.ResultsPath, matching.Options{
		Steepness:          cfg.Steepness,
		ExcludeZeroWeights: cfg.ExcludeZeroWeights,
	})
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app := newApplication(cfg, engine)
	app.logger.DataLoadLogger("affordability", cfg.AffordabilityPath, engine.InstitutionCount(), time.Since(loadStart))
	app.logger.DataLoadLogger("outcomes", cfg.ResultsPath, engine.OutcomeCount(), time.Since(loadStart))
	r := app.router()

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		slog.Info("Starting server",
			"port", cfg.Port,
			"institutions", engine.InstitutionCount(),
			"outcomes", engine.OutcomeCount())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// application bundles the long-lived server dependencies so the router can
// be built the same way in main and in tests.
type application struct {
	cfg     *config.Config
	engine  *matching.Engine
	metrics *monitoring.Metrics
	logger  *monitoring.Logger
	cache   *cache.Cache
	limiter *middleware.RateLimiter
}

func newApplication(cfg *config.Config, engine *matching.Engine) *application {
	metrics := monitoring.NewMetrics()
	return &application{
		cfg:     cfg,
		engine:  engine,
		metrics: metrics,
		logger:  monitoring.NewLogger(),
		cache:   cache.NewCache(time.Duration(cfg.CacheTTLMinutes) * time.Minute),
		limiter: middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMin:  cfg.RateLimitPerMin,
			BurstMultiplier: cfg.RateLimitBurstMulti,
		}, metrics),
	}
}

func (app *application) router() *gin.Engine {
	r := gin.New()

	// Monitoring first so every request is captured
	r.Use(monitoring.MonitoringMiddleware(app.metrics, app.logger))

	// Error handling middleware
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	r.Use(middleware.RequestID())
	r.Use(cors.Default())
	r.Use(app.limiter.Middleware())
	r.Use(app.cache.Middleware(app.metrics))

	r.POST("/match", app.handleMatch)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "healthy",
			"version":        version,
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
			"uptime_seconds": time.Since(app.metrics.StartTime).Seconds(),
			"institutions":   app.engine.InstitutionCount(),
			"outcomes":       app.engine.OutcomeCount(),
		})
	})

	// Metrics endpoint
	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, app.metrics.GetStats())
	})

	// Cache stats endpoint
	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, app.cache.Stats())
	})

	// Rate limiter stats endpoint
	r.GET("/ratelimit/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, app.limiter.GetStats())
	})

	// Swagger documentation routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// matchRequest is the JSON body of POST /match. Absent numeric preferences
// mean "no target" and absent weights default to equal importance.
type matchRequest struct {
	HomeState     string           `json:"home_state"`
	Residency     string           `json:"residency"`
	Income        *float64         `json:"income"`
	MinCredential string           `json:"min_credential"`
	Preferences   matchPreferences `json:"preferences"`
	Weights       matchWeights     `json:"weights"`
	Limit         int              `json:"limit"`
}

type matchPreferences struct {
	Sector              string   `json:"sector"`
	Locality            string   `json:"locality"`
	PreferredMSI        string   `json:"preferred_msi"`
	Enrollment          *float64 `json:"total_enrollment"`
	AdmitRate           *float64 `json:"admit_rate"`
	StudentFacultyRatio *float64 `json:"student_faculty_ratio"`
}

type matchWeights struct {
	Sector              *float64 `json:"sector"`
	Locality            *float64 `json:"locality"`
	MSI                 *float64 `json:"msi"`
	Enrollment          *float64 `json:"total_enrollment"`
	AdmitRate           *float64 `json:"admit_rate"`
	StudentFacultyRatio *float64 `json:"student_faculty_ratio"`
}

func (app *application) handleMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := errors.NewValidationError("request body is not valid JSON")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	q, err := app.toQuery(req)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	start := time.Now()
	results, err := app.engine.Match(q)
	if err != nil {
		appErr := errors.NewValidationError(err.Error())
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	app.metrics.IncrementMatchQuery()
	if len(results) == 0 {
		app.metrics.IncrementEmptyResult()
	}
	app.logger.QueryLogger(q.HomeState, string(q.Residency), len(results), time.Since(start), c.GetBool("cache_hit"))

	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": results,
	})
}

// toQuery maps the wire request onto the engine's query type, applying
// server defaults for residency, weights, and result limit.
func (app *application) toQuery(req matchRequest) (matching.Query, error) {
	var q matching.Query

	q.HomeState = strings.ToUpper(strings.TrimSpace(req.HomeState))
	if q.HomeState == "" {
		return q, errors.NewValidationError("home_state is required")
	}

	switch strings.ToLower(strings.TrimSpace(req.Residency)) {
	case "", "any":
		q.Residency = matching.ResidencyAny
	case "in_state":
		q.Residency = matching.ResidencyInState
	case "out_of_state":
		q.Residency = matching.ResidencyOutOfState
	default:
		return q, errors.NewValidationError("residency must be in_state, out_of_state, or any")
	}

	q.Income = req.Income

	if cred := strings.TrimSpace(req.MinCredential); cred != "" {
		level := catalog.NormalizeDegree(cred)
		if level == catalog.CredentialUnknown {
			return q, errors.NewValidationError("min_credential is not a recognized award level")
		}
		q.MinCredential = &level
	}

	q.Prefs = matching.Preferences{
		Sector:              catalog.Sector(strings.TrimSpace(req.Preferences.Sector)),
		Locality:            catalog.Locality(strings.TrimSpace(req.Preferences.Locality)),
		PreferredMSI:        strings.ToLower(strings.TrimSpace(req.Preferences.PreferredMSI)),
		Enrollment:          floatOrNaN(req.Preferences.Enrollment),
		AdmitRate:           floatOrNaN(req.Preferences.AdmitRate),
		StudentFacultyRatio: floatOrNaN(req.Preferences.StudentFacultyRatio),
	}

	q.Weights = matching.Weights{
		Sector:              weightOrDefault(req.Weights.Sector),
		Locality:            weightOrDefault(req.Weights.Locality),
		MSI:                 weightOrDefault(req.Weights.MSI),
		Enrollment:          weightOrDefault(req.Weights.Enrollment),
		AdmitRate:           weightOrDefault(req.Weights.AdmitRate),
		StudentFacultyRatio: weightOrDefault(req.Weights.StudentFacultyRatio),
	}

	q.Limit = req.Limit
	if q.Limit == 0 {
		q.Limit = app.cfg.DefaultLimit
	}

	return q, nil
}

func floatOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// weightOrDefault treats an omitted weight as 1 so a bare request ranks on
// every attribute equally; an explicit 0 stays 0.
func weightOrDefault(v *float64) float64 {
	if v == nil {
		return 1
	}
	return *v
}

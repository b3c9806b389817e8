package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/aibingo/aibingo-go/internal/dependencies/clock"
	"github.com/aibingo/aibingo-go/internal/dependencies/random"
	"github.com/aibingo/aibingo-go/internal/services/auth"
	"github.com/aibingo/aibingo-go/internal/services/card"
	"github.com/aibingo/aibingo-go/internal/services/leaderboard"
	"github.com/aibingo/aibingo-go/internal/services/progress"
	"github.com/aibingo/aibingo-go/internal/services/ratelimit"
	"github.com/aibingo/aibingo-go/internal/services/session"
	"github.com/aibingo/aibingo-go/internal/storage"
	"github.com/aibingo/aibingo-go/internal/storage/memory"
	redisstorage "github.com/aibingo/aibingo-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock   clock.Clock
	Random  random.Random
	Limiter ratelimit.Limiter

	// Services
	CardService        *card.Service
	AuthService        *auth.Service
	SessionController  *session.Controller
	ProgressController *progress.Controller
	LeaderboardService *leaderboard.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service.
	// TokenSecret is required for production use.
	AuthConfig auth.Config
	// MailSender delivers magic links (optional)
	// If nil, links are written to the log
	MailSender auth.MailSender
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	mailSender := cfg.MailSender
	if mailSender == nil {
		mailSender = auth.NewLogMailSender(logger)
	}

	return newWithDependencies(store, clk, rnd, mailSender, cfg.AuthConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	mailSender auth.MailSender,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	limiter := ratelimit.NewMemory(clk)

	cardService := card.New(rnd)
	authService := auth.New(store, clk, mailSender, limiter, authCfg)
	sessionController := session.NewController(store, cardService, clk, rnd, limiter, logger)
	progressController := progress.NewController(store, clk, limiter, logger)
	leaderboardService := leaderboard.New(store, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		Limiter:            limiter,
		CardService:        cardService,
		AuthService:        authService,
		SessionController:  sessionController,
		ProgressController: progressController,
		LeaderboardService: leaderboardService,
	}
}

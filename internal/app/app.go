// Package app wires configuration, storage, clients, and services into the
// shared application core used by cmd/smartfund-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smartfund/smartfund/internal/clients/gemini"
	"github.com/smartfund/smartfund/internal/common"
	"github.com/smartfund/smartfund/internal/interfaces"
	"github.com/smartfund/smartfund/internal/services/advisor"
	"github.com/smartfund/smartfund/internal/services/portfolio"
	"github.com/smartfund/smartfund/internal/services/screener"
	"github.com/smartfund/smartfund/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	GeminiClient     interfaces.GeminiClient
	PortfolioService interfaces.PortfolioService
	ScreenerService  interfaces.ScreenerService
	AdvisorService   interfaces.AdvisorService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes all services, clients, and storage.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	// Get binary directory for self-contained operation
	binDir := getBinaryDir()

	// Load configuration - check provided path, SMARTFUND_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("SMARTFUND_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "smartfund.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/smartfund.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ctx := context.Background()

	geminiKey, err := common.ResolveAPIKey(ctx, storageManager.KeyValueStore(), "gemini_api_key", config.Gemini.APIKey)
	if err != nil {
		logger.Warn().Msg("Gemini API key not configured - lookup, refresh, screening, and chat will be unavailable")
	}

	var geminiClient interfaces.GeminiClient
	if geminiKey != "" {
		client, err := gemini.NewClient(ctx, geminiKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			geminiClient = client
		}
	}

	portfolioService := portfolio.NewService(storageManager, geminiClient, logger,
		portfolio.WithLooseMatch(config.Portfolio.RefreshLooseMatch),
	)
	screenerService := screener.NewService(geminiClient, logger)
	advisorService := advisor.NewService(geminiClient, portfolioService, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		GeminiClient:     geminiClient,
		PortfolioService: portfolioService,
		ScreenerService:  screenerService,
		AdvisorService:   advisorService,
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the app.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close storage")
		}
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/nuvora-hq/crm-cli/internal/adapters/api"
	memcache "github.com/nuvora-hq/crm-cli/internal/adapters/cache/memory"
	filestore "github.com/nuvora-hq/crm-cli/internal/adapters/tokenstore/file"
	"github.com/nuvora-hq/crm-cli/internal/application"
	"github.com/nuvora-hq/crm-cli/internal/ports"
)

const (
	configDirName   = ".crm"
	configName      = "config"
	configType      = "toml"
	sessionFileName = "session.toml"

	baseURLKey    = "api.base_url"
	staleAfterKey = "cache.stale_after"
	leadDaysKey   = "reminders.lead_days"
	pageSizeKey   = "page.size"

	defaultBaseURL  = "http://localhost:5000/api"
	defaultLeadDays = 7
	// defaultPageSize is accepted in config for forward
	// compatibility; no request uses it yet.
	defaultPageSize = 10
)

type app struct {
	session   *application.Session
	guard     *application.Guard
	directory *application.Directory
	config    appConfig
	logger    zerolog.Logger
	now       func() time.Time

	restoreOnce sync.Once
}

type appConfig struct {
	baseURL    string
	staleAfter time.Duration
	leadDays   int
	pageSize   int
}

func wireApp() (*app, error) {
	logger := newLogger()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	config, err := loadConfig(viper.New(), filepath.Join(homeDir, configDirName))
	if err != nil {
		return nil, err
	}

	tokens := filestore.NewStore(filepath.Join(homeDir, configDirName, sessionFileName))
	cache := memcache.New(config.staleAfter, ports.SystemClock{})

	// The api client reads the token through the session; the closure
	// resolves the cycle between the two.
	var session *application.Session
	apiClient := api.New(config.baseURL, http.DefaultClient, func() string {
		if session == nil {
			return ""
		}
		return session.Token()
	}, logger)
	session = application.NewSession(apiClient, tokens, cache, logger)

	return &app{
		session:   session,
		guard:     application.NewGuard(session),
		directory: application.NewDirectory(apiClient, cache, session),
		config:    config,
		logger:    logger,
		now:       time.Now,
	}, nil
}

func loadConfig(cfg *viper.Viper, configDir string) (appConfig, error) {
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(configDir)
	cfg.SetDefault(baseURLKey, defaultBaseURL)
	cfg.SetDefault(staleAfterKey, memcache.DefaultStaleAfter.String())
	cfg.SetDefault(leadDaysKey, defaultLeadDays)
	cfg.SetDefault(pageSizeKey, defaultPageSize)
	cfg.SetEnvPrefix("CRM")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return appConfig{}, fmt.Errorf("read config file: %w", err)
		}
	}

	baseURL := strings.TrimSpace(cfg.GetString(baseURLKey))
	if baseURL == "" {
		return appConfig{}, errors.New("api base url is empty")
	}

	return appConfig{
		baseURL:    baseURL,
		staleAfter: cfg.GetDuration(staleAfterKey),
		leadDays:   cfg.GetInt(leadDaysKey),
		pageSize:   cfg.GetInt(pageSizeKey),
	}, nil
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if parsed, err := zerolog.ParseLevel(envOrDefault("CRM_LOG", "")); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// ensureSession restores the persisted session once per process before
// any command consults the guard.
func (a *app) ensureSession(ctx context.Context) {
	a.restoreOnce.Do(func() {
		a.session.Restore(ctx)
	})
}

package immortalis

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/app"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/config"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/db"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/logger"
)

const serviceName = "immortalis"

func withDB(run func(*sql.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := resolveDBPath(cfg)
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if strings.TrimSpace(logLevel) != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// resolveDBPath prefers --db, then the configured path, then the per-user default.
func resolveDBPath(cfg config.Config) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

// newCLILogger logs to stderr and stays quiet below warn unless --log-level asks otherwise.
func newCLILogger() (*zap.Logger, error) {
	level := "warn"
	if strings.TrimSpace(logLevel) != "" {
		level = logLevel
	}
	return logger.New(level, logger.FormatConsole, serviceName)
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", apperrors.ErrInvalidInput, name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %s must be > 0", apperrors.ErrInvalidInput, name)
	}
	return v, nil
}

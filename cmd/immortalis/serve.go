package immortalis

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/app"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/config"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/db"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/feed"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/logger"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/notebook"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/server"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTPAddr = serveAddr
		}

		log, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

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
		log.Info("database ready", zap.String("path", path))

		store, closeStore := newNotebookStore(cmd.Context(), cfg, log)
		defer closeStore()

		srv := server.New(server.Options{
			DB:        sqldb,
			Feed:      feed.NewClient(cfg.FeedURL, log),
			Notebooks: store,
			Logger:    log,
			FeedLimit: cfg.FeedLimit,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, cfg.HTTPAddr, shutdownTimeout)
	},
}

// newNotebookStore uses Redis when configured and reachable, and falls back
// to process memory otherwise.
func newNotebookStore(ctx context.Context, cfg config.Config, log *zap.Logger) (notebook.Store, func()) {
	if cfg.RedisAddr == "" {
		return notebook.NewMemoryStore(cfg.SessionTTL), func() {}
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, notebook sessions kept in memory",
			zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = client.Close()
		return notebook.NewMemoryStore(cfg.SessionTTL), func() {}
	}
	log.Info("notebook sessions stored in redis", zap.String("addr", cfg.RedisAddr))
	return notebook.NewRedisStore(client, cfg.SessionTTL), func() { _ = client.Close() }
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}

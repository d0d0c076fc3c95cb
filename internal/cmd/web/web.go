// Package web parses web client flags and launches the browser surface.
package web

import (
	"context"
	"flag"
	"fmt"
	"sync/atomic"

	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/api"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/nav"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/notifications"
	entrypoint "github.com/Patrickson2/MY-DUKA-SYSTEM/internal/platform/cmd"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/session"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/storage"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/storage/sqlite"
	"github.com/Patrickson2/MY-DUKA-SYSTEM/internal/web"
)

// MemoryStoragePath selects the in-memory store instead of SQLite.
const MemoryStoragePath = ":memory:"

// Config holds the web command configuration.
type Config struct {
	HTTPAddr    string `env:"MYDUKA_WEB_HTTP_ADDR" envDefault:"localhost:8087"`
	APIBaseURL  string `env:"MYDUKA_API_BASE_URL" envDefault:"http://localhost:8000"`
	StoragePath string `env:"MYDUKA_STORAGE_PATH" envDefault:"myduka.db"`
	AppName     string `env:"MYDUKA_APP_NAME" envDefault:"MyDuka"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Inventory backend base URL")
	fs.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, `Session storage path (":memory:" for non-durable)`)
	fs.StringVar(&cfg.AppName, "app-name", cfg.AppName, "Application display name")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web client with telemetry wired.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	kv, err := openStorage(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer kv.Close()

	sessions := session.NewStore(kv)
	client := api.New(cfg.APIBaseURL, nil, func() string {
		return sessions.AccessToken(context.Background())
	})

	clicks := notifications.NewDispatcher()
	center := notifications.NewCenter(client, clicks)
	defer center.Shutdown()

	restorer := session.NewRestorer(sessions, client, nav.NewHistory(nav.RootPath))

	// Restoration and the badge probe run concurrently with serving; pages
	// render the blocking placeholder until restoration completes.
	var restored atomic.Bool
	go func() {
		restorer.Restore(ctx)
		restored.Store(true)
	}()
	go center.Probe(ctx)

	handler := web.NewHandler(web.HandlerConfig{
		AppName:  cfg.AppName,
		Auth:     client,
		Sessions: sessions,
		Center:   center,
		Clicks:   clicks,
		Ready:    restored.Load,
	})
	server, err := web.NewServer(cfg.HTTPAddr, handler)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

func openStorage(path string) (storage.Store, error) {
	if path == MemoryStoragePath {
		return storage.NewMemoryStore(), nil
	}
	return sqlite.Open(path)
}

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/sheetkeeper/internal/client/api"
	"github.com/iudanet/sheetkeeper/internal/client/auth"
	"github.com/iudanet/sheetkeeper/internal/client/cache"
	"github.com/iudanet/sheetkeeper/internal/client/connectivity"
	"github.com/iudanet/sheetkeeper/internal/client/iocli"
	"github.com/iudanet/sheetkeeper/internal/client/queue"
	"github.com/iudanet/sheetkeeper/internal/client/storage"
	"github.com/iudanet/sheetkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/sheetkeeper/internal/client/sync"
	"github.com/iudanet/sheetkeeper/internal/config"
	"github.com/iudanet/sheetkeeper/internal/telemetry"
)

const serviceName = "sheetkeeper"

// Cli связывает команды с зависимостями клиента.
// Зависимости создаются в bootstrap перед выполнением команды и освобождаются в close.
type Cli struct {
	io        iocli.IO
	opts      *RootOptions
	now       func() time.Time
	newID     func() string
	getenv    func(string) string
	transport http.RoundTripper

	cfg         *config.Config
	logger      *slog.Logger
	db          *boltdb.Storage
	apiClient   *api.Client
	authService *auth.Service
	cache       *cache.Cache
	queue       *queue.Queue
	monitor     *connectivity.Monitor
	engine      *sync.Engine
	out         *Output
	cleanup     []func()
}

// New creates a CLI bound to stdio
func New(stdio iocli.IO) *Cli {
	return &Cli{
		io:        stdio,
		opts:      &RootOptions{},
		now:       time.Now,
		newID:     uuid.NewString,
		getenv:    os.Getenv,
		transport: http.DefaultTransport,
	}
}

// Run executes the client with command-line args and returns the process exit code.
func Run(ctx context.Context, args []string, stdio iocli.IO) int {
	return New(stdio).Execute(ctx, args)
}

// Execute runs one command and returns its exit code
func (c *Cli) Execute(ctx context.Context, args []string) int {
	cmd := c.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(c.io)
	cmd.SetErr(c.io)

	err := cmd.ExecuteContext(ctx)
	if c.out == nil {
		c.out = NewOutput(c.io, FormatText)
	}
	c.out.Flush(err)
	c.close()

	return GetExitCode(err)
}

// bootstrap открывает локальную базу и собирает зависимости по конфигурации и флагам
func (c *Cli) bootstrap(ctx context.Context) error {
	c.out = NewOutput(c.io, c.opts.Format)

	cfg, err := config.LoadConfig(c.opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if c.opts.ServerURL != "" {
		cfg.Client.ServerURL = c.opts.ServerURL
	}
	if c.opts.DBPath != "" {
		cfg.Client.DBPath = c.opts.DBPath
	}
	if c.opts.Verbose {
		cfg.Logging.Level = "debug"
	}
	c.cfg = cfg

	logger, logCloser, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create logger", err)
	}
	if logCloser != nil {
		c.cleanup = append(c.cleanup, func() { _ = logCloser.Close() })
	}
	c.logger = logger

	_, shutdownTracing, err := telemetry.InitTracerProvider(ctx, cfg.Tracing, serviceName, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize tracing", err)
	}
	c.cleanup = append(c.cleanup, shutdownTracing)

	db, err := boltdb.New(ctx, cfg.Client.DBPath, boltdb.Options{QuotaBytes: cfg.Client.StorageQuotaBytes})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open local database", err)
	}
	c.db = db
	c.cleanup = append(c.cleanup, func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close local database", "error", err)
		}
	})

	session := auth.NewSession(db, c.getenv(config.EnvSessionToken), logger)

	transport := c.transport
	if cfg.Client.OfflineHTTPCache {
		transport = api.NewOfflineTransport(transport, db, logger)
	}
	timeout := config.ParseDuration(cfg.Client.RequestTimeout, api.DefaultTimeout, logger)
	c.apiClient = api.NewClient(cfg.Client.ServerURL, session, api.WithTimeout(timeout), api.WithTransport(transport))
	c.authService = auth.NewService(c.apiClient, session)

	adapter := storage.NewAdapter(db, logger)
	c.cache = cache.New(adapter, logger)
	c.queue = queue.New(adapter, logger)

	c.monitor = connectivity.NewMonitor(
		c.apiClient,
		config.ParseDuration(cfg.Client.CheckInterval, connectivity.DefaultInterval, logger),
		config.ParseDuration(cfg.Client.CheckTimeout, connectivity.DefaultTimeout, logger),
		logger,
	)

	c.engine = sync.New(c.apiClient, c.cache, c.queue, c.monitor, c.out, logger, sync.Options{
		Now:         c.now,
		NewID:       c.newID,
		MaxAttempts: cfg.Client.Queue.MaxAttempts,
		MaxAge:      config.ParseDuration(cfg.Client.Queue.MaxAge, 0, logger),
	})

	logger.Debug("Client initialized", "server_url", cfg.Client.ServerURL, "db_path", cfg.Client.DBPath)
	return nil
}

func (c *Cli) close() {
	for i := len(c.cleanup) - 1; i >= 0; i-- {
		c.cleanup[i]()
	}
	c.cleanup = nil
}

// prepare проверяет связь и воспроизводит очередь перед командой, работающей с таблицей
func (c *Cli) prepare(ctx context.Context) {
	c.monitor.Check(ctx)
	c.replay(ctx, false)
}

// replay воспроизводит очередь и запоминает итог прохода
func (c *Cli) replay(ctx context.Context, force bool) sync.ReplayResult {
	result := c.engine.ProcessPendingOperations(ctx, force)
	// Пустой проход ничего не меняет, последний содержательный итог остается
	if result.Attempted == 0 {
		return result
	}

	rec := storage.ReplayRecord{
		FinishedAt:   c.now().UTC(),
		Attempted:    result.Attempted,
		Settled:      result.Settled,
		Remaining:    result.Remaining,
		DeadLettered: result.DeadLettered,
	}
	if result.Err != nil {
		rec.Error = result.Err.Error()
	}
	if err := c.db.SaveReplayRecord(ctx, rec); err != nil {
		c.logger.Warn("Failed to save replay record", "error", err)
	}
	return result
}

func parseRowNumber(arg string) (int, error) {
	row, err := strconv.Atoi(arg)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid row number %q", arg), err)
	}
	return row, nil
}

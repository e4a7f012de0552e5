package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"tracker/internal/adapters/in/http"
	"tracker/internal/adapters/out/googlesheets"
	"tracker/internal/adapters/out/postgres"
	"tracker/internal/adapters/out/redis"
	"tracker/internal/adapters/out/tabular"
	"tracker/internal/adapters/out/tabular/addressrepo"
	"tracker/internal/adapters/out/tabular/memory"
	"tracker/internal/adapters/out/tabular/orderrepo"
	"tracker/internal/adapters/out/tabular/participantrepo"
	"tracker/internal/adapters/out/tabular/subscriptionrepo"
	"tracker/internal/adapters/out/telegram"
	"tracker/internal/core/application/conversation"
	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/ports"
	"tracker/internal/jobs"
	"tracker/internal/pkg/metrics"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const sessionEvictionInterval = 10 * time.Minute

// CompositionRoot wires adapters, handlers and jobs from a Config. Close
// releases the connections it opened.
type CompositionRoot struct {
	cfg       Config
	logger    *zap.Logger
	store     *tabular.Store
	repos     commands.Repositories
	messenger *telegram.Client
	metrics   *metrics.Recorder
	sessions  ports.SessionStore
	memory    *conversation.MemorySessionStore
	closers   []func() error
}

// NewCompositionRoot opens the configured backend and session store.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *zap.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.NewRecorder(),
	}

	backend, err := c.openBackend(ctx)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}
	c.store = tabular.NewStore(backend,
		tabular.WithTimeout(cfg.BackendTimeout),
		tabular.WithLogger(logger))
	c.repos = commands.Repositories{
		Orders:        orderrepo.NewRepository(c.store),
		Addresses:     addressrepo.NewRepository(c.store),
		Subscriptions: subscriptionrepo.NewRepository(c.store),
		Participants:  participantrepo.NewRepository(c.store),
	}

	if err := c.openSessions(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	c.messenger = telegram.NewClient(cfg.TelegramAPIURL, cfg.BotToken, cfg.SendTimeout, logger)
	return c, nil
}

func (c *CompositionRoot) openBackend(ctx context.Context) (ports.TableStore, error) {
	switch c.cfg.Backend {
	case BackendSheets:
		opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
		switch {
		case c.cfg.GoogleCredentialsJSON != "":
			opts = append(opts, option.WithCredentialsJSON([]byte(c.cfg.GoogleCredentialsJSON)))
		case c.cfg.GoogleCredentialsFile != "":
			opts = append(opts, option.WithCredentialsFile(c.cfg.GoogleCredentialsFile))
		}
		return googlesheets.NewStore(ctx, c.cfg.GoogleSheetsID, c.logger, opts...)

	case BackendPostgres:
		db, err := postgres.Open(postgres.Config{
			Host:     c.cfg.DBHost,
			Port:     c.cfg.DBPort,
			User:     c.cfg.DBUser,
			Password: c.cfg.DBPassword,
			Name:     c.cfg.DBName,
			SSLMode:  c.cfg.DBSslMode,
		})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, sqlDB.Close)
		if err := postgres.Migrate(db); err != nil {
			return nil, err
		}
		return postgres.NewTableStore(db), nil

	case BackendMemory:
		c.logger.Warn("using the in-memory backend, data is lost on exit")
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", c.cfg.Backend)
}

func (c *CompositionRoot) openSessions(ctx context.Context) error {
	if c.cfg.SessionStore == SessionStoreRedis {
		client, err := redis.NewClient(ctx, redis.Config{
			Addr:     c.cfg.RedisAddr,
			Password: c.cfg.RedisPassword,
			DB:       c.cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		c.closers = append(c.closers, client.Close)
		c.sessions = redis.NewSessionStore(client, c.cfg.SessionTTL, c.logger)
		return nil
	}

	c.memory = conversation.NewMemorySessionStore(c.cfg.SessionTTL)
	c.sessions = c.memory
	return nil
}

// InitTables creates missing tables and header rows.
func (c *CompositionRoot) InitTables(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *CompositionRoot) Messenger() *telegram.Client {
	return c.messenger
}

func (c *CompositionRoot) CreateSweepStatusChangesCommandHandler() *commands.SweepStatusChangesCommandHandler {
	return commands.NewSweepStatusChangesCommandHandler(
		c.repos.Orders, c.repos.Subscriptions, c.messenger,
		c.cfg.SweepPersistBeforeSend, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateRemindUnpaidForOrderCommandHandler() commands.RemindUnpaidForOrderCommandHandler {
	return commands.NewRemindUnpaidForOrderCommandHandler(c.repos, c.messenger, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateRemindAllUnpaidCommandHandler() commands.RemindAllUnpaidCommandHandler {
	return commands.NewRemindAllUnpaidCommandHandler(c.repos, c.messenger, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateRouter() *conversation.Router {
	h := conversation.NewHandlers(c.repos, c.messenger, c.metrics, c.logger)
	return conversation.NewRouter(h, c.sessions, c.messenger, c.cfg.AdminIDs, c.logger)
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(c.CreateRouter(), c.cfg.WebhookSecret, c.metrics.Handler(), c.logger)
}

// CreateJobManager schedules the status sweep, plus session eviction when
// sessions are kept in process.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweep := jobs.NewStatusSweepJob(c.CreateSweepStatusChangesCommandHandler(), c.cfg.PollInterval, 0, c.logger)

	var eviction *jobs.SessionEvictionJob
	if c.memory != nil {
		eviction = jobs.NewSessionEvictionJob(c.memory, sessionEvictionInterval, c.logger)
	}
	return jobs.NewJobManager(sweep, eviction)
}

// ListenAddr is the address the HTTP server binds to.
func (c *CompositionRoot) ListenAddr() string {
	return net.JoinHostPort("0.0.0.0", c.cfg.HTTPPort)
}

// Close releases connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

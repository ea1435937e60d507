package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingo-backend/internal/adapter/postgres/entry"
	"github.com/heartmarshall/lingo-backend/internal/adapter/postgres/exposure"
	"github.com/heartmarshall/lingo-backend/internal/adapter/postgres/learner"
	"github.com/heartmarshall/lingo-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/lingo-backend/internal/config"
	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// EntryStore is the full entry repository contract both drivers implement.
type EntryStore interface {
	InsertMany(ctx context.Context, entries []domain.Entry) (domain.InsertResult, error)
	UpdateField(ctx context.Context, id int64, field domain.EntryField, value string) (domain.Entry, error)
	DeleteAll(ctx context.Context, topic string) (int64, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.Entry, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Entry, error)
	PickUnseen(ctx context.Context, learnerID uuid.UUID, f domain.EntryFilter) (domain.Entry, error)
	Count(ctx context.Context, f domain.EntryFilter) (int, error)
}

// ExposureStore records which entries each learner has been served.
type ExposureStore interface {
	Record(ctx context.Context, p domain.ExposurePair) error
	Reset(ctx context.Context, learnerID uuid.UUID, f domain.EntryFilter) (int64, error)
	Count(ctx context.Context, learnerID uuid.UUID) (int, error)
}

// LearnerStore persists learner accounts and settings.
type LearnerStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Learner, error)
	Register(ctx context.Context, id uuid.UUID, username string, role domain.Role) (domain.Learner, error)
	UpdatePreference(ctx context.Context, id uuid.UUID, p domain.LearnerPreference) (domain.Learner, error)
	UpdateDaily(ctx context.Context, id uuid.UUID, d domain.DailySettings) (domain.Learner, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	ListDailyEnabled(ctx context.Context) ([]domain.Learner, error)
}

// TxRunner runs fn inside one transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store bundles the repositories of the configured driver.
type Store struct {
	Entries   EntryStore
	Exposures ExposureStore
	Learners  LearnerStore
	Tx        TxRunner

	ping  func(ctx context.Context) error
	close func()
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

// Close releases the underlying connections.
func (s *Store) Close() { s.close() }

// OpenStore connects to the configured driver. Migrations run when
// cfg.AutoMigrate is set.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN, cfg.AutoMigrate)
		if err != nil {
			return nil, err
		}
		logger.Info("entry store ready", slog.String("driver", cfg.Driver), slog.String("dsn", cfg.DSN))
		return &Store{
			Entries:   sqlite.NewEntries(db),
			Exposures: sqlite.NewExposures(db),
			Learners:  sqlite.NewLearners(db),
			Tx:        sqlite.NewTxManager(db),
			ping:      db.PingContext,
			close:     func() { db.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			n, err := postgres.Migrate(ctx, pool)
			if err != nil {
				pool.Close()
				return nil, err
			}
			logger.Info("migrations applied", slog.Int("count", n))
		}
		logger.Info("entry store ready", slog.String("driver", cfg.Driver))
		return &Store{
			Entries:   entry.New(pool),
			Exposures: exposure.New(pool),
			Learners:  learner.New(pool),
			Tx:        postgres.NewTxManager(pool),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

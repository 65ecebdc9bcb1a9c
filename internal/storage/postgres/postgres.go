package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"labBooker/internal/config"
	"labBooker/internal/storage"
)

//go:embed schema.sql
var schema string

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Storage struct {
	DB    *sql.DB
	labID int64

	bookingRepo
}

func InitDB(dbCfg *config.Database, labID int64) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return New(db, labID), nil
}

func New(db *sql.DB, labID int64) *Storage {
	return &Storage{
		DB:          db,
		labID:       labID,
		bookingRepo: bookingRepo{q: db},
	}
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

// ReserveWindow runs fn in a transaction holding the lab's advisory lock, so
// an overlap check and the write it gates cannot interleave with another
// reservation on the same lab.
func (s *Storage) ReserveWindow(ctx context.Context, fn func(ctx context.Context, repo storage.BookingRepository) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", s.labID); err != nil {
		return fmt.Errorf("failed to acquire reservation lock: %w", err)
	}

	if err = fn(ctx, bookingRepo{q: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reservation: %w", err)
	}

	return nil
}

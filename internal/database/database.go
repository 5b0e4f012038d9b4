package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	apperrors "nostrsky/internal/errors"
	"nostrsky/internal/migrations"
	"nostrsky/internal/security"

	_ "github.com/mattn/go-sqlite3"
)

// Database persists the set of already-handled event ids so a restart does
// not republish notes the previous run already cross-posted.
type Database struct {
	db *sql.DB
}

func New(dbPath string) (*Database, error) {
	if len(dbPath) == 0 || dbPath[0] == '\x00' {
		return nil, fmt.Errorf("invalid database path")
	}

	if err := security.ValidateFilePath(dbPath); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	file, err := os.OpenFile(dbPath, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create database file: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close database file: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(migrations.GetInitialSchema()); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// IsProcessed reports whether the event id is already in the ledger.
func (d *Database) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	var one int
	err := d.db.QueryRowContext(ctx, selectProcessedEventQuery, eventID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewDatabaseError("select", err)
	}
	return true, nil
}

// MarkProcessed records the event id. It returns true when this call
// inserted the row, false when the id was already present, which makes the
// insert an atomic check-and-set under concurrent callers.
func (d *Database) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	res, err := d.db.ExecContext(ctx, insertProcessedEventQuery, eventID)
	if err != nil {
		return false, apperrors.NewDatabaseError("insert", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.NewDatabaseError("insert", err)
	}
	return rows > 0, nil
}

// CleanupOldRecords removes ledger rows older than retentionDays. The cutoff
// gate already blocks anything that old from being reprocessed, so trimming
// the ledger only bounds database growth.
func (d *Database) CleanupOldRecords(ctx context.Context, retentionDays int) error {
	if retentionDays <= 0 {
		return fmt.Errorf("retention days must be positive, got %d", retentionDays)
	}
	if _, err := d.db.ExecContext(ctx, deleteOldProcessedEventsQuery, retentionDays); err != nil {
		return apperrors.NewDatabaseError("cleanup", err)
	}
	return nil
}

// ProcessedCount returns the ledger size, used by the metrics gauge.
func (d *Database) ProcessedCount(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.QueryRowContext(ctx, countProcessedEventsQuery).Scan(&count); err != nil {
		return 0, apperrors.NewDatabaseError("count", err)
	}
	return count, nil
}

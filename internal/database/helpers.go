package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tcm/internal/models"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Error("failed to close rows", "error", err)
	}
}

// lookupErr translates a single-row lookup failure, mapping sql.ErrNoRows to
// models.ErrNotFound
func lookupErr(err error, kind models.Kind, id int) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", kind, id, models.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %d: %w", kind, id, err)
}

// requireAffected turns an UPDATE or DELETE that matched nothing into
// models.ErrNotFound
func requireAffected(result sql.Result, kind models.Kind, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s %d: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, models.ErrNotFound)
	}
	return nil
}

// setStatus updates the status column of one row in a status-bearing table
func setStatus(ctx context.Context, db *sql.DB, t *table, id int, status models.Status) error {
	query := fmt.Sprintf(`UPDATE %s SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, t.name)
	result, err := db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to set status of %s %d: %w", t.kind, id, err)
	}
	return requireAffected(result, t.kind, id)
}

// deleteRow removes one row; foreign keys cascade to dependents
func deleteRow(ctx context.Context, db *sql.DB, t *table, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t.name)
	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", t.kind, id, err)
	}
	return requireAffected(result, t.kind, id)
}

// scanStatus reads a status column, rejecting values outside the known set
func scanStatus(raw string) (models.Status, error) {
	status, err := models.ParseStatus(raw)
	if err != nil {
		return "", fmt.Errorf("corrupt status column: %w", err)
	}
	return status, nil
}

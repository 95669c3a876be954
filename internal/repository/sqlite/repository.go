package sqlite

import (
	"context"
	"database/sql"
	"time"

	"taskflow/internal/errors"
	"taskflow/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the durable key/value operations the session relies on
type Repository interface {
	GetValue(ctx context.Context, key string) (*SessionValue, error)
	ListValues(ctx context.Context) ([]*SessionValue, error)
	SetValue(ctx context.Context, value *SessionValue) error
	DeleteValue(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (or creates) the session database at dbPath and migrates it
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open session database", err)
	}

	// A single connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// GetValue retrieves a value by key
func (r *SQLiteRepository) GetValue(ctx context.Context, key string) (*SessionValue, error) {
	query := `SELECT key, value, updated_at FROM session_values WHERE key = ?`
	return QuerySingle(ctx, r.db, query, ScanSessionValue, "session value", key, key)
}

// ListValues retrieves all stored values ordered by key
func (r *SQLiteRepository) ListValues(ctx context.Context) ([]*SessionValue, error) {
	query := `SELECT key, value, updated_at FROM session_values ORDER BY key ASC`
	return QueryMultiple(ctx, r.db, query, ScanSessionValues, "session values")
}

// SetValue inserts or replaces a value; UpdatedAt is stamped by the repository
func (r *SQLiteRepository) SetValue(ctx context.Context, value *SessionValue) error {
	query := `
	INSERT INTO session_values (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	value.UpdatedAt = r.now().UTC().Truncate(time.Second)
	if _, err := r.db.ExecContext(ctx, query, value.Key, value.Value, FormatTimeForDB(value.UpdatedAt)); err != nil {
		return HandleStorageError("save "+value.Key, err)
	}
	return nil
}

// DeleteValue removes a value by key; a missing key is a not found error
func (r *SQLiteRepository) DeleteValue(ctx context.Context, key string) error {
	query := `DELETE FROM session_values WHERE key = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "session value", key, key)
}

// Clear removes every stored value
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_values`); err != nil {
		return HandleStorageError("clear session", err)
	}
	return nil
}

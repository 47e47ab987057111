package credentials

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the credential table in a SQLite database.
// Save replaces the whole table inside one transaction.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath.
// Use ":memory:" for a throwaway database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	// position preserves table order across saves
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			position INTEGER PRIMARY KEY,
			email TEXT NOT NULL,
			hashed_password TEXT NOT NULL,
			security_question TEXT NOT NULL DEFAULT '',
			security_answer TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns every record in saved order
func (s *SQLiteStore) Load(ctx context.Context) ([]Record, error) {
	query := `
		SELECT email, hashed_password, security_question, security_answer
		FROM users
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Email, &r.HashedPassword, &r.SecurityQuestion, &r.SecurityAnswer); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return records, nil
}

// Save replaces the stored table with records
func (s *SQLiteStore) Save(ctx context.Context, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO users (position, email, hashed_password, security_question, security_answer)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i, r.Email, r.HashedPassword, r.SecurityQuestion, r.SecurityAnswer); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", r.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

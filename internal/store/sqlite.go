package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SQLite stores records in a single keyed table. The caller opens the
// database and applies migrations (internal/db) before handing it over.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Get(ctx context.Context, userID, key string) ([]byte, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT value FROM records WHERE user_id = ? AND key = ?`,
		userID,
		key,
	)

	var value []byte
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return value, nil
}

func (s *SQLite) Put(ctx context.Context, userID, key string, value []byte) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO records (user_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, key) DO UPDATE SET value = excluded.value`,
		userID,
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, userID, key string) error {
	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM records WHERE user_id = ? AND key = ?`,
		userID,
		key,
	)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) QueryPrefix(ctx context.Context, userID, prefix string) ([][]byte, error) {
	// Escape LIKE metacharacters so a literal prefix match is guaranteed.
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT value FROM records
		 WHERE user_id = ? AND key LIKE ? ESCAPE '\'
		 ORDER BY key`,
		userID,
		escaped+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	values := make([][]byte, 0)
	for rows.Next() {
		var value []byte
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return values, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

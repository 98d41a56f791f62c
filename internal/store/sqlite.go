package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS answers (
	project TEXT NOT NULL,
	model TEXT NOT NULL,
	question TEXT NOT NULL,
	signature TEXT NOT NULL,
	answer TEXT NOT NULL,
	answer_model TEXT NOT NULL,
	token_budget INTEGER NOT NULL,
	total_tokens INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (project, model, question)
)
`

// SQLiteStore persists records in a local SQLite database.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the SQLite store at path.
func Open(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key Key) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Record{}, ErrStoreClosed
	}
	key = key.Normalize()

	rec := Record{Key: key}
	var createdAt int64
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT signature, answer, answer_model, token_budget, total_tokens, created_at
FROM answers
WHERE project = ? AND model = ? AND question = ?
`, key.Project, key.Model, key.Question).Scan(
		&rec.Signature,
		&rec.Answer,
		&rec.Model,
		&rec.TokenBudget,
		&rec.TotalTokens,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get answer: %w", err)
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	return rec, nil
}

func (s *SQLiteStore) Put(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return ErrStoreClosed
	}
	rec, err := record.prepare()
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO answers (
	project,
	model,
	question,
	signature,
	answer,
	answer_model,
	token_budget,
	total_tokens,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (project, model, question) DO UPDATE SET
	signature = excluded.signature,
	answer = excluded.answer,
	answer_model = excluded.answer_model,
	token_budget = excluded.token_budget,
	total_tokens = excluded.total_tokens,
	created_at = excluded.created_at
`,
		rec.Key.Project,
		rec.Key.Model,
		rec.Key.Question,
		rec.Signature,
		rec.Answer,
		rec.Model,
		rec.TokenBudget,
		rec.TotalTokens,
		rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put answer: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return ErrStoreClosed
	}
	key = key.Normalize()
	if _, err := s.sqlDB.ExecContext(ctx, `
DELETE FROM answers WHERE project = ? AND model = ? AND question = ?
`, key.Project, key.Model, key.Question); err != nil {
		return fmt.Errorf("delete answer: %w", err)
	}
	return nil
}

var _ AnswerStore = (*SQLiteStore)(nil)

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/todolist/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteStore keeps the blob in the kv table, one row per key.
type SQLiteStore struct {
	db     *sql.DB
	key    string
	logger *log.Logger
	now    func() time.Time
}

func NewSQLiteStore(db *sql.DB, key string, opts ...Option) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("storage: empty key")
	}
	o := buildOptions(opts)
	return &SQLiteStore{db: db, key: key, logger: o.logger, now: time.Now}, nil
}

// OpenSQLite opens the database at path and applies migrations.
func OpenSQLite(path, key string, opts ...Option) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLiteStore(db, key, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]model.Task, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	return decodeOrEmpty(s.logger, "sqlite:"+s.key, []byte(value)), nil
}

func (s *SQLiteStore) Save(ctx context.Context, tasks []model.Task) error {
	payload, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(payload), s.now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

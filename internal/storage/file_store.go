package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todolist/internal/model"
)

// FileStore keeps the blob in <dir>/<key>.json.
type FileStore struct {
	path   string
	logger *log.Logger
}

func NewFileStore(dir, key string, opts ...Option) (*FileStore, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("storage: empty key")
	}
	if strings.ContainsAny(key, `/\`) {
		return nil, fmt.Errorf("storage: key %q must not contain path separators", key)
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	o := buildOptions(opts)
	return &FileStore{path: filepath.Join(dir, key+".json"), logger: o.logger}, nil
}

func (s *FileStore) Load(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return decodeOrEmpty(s.logger, s.path, raw), nil
}

func (s *FileStore) Save(ctx context.Context, tasks []model.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

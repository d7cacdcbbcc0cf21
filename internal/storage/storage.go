// Package storage persists the whole task sequence as a single JSON blob
// under one key. Backends differ only in where the blob lives.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todolist/internal/model"
)

const DefaultKey = "tasks"

var (
	ErrMalformed      = errors.New("storage: malformed task blob")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

type Storage interface {
	// Load returns the persisted tasks, or an empty slice when nothing has
	// been saved yet or the blob cannot be decoded.
	Load(ctx context.Context) ([]model.Task, error)
	// Save overwrites the blob with tasks.
	Save(ctx context.Context, tasks []model.Task) error
	Close() error
}

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendNuts   Backend = "nutsdb"
	BackendMemory Backend = "memory"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendFile, BackendSQLite, BackendNuts, BackendMemory:
		return true
	default:
		return false
	}
}

// ParseBackend normalises a backend name. Unknown names wrap
// ErrUnknownBackend.
func ParseBackend(raw string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(raw)))
	if !b.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, raw)
	}
	return b, nil
}

type options struct {
	logger *log.Logger
}

type Option func(*options)

func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open builds a backend. For file and nutsdb, path is a directory; for
// sqlite it is the database file.
func Open(backend Backend, path, key string, opts ...Option) (Storage, error) {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	switch backend {
	case BackendFile:
		return NewFileStore(path, key, opts...)
	case BackendSQLite:
		return OpenSQLite(path, key, opts...)
	case BackendNuts:
		return OpenNuts(path, key, opts...)
	case BackendMemory:
		return NewMemoryStore(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// EncodeTasks renders tasks as a JSON array. A nil slice encodes as [].
func EncodeTasks(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return raw, nil
}

// DecodeTasks parses a JSON array of tasks. Blank input yields an empty
// slice; anything unparsable yields ErrMalformed.
func DecodeTasks(raw []byte) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []model.Task{}, nil
	}
	var out []model.Task
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if out == nil {
		out = []model.Task{}
	}
	return out, nil
}

// decodeOrEmpty applies the load policy shared by all backends.
func decodeOrEmpty(logger *log.Logger, source string, raw []byte) []model.Task {
	tasks, err := DecodeTasks(raw)
	if err != nil {
		logger.Warn("discarding unreadable task blob", "source", source, "err", err)
		return []model.Task{}
	}
	return tasks
}

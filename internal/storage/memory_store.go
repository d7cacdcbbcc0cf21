package storage

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todolist/internal/model"
)

// MemoryStore holds the encoded blob in memory. SaveErr, when set, is
// returned by every Save without touching the blob.
type MemoryStore struct {
	blob    []byte
	saves   int
	SaveErr error
	logger  *log.Logger
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{logger: o.logger}
}

// NewMemoryStoreWithBlob seeds the store with raw bytes, valid or not.
func NewMemoryStoreWithBlob(raw []byte, opts ...Option) *MemoryStore {
	s := NewMemoryStore(opts...)
	s.blob = append([]byte(nil), raw...)
	return s
}

func (s *MemoryStore) Load(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decodeOrEmpty(s.logger, "memory", s.blob), nil
}

func (s *MemoryStore) Save(ctx context.Context, tasks []model.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.SaveErr != nil {
		return s.SaveErr
	}
	payload, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	s.blob = payload
	s.saves++
	return nil
}

// Blob returns a copy of the last saved payload.
func (s *MemoryStore) Blob() []byte {
	return append([]byte(nil), s.blob...)
}

// Saves counts successful Save calls.
func (s *MemoryStore) Saves() int {
	return s.saves
}

func (s *MemoryStore) Close() error {
	return nil
}

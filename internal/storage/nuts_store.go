package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/nutsdb/nutsdb"
	"github.com/sandeepkv93/todolist/internal/model"
)

const nutsBucket = "todolist"

// NutsStore keeps the blob under one key of a NutsDB BTree bucket.
type NutsStore struct {
	db     *nutsdb.DB
	key    string
	logger *log.Logger
}

func OpenNuts(dir, key string, opts ...Option) (*NutsStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage: empty nutsdb dir")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("storage: empty key")
	}
	o := buildOptions(opts)

	nopts := nutsdb.DefaultOptions
	nopts.Dir = dir
	db, err := nutsdb.Open(nopts)
	if err != nil {
		return nil, fmt.Errorf("open nutsdb: %w", err)
	}

	if err := db.Update(func(tx *nutsdb.Tx) error {
		return tx.NewBucket(nutsdb.DataStructureBTree, nutsBucket)
	}); err != nil && !errors.Is(err, nutsdb.ErrBucketAlreadyExist) {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &NutsStore{db: db, key: key, logger: o.logger}, nil
}

func (s *NutsStore) Load(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var raw []byte
	err := s.db.View(func(tx *nutsdb.Tx) error {
		v, err := tx.Get(nutsBucket, []byte(s.key))
		if err != nil {
			return err
		}
		raw = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		if errors.Is(err, nutsdb.ErrKeyNotFound) || errors.Is(err, nutsdb.ErrBucketNotFound) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	return decodeOrEmpty(s.logger, "nutsdb:"+s.key, raw), nil
}

func (s *NutsStore) Save(ctx context.Context, tasks []model.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(tx *nutsdb.Tx) error {
		return tx.Put(nutsBucket, []byte(s.key), payload, 0)
	}); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

func (s *NutsStore) Close() error {
	return s.db.Close()
}

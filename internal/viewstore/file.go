package viewstore

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru"
)

// FileStore keeps one JSON document per chart under a directory and mirrors
// recently used views in an LRU so restores during a session skip the disk.
type FileStore struct {
	dir   string
	cache *lru.Cache
}

func NewFileStore(dir string, cacheSize int) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	cache, err := lru.New(max(1, cacheSize))
	if err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, cache: cache}, nil
}

func (s *FileStore) path(id string) string {
	sum := sha1.Sum([]byte(id))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}

type fileRecord struct {
	ID   string `json:"id"`
	View View   `json:"view"`
}

func (s *FileStore) Load(ctx context.Context, id string) (View, error) {
	if err := ctx.Err(); err != nil {
		return View{}, err
	}
	if v, ok := s.cache.Get(id); ok {
		return v.(View), nil
	}
	b, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return View{}, ErrNotFound
	}
	if err != nil {
		return View{}, err
	}
	var rec fileRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return View{}, fmt.Errorf("decode view %s: %w", id, err)
	}
	s.cache.Add(id, rec.View)
	return rec.View, nil
}

// Save merges v into the stored record and writes it atomically.
func (s *FileStore) Save(ctx context.Context, id string, v View) error {
	cur, err := s.Load(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	merged := cur.Merge(v)
	b, err := json.MarshalIndent(fileRecord{ID: id, View: merged}, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "view-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path(id)); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	s.cache.Add(id, merged)
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.cache.Remove(id)
	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"internhunt-engine/internal/domain"
)

// Store persists the registry between runs.
type Store interface {
	Load(ctx context.Context) (*Registry, error)
	Save(ctx context.Context, r *Registry) error
	List(ctx context.Context, f Filter) ([]domain.Entry, error)
	Close() error
}

// JSONStore keeps the registry as one JSON document on disk.
type JSONStore struct {
	Path string

	mu sync.Mutex
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{Path: path}
}

// Load returns an empty registry when the file is absent. When only the
// .bak copy exists (a save was interrupted) it is loaded instead. An
// unreadable or corrupt file is logged and treated as empty.
func (s *JSONStore) Load(ctx context.Context) (*Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := readRegistry(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		bak := s.Path + ".bak"
		r, err = readRegistry(bak)
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		if err == nil {
			log.Printf("[registry] WARN %s missing; recovered from %s", s.Path, bak)
		}
	}
	if err != nil {
		log.Printf("[registry] WARN %v; starting empty", err)
		return New(), nil
	}
	return r, nil
}

func readRegistry(path string) (*Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	r := New()
	if err := json.Unmarshal(b, r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if r.Items == nil {
		r.Items = map[string]domain.Entry{}
	}
	return r, nil
}

// Save writes path.tmp, copies the previous file to path.bak, then renames
// tmp over path so the live file is never missing.
func (s *JSONStore) Save(ctx context.Context, r *Registry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	b = append(b, '\n')

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("registry dir: %w", err)
	}

	tmp := s.Path + ".tmp"
	bak := s.Path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}

	if prev, err := os.ReadFile(s.Path); err == nil {
		if err := os.WriteFile(bak, prev, 0o644); err != nil {
			log.Printf("[registry] WARN backup %s: %v", bak, err)
		}
	}

	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("replace registry: %w", err)
	}
	return nil
}

func (s *JSONStore) List(ctx context.Context, f Filter) ([]domain.Entry, error) {
	r, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return r.Filtered(f), nil
}

func (s *JSONStore) Close() error { return nil }

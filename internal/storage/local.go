package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LocalStore struct {
	root string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Put(ctx context.Context, key, _ string, body io.Reader, _ int64) error {
	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(dst, s.root+string(os.PathSeparator)) {
		return fmt.Errorf("key %q escapes upload dir", key)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create key dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %q: %w", key, err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

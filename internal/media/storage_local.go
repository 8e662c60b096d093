package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// localStorage keeps images on disk under dir, with a .staging subdirectory
// for not-yet-promoted uploads. Promotion is a rename, so a promoted file
// is visible atomically.
type localStorage struct {
	dir string
}

func NewLocalStorage(dir string) (Storage, error) {
	if err := os.MkdirAll(filepath.Join(dir, ".staging"), 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &localStorage{dir: dir}, nil
}

func (s *localStorage) stagingPath(name string) string {
	return filepath.Join(s.dir, ".staging", filepath.Base(name))
}

func (s *localStorage) finalPath(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *localStorage) SaveStaging(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	f, err := os.Create(s.stagingPath(name))
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(s.stagingPath(name))
		return err
	}
	return f.Close()
}

func (s *localStorage) Promote(ctx context.Context, name string) (string, error) {
	final := s.finalPath(name)
	if err := os.Rename(s.stagingPath(name), final); err != nil {
		return "", err
	}
	return final, nil
}

func (s *localStorage) DiscardStaging(ctx context.Context, name string) error {
	err := os.Remove(s.stagingPath(name))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

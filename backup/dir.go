package backup

import (
	"context"
	"os"
	"path/filepath"
)

// Dir keeps backups as files in a local directory.
type Dir string

func (d Dir) Put(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(string(d), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(string(d), filepath.Base(name)), data, 0o644)
}

func (d Dir) Get(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(string(d), filepath.Base(name)))
}

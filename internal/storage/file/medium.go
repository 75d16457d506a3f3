// Package file provides a key-value medium that keeps one document per key
// in a directory.
//
// Writes land in a temporary file that is then renamed over the target, so a
// reader never observes a half-written document.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"
)

const docExt = ".json"

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Medium stores documents under dir on fs.
type Medium struct {
	fs  afero.Fs
	dir string
}

// New returns a Medium rooted at dir on the host filesystem.
func New(dir string) *Medium {
	return NewWithFs(afero.NewOsFs(), dir)
}

// NewWithFs returns a Medium rooted at dir on fs.
func NewWithFs(fs afero.Fs, dir string) *Medium {
	return &Medium{fs: fs, dir: dir}
}

// Dir returns the directory documents are kept in.
func (m *Medium) Dir() string {
	return m.dir
}

// Path returns the file holding key.
func (m *Medium) Path(key string) (string, error) {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(m.dir, key+docExt), nil
}

// Read returns the document under key. A missing file is reported as not
// found rather than as an error.
func (m *Medium) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	path, err := m.Path(key)
	if err != nil {
		return nil, false, err
	}

	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, true, nil
}

// Write atomically replaces the document under key.
func (m *Medium) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := m.Path(key)
	if err != nil {
		return err
	}

	if err := m.fs.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", m.dir, err)
	}

	tmp, err := afero.TempFile(m.fs, m.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", m.dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = m.fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = m.fs.Remove(tmpName)
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = m.fs.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}

	if err := m.fs.Rename(tmpName, path); err != nil {
		_ = m.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

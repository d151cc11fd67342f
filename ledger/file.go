package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the ledger as one JSON document on disk. Every write
// replaces the whole file.
type FileStore struct {
	blobStore
	path string
}

func NewFileStore(path string) *FileStore {
	fs := &FileStore{path: path}
	fs.blobStore = blobStore{name: "file", backend: fileBlob{path: path}}
	return fs
}

func (f *FileStore) Path() string {
	return f.path
}

type fileBlob struct {
	path string
}

func (b fileBlob) read(context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// write goes through a temp file and rename so a crash mid-write leaves the
// previous ledger intact.
func (b fileBlob) write(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path)
}

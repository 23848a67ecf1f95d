package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Paintersrp/dictcheck/internal/pathutil"
)

// FileReader reads documents from the vault directory tree.
type FileReader struct {
	vaultDir string
}

func NewFileReader(vaultDir string) *FileReader {
	return &FileReader{vaultDir: vaultDir}
}

// Resolve maps a configured path to its location on disk.
func (r *FileReader) Resolve(path string) (string, error) {
	return pathutil.Resolve(r.vaultDir, path)
}

func (r *FileReader) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	resolved, err := r.Resolve(path)
	if err != nil {
		if errors.Is(err, pathutil.ErrOutsideVault) {
			return "", fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to stat %s: %w", resolved, err)
	}
	if info.IsDir() {
		return "", ErrNotFound
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", resolved, err)
	}
	return string(content), nil
}

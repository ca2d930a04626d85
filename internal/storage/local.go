package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalBackend writes images to a directory served statically by the HTTP
// layer. References are URL paths under the configured public prefix.
type LocalBackend struct {
	dir        string
	publicPath string
}

func NewLocalBackend(dir, publicPath string) (*LocalBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create uploads dir %q: %w", dir, err)
	}
	return &LocalBackend{
		dir:        dir,
		publicPath: "/" + strings.Trim(publicPath, "/"),
	}, nil
}

func (b *LocalBackend) Store(ctx context.Context, obj *Object) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(obj.Filename))
	if err := os.WriteFile(filepath.Join(b.dir, name), obj.Content, 0o644); err != nil {
		return "", fmt.Errorf("storage: failed to write %q: %w", name, err)
	}
	return b.publicPath + "/" + name, nil
}

func (b *LocalBackend) Delete(ctx context.Context, ref string) error {
	if !strings.HasPrefix(ref, b.publicPath+"/") {
		return ErrForeignReference
	}
	// Base strips any traversal a stored reference could smuggle in.
	name := filepath.Base(strings.TrimPrefix(ref, b.publicPath+"/"))
	err := os.Remove(filepath.Join(b.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: failed to remove %q: %w", name, err)
	}
	return nil
}

// sanitizeFilename keeps the original name recognizable while making it safe
// to join onto the uploads dir.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "upload"
	}
	return name
}

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local writes uploads to disk and serves them through the static route.
// Development only.
type Local struct {
	baseDir   string
	urlPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{baseDir: baseDir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	_ = ctx

	key := newKey(in.Folder, in.Filename)
	dstPath := filepath.Join(l.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return PutResult{}, err
	}

	f, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return PutResult{}, err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return PutResult{}, err
	}

	return PutResult{Key: key, URL: l.urlPrefix + "/" + key}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	clean := path.Clean("/" + key) // no traversal out of baseDir
	return os.Remove(filepath.Join(l.baseDir, filepath.FromSlash(clean)))
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.baseDir) }

func newKey(folder, filename string) string {
	key := uuid.NewString() + safeExt(filename)
	if folder != "" {
		key = strings.Trim(folder, "/") + "/" + key
	}
	return key
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return ext
	default:
		return ""
	}
}

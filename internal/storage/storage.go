package storage

import (
	"context"
	"io"
)

type PutInput struct {
	Filename    string
	ContentType string
	Folder      string // key namespace, e.g. "portfolio"
}

type PutResult struct {
	Key string
	URL string
}

// Storage persists uploaded images. Keys are opaque to callers; the URL is
// what gets stored on the owning row.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// internal/storage/archive/interface.go
package archive

import (
	"context"
	"fmt"
)

// Storage is a blob store for account snapshots. Paths are slash separated
// and relative to the backend root.
type Storage interface {
	Write(ctx context.Context, path string, data []byte) error

	// Read returns core.ErrNotFound when nothing is stored at path
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns the paths under prefix in lexical order
	List(ctx context.Context, prefix string) ([]string, error)

	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}

// Config selects and configures a backend
type Config struct {
	Backend string // "localfs" or "s3"
	Path    string // localfs root
	S3      S3Config
}

// Open returns the backend named by cfg.Backend
func Open(cfg Config) (Storage, error) {
	switch cfg.Backend {
	case "", "localfs":
		return NewLocalFS(cfg.Path)
	case "s3":
		return NewS3(cfg.S3)
	}
	return nil, fmt.Errorf("unknown archive backend %q", cfg.Backend)
}

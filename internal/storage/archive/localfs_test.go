// internal/storage/archive/localfs_test.go
package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/newthinker/journal/internal/core"
)

func TestLocalFS_ImplementsStorage(t *testing.T) {
	var _ Storage = (*LocalFS)(nil)
}

func TestLocalFS_WriteRead(t *testing.T) {
	fs, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalFS: %v", err)
	}

	ctx := context.Background()
	data := []byte(`{"id":"a1"}`)

	if err := fs.Write(ctx, "accounts/a1.json", data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := fs.Read(ctx, "accounts/a1.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestLocalFS_ReadMissing(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())

	_, err := fs.Read(context.Background(), "accounts/none.json")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLocalFS_StaysUnderRoot(t *testing.T) {
	root := t.TempDir()
	fs, _ := NewLocalFS(filepath.Join(root, "archive"))
	ctx := context.Background()

	if err := fs.Write(ctx, "../../escape.json", []byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "escape.json")); err == nil {
		t.Error("write escaped the archive root")
	}
	if ok, _ := fs.Exists(ctx, "escape.json"); !ok {
		t.Error("expected the path to be cleaned into the root")
	}
}

func TestLocalFS_Exists(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	exists, _ := fs.Exists(ctx, "nonexistent.json")
	if exists {
		t.Error("expected false for nonexistent file")
	}

	fs.Write(ctx, "exists.json", []byte("data"))
	exists, _ = fs.Exists(ctx, "exists.json")
	if !exists {
		t.Error("expected true for existing file")
	}
}

func TestLocalFS_List(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	fs.Write(ctx, "accounts/b.json", []byte("b"))
	fs.Write(ctx, "accounts/a.json", []byte("a"))
	fs.Write(ctx, "other/c.json", []byte("c"))

	paths, err := fs.List(ctx, "accounts/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 2 || paths[0] != "accounts/a.json" || paths[1] != "accounts/b.json" {
		t.Errorf("List = %v", paths)
	}

	empty, err := fs.List(ctx, "missing/")
	if err != nil || len(empty) != 0 {
		t.Errorf("List(missing) = %v, %v", empty, err)
	}
}

func TestLocalFS_Delete(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	fs.Write(ctx, "delete.json", []byte("data"))
	if err := fs.Delete(ctx, "delete.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	exists, _ := fs.Exists(ctx, "delete.json")
	if exists {
		t.Error("file should be deleted")
	}
	if err := fs.Delete(ctx, "delete.json"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	if _, err := Open(Config{Backend: "localfs", Path: t.TempDir()}); err != nil {
		t.Errorf("Open(localfs): %v", err)
	}
	if _, err := Open(Config{Backend: "s3", S3: S3Config{Bucket: "snapshots", Region: "us-east-1"}}); err != nil {
		t.Errorf("Open(s3): %v", err)
	}
	if _, err := Open(Config{Backend: "ftp"}); err == nil {
		t.Error("expected error for unknown backend")
	}
	if _, err := Open(Config{Backend: "localfs"}); !errors.Is(err, core.ErrConfigMissing) {
		t.Errorf("expected ErrConfigMissing, got %v", err)
	}
}

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	mypllog "github.com/msto63/mypl/pkg/core/log"
)

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "x.mypl"), 0, mypllog.Discard())
	if err == nil {
		t.Error("New() on a missing directory should fail")
	}
}

func TestWatcher_DebouncedChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.mypl")
	if err := os.WriteFile(path, []byte("var x = 1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, 50*time.Millisecond, mypllog.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if w.Path() != path {
		t.Errorf("Path() = %v, want %v", w.Path(), path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { changes <- struct{}{} })
	}()

	// unrelated files in the directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("var x = 2;"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification within 5s")
	}

	select {
	case <-changes:
		t.Error("burst of writes produced more than one notification")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

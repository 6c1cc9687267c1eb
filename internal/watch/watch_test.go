package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatchSignalsOnCreate(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, dir, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	for _, n := range []string{"a.jpg", "b.jpg", "c.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatalf("expected a change signal")
	}

	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			// a second debounced signal may still be buffered; the close must follow
			if _, ok := <-ch; ok {
				t.Fatalf("expected channel closed after cancel")
			}
		}
	case <-time.After(time.Second):
		t.Fatalf("channel not closed after cancel")
	}
}

func TestWatchMissingDir(t *testing.T) {
	if _, err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), time.Millisecond, nil); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}

func TestRelevant(t *testing.T) {
	if relevant(fsnotify.Event{Name: "/d/.tmp", Op: fsnotify.Create}) {
		t.Fatalf("hidden files are ignored")
	}
	if relevant(fsnotify.Event{Name: "/d/a.jpg", Op: fsnotify.Chmod}) {
		t.Fatalf("chmod is ignored")
	}
	if !relevant(fsnotify.Event{Name: "/d/a.jpg", Op: fsnotify.Remove}) {
		t.Fatalf("remove is relevant")
	}
}

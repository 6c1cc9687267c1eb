package saver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveCopiesFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "status.jpg")
	if err := os.WriteFile(src, []byte("pixels"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "saved")
	s := New(dir)

	dest, err := s.Save(context.Background(), src)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if dest != filepath.Join(dir, "status.jpg") {
		t.Fatalf("unexpected dest %s", dest)
	}
	b, err := os.ReadFile(dest)
	if err != nil || string(b) != "pixels" {
		t.Fatalf("unexpected copy content %q err=%v", b, err)
	}
	// no temp files left behind
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file in save dir, got %d", len(entries))
	}
}

func TestSaveSameFileTwiceIsNoop(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.mp4")
	_ = os.WriteFile(src, []byte("video"), 0o644)
	s := New(t.TempDir())
	first, err := s.Save(context.Background(), src)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := s.Save(context.Background(), src)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical copy to be reused, got %s and %s", first, second)
	}
}

func TestSaveNameClashGetsSuffix(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("other content"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	src := filepath.Join(t.TempDir(), "a.jpg")
	_ = os.WriteFile(src, []byte("new"), 0o644)

	dest, err := New(dir).Save(context.Background(), src)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(dest) != "a (1).jpg" {
		t.Fatalf("expected suffixed name, got %s", dest)
	}
}

func TestSaveErrors(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Save(context.Background(), filepath.Join(t.TempDir(), "missing.jpg")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := s.Save(context.Background(), t.TempDir()); !errors.Is(err, ErrNotRegular) {
		t.Fatalf("expected ErrNotRegular, got %v", err)
	}
	if _, err := New("").Save(context.Background(), "x"); err == nil {
		t.Fatalf("expected error without save dir")
	}
}

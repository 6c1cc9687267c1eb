// Package saver copies status media into the user's save directory.
package saver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotRegular is returned when the source is not a regular file.
var ErrNotRegular = errors.New("not a regular file")

// Saver copies files into Dir.
type Saver struct {
	Dir string
}

// New returns a Saver writing into dir.
func New(dir string) *Saver { return &Saver{Dir: dir} }

// Save copies src into the save directory and returns the destination
// path. A file with the same name and size already present counts as
// saved; any other name clash gets a " (n)" suffix.
func (s *Saver) Save(ctx context.Context, src string) (string, error) {
	if s.Dir == "" {
		return "", fmt.Errorf("save: no save directory configured")
	}
	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("save %s: %w", src, ErrNotRegular)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}

	dest, done, err := s.destination(filepath.Base(src), info.Size())
	if err != nil || done {
		return dest, err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := copyAtomic(src, dest, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("save %s: %w", src, err)
	}
	return dest, nil
}

// destination picks a free name in Dir. done reports that an identical
// copy already exists at dest.
func (s *Saver) destination(name string, size int64) (dest string, done bool, err error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < 1000; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		p := filepath.Join(s.Dir, candidate)
		fi, err := os.Stat(p)
		if errors.Is(err, os.ErrNotExist) {
			return p, false, nil
		}
		if err != nil {
			return "", false, err
		}
		if i == 0 && fi.Mode().IsRegular() && fi.Size() == size {
			return p, true, nil
		}
	}
	return "", false, fmt.Errorf("save %s: too many copies", name)
}

func copyAtomic(src, dest string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".saving-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o644
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, dest)
}

// Package statuses discovers status media files on the local filesystem.
package statuses

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Kind distinguishes image from video media.
type Kind string

// Media kinds understood by the scanner.
const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// ErrNoDirectory is returned when neither a location nor a default
// status directory is available.
var ErrNoDirectory = errors.New("no status directory configured")

var extKinds = map[string]Kind{
	".jpg":  KindImage,
	".jpeg": KindImage,
	".png":  KindImage,
	".webp": KindImage,
	".gif":  KindImage,
	".mp4":  KindVideo,
	".3gp":  KindVideo,
	".mkv":  KindVideo,
	".webm": KindVideo,
	".mov":  KindVideo,
}

// KindOf classifies a file name by extension.
func KindOf(name string) (Kind, bool) {
	k, ok := extKinds[strings.ToLower(filepath.Ext(name))]
	return k, ok
}

// File is a discovered status file.
type File struct {
	Path    string
	Name    string
	Kind    Kind
	Size    int64
	ModTime time.Time
}

// Scanner lists status files for a location.
type Scanner struct {
	// DefaultDir is used when the caller passes an empty location.
	DefaultDir string
	// FallbackSubdirs are probed under the location in fallback mode.
	FallbackSubdirs []string
}

// Scan returns files of the given kind, newest first. With fallback set,
// dir is treated as a device or backup root and every existing
// FallbackSubdirs entry beneath it is scanned.
func (s *Scanner) Scan(dir string, fallback bool, kind Kind) ([]File, error) {
	if dir == "" {
		dir = s.DefaultDir
	}
	if dir == "" {
		return nil, ErrNoDirectory
	}
	if !fallback {
		out, err := scanDir(dir, kind)
		if err != nil {
			return nil, err
		}
		sortNewestFirst(out)
		return out, nil
	}

	var out []File
	found := false
	for _, sub := range s.FallbackSubdirs {
		p := filepath.Join(dir, filepath.FromSlash(sub))
		files, err := scanDir(p, kind)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		found = true
		out = append(out, files...)
	}
	if !found {
		return nil, fmt.Errorf("no status folder under %s: %w", dir, fs.ErrNotExist)
	}
	sortNewestFirst(out)
	return out, nil
}

func scanDir(dir string, kind Kind) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read status dir: %w", err)
	}
	out := make([]File, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		k, ok := KindOf(name)
		if !ok || k != kind {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		out = append(out, File{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Kind:    k,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return out, nil
}

func sortNewestFirst(files []File) {
	sort.SliceStable(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name < files[j].Name
	})
}

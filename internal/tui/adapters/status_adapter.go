package adapters

import (
	"context"
	"fmt"

	"github.com/VoxDroid/statussaver/internal/statuses"
)

// StatusSourceImpl adapts statuses.Scanner to the StatusSource interface.
type StatusSourceImpl struct{ scanner *statuses.Scanner }

// NewStatusSource returns a StatusSource backed by s.
func NewStatusSource(s *statuses.Scanner) *StatusSourceImpl {
	return &StatusSourceImpl{scanner: s}
}

// Fetch scans the location for media of kind.
func (a *StatusSourceImpl) Fetch(ctx context.Context, loc Locator, usesFallback bool, kind Kind) ([]MediaItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := a.scanner.Scan(string(loc), usesFallback, statuses.Kind(kind))
	if err != nil {
		return nil, fmt.Errorf("fetch statuses: %w", err)
	}
	out := make([]MediaItem, 0, len(files))
	for _, f := range files {
		out = append(out, MediaItem{
			Locator: Locator(f.Path),
			Kind:    Kind(f.Kind),
			Name:    f.Name,
			Size:    f.Size,
			ModTime: f.ModTime,
		})
	}
	return out, nil
}

// Package adapters provides adapter interfaces and lightweight types used by
// the TUI to decouple it from the internal domain packages.
package adapters

import (
	"context"
	"time"
)

// Locator is an opaque reference to a folder holding status media. The
// zero value means no location.
type Locator string

// Kind discriminates image from video media.
type Kind string

// Media kinds requested from a StatusSource.
const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// MediaItem is a single discovered status file. Name, Size and ModTime are
// for display only.
type MediaItem struct {
	Locator Locator
	Kind    Kind
	Name    string
	Size    int64
	ModTime time.Time
}

// Equal reports whether two items describe the same file snapshot.
func (m MediaItem) Equal(o MediaItem) bool {
	return m.Locator == o.Locator && m.Kind == o.Kind && m.Name == o.Name &&
		m.Size == o.Size && m.ModTime.Equal(o.ModTime)
}

// StatusSource resolves a location and media kind to the media it holds.
type StatusSource interface {
	Fetch(ctx context.Context, loc Locator, usesFallback bool, kind Kind) ([]MediaItem, error)
}

// MediaSaver copies a media item to durable storage.
type MediaSaver interface {
	Save(ctx context.Context, item MediaItem) error
}

// PreferenceStore persists the last used location.
type PreferenceStore interface {
	SetLocator(ctx context.Context, loc Locator) error
	// Locators emits the stored location first, then every later change,
	// until ctx is done.
	Locators(ctx context.Context) (<-chan Locator, error)
}

// Telemetry receives analytics events from the UI layer.
type Telemetry interface {
	LogEvent(ctx context.Context, name string, params map[string]string) error
}

package model

import (
	"slices"

	"github.com/VoxDroid/statussaver/internal/tui/adapters"
)

// Tab selects which media kind the browser shows.
type Tab int

// Tabs in display order.
const (
	TabImages Tab = iota
	TabVideos
)

// Kind returns the media kind requested while t is selected.
func (t Tab) Kind() adapters.Kind {
	if t == TabImages {
		return adapters.KindImage
	}
	return adapters.KindVideo
}

func (t Tab) String() string {
	if t == TabImages {
		return "images"
	}
	return "videos"
}

// SaveOutcome is the result of the most recent save, if any.
type SaveOutcome int

// Save outcomes. SaveUnknown means no save has finished yet.
const (
	SaveUnknown SaveOutcome = iota
	SaveSucceeded
	SaveFailed
)

// UIState is one immutable snapshot of the statuses screen. The controller
// replaces it wholesale on every commit; receivers must not modify Items.
type UIState struct {
	SelectedTab  Tab
	Location     adapters.Locator
	UsesFallback bool
	Loading      bool
	Items        []adapters.MediaItem
	// FetchSeq identifies the fetch whose results are in Items; zero
	// before any fetch has completed.
	FetchSeq uint64

	Saving   bool
	LastSave SaveOutcome

	FullImageOpen   bool
	FullImageTarget adapters.Locator
	HelpOpen        bool
}

// Equal reports whether s and o would render identically.
func (s UIState) Equal(o UIState) bool {
	return s.SelectedTab == o.SelectedTab &&
		s.Location == o.Location &&
		s.UsesFallback == o.UsesFallback &&
		s.Loading == o.Loading &&
		s.FetchSeq == o.FetchSeq &&
		s.Saving == o.Saving &&
		s.LastSave == o.LastSave &&
		s.FullImageOpen == o.FullImageOpen &&
		s.FullImageTarget == o.FullImageTarget &&
		s.HelpOpen == o.HelpOpen &&
		slices.EqualFunc(s.Items, o.Items, adapters.MediaItem.Equal)
}

package model

import "github.com/VoxDroid/statussaver/internal/tui/adapters"

// Messages emitted by the controller itself.
const (
	MsgSaved       = "Image saved successfully"
	MsgSaveFailed  = "Failed to save image, try again."
	MsgFetchFailed = "Failed to load statuses, try again."
)

// Event is both an intent submitted to the Controller and a one-shot
// notification broadcast to the UI. Only types in this package
// implement it.
type Event interface {
	isEvent()
}

// Level tells the UI how to present a Notify.
type Level int

// Notify levels.
const (
	LevelInfo Level = iota
	LevelError
)

// Notify carries a message for the user.
type Notify struct {
	Message string
	Level   Level
}

// RequestFetch loads media of the selected tab's kind from Location.
type RequestFetch struct {
	Location     adapters.Locator
	UsesFallback bool
}

// RequestSave copies Item to durable storage.
type RequestSave struct {
	Item adapters.MediaItem
}

// RequestTabChange selects Tab and reloads the current location.
type RequestTabChange struct {
	Tab Tab
}

// RequestShare asks the UI to share Item.
type RequestShare struct {
	Item adapters.MediaItem
}

// RequestShowFullImage opens or closes the full image dialog.
type RequestShowFullImage struct {
	Show     bool
	Location adapters.Locator
}

// RequestPlayVideo asks the UI to play the video at Location.
type RequestPlayVideo struct {
	Location adapters.Locator
}

// RequestShowHelp opens or closes the help dialog.
type RequestShowHelp struct {
	Show bool
}

func (Notify) isEvent()               {}
func (RequestFetch) isEvent()         {}
func (RequestSave) isEvent()          {}
func (RequestTabChange) isEvent()     {}
func (RequestShare) isEvent()         {}
func (RequestShowFullImage) isEvent() {}
func (RequestPlayVideo) isEvent()     {}
func (RequestShowHelp) isEvent()      {}

package ui

import (
	"context"
	"log/slog"

	"github.com/VoxDroid/statussaver/internal/tui/adapters"
	modelpkg "github.com/VoxDroid/statussaver/internal/tui/model"
)

// Controller is the subset of the statuses controller the TUI drives. It
// keeps presentation code testable without a database or filesystem.
type Controller interface {
	Submit(ev modelpkg.Event) error
	State() modelpkg.UIState
	ObserveState(ctx context.Context) <-chan modelpkg.UIState
	ObserveEvents(ctx context.Context) <-chan modelpkg.Event
	Telemetry() adapters.Telemetry
}

var _ Controller = (*modelpkg.Controller)(nil)

// Options carries the side effects the TUI performs for broadcast events.
// Nil funcs fall back to the internal/native implementations.
type Options struct {
	// Player is the command used for RequestPlayVideo; empty uses the OS default.
	Player string
	// Changes signals that the status folder changed and should be re-fetched.
	Changes <-chan struct{}

	// Logger receives analytics failures; nil uses slog.Default.
	Logger *slog.Logger

	Share func(text string) error
	Play  func(player, target string) error
	Open  func(target string) error
}

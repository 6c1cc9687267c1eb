package adapters

import (
	"context"

	"github.com/VoxDroid/statussaver/internal/saver"
)

// MediaSaverImpl adapts saver.Saver to the MediaSaver interface.
type MediaSaverImpl struct{ saver *saver.Saver }

// NewMediaSaver returns a MediaSaver backed by s.
func NewMediaSaver(s *saver.Saver) *MediaSaverImpl {
	return &MediaSaverImpl{saver: s}
}

// Save copies the item's file into the save directory.
func (a *MediaSaverImpl) Save(ctx context.Context, item MediaItem) error {
	_, err := a.saver.Save(ctx, string(item.Locator))
	return err
}

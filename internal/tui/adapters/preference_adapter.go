package adapters

import (
	"context"
	"sync"

	"github.com/VoxDroid/statussaver/internal/prefs"
)

// PreferenceStoreImpl adapts prefs.Repository to the PreferenceStore
// interface and fans out changes to Locators subscribers.
type PreferenceStoreImpl struct {
	repo *prefs.Repository

	mu   sync.Mutex
	subs map[chan Locator]struct{}
}

// NewPreferenceStore returns a PreferenceStore backed by repo.
func NewPreferenceStore(repo *prefs.Repository) *PreferenceStoreImpl {
	return &PreferenceStoreImpl{repo: repo, subs: map[chan Locator]struct{}{}}
}

// Locator returns the stored location.
func (p *PreferenceStoreImpl) Locator(_ context.Context) (Locator, error) {
	v, _, err := p.repo.Get(prefs.KeyLastLocation)
	return Locator(v), err
}

// SetLocator stores loc; the zero Locator clears it.
func (p *PreferenceStoreImpl) SetLocator(_ context.Context, loc Locator) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.repo.Set(prefs.KeyLastLocation, string(loc)); err != nil {
		return err
	}
	for ch := range p.subs {
		// conflate: a slow subscriber only sees the newest value
		select {
		case <-ch:
		default:
		}
		ch <- loc
	}
	return nil
}

// Locators emits the stored location, then each later SetLocator value.
func (p *PreferenceStoreImpl) Locators(ctx context.Context) (<-chan Locator, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, _, err := p.repo.Get(prefs.KeyLastLocation)
	if err != nil {
		return nil, err
	}
	ch := make(chan Locator, 1)
	ch <- Locator(v)
	p.subs[ch] = struct{}{}
	go func() {
		<-ctx.Done()
		p.mu.Lock()
		delete(p.subs, ch)
		close(ch)
		p.mu.Unlock()
	}()
	return ch, nil
}

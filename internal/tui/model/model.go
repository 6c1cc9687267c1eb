// Package model provides a framework-agnostic UI model built on top of
// adapter interfaces so the TUI code can remain presentation-focused.
//
// A Controller owns the statuses screen state. Intents go in through
// Submit and are handled one at a time in submission order; state comes
// out through State and ObserveState, and one-shot notifications through
// ObserveEvents.
package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/VoxDroid/statussaver/internal/tui/adapters"
)

// ErrClosed is returned by operations on a closed Controller.
var ErrClosed = errors.New("controller closed")

var errNotConfigured = errors.New("adapter not configured")

// Controller mediates between submitted intents, the data adapters and the
// rendered UI state. It depends only on adapter interfaces.
//
// Handlers commit their leading state changes on the dispatcher goroutine
// and run adapter calls on goroutines of their own, so a second fetch or
// save can start before the first completes. The last commit wins unless
// WithDiscardStaleFetches is set. Adapter implementations must return
// once their context is cancelled.
type Controller struct {
	source adapters.StatusSource
	saver  adapters.MediaSaver
	prefs  adapters.PreferenceStore
	tel    adapters.Telemetry
	log    *slog.Logger

	state        *stateCell
	events       *broadcaster
	queue        *intentQueue
	discardStale bool
	fetchGen     atomic.Uint64

	ctx       context.Context
	cancel    context.CancelFunc
	inflight  sync.WaitGroup
	done      chan struct{}
	closeOnce sync.Once
}

type options struct {
	logger       *slog.Logger
	eventBuffer  int
	initial      UIState
	discardStale bool
}

// Option configures a Controller.
type Option func(*options)

// WithLogger sets the logger used for adapter failures and dropped events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithEventBuffer sets how many undelivered events each ObserveEvents
// subscriber may hold before later events are dropped for it.
func WithEventBuffer(n int) Option {
	return func(o *options) { o.eventBuffer = n }
}

// WithInitialState seeds the first snapshot.
func WithInitialState(s UIState) Option {
	return func(o *options) { o.initial = s }
}

// WithDiscardStaleFetches drops a fetch result when a newer fetch was
// issued after it. Nothing is cancelled; the older call still runs.
func WithDiscardStaleFetches(on bool) Option {
	return func(o *options) { o.discardStale = on }
}

// New constructs a Controller backed by the provided adapters and starts
// its dispatcher. A nil Telemetry is replaced by adapters.NopTelemetry.
func New(src adapters.StatusSource, sv adapters.MediaSaver, prefs adapters.PreferenceStore, tel adapters.Telemetry, opts ...Option) *Controller {
	o := options{eventBuffer: 32}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if tel == nil {
		tel = adapters.NopTelemetry{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		source:       src,
		saver:        sv,
		prefs:        prefs,
		tel:          tel,
		log:          o.logger,
		state:        newStateCell(o.initial),
		events:       newBroadcaster(o.eventBuffer),
		queue:        newIntentQueue(),
		discardStale: o.discardStale,
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}
	go c.run()
	return c
}

// Submit enqueues an intent and returns without waiting for it.
func (c *Controller) Submit(ev Event) error {
	if ev == nil {
		return fmt.Errorf("submit: nil event")
	}
	if !c.queue.push(ev) {
		return ErrClosed
	}
	return nil
}

// State returns the most recently committed snapshot.
func (c *Controller) State() UIState { return c.state.get() }

// ObserveState returns a channel that yields the current snapshot at once
// and then each newer distinct snapshot. A slow reader only sees the
// latest. The channel closes when ctx is done or the controller closes.
func (c *Controller) ObserveState(ctx context.Context) <-chan UIState {
	return c.state.subscribe(ctx)
}

// ObserveEvents returns a channel receiving every event emitted after the
// call. Earlier events are not replayed.
func (c *Controller) ObserveEvents(ctx context.Context) <-chan Event {
	return c.events.subscribe(ctx)
}

// AwaitState blocks until a snapshot satisfies pred.
func (c *Controller) AwaitState(ctx context.Context, pred func(UIState) bool) (UIState, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	for s := range c.state.subscribe(ctx) {
		if pred(s) {
			return s, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return UIState{}, err
	}
	return UIState{}, ErrClosed
}

// RestoreLocator commits the first location emitted by the preference
// store into the state. It does not fetch.
func (c *Controller) RestoreLocator(ctx context.Context) error {
	if c.prefs == nil {
		return fmt.Errorf("restore location: preference store %w", errNotConfigured)
	}
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ch, err := c.prefs.Locators(ctx)
	if err != nil {
		return fmt.Errorf("restore location: %w", err)
	}
	select {
	case loc, ok := <-ch:
		if !ok {
			return fmt.Errorf("restore location: preference stream closed")
		}
		c.state.update(func(s UIState) UIState {
			s.Location = loc
			return s
		})
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrClosed
	}
}

// Telemetry returns the analytics sink for the UI layer to log to.
func (c *Controller) Telemetry() adapters.Telemetry { return c.tel }

// Close stops accepting intents, cancels in-flight adapter calls, waits for
// them to return and closes every subscriber channel. Queued intents that
// were not yet handled are dropped.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.queue.close()
		<-c.done
		c.cancel()
		c.inflight.Wait()
		c.state.close()
		c.events.close()
	})
	return nil
}

func (c *Controller) run() {
	defer close(c.done)
	for {
		ev, ok := c.queue.pop()
		if !ok {
			return
		}
		c.handle(ev)
	}
}

func (c *Controller) handle(ev Event) {
	switch ev := ev.(type) {
	case Notify:
		c.emit(ev)
	case RequestFetch:
		c.fetch(ev.Location, ev.UsesFallback, c.state.get().SelectedTab.Kind())
	case RequestSave:
		c.save(ev.Item)
	case RequestTabChange:
		s := c.state.update(func(s UIState) UIState {
			s.SelectedTab = ev.Tab
			return s
		})
		c.fetch(s.Location, s.UsesFallback, ev.Tab.Kind())
	case RequestShare:
		c.emit(ev)
	case RequestShowFullImage:
		c.state.update(func(s UIState) UIState {
			s.FullImageOpen = ev.Show
			s.FullImageTarget = ev.Location
			return s
		})
	case RequestPlayVideo:
		c.emit(ev)
	case RequestShowHelp:
		c.state.update(func(s UIState) UIState {
			s.HelpOpen = ev.Show
			return s
		})
	default:
		c.log.Warn("unhandled intent", "type", fmt.Sprintf("%T", ev))
	}
}

func (c *Controller) fetch(loc adapters.Locator, fallback bool, kind adapters.Kind) {
	var gen uint64
	c.state.update(func(s UIState) UIState {
		gen = c.fetchGen.Add(1)
		s.Loading = true
		s.Location = loc
		s.UsesFallback = fallback
		return s
	})
	c.goCall(func(ctx context.Context) {
		var items []adapters.MediaItem
		err := errNotConfigured
		if c.source != nil {
			items, err = c.source.Fetch(ctx, loc, fallback, kind)
		}
		if err != nil && ctx.Err() != nil {
			return
		}

		committed := false
		c.state.update(func(s UIState) UIState {
			if c.discardStale && c.fetchGen.Load() != gen {
				return s
			}
			committed = true
			s.Loading = false
			if err == nil {
				s.Items = items
				s.FetchSeq = gen
			}
			return s
		})
		if !committed {
			c.log.Debug("discarded stale fetch", "location", loc, "kind", kind, "fetch", gen)
			return
		}
		if err != nil {
			c.log.Warn("fetch statuses failed", "location", loc, "kind", kind, "err", err)
			c.emit(Notify{Message: MsgFetchFailed, Level: LevelError})
			return
		}
		c.log.Debug("fetched statuses", "location", loc, "kind", kind, "count", len(items))

		if c.prefs == nil {
			return
		}
		if err := c.prefs.SetLocator(ctx, loc); err != nil {
			c.log.Warn("persist location failed", "location", loc, "err", err)
		}
	})
}

func (c *Controller) save(item adapters.MediaItem) {
	c.state.update(func(s UIState) UIState {
		s.Saving = true
		return s
	})
	c.goCall(func(ctx context.Context) {
		err := errNotConfigured
		if c.saver != nil {
			err = c.saver.Save(ctx, item)
		}
		if err != nil && ctx.Err() != nil {
			return
		}

		outcome, note := SaveSucceeded, Notify{Message: MsgSaved}
		if err != nil {
			c.log.Warn("save media failed", "item", item.Locator, "err", err)
			outcome, note = SaveFailed, Notify{Message: MsgSaveFailed, Level: LevelError}
		}
		c.state.update(func(s UIState) UIState {
			s.Saving = false
			s.LastSave = outcome
			return s
		})
		c.emit(note)
	})
}

func (c *Controller) emit(ev Event) {
	if n := c.events.publish(ev); n > 0 {
		c.log.Warn("event dropped for slow subscribers", "type", fmt.Sprintf("%T", ev), "subscribers", n)
	}
}

// goCall runs fn on its own goroutine with the controller context. It is
// only called from the dispatcher, which has exited before Close waits.
func (c *Controller) goCall(fn func(ctx context.Context)) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		fn(c.ctx)
	}()
}

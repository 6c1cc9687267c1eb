// Package ui is the Bubble Tea front end for the statuses controller. It
// turns key presses into intents, renders committed state and performs the
// side effects requested through broadcast events.
package ui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/VoxDroid/statussaver/internal/native"
	"github.com/VoxDroid/statussaver/internal/tui/adapters"
	modelpkg "github.com/VoxDroid/statussaver/internal/tui/model"
)

// TuiModel is the Bubble Tea model used by cmd/tui.
type TuiModel struct {
	ctrl Controller
	opts Options

	ctx    context.Context
	cancel context.CancelFunc
	states <-chan modelpkg.UIState
	events <-chan modelpkg.Event

	state   modelpkg.UIState
	list    list.Model
	spinner spinner.Model

	status      string
	statusLevel modelpkg.Level

	width  int
	height int
}

// Messages
type stateMsg modelpkg.UIState
type eventMsg struct{ ev modelpkg.Event }
type streamClosedMsg struct{}
type changedMsg struct{}
type actionResultMsg struct {
	action string
	err    error
}

// NewModel subscribes to ctrl and returns a model ready for tea.NewProgram.
func NewModel(ctrl Controller, opts Options) *TuiModel {
	if opts.Share == nil {
		opts.Share = native.CopyToClipboard
	}
	if opts.Play == nil {
		opts.Play = native.Play
	}
	if opts.Open == nil {
		opts.Open = native.Open
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ctx, cancel := context.WithCancel(context.Background())
	return &TuiModel{
		ctrl:    ctrl,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		states:  ctrl.ObserveState(ctx),
		events:  ctrl.ObserveEvents(ctx),
		state:   ctrl.State(),
		list:    l,
		spinner: sp,
	}
}

// NewProgram constructs the tea.Program for the TUI.
func NewProgram(ctrl Controller, opts Options) *tea.Program {
	return tea.NewProgram(NewModel(ctrl, opts), tea.WithAltScreen())
}

func (m *TuiModel) Init() tea.Cmd {
	if m.list.Height() == 0 {
		m.list.SetSize(40, 12)
	}
	return tea.Batch(
		readState(m.states),
		readEvents(m.events),
		readChanges(m.opts.Changes),
		m.spinner.Tick,
		m.logEvent("screen_opened", map[string]string{"tab": m.state.SelectedTab.String()}),
	)
}

func (m *TuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := msg.Height - 7
		if h < 3 {
			h = 3
		}
		m.list.SetSize(msg.Width-2, h)
		return m, nil

	case stateMsg:
		m.state = modelpkg.UIState(msg)
		return m, tea.Batch(m.syncItems(), readState(m.states))

	case eventMsg:
		return m, tea.Batch(m.handleEvent(msg.ev), readEvents(m.events))

	case changedMsg:
		m.submit(modelpkg.RequestFetch{Location: m.state.Location, UsesFallback: m.state.UsesFallback})
		return m, readChanges(m.opts.Changes)

	case actionResultMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("%s failed: %v", msg.action, msg.err), modelpkg.LevelError)
		} else if msg.action == "share" {
			m.setStatus("Path copied to clipboard.", modelpkg.LevelInfo)
		}
		return m, nil

	case streamClosedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *TuiModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.cancel()
		return tea.Quit, true
	case "esc":
		switch {
		case m.state.HelpOpen:
			m.submit(modelpkg.RequestShowHelp{Show: false})
		case m.state.FullImageOpen:
			m.submit(modelpkg.RequestShowFullImage{Show: false})
		default:
			return nil, false
		}
		return nil, true
	case "?":
		m.submit(modelpkg.RequestShowHelp{Show: !m.state.HelpOpen})
		return nil, true
	case "tab", "left", "right":
		next := modelpkg.TabVideos
		if m.state.SelectedTab == modelpkg.TabVideos {
			next = modelpkg.TabImages
		}
		m.submit(modelpkg.RequestTabChange{Tab: next})
		return m.logEvent("tab_changed", map[string]string{"tab": next.String()}), true
	case "r":
		m.submit(modelpkg.RequestFetch{Location: m.state.Location, UsesFallback: m.state.UsesFallback})
		return nil, true
	}

	it, ok := m.selected()
	if !ok {
		return nil, false
	}
	switch msg.String() {
	case "enter":
		if it.Kind == adapters.KindVideo {
			m.submit(modelpkg.RequestPlayVideo{Location: it.Locator})
		} else {
			m.submit(modelpkg.RequestShowFullImage{Show: true, Location: it.Locator})
			return m.logEvent("full_image_opened", nil), true
		}
		return nil, true
	case "s":
		m.submit(modelpkg.RequestSave{Item: it})
		return m.logEvent("save_requested", map[string]string{"kind": string(it.Kind)}), true
	case "c":
		m.submit(modelpkg.RequestShare{Item: it})
		return nil, true
	case "o":
		target := string(it.Locator)
		if m.state.FullImageOpen && m.state.FullImageTarget != "" {
			target = string(m.state.FullImageTarget)
		}
		return runAction("open", func() error { return m.opts.Open(target) }), true
	}
	return nil, false
}

// selected returns the item under the cursor, or the open full image.
func (m *TuiModel) selected() (adapters.MediaItem, bool) {
	if m.state.FullImageOpen {
		for _, it := range m.state.Items {
			if it.Locator == m.state.FullImageTarget {
				return it, true
			}
		}
	}
	if li, ok := m.list.SelectedItem().(mediaItem); ok {
		return li.it, true
	}
	return adapters.MediaItem{}, false
}

func (m *TuiModel) handleEvent(ev modelpkg.Event) tea.Cmd {
	switch ev := ev.(type) {
	case modelpkg.Notify:
		m.setStatus(ev.Message, ev.Level)
	case modelpkg.RequestShare:
		target := string(ev.Item.Locator)
		return tea.Batch(
			runAction("share", func() error { return m.opts.Share(target) }),
			m.logEvent("media_shared", map[string]string{"kind": string(ev.Item.Kind)}),
		)
	case modelpkg.RequestPlayVideo:
		player, target := m.opts.Player, string(ev.Location)
		return tea.Batch(
			runAction("play", func() error { return m.opts.Play(player, target) }),
			m.logEvent("video_played", nil),
		)
	}
	return nil
}

func (m *TuiModel) submit(ev modelpkg.Event) {
	if err := m.ctrl.Submit(ev); err != nil {
		m.setStatus(err.Error(), modelpkg.LevelError)
	}
}

func (m *TuiModel) setStatus(msg string, level modelpkg.Level) {
	m.status, m.statusLevel = msg, level
}

// syncItems replaces the list contents when the committed items changed.
func (m *TuiModel) syncItems() tea.Cmd {
	cur := m.list.Items()
	if len(cur) == len(m.state.Items) {
		same := true
		for i, li := range cur {
			if mi, ok := li.(mediaItem); !ok || !mi.it.Equal(m.state.Items[i]) {
				same = false
				break
			}
		}
		if same {
			return nil
		}
	}
	items := make([]list.Item, 0, len(m.state.Items))
	for _, it := range m.state.Items {
		items = append(items, mediaItem{it: it})
	}
	return m.list.SetItems(items)
}

func (m *TuiModel) logEvent(name string, params map[string]string) tea.Cmd {
	tel, log := m.ctrl.Telemetry(), m.opts.Logger
	ctx := m.ctx
	return func() tea.Msg {
		if err := tel.LogEvent(ctx, name, params); err != nil {
			log.Warn("record analytics event", "name", name, "err", err)
		}
		return nil
	}
}

func runAction(action string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionResultMsg{action: action, err: fn()}
	}
}

// readState returns a command that reads one snapshot from the channel.
// Update returns it again to keep following the stream.
func readState(ch <-chan modelpkg.UIState) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return stateMsg(s)
	}
}

func readEvents(ch <-chan modelpkg.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return eventMsg{ev: ev}
	}
}

func readChanges(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return streamClosedMsg{}
		}
		return changedMsg{}
	}
}

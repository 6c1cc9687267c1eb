package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/VoxDroid/statussaver/internal/tui/adapters"
	modelpkg "github.com/VoxDroid/statussaver/internal/tui/model"
	"github.com/VoxDroid/statussaver/internal/tui/sanitize"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#0f766e")).Padding(0, 1)
	activeTab   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7dd3fc")).Underline(true).Padding(0, 2)
	inactiveTab = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b")).Padding(0, 2)
	dialogStyle = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#c084fc")).Padding(1, 2)
	footerStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#94a3b8"))
	statusInfo  = lipgloss.NewStyle().Background(lipgloss.Color("#0b1226")).Foreground(lipgloss.Color("#cbd5e1")).Padding(0, 1)
	statusError = lipgloss.NewStyle().Background(lipgloss.Color("#7f1d1d")).Foreground(lipgloss.Color("#fee2e2")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")).Width(10)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b")).Padding(1, 2)
)

const helpText = `Keys

tab / ← / →   switch between images and videos
↑ / ↓         move the selection
/             filter by name
enter         view image or play video
s             save the selected status
c             copy its path to the clipboard
o             open in the system viewer
r             reload the folder
esc           close this dialog or the image view
q             quit`

func (m *TuiModel) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render("statussaver"), " ", m.renderTabs())

	var body string
	switch {
	case m.state.HelpOpen:
		body = dialogStyle.Render(helpText)
	case m.state.FullImageOpen:
		body = dialogStyle.Render(m.renderFullImage())
	case len(m.list.Items()) == 0 && !m.state.Loading:
		body = emptyStyle.Render(fmt.Sprintf("No %s in %s", m.state.SelectedTab, locationLabel(m.state.Location)))
	default:
		body = m.list.View()
	}

	footer := footerStyle.Render("tab switch • enter view • s save • c share • o open • r reload • ? help • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer, m.renderStatus(width))
}

func (m *TuiModel) renderTabs() string {
	tabs := []modelpkg.Tab{modelpkg.TabImages, modelpkg.TabVideos}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := strings.ToUpper(t.String()[:1]) + t.String()[1:]
		if t == m.state.SelectedTab {
			parts = append(parts, activeTab.Render(label))
		} else {
			parts = append(parts, inactiveTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *TuiModel) renderFullImage() string {
	target := m.state.FullImageTarget
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(sanitize.DisplayName(filepath.Base(string(target)))))
	b.WriteString("\n\n")
	for _, it := range m.state.Items {
		if it.Locator != target {
			continue
		}
		b.WriteString(labelStyle.Render("Size") + humanize.Bytes(uint64(it.Size)) + "\n")
		b.WriteString(labelStyle.Render("Modified") + humanize.Time(it.ModTime) + "\n")
		break
	}
	b.WriteString(labelStyle.Render("Path") + sanitize.DisplayName(string(target)) + "\n\n")
	b.WriteString(footerStyle.Render("o open in viewer • s save • c share • esc back"))
	return b.String()
}

func (m *TuiModel) renderStatus(width int) string {
	parts := []string{fmt.Sprintf("%d %s", len(m.state.Items), m.state.SelectedTab)}
	parts       = append(parts, locationLabel(m.state.Location))
	if m.state.UsesFallback {
		parts = append(parts, "fallback")
	}
	if m.state.Loading {
		parts = append(parts, m.spinner.View()+" loading")
	}
	if m.state.Saving {
		parts = append(parts, "saving")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	style := statusInfo
	if m.status != "" && m.statusLevel == modelpkg.LevelError {
		style = statusError
	}
	return style.Width(width).Render(strings.Join(parts, " • "))
}

func locationLabel(loc adapters.Locator) string {
	if loc == "" {
		return "default folder"
	}
	return sanitize.DisplayName(string(loc))
}

// mediaItem adapts adapters.MediaItem for the list component
type mediaItem struct{ it adapters.MediaItem }

func (i mediaItem) Title() string { return sanitize.DisplayName(i.it.Name) }
func (i mediaItem) Description() string {
	return humanize.Bytes(uint64(i.it.Size)) + " • " + humanize.Time(i.it.ModTime)
}
func (i mediaItem) FilterValue() string { return i.it.Name }

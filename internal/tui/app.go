// Package tui provides the interactive Bubble Tea dashboard for suds.
package tui

import (
	"fmt"
	"strings"

	"suds/internal/challenge"
	"suds/internal/cli"
	"suds/internal/dateutil"
	"suds/internal/ledger"
	"suds/internal/model"
	"suds/internal/tui/components"
	"suds/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Snapshot is everything the dashboard renders: settings, entries, and the
// computed per-day ledger as of today.
type Snapshot struct {
	Settings model.Settings
	Entries  []model.Entry
	Stats    ledger.StatsMap
	Streak   int
	Today    dateutil.Date
}

// Loader re-reads the snapshot from disk. Used for the refresh key.
type Loader func() (Snapshot, error)

// RefreshMsg is sent when a background data refresh completes.
type RefreshMsg struct {
	Snap Snapshot
	Err  error
}

// App is the root Bubble Tea model.
type App struct {
	snap     Snapshot
	currency string
	load     Loader

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	lastErr   error

	// Calendar tab: first day of the displayed month
	calMonth dateutil.Date

	// History tab scroll offset (0 = most recent day at top)
	histScroll int
}

const (
	minTerminalWidth = 70
	compactWidth     = 110
	maxContentWidth  = 160

	minContentHeight = 5
)

// NewApp creates a new dashboard model from an initial snapshot.
func NewApp(snap Snapshot, currency string, load Loader) App {
	return App{
		snap:     snap,
		currency: currency,
		load:     load,
		calMonth: dateutil.New(snap.Today.Year, snap.Today.Month, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" || key == "q" {
			return a, tea.Quit
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Refresh from disk
		if key == "r" && a.load != nil {
			return a, refreshCmd(a.load)
		}

		// Calendar month navigation
		if a.activeTab == 1 {
			switch key {
			case "[", "p":
				a.calMonth = a.calMonth.AddMonths(-1)
				return a, nil
			case "]", "n":
				a.calMonth = a.calMonth.AddMonths(1)
				return a, nil
			case "t":
				a.calMonth = dateutil.New(a.snap.Today.Year, a.snap.Today.Month, 1)
				return a, nil
			}
		}

		// History scrolling
		if a.activeTab == 2 {
			switch key {
			case "j", "down":
				a.histScroll++
				return a, nil
			case "k", "up":
				if a.histScroll > 0 {
					a.histScroll--
				}
				return a, nil
			case "g":
				a.histScroll = 0
				return a, nil
			}
		}

		// Tab navigation
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}
		switch key {
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil

	case RefreshMsg:
		if msg.Err != nil {
			a.lastErr = msg.Err
			return a, nil
		}
		a.lastErr = nil
		a.snap = msg.Snap
		a.histScroll = 0
		return a, nil
	}

	return a, nil
}

func refreshCmd(load Loader) tea.Cmd {
	return func() tea.Msg {
		snap, err := load()
		return RefreshMsg{Snap: snap, Err: err}
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  suds needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o c h g", "Jump to tab"},
		{"← → / tab", "Previous / Next tab"},
		{"[ ]", "Previous / Next month (calendar)"},
		{"j k", "Scroll history"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"r", "Reload data"},
		{"t", "Jump to current month (calendar)"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + today pill
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	todayStats := a.snap.Stats.Lookup(a.snap.Today)
	pill := pillStyle.Render(" ") + pillAccentStyle.Render(a.snap.Today.String())
	if todayStats.IsChallengeDay {
		pill += pillStyle.Render(" │ ") + pillAccentStyle.Render(todayStats.ChallengeName)
	}
	if a.lastErr != nil {
		pill += pillStyle.Render(" │ ") +
			lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render("reload failed")
	}
	pill += pillStyle.Render(" ")

	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		pillRowStyle.Render(pill)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.snap.Streak)

	// 3. Content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderCalendarTab(cw)
	case 2:
		content = a.renderHistoryTab(cw, contentH)
	case 3:
		content = a.renderChallengeTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// activeReport returns the progress report for the active challenge, if any.
func (a App) activeReport() (challenge.Progress, *model.Challenge, bool) {
	ch := a.snap.Settings.ActiveChallenge
	if ch == nil {
		return challenge.Progress{}, nil, false
	}
	rep := challenge.Report(*ch, a.snap.Settings, a.snap.Stats, a.snap.Today)
	return rep, ch, true
}

// ─── Helpers ────────────────────────────────────────────────────

func (a App) money(v float64) string {
	return cli.FormatMoney(a.currency, v)
}

func statusColor(s model.BudgetStatus) lipgloss.Color {
	t := theme.Active
	switch s {
	case model.OverBudget:
		return t.Red
	case model.Warning:
		return t.Orange
	default:
		return t.Green
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// Package dashboard is the interactive habit view: the list with its
// derived metrics, toggling, and habit creation, all driven through the
// reconciliation service.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/habit/pkg/app"
	"tableflip.dev/habit/pkg/badge"
	"tableflip.dev/habit/pkg/habit"
	"tableflip.dev/habit/pkg/metrics"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	pointsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

// refreshDoneMsg carries the outcome of a RefreshAll round trip.
type refreshDoneMsg struct {
	out app.RefreshOutcome
}

// toggleDoneMsg carries the outcome of one toggle.
type toggleDoneMsg struct {
	name   string
	earned []badge.Badge
	err    error
}

// createDoneMsg carries the outcome of one habit creation.
type createDoneMsg struct {
	err error
}

// Model renders the dashboard. Exactly one remote operation is ever in
// flight: while busy, the keys that would start another are ignored.
type Model struct {
	svc *app.Service
	now func() time.Time

	mode     mode
	cursor   int
	busy     bool
	status   string
	errMsg   string
	quitting bool
	expired  bool

	nameInput textinput.Model
	catIndex  int

	width  int
	height int
}

// New builds the dashboard over the provided service.
func New(svc *app.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. Drink 8 glasses of water"
	ti.CharLimit = 80
	ti.Width = 40

	return Model{
		svc:       svc,
		now:       time.Now,
		nameInput: ti,
		status:    "loading…",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m Model) refreshCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return refreshDoneMsg{out: svc.RefreshAll(context.Background())}
	}
}

func (m Model) toggleCmd(h *habit.Habit) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		earned, err := svc.Toggle(context.Background(), h.ID)
		return toggleDoneMsg{name: h.Name, earned: earned, err: err}
	}
}

func (m Model) createCmd(name string, category habit.Category) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return createDoneMsg{err: svc.CreateHabit(context.Background(), name, category)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshDoneMsg:
		m.busy = false
		if m.svc.State() != app.Authenticated {
			m.quitting = true
			m.expired = true
			return m, tea.Quit
		}
		if err := msg.out.Err(); err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
			m.status = fmt.Sprintf("refreshed at %s", m.now().Format("15:04:05"))
		}
		m.clampCursor()
		return m, nil

	case toggleDoneMsg:
		m.busy = false
		if m.svc.State() != app.Authenticated {
			m.quitting = true
			m.expired = true
			return m, tea.Quit
		}
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("updated %q", msg.name)
		if len(msg.earned) > 0 {
			names := make([]string, 0, len(msg.earned))
			for _, b := range msg.earned {
				info := b.Info()
				names = append(names, fmt.Sprintf("%s %s", info.Symbol, info.Name))
			}
			m.status = "new badge: " + strings.Join(names, ", ")
		}
		return m, nil

	case createDoneMsg:
		m.busy = false
		if m.svc.State() != app.Authenticated {
			m.quitting = true
			m.expired = true
			return m, tea.Quit
		}
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.status = "habit added"
		m.mode = modeList
		m.nameInput.SetValue("")
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeAdd {
			return m.updateAdd(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.svc.Habits())-1 {
			m.cursor++
		}
	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "refreshing…"
		return m, m.refreshCmd()
	case "enter", " ":
		if m.busy {
			// one mutation in flight at a time
			return m, nil
		}
		habits := m.svc.Habits()
		if m.cursor >= len(habits) {
			return m, nil
		}
		m.busy = true
		m.status = fmt.Sprintf("updating %q…", habits[m.cursor].Name)
		return m, m.toggleCmd(habits[m.cursor])
	case "L":
		if m.busy {
			return m, nil
		}
		m.svc.Logout()
		m.quitting = true
		return m, tea.Quit
	case "a":
		if m.busy {
			return m, nil
		}
		m.mode = modeAdd
		m.errMsg = ""
		m.nameInput.SetValue("")
		m.catIndex = 0
		return m, m.nameInput.Focus()
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.nameInput.Blur()
		return m, nil
	case "tab":
		m.catIndex = (m.catIndex + 1) % len(habit.Categories())
		return m, nil
	case "shift+tab":
		cats := habit.Categories()
		m.catIndex = (m.catIndex + len(cats) - 1) % len(cats)
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.errMsg = app.ErrNameRequired.Error()
			return m, nil
		}
		m.busy = true
		m.status = "creating habit…"
		return m, m.createCmd(name, habit.Categories()[m.catIndex])
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) clampCursor() {
	if n := len(m.svc.Habits()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Habit Tracker"))
	b.WriteString("\n")

	user := m.svc.User()
	name := ""
	if user != nil {
		name = user.Username
	}
	b.WriteString(fmt.Sprintf("%s  %s  %s\n\n",
		faintStyle.Render(name),
		pointsStyle.Render(fmt.Sprintf("★ %d", m.svc.Points())),
		faintStyle.Render(fmt.Sprintf("badges %d", len(m.svc.Badges()))),
	))

	habits := m.svc.Habits()
	if len(habits) == 0 {
		b.WriteString(faintStyle.Render(" no habits yet, press 'a' to add one"))
		b.WriteString("\n")
	}
	now := m.now()
	for i, h := range habits {
		b.WriteString(m.habitRow(h, i == m.cursor, now))
		b.WriteString("\n")
	}

	if m.mode == modeAdd {
		b.WriteString("\n")
		b.WriteString(m.addOverlay())
	}

	b.WriteString("\n")
	switch {
	case m.errMsg != "":
		b.WriteString(errStyle.Render(m.errMsg))
	case m.status != "":
		b.WriteString(faintStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(m.helpLine()))

	return b.String()
}

func (m Model) habitRow(h *habit.Habit, selected bool, now time.Time) string {
	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("➤ ")
	}

	mark := faintStyle.Render("○")
	if metrics.CompletedToday(h, now) {
		mark = doneStyle.Render("●")
	}

	var strip strings.Builder
	for _, done := range metrics.LastSevenDays(h, now) {
		if done {
			strip.WriteString(doneStyle.Render("■"))
		} else {
			strip.WriteString(faintStyle.Render("·"))
		}
	}

	meta := faintStyle.Render(fmt.Sprintf("%-12s  %2d day streak  %3d%%",
		h.Category.Label(), h.Streak, metrics.CompletionRate(h, now)))

	name := h.Name
	if selected {
		name = cursorStyle.Render(name)
	}

	return fmt.Sprintf("%s%s %-28s %s  %s", prefix, mark, name, strip.String(), meta)
}

func (m Model) addOverlay() string {
	cats := habit.Categories()
	labels := make([]string, 0, len(cats))
	for i, c := range cats {
		label := c.Label()
		if i == m.catIndex {
			label = cursorStyle.Render("[" + label + "]")
		} else {
			label = faintStyle.Render(label)
		}
		labels = append(labels, label)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Add Habit"),
		"name:     "+m.nameInput.View(),
		"category: "+strings.Join(labels, " "),
		faintStyle.Render("enter to save • tab to change category • esc to cancel"),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Render(body)
}

// Expired reports whether the dashboard quit because the server
// invalidated the session, as opposed to a voluntary quit or logout.
func (m Model) Expired() bool {
	return m.expired
}

func (m Model) helpLine() string {
	if m.mode == modeAdd {
		return ""
	}
	return "enter/space toggle today • a add • r refresh • L logout • q quit"
}

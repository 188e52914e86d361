package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefanpenner/tally/pkg/app"
	"github.com/stefanpenner/tally/pkg/badges"
	"github.com/stefanpenner/tally/pkg/dayclock"
	"github.com/stefanpenner/tally/pkg/stopwatch"
	"github.com/stefanpenner/tally/pkg/tasks"
)

// TickMsg is sent by the scheduler about once a second so the
// stopwatch display stays current.
type TickMsg struct{}

// StoreChangedMsg is sent when the file watcher sees the data file
// change underneath us.
type StoreChangedMsg struct{}

// Views, cycled with tab.
const (
	tabTasks = iota
	tabStats
	tabBadges
	tabCount
)

// row is one visible line in the task list: today's incomplete tasks
// in manual order, then today's completed ones.
type row struct {
	task tasks.Task
	done bool
}

// Model is the Bubble Tea model for the tally widget.
type Model struct {
	app    *app.App
	keys   KeyMap
	width  int
	height int
	tab    int
	cursor int
	rows   []row

	// Modal state
	showHelpModal     bool
	showDeleteConfirm bool
	deleteTarget      string
	deleteTitle       string

	// Move mode
	isMoveMode bool

	// Input mode (for adding tasks)
	isInputMode bool
	textInput   textinput.Model

	// Rename mode
	isRenameMode bool
	renameTarget string

	// Status message
	statusMsg     string
	statusTimeout time.Time
}

// NewModel creates a new TUI model over a loaded app.
func NewModel(a *app.App) Model {
	ti := textinput.New()
	ti.Placeholder = "task title  !high/!low  ~minutes"
	ti.CharLimit = 120

	m := Model{
		app:       a,
		keys:      DefaultKeyMap(),
		textInput: ti,
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// reload rebuilds the visible rows from the app.
func (m *Model) reload() {
	var rows []row
	for _, t := range m.app.IncompleteTasks() {
		rows = append(rows, row{task: t})
	}
	for _, t := range m.app.CompletedToday() {
		rows = append(rows, row{task: t, done: true})
	}
	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// incompleteCount returns how many leading rows are still reorderable.
func (m Model) incompleteCount() int {
	n := 0
	for _, r := range m.rows {
		if r.done {
			break
		}
		n++
	}
	return n
}

func (m Model) selected() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusTimeout = time.Now().Add(3 * time.Second)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reload()
		return m, tea.ClearScreen

	case TickMsg:
		// The view reads the stopwatch live; a repaint is enough.
		return m, nil

	case StoreChangedMsg:
		m.app.Load(context.Background())
		m.reload()
		m.setStatus("Reloaded (data changed on disk)")
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.isInputMode || m.isRenameMode {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Input mode handling
	if m.isInputMode {
		switch msg.Type {
		case tea.KeyEsc:
			m.isInputMode = false
			return m, nil
		case tea.KeyEnter:
			title, priority, estimate := parseTaskInput(m.textInput.Value())
			if title != "" {
				t := m.app.AddTask(title, priority, estimate)
				m.setStatus("Added: " + t.Title)
				m.reload()
			}
			m.isInputMode = false
			return m, nil
		default:
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
	}

	// Rename mode handling
	if m.isRenameMode {
		switch msg.Type {
		case tea.KeyEsc:
			m.isRenameMode = false
			return m, nil
		case tea.KeyEnter:
			title := strings.TrimSpace(m.textInput.Value())
			if title != "" {
				m.app.UpdateTask(m.renameTarget, tasks.TaskPatch{Title: &title})
				m.reload()
			}
			m.isRenameMode = false
			return m, nil
		default:
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
	}

	// Delete confirmation handling
	if m.showDeleteConfirm {
		switch msg.String() {
		case "y", "enter":
			m.app.DeleteTask(m.deleteTarget)
			m.setStatus("Deleted: " + m.deleteTitle)
			m.showDeleteConfirm = false
			m.reload()
			return m, nil
		default:
			m.showDeleteConfirm = false
			return m, nil
		}
	}

	// Help modal: any key closes
	if m.showHelpModal {
		m.showHelpModal = false
		return m, nil
	}

	// Move mode handling
	if m.isMoveMode {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 && m.cursor < m.incompleteCount() {
				m.app.ReorderTasks(m.cursor, m.cursor-1)
				m.cursor--
				m.reload()
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.incompleteCount()-1 {
				m.app.ReorderTasks(m.cursor, m.cursor+1)
				m.cursor++
				m.reload()
			}
			return m, nil
		case key.Matches(msg, m.keys.Move), msg.Type == tea.KeyEsc:
			m.isMoveMode = false
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = true
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.app.Load(context.Background())
		m.reload()
		m.setStatus("Reloaded")
		return m, nil
	}

	if m.tab != tabTasks {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Space):
		if r := m.selected(); r != nil && !r.done {
			if res := m.app.CompleteTask(r.task.ID); res != nil {
				m.setStatus(completionToast(res))
				m.reload()
			}
		}

	case key.Matches(msg, m.keys.Stopwatch):
		m.toggleStopwatch()

	case key.Matches(msg, m.keys.Pause):
		m.togglePause()

	case key.Matches(msg, m.keys.Add):
		m.isInputMode = true
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Rename):
		if r := m.selected(); r != nil && !r.done {
			m.isRenameMode = true
			m.renameTarget = r.task.ID
			m.textInput.SetValue(r.task.Title)
			m.textInput.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.Delete):
		if r := m.selected(); r != nil {
			m.showDeleteConfirm = true
			m.deleteTarget = r.task.ID
			m.deleteTitle = r.task.Title
		}

	case key.Matches(msg, m.keys.Move):
		if r := m.selected(); r != nil && !r.done {
			m.isMoveMode = true
		}

	case key.Matches(msg, m.keys.High):
		m.setPriority(tasks.PriorityHigh)

	case key.Matches(msg, m.keys.Medium):
		m.setPriority(tasks.PriorityMedium)

	case key.Matches(msg, m.keys.Low):
		m.setPriority(tasks.PriorityLow)
	}

	return m, nil
}

func (m *Model) toggleStopwatch() {
	r := m.selected()
	if r == nil || r.done {
		return
	}
	status, activeID, _ := m.app.StopwatchStatus()
	if status != stopwatch.Idle && activeID == r.task.ID {
		elapsed, unlocked := m.app.StopStopwatch()
		toast := "Stopped at " + dayclock.FormatElapsed(elapsed)
		if unlocked != nil {
			toast += "  " + unlocked.Icon + " " + unlocked.Name + " unlocked!"
		}
		m.setStatus(toast)
		m.reload()
		return
	}
	m.app.StartStopwatch(r.task.ID)
	m.setStatus("Tracking: " + r.task.Title)
	m.reload()
}

func (m *Model) togglePause() {
	status, _, _ := m.app.StopwatchStatus()
	switch status {
	case stopwatch.Running:
		m.app.PauseStopwatch()
		m.setStatus("Stopwatch paused")
	case stopwatch.Paused:
		m.app.ResumeStopwatch()
		m.setStatus("Stopwatch resumed")
	}
}

func (m *Model) setPriority(p tasks.Priority) {
	if r := m.selected(); r != nil && !r.done {
		m.app.UpdateTask(r.task.ID, tasks.TaskPatch{Priority: &p})
		m.reload()
	}
}

// completionToast summarizes a completion for the status line.
func completionToast(res *app.CompletionResult) string {
	toast := fmt.Sprintf("%s +%d pts", res.Task.Title, res.Points)
	if res.UnderEstimate {
		toast += " (beat the estimate)"
	}
	for _, b := range res.Unlocked {
		toast += "  " + b.Icon + " " + b.Name + " unlocked!"
	}
	return toast
}

// parseTaskInput splits an add-task line into title, priority and
// estimate. "!high"/"!h" and "!low"/"!l" set priority (medium is the
// default); "~30" sets a 30-minute estimate. Everything else is title.
func parseTaskInput(input string) (string, tasks.Priority, int) {
	priority := tasks.PriorityMedium
	estimate := 0
	var words []string

	for _, tok := range strings.Fields(input) {
		switch {
		case strings.HasPrefix(tok, "!"):
			switch strings.ToLower(strings.TrimPrefix(tok, "!")) {
			case "high", "h":
				priority = tasks.PriorityHigh
			case "low", "l":
				priority = tasks.PriorityLow
			case "medium", "med", "m":
				priority = tasks.PriorityMedium
			}
		case strings.HasPrefix(tok, "~"):
			if n, err := strconv.Atoi(strings.TrimPrefix(tok, "~")); err == nil && n > 0 {
				estimate = n
			}
		default:
			words = append(words, tok)
		}
	}
	return strings.Join(words, " "), priority, estimate
}

// badgeLines renders the catalog for the badges view.
func badgeLines(list []badges.Badge) []string {
	lines := make([]string, 0, len(list))
	for _, b := range list {
		line := fmt.Sprintf("%s  %-14s %s", b.Icon, b.Name, b.Description)
		if b.UnlockedAt != nil {
			line += "  — " + b.UnlockedAt.Format("Jan 2")
			lines = append(lines, BadgeUnlockedStyle.Render(line))
		} else {
			lines = append(lines, BadgeLockedStyle.Render(line))
		}
	}
	return lines
}

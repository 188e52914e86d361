package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stefanpenner/tally/pkg/dayclock"
	"github.com/stefanpenner/tally/pkg/stopwatch"
	"github.com/stefanpenner/tally/pkg/tasks"
)

const minWidth = 40
const minHeight = 10

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.renderHelpModal())
	}
	if m.showDeleteConfirm {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.renderDeleteModal())
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	contentHeight := h - 5 // header, tabs, two separators, footer

	var content string
	switch m.tab {
	case tabStats:
		content = m.renderStats(w, contentHeight)
	case tabBadges:
		content = m.renderBadges(w, contentHeight)
	default:
		content = m.renderTasks(w, contentHeight)
	}
	b.WriteString(content)

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(w))

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("tally")

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = "  " + lipgloss.NewStyle().Foreground(ColorCyan).Render(m.statusMsg)
	}

	streak := m.app.StreakStatus()
	streakPart := StreakStyle.Render(fmt.Sprintf("%s %d", IconStreak, streak.Current))
	if streak.IsPending {
		streakPart += HeaderCountStyle.Render(" (pending)")
	}

	_, daily, _ := m.app.Points()
	pointsPart := PointsStyle.Render(fmt.Sprintf("%d pts today", daily))

	right := streakPart + "  " + pointsPart
	gap := width - lipgloss.Width(title) - lipgloss.Width(status) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + status + strings.Repeat(" ", gap) + right
}

func (m Model) renderTabs() string {
	names := []string{"Tasks", "Stats", "Badges"}
	var tabs []string
	for i, name := range names {
		if i == m.tab {
			tabs = append(tabs, ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(name))
		}
	}
	return strings.Join(tabs, "")
}

func (m Model) renderTasks(width, height int) string {
	var b strings.Builder
	lines := 0

	if m.isInputMode {
		b.WriteString(InputPromptStyle.Render(" + "))
		b.WriteString(m.textInput.View())
		b.WriteString("\n")
		lines++
	}

	if len(m.rows) == 0 && !m.isInputMode {
		b.WriteString(FooterStyle.Render("  No tasks — press a to add one."))
		b.WriteString("\n")
		lines++
	}

	// Keep the cursor on screen.
	visible := height - lines
	offset := 0
	if m.cursor >= visible {
		offset = m.cursor - visible + 1
	}

	status, activeID, elapsed := m.app.StopwatchStatus()

	for i := offset; i < len(m.rows) && lines < height; i++ {
		r := m.rows[i]

		if m.isRenameMode && i == m.cursor {
			b.WriteString(InputPromptStyle.Render(" ✎ "))
			b.WriteString(m.textInput.View())
			b.WriteString("\n")
			lines++
			continue
		}

		line := m.renderTaskRow(r, status, activeID, elapsed)
		switch {
		case i == m.cursor && m.isMoveMode:
			line = MoveStyle.Render(IconMove + " " + line)
		case i == m.cursor && m.tab == tabTasks:
			line = SelectedStyle.Width(width).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		lines++
	}

	for lines < height {
		b.WriteString("\n")
		lines++
	}
	return b.String()
}

func (m Model) renderTaskRow(r row, status stopwatch.Status, activeID string, elapsed int) string {
	if r.done {
		parts := []string{
			" " + CompleteStyle.Render(IconComplete),
			DoneTitleStyle.Render(r.task.Title),
			CompleteStyle.Render(fmt.Sprintf("+%d", r.task.PointsEarned)),
		}
		return strings.Join(parts, " ")
	}

	parts := []string{" " + IconIncomplete, priorityMark(r.task.Priority), r.task.Title}

	if r.task.EstimatedMinutes > 0 {
		parts = append(parts, HeaderCountStyle.Render(fmt.Sprintf("~%dm", r.task.EstimatedMinutes)))
	}

	if activeID == r.task.ID && status != stopwatch.Idle {
		clock := dayclock.FormatElapsed(elapsed)
		if status == stopwatch.Paused {
			parts = append(parts, PausedStyle.Render(IconPaused+" "+clock))
		} else {
			parts = append(parts, TrackingStyle.Render(IconTracking+" "+clock))
		}
	} else if r.task.ElapsedSeconds > 0 {
		parts = append(parts, HeaderCountStyle.Render(dayclock.FormatElapsed(r.task.ElapsedSeconds)))
	}

	return strings.Join(parts, " ")
}

func priorityMark(p tasks.Priority) string {
	switch p {
	case tasks.PriorityHigh:
		return PriorityHighStyle.Render("!")
	case tasks.PriorityLow:
		return PriorityLowStyle.Render("·")
	default:
		return PriorityMediumStyle.Render("-")
	}
}

func (m Model) renderStats(width, height int) string {
	var b strings.Builder
	lines := 0

	b.WriteString(ModalTitleStyle.Render("  Last 7 days"))
	b.WriteString("\n\n")
	lines += 2

	for _, day := range m.app.WeeklyStats() {
		label := ChartLabelStyle.Render(fmt.Sprintf("  %-4s", day.DayName))
		bar := statBar(day)
		count := ""
		if day.Count > 0 {
			count = HeaderCountStyle.Render(fmt.Sprintf(" %d", day.Count))
		}
		b.WriteString(label + bar + count)
		b.WriteString("\n")
		lines++
	}

	b.WriteString("\n")
	lines++

	total, daily, under := m.app.Points()
	stats := [][2]string{
		{"Points today", fmt.Sprintf("%d", daily)},
		{"Points lifetime", fmt.Sprintf("%d", total)},
		{"Tasks completed", fmt.Sprintf("%d", m.app.TotalCompleted())},
		{"Beat the estimate", fmt.Sprintf("%d", under)},
		{"Pomodoros today", fmt.Sprintf("%d", m.app.DailyPomodoros())},
		{"Longest streak", fmt.Sprintf("%d days", m.app.StreakStatus().Longest)},
	}
	for _, s := range stats {
		if lines >= height {
			break
		}
		b.WriteString("  " + StatLabelStyle.Render(s[0]) + StatValueStyle.Render(s[1]))
		b.WriteString("\n")
		lines++
	}

	for lines < height {
		b.WriteString("\n")
		lines++
	}
	return b.String()
}

// statBar renders one day as colored blocks, one per completed task:
// high-priority first in red, then medium, then low. Recurring tasks
// use a hollow block.
func statBar(day tasks.DayStats) string {
	var b strings.Builder
	b.WriteString(PriorityHighStyle.Render(strings.Repeat("█", day.Regular.High)))
	b.WriteString(PriorityMediumStyle.Render(strings.Repeat("█", day.Regular.Medium)))
	b.WriteString(PriorityLowStyle.Render(strings.Repeat("█", day.Regular.Low)))
	b.WriteString(PriorityHighStyle.Render(strings.Repeat("▒", day.Recurring.High)))
	b.WriteString(PriorityMediumStyle.Render(strings.Repeat("▒", day.Recurring.Medium)))
	b.WriteString(PriorityLowStyle.Render(strings.Repeat("▒", day.Recurring.Low)))
	return b.String()
}

func (m Model) renderBadges(width, height int) string {
	var b strings.Builder
	lines := 0

	b.WriteString(ModalTitleStyle.Render("  Badges"))
	b.WriteString("\n\n")
	lines += 2

	for _, line := range badgeLines(m.app.Badges()) {
		if lines >= height {
			break
		}
		b.WriteString("  " + line)
		b.WriteString("\n")
		lines++
	}

	for lines < height {
		b.WriteString("\n")
		lines++
	}
	return b.String()
}

func (m Model) renderFooter(width int) string {
	switch {
	case m.isMoveMode:
		return FooterStyle.Render("move mode: ↑↓ reorder  esc/m done")
	case m.isInputMode:
		return FooterStyle.Render("enter add  esc cancel   (!high/!low priority, ~minutes estimate)")
	case m.isRenameMode:
		return FooterStyle.Render("enter save  esc cancel")
	default:
		return FooterStyle.Render(m.keys.ShortHelp())
	}
}

func (m Model) renderHelpModal() string {
	var b strings.Builder
	b.WriteString(ModalTitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")
	for _, row := range m.keys.FullHelp() {
		b.WriteString(fmt.Sprintf("%-8s %s\n", row[0], row[1]))
	}
	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("press any key to close"))
	return ModalStyle.Render(b.String())
}

func (m Model) renderDeleteModal() string {
	var b strings.Builder
	b.WriteString(ModalTitleStyle.Render("Delete task?"))
	b.WriteString("\n\n")
	b.WriteString(m.deleteTitle)
	b.WriteString("\n\n")
	b.WriteString(FooterStyle.Render("y delete  any other key cancel"))
	return ModalStyle.Render(b.String())
}

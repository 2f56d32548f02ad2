package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pomotodo/internal/board"
	"github.com/alexanderramin/pomotodo/internal/cli/formatter"
	"github.com/alexanderramin/pomotodo/internal/timer"
	"github.com/charmbracelet/lipgloss"
)

// clockRadius is the size of the large clock beside the list.
const clockRadius = 5

// minClockWidth is the terminal width below which the clock is hidden.
const minClockWidth = 70

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.input.View(),
		"",
		m.renderBody(),
	}
	if notice := m.renderNotice(); notice != "" {
		sections = append(sections, "", notice)
	}
	top := strings.Join(sections, "\n")
	bar := m.renderStatusBar()

	// Pad to terminal height so the key hints stay at the bottom and
	// bubbletea's line-diff renderer leaves no stale lines.
	if m.height > 0 {
		lines := strings.Count(top, "\n") + strings.Count(bar, "\n") + 2
		if lines < m.height {
			top += strings.Repeat("\n", m.height-lines)
		}
	}
	return top + "\n" + bar
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("pomotodo")

	tabs := []string{
		m.renderTab(tabTodos, fmt.Sprintf("Todos (%d)", len(m.board.Active()))),
		m.renderTab(tabCompleted, fmt.Sprintf("Completed (%d)", len(m.board.Completed()))),
	}
	header := title + "  " + strings.Join(tabs, formatter.Dim(" │ "))
	if running := m.runningLabel(); running != "" {
		header += "  " + formatter.StyleGreen.Render("▶ "+running)
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderTab(id tabID, label string) string {
	if m.tab == id {
		return formatter.StyleHeader.Render(label)
	}
	return formatter.Dim(label)
}

func (m *appModel) renderBody() string {
	if m.loading {
		return formatter.Dim("  Loading...")
	}

	rows := m.visible()
	if len(rows) == 0 {
		if m.tab == tabCompleted {
			return formatter.Dim("  No completed to-dos yet.")
		}
		return formatter.Dim("  Nothing to do. Press a to add a to-do.")
	}

	lines := make([]string, 0, len(rows))
	for i, e := range rows {
		lines = append(lines, m.renderRow(e, i == m.cursor))
	}
	list := strings.Join(lines, "\n")

	sel := m.selected()
	if m.tab != tabTodos || sel == nil || (m.width > 0 && m.width < minClockWidth) {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, "    ", renderEntryClock(sel))
}

func (m *appModel) renderRow(e *board.Entry, selected bool) string {
	marker := "  "
	if selected {
		marker = formatter.StyleHeader.Render("▸ ")
	}

	label := e.Todo.Label
	if selected {
		label = formatter.Bold(label)
	}
	ref := formatter.StyleBlue.Render(fmt.Sprintf("%-4s", e.Todo.DisplayRef()))

	count := ""
	if e.Todo.Pomodoros > 0 {
		count = " " + formatter.StyleRed.Render(fmt.Sprintf("×%d", e.Todo.Pomodoros))
	}

	if e.Todo.Done {
		return fmt.Sprintf("%s%s %s %s%s", marker, formatter.DoneCheckbox(true), ref, formatter.Dim(e.Todo.Label), count)
	}

	t := e.Timer
	style := formatter.StateColor(t.State())
	return fmt.Sprintf("%s%s %s %-11s %s %s%s",
		marker,
		style.Render(formatter.PieGlyph(t.ProgressFraction())),
		style.Render(t.DisplayText()),
		formatter.StateIndicator(t.State()),
		ref,
		label,
		count,
	)
}

// renderEntryClock draws the selected entry's countdown as a ring.
func renderEntryClock(e *board.Entry) string {
	t := e.Timer
	clock := formatter.RenderClock(t.Arc(), clockRadius, t.DisplayText(), formatter.StateColor(t.State()))
	caption := formatter.Dim(formatter.Truncate(e.Todo.Label, 4*clockRadius+1))
	if t.State() == timer.Completed {
		caption = formatter.StyleRed.Render("done, r to reset")
	}
	return clock + "\n" + caption
}

func (m *appModel) renderNotice() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: " + m.err.Error())
	}
	if m.toast != "" {
		return formatter.StyleGreen.Render("● " + m.toast)
	}
	return ""
}

func (m *appModel) renderStatusBar() string {
	sep := formatter.Dim(strings.Repeat("─", max(m.width, 20)))
	if m.input.Focused() {
		return sep + "\n" + formatter.Dim("enter: add  esc: cancel")
	}
	return sep + "\n" + m.help.View(m.keys)
}

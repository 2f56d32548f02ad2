package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/alexanderramin/pomotodo/internal/timer"
)

// CompletionMessage is the announcement shown when a countdown finishes.
func CompletionMessage(label string) string {
	return fmt.Sprintf("Pomodoro for %q completed!", label)
}

// FormatTodoList renders to-dos as a table for `pomotodo list`.
func FormatTodoList(todos []*domain.Todo, now time.Time) string {
	if len(todos) == 0 {
		return Dim("No to-dos.") + "\n"
	}

	rows := make([][]string, 0, len(todos))
	for _, t := range todos {
		completed := Dim("--")
		if t.CompletedAt != nil {
			completed = HumanTimestamp(*t.CompletedAt, now)
		}
		label := t.Label
		if t.Done {
			label = Dim(label)
		}
		rows = append(rows, []string{
			StyleBlue.Render(t.DisplayRef()),
			DoneCheckbox(t.Done),
			label,
			strconv.Itoa(t.Pomodoros),
			completed,
		})
	}
	return RenderTableAligned([]string{"REF", "", "LABEL", "POMODOROS", "COMPLETED"}, rows, []int{3})
}

// FormatStats renders the focus summary for `pomotodo stats`.
func FormatStats(stats *domain.FocusStats) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Focus, last %d days", stats.Days)))
	b.WriteString("\n")

	if len(stats.ByTodo) == 0 {
		b.WriteString(Dim("No completed pomodoros yet."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(stats.ByTodo))
	for _, s := range stats.ByTodo {
		rows = append(rows, []string{
			StyleBlue.Render(fmt.Sprintf("#%d", s.Seq)),
			Truncate(s.Label, 40),
			strconv.Itoa(s.Sessions),
			FormatSeconds(s.TotalSec),
		})
	}
	b.WriteString(RenderTableAligned([]string{"REF", "LABEL", "SESSIONS", "FOCUS"}, rows, []int{2, 3}))
	b.WriteString(fmt.Sprintf("\n%s %d pomodoros, %s focused\n",
		Bold("Total:"), stats.Sessions, FormatSeconds(stats.TotalSec)))
	return b.String()
}

// FormatFocusReadout is the single status line printed by `pomotodo focus`
// on every tick.
func FormatFocusReadout(label string, t *timer.TaskTimer) string {
	return fmt.Sprintf("%s %s %s %s  %s",
		StateColor(t.State()).Render(PieGlyph(t.ProgressFraction())),
		Bold(t.DisplayText()),
		RenderProgress(t.ProgressFraction(), 20),
		StateIndicator(t.State()),
		label,
	)
}

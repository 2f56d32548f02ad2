package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/alexanderramin/pomotodo/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		width    int
		want     string
	}{
		{"empty", 0, 4, "[░░░░]   0%"},
		{"half", 0.5, 4, "[██░░]  50%"},
		{"full", 1, 4, "[████] 100%"},
		{"over clamps", 1.5, 4, "[████] 100%"},
		{"negative clamps", -1, 4, "[░░░░]   0%"},
		{"tiny width clamps to 2", 0.5, 1, "[█░]  50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderProgress(tt.fraction, tt.width)))
		})
	}
}

func TestPieGlyph(t *testing.T) {
	assert.Equal(t, "○", PieGlyph(0))
	assert.Equal(t, "◔", PieGlyph(0.2))
	assert.Equal(t, "◑", PieGlyph(0.5))
	assert.Equal(t, "◕", PieGlyph(0.99))
	assert.Equal(t, "●", PieGlyph(1))
}

func TestRenderClock_Shape(t *testing.T) {
	out := stripANSI(RenderClock(timer.ArcFor(0, false), 4, "25:00", StyleGreen))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 9)
	assert.Contains(t, lines[4], "25:00")
	assert.NotContains(t, out, ringElapsed, "nothing elapsed yet")
	assert.Contains(t, out, ringRemaining)
}

func TestRenderClock_FillsClockwiseFromTop(t *testing.T) {
	out := stripANSI(RenderClock(timer.ArcFor(0.25, false), 4, "", StyleGreen))
	lines := strings.Split(out, "\n")

	top := []rune(lines[0])
	right := []rune(lines[4])
	// 12 o'clock sits on the center column; 3 o'clock is the last cell.
	assert.Equal(t, ringElapsed, string(top[8]))
	assert.Equal(t, ringRemaining, string(right[len(right)-1]), "3 o'clock starts the next quarter")

	left := []rune(lines[4])
	assert.Equal(t, ringRemaining, string(left[0]), "9 o'clock is not yet elapsed")
}

func TestRenderClock_ClosedRing(t *testing.T) {
	out := stripANSI(RenderClock(timer.ArcFor(1, true), 3, "00:00", StyleRed))
	assert.NotContains(t, out, ringRemaining)
	assert.Contains(t, out, "00:00")
}

func TestRenderClock_ClampsRadius(t *testing.T) {
	out := RenderClock(timer.ArcFor(0.5, false), 1, "", StyleGreen)
	assert.Len(t, strings.Split(out, "\n"), 2*MinClockRadius+1)
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0m", FormatSeconds(0))
	assert.Equal(t, "40s", FormatSeconds(40))
	assert.Equal(t, "25m", FormatSeconds(1500))
	assert.Equal(t, "1h", FormatSeconds(3600))
	assert.Equal(t, "1h 15m", FormatSeconds(4500))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Just now", HumanTimestamp(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Yesterday", HumanTimestamp(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "Sep 30, 2022", HumanTimestamp(time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC), now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
}

func TestRenderTableAligned(t *testing.T) {
	out := stripANSI(RenderTableAligned([]string{"NAME", "N"}, [][]string{{"a", "1"}, {"bb", "22"}}, []int{1}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "a      1", lines[2])
	assert.Equal(t, "bb    22", lines[3])
}

func TestFormatTodoList(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	done := now.Add(-2 * time.Hour)
	todos := []*domain.Todo{
		{ID: "aaaa", Seq: 1, Label: "Write report", Pomodoros: 3},
		{ID: "bbbb", Seq: 2, Label: "Call bank", Done: true, CompletedAt: &done},
	}
	out := stripANSI(FormatTodoList(todos, now))
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "[ ]  Write report")
	assert.Contains(t, out, "[x]  Call bank")
	assert.Contains(t, out, "2h ago")

	assert.Contains(t, stripANSI(FormatTodoList(nil, now)), "No to-dos.")
}

func TestFormatStats(t *testing.T) {
	stats := &domain.FocusStats{
		Days:     7,
		Sessions: 3,
		TotalSec: 4500,
		ByTodo: []domain.FocusSummary{
			{Seq: 2, Label: "Deep work", Sessions: 2, TotalSec: 3000},
			{Seq: 1, Label: "Email", Sessions: 1, TotalSec: 1500},
		},
	}
	out := stripANSI(FormatStats(stats))
	assert.Contains(t, out, "FOCUS, LAST 7 DAYS")
	assert.Contains(t, out, "Deep work")
	assert.Contains(t, out, "50m")
	assert.Contains(t, out, "Total: 3 pomodoros, 1h 15m focused")

	empty := stripANSI(FormatStats(&domain.FocusStats{Days: 1}))
	assert.Contains(t, empty, "No completed pomodoros yet.")
}

func TestCompletionMessage(t *testing.T) {
	assert.Equal(t, `Pomodoro for "Read" completed!`, CompletionMessage("Read"))
}

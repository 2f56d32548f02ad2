package domain

import "time"

// PomodoroLog records one countdown that ran to zero.
type PomodoroLog struct {
	ID          string
	TodoID      string
	StartedAt   time.Time
	DurationSec int
	CompletedAt time.Time
	CreatedAt   time.Time
}

// FocusSummary aggregates completed pomodoros for one to-do.
type FocusSummary struct {
	TodoID   string
	Seq      int
	Label    string
	Sessions int
	TotalSec int
}

// FocusStats summarizes completed pomodoros over a window of days.
type FocusStats struct {
	Days     int
	Sessions int
	TotalSec int
	ByTodo   []FocusSummary
}

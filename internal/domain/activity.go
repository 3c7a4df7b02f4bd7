package domain

import "time"

// ActivityEntry is one planner slot: what a user did during one hour of one
// day and whether it counted as productive.
type ActivityEntry struct {
	Username   string
	Date       time.Time // date only, truncated to midnight UTC
	Hour       int       // 0-23
	TimeLabel  string    // display form, e.g. "9 AM – 10 AM"
	Task       string
	Productive bool
}

type GoalType string

const (
	GoalDaily   GoalType = "Daily"
	GoalWeekly  GoalType = "Weekly"
	GoalMonthly GoalType = "Monthly"
)

type Goal struct {
	Username  string
	Text      string
	Type      GoalType
	Completed bool
	CreatedAt time.Time
}

package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
)

type ActivityStore interface {
	Append(entries []domain.ActivityEntry) error
	ListByUser(username string) []domain.ActivityEntry
}

// DaySlot is one hour of the 24-hour planner form.
type DaySlot struct {
	Hour       int
	Task       string
	Productive bool
}

// ActivityService records planner days and serves the derived views for
// accounts backed by the durable activity log. Demo sessions bypass it and
// run the same report functions over their session buffer.
type ActivityService struct {
	Store ActivityStore
}

// SaveDay appends the filled slots of one planner day. Blank tasks are
// skipped; an entirely blank day is a validation error.
func (s *ActivityService) SaveDay(username string, date time.Time, slots []DaySlot) error {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	entries := make([]domain.ActivityEntry, 0, len(slots))
	for _, slot := range slots {
		if slot.Hour < 0 || slot.Hour > 23 {
			return domain.NewValidationError(map[string]string{"hour": "must be 0-23"})
		}
		task := strings.TrimSpace(slot.Task)
		if task == "" {
			continue
		}
		entries = append(entries, domain.ActivityEntry{
			Username:   username,
			Date:       date,
			Hour:       slot.Hour,
			TimeLabel:  HourRangeLabel(slot.Hour),
			Task:       task,
			Productive: slot.Productive,
		})
	}
	if len(entries) == 0 {
		return domain.NewValidationError(map[string]string{"tasks": "at least one slot is required"})
	}

	if err := s.Store.Append(entries); err != nil {
		return fmt.Errorf("persist planner day: %w", err)
	}
	return nil
}

func (s *ActivityService) Entries(username string) []domain.ActivityEntry {
	return s.Store.ListByUser(username)
}

// Recent returns the last n entries in store order.
func (s *ActivityService) Recent(username string, n int) []domain.ActivityEntry {
	entries := s.Store.ListByUser(username)
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries
}

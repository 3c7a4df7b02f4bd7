package csvfile

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
)

var activityHeader = []string{"username", "date", "hour", "time_label", "task", "productive"}

const dateLayout = "2006-01-02"

// ActivityStore holds the planner log: one row per planner slot. The file is
// append-mostly; saving a day loads everything, appends, and rewrites.
type ActivityStore struct {
	path   string
	logger *slog.Logger
}

func NewActivityStore(path string, logger *slog.Logger) *ActivityStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityStore{path: path, logger: logger}
}

func (s *ActivityStore) Load() []domain.ActivityEntry {
	rows, err := readRows(s.path)
	if err != nil {
		s.logger.Warn("activity store unreadable, treating as empty", "path", s.path, "err", err)
		return nil
	}

	entries := make([]domain.ActivityEntry, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		date, err := time.Parse(dateLayout, strings.TrimSpace(col(row, 1)))
		if err != nil {
			continue
		}
		label := col(row, 3)
		hour, ok := parseHour(col(row, 2))
		if !ok {
			// Files from before the 24-hour planner carry only a
			// clock label; recover the hour from its prefix.
			hour, ok = parseHour(strings.SplitN(label, ":", 2)[0])
			if !ok {
				continue
			}
		}
		entries = append(entries, domain.ActivityEntry{
			Username:   col(row, 0),
			Date:       date,
			Hour:       hour,
			TimeLabel:  label,
			Task:       col(row, 4),
			Productive: strings.EqualFold(strings.TrimSpace(col(row, 5)), "yes"),
		})
	}
	return entries
}

func (s *ActivityStore) Append(entries []domain.ActivityEntry) error {
	all := append(s.Load(), entries...)
	rows := make([][]string, 0, len(all))
	for _, e := range all {
		productive := "No"
		if e.Productive {
			productive = "Yes"
		}
		rows = append(rows, []string{
			e.Username,
			e.Date.Format(dateLayout),
			strconv.Itoa(e.Hour),
			e.TimeLabel,
			e.Task,
			productive,
		})
	}
	return writeRowsAtomic(s.path, activityHeader, rows)
}

func (s *ActivityStore) ListByUser(username string) []domain.ActivityEntry {
	var out []domain.ActivityEntry
	for _, e := range s.Load() {
		if e.Username == username {
			out = append(out, e)
		}
	}
	return out
}

func parseHour(s string) (int, bool) {
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

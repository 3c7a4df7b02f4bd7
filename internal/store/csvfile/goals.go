package csvfile

import (
	"log/slog"
	"strings"
	"time"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
)

var goalHeader = []string{"username", "goal", "type", "completed", "date"}

const goalTimeLayout = "2006-01-02 15:04:05"

type GoalsStore struct {
	path   string
	logger *slog.Logger
}

func NewGoalsStore(path string, logger *slog.Logger) *GoalsStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoalsStore{path: path, logger: logger}
}

func (s *GoalsStore) Load() []domain.Goal {
	rows, err := readRows(s.path)
	if err != nil {
		s.logger.Warn("goals store unreadable, treating as empty", "path", s.path, "err", err)
		return nil
	}

	goals := make([]domain.Goal, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(col(row, 1)) == "" {
			continue
		}
		createdAt, err := time.Parse(goalTimeLayout, strings.TrimSpace(col(row, 4)))
		if err != nil {
			// Older files stored the date only.
			createdAt, _ = time.Parse(dateLayout, strings.TrimSpace(col(row, 4)))
		}
		goals = append(goals, domain.Goal{
			Username:  col(row, 0),
			Text:      col(row, 1),
			Type:      domain.GoalType(col(row, 2)),
			Completed: strings.EqualFold(strings.TrimSpace(col(row, 3)), "yes"),
			CreatedAt: createdAt,
		})
	}
	return goals
}

func (s *GoalsStore) Save(goals []domain.Goal) error {
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		completed := "No"
		if g.Completed {
			completed = "Yes"
		}
		rows = append(rows, []string{
			g.Username,
			g.Text,
			string(g.Type),
			completed,
			g.CreatedAt.Format(goalTimeLayout),
		})
	}
	return writeRowsAtomic(s.path, goalHeader, rows)
}

func (s *GoalsStore) ListByUser(username string) []domain.Goal {
	var out []domain.Goal
	for _, g := range s.Load() {
		if g.Username == username {
			out = append(out, g)
		}
	}
	return out
}

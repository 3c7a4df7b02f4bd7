package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
)

type GoalsStore interface {
	Load() []domain.Goal
	Save(goals []domain.Goal) error
	ListByUser(username string) []domain.Goal
}

type GoalService struct {
	Store GoalsStore
	Now   func() time.Time
}

func (s *GoalService) Add(username, text string, typ domain.GoalType) (domain.Goal, error) {
	if s.Now == nil {
		s.Now = time.Now
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Goal{}, domain.NewValidationError(map[string]string{"goal": "required"})
	}
	switch typ {
	case domain.GoalDaily, domain.GoalWeekly, domain.GoalMonthly:
	default:
		return domain.Goal{}, domain.NewValidationError(map[string]string{"type": "must be Daily, Weekly, or Monthly"})
	}

	g := domain.Goal{
		Username:  username,
		Text:      text,
		Type:      typ,
		CreatedAt: s.Now().UTC().Truncate(time.Second),
	}
	if err := s.Store.Save(append(s.Store.Load(), g)); err != nil {
		return domain.Goal{}, fmt.Errorf("persist goal: %w", err)
	}
	return g, nil
}

func (s *GoalService) List(username string) []domain.Goal {
	return s.Store.ListByUser(username)
}

// MarkDone completes the user's idx-th goal, counting in store order.
func (s *GoalService) MarkDone(username string, idx int) error {
	goals := s.Store.Load()
	seen := 0
	for i := range goals {
		if goals[i].Username != username {
			continue
		}
		if seen == idx {
			if goals[i].Completed {
				return nil
			}
			goals[i].Completed = true
			if err := s.Store.Save(goals); err != nil {
				return fmt.Errorf("persist goal update: %w", err)
			}
			return nil
		}
		seen++
	}
	return domain.ErrNotFound
}

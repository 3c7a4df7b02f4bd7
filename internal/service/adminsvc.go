package service

import (
	"fmt"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
)

type AdminUsersStore interface {
	Load() []domain.UserRecord
	Save(records []domain.UserRecord) error
}

// AdminService is the moderation surface over the user store. Every
// operation is idempotent and persisted immediately.
type AdminService struct {
	Users AdminUsersStore
}

func (s *AdminService) Approve(email string) error {
	return s.update(email, func(u *domain.UserRecord) {
		u.Status = domain.UserStatusApproved
	})
}

func (s *AdminService) Block(email string) error {
	return s.update(email, func(u *domain.UserRecord) {
		u.Status = domain.UserStatusBlocked
	})
}

// AllowReset acknowledges a user's reset request by converting it into a
// mandatory password change on next login.
func (s *AdminService) AllowReset(email string) error {
	return s.update(email, func(u *domain.UserRecord) {
		u.ForceChange = true
		u.ResetRequested = false
	})
}

func (s *AdminService) Delete(email string) error {
	email = domain.NormalizeEmail(email)
	records := s.Users.Load()
	kept := records[:0]
	for _, u := range records {
		if u.Email != email {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(records) {
		return domain.ErrNotFound
	}
	if err := s.Users.Save(kept); err != nil {
		return fmt.Errorf("persist user delete: %w", err)
	}
	return nil
}

func (s *AdminService) ListUsers() []domain.UserRecord {
	return s.Users.Load()
}

// Summary recomputes the dashboard counts from a fresh snapshot on every
// call; the store is small and mutated rarely.
func (s *AdminService) Summary() domain.Summary {
	return domain.Summarize(s.Users.Load())
}

func (s *AdminService) update(email string, apply func(*domain.UserRecord)) error {
	email = domain.NormalizeEmail(email)
	records := s.Users.Load()
	for i := range records {
		if records[i].Email == email {
			apply(&records[i])
			if err := s.Users.Save(records); err != nil {
				return fmt.Errorf("persist admin update: %w", err)
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

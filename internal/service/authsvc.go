package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
)

type UsersStore interface {
	Load() []domain.UserRecord
	Save(records []domain.UserRecord) error
	FindByEmail(email string) (domain.UserRecord, error)
}

// AuthService owns registration, the credential check with its status gates,
// and the password-reset workflow. Every mutation is a synchronous
// read-modify-write of the whole user set.
type AuthService struct {
	Users UsersStore

	// AutoApproveDomain approves registrations from one email domain
	// immediately; everyone else waits for the administrator.
	AutoApproveDomain string

	// AutoApproveAll switches to the instant-approve policy and makes
	// AutoApproveDomain irrelevant.
	AutoApproveAll bool
}

// Register creates a pending or approved account. All three fields must be
// non-empty after trimming, and the normalized email must be unused.
func (s *AuthService) Register(email, username, password string) (domain.UserRecord, error) {
	email = domain.NormalizeEmail(email)
	username = strings.TrimSpace(username)

	fields := map[string]string{}
	if email == "" {
		fields["email"] = "required"
	}
	if username == "" {
		fields["username"] = "required"
	}
	if strings.TrimSpace(password) == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		return domain.UserRecord{}, domain.NewValidationError(fields)
	}

	if _, err := s.Users.FindByEmail(email); err == nil {
		return domain.UserRecord{}, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.UserRecord{}, err
	}

	status := domain.UserStatusPending
	if s.autoApproved(email) {
		status = domain.UserStatusApproved
	}

	u := domain.UserRecord{
		Email:    email,
		Username: username,
		Password: password,
		Status:   status,
	}

	records := append(s.Users.Load(), u)
	if err := s.Users.Save(records); err != nil {
		return domain.UserRecord{}, fmt.Errorf("persist registration: %w", err)
	}
	return u, nil
}

func (s *AuthService) autoApproved(email string) bool {
	if s.AutoApproveAll {
		return true
	}
	return s.AutoApproveDomain != "" && strings.HasSuffix(email, "@"+s.AutoApproveDomain)
}

// Login checks credentials first, then the account's status. The returned
// mustChange flag tells the session router to route to the forced password
// change instead of the app; the identity is still established in that case.
func (s *AuthService) Login(email, password string) (u domain.UserRecord, mustChange bool, err error) {
	u, err = s.Users.FindByEmail(email)
	if err != nil || u.Password != password {
		// A wrong password and an unknown email are indistinguishable
		// to the caller.
		return domain.UserRecord{}, false, domain.ErrInvalidCredentials
	}

	switch {
	case u.Status == domain.UserStatusBlocked:
		return domain.UserRecord{}, false, domain.ErrUserBlocked
	case !u.Approved():
		// Unknown statuses deny login the same way pending does.
		return domain.UserRecord{}, false, domain.ErrPendingApproval
	}

	return u, u.ForceChange, nil
}

// RequestPasswordReset marks the account so the administrator sees the
// request; it does not change the password or the session.
func (s *AuthService) RequestPasswordReset(email string) error {
	return s.update(email, func(u *domain.UserRecord) {
		u.ResetRequested = true
	})
}

// CompleteForcedChange overwrites the password and clears both the forced
// change and any outstanding reset request. This is the only path out of the
// force_change route.
func (s *AuthService) CompleteForcedChange(email, newPassword, confirmPassword string) error {
	fields := map[string]string{}
	if strings.TrimSpace(newPassword) == "" {
		fields["new_password"] = "required"
	}
	if strings.TrimSpace(confirmPassword) == "" {
		fields["confirm_password"] = "required"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	if newPassword != confirmPassword {
		return domain.ErrPasswordMismatch
	}

	return s.update(email, func(u *domain.UserRecord) {
		u.Password = newPassword
		u.ForceChange = false
		u.ResetRequested = false
	})
}

func (s *AuthService) update(email string, apply func(*domain.UserRecord)) error {
	email = domain.NormalizeEmail(email)
	records := s.Users.Load()
	for i := range records {
		if records[i].Email == email {
			apply(&records[i])
			if err := s.Users.Save(records); err != nil {
				return fmt.Errorf("persist user update: %w", err)
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

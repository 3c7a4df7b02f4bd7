package service

import (
	"errors"
	"testing"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
)

// memUsersStore keeps records in memory with the same lookup semantics as
// the CSV store.
type memUsersStore struct {
	records []domain.UserRecord
	saveErr error
	saves   int
}

func (m *memUsersStore) Load() []domain.UserRecord {
	out := make([]domain.UserRecord, len(m.records))
	copy(out, m.records)
	return out
}

func (m *memUsersStore) Save(records []domain.UserRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.records = make([]domain.UserRecord, len(records))
	copy(m.records, records)
	return nil
}

func (m *memUsersStore) FindByEmail(email string) (domain.UserRecord, error) {
	email = domain.NormalizeEmail(email)
	for _, u := range m.records {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.UserRecord{}, domain.ErrNotFound
}

func newAuthService(store *memUsersStore) *AuthService {
	return &AuthService{Users: store, AutoApproveDomain: "gmail.com"}
}

func TestRegisterAutoApprovesConfiguredDomain(t *testing.T) {
	store := &memUsersStore{}
	svc := newAuthService(store)

	u, err := svc.Register("a@gmail.com", "alice", "pw1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Status != domain.UserStatusApproved {
		t.Fatalf("status: got %s, want approved", u.Status)
	}

	u, err = svc.Register("b@co.com", "bob", "pw2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Status != domain.UserStatusPending {
		t.Fatalf("status: got %s, want pending", u.Status)
	}
	if len(store.records) != 2 {
		t.Fatalf("records: got %d", len(store.records))
	}
	if store.records[1].ResetRequested || store.records[1].ForceChange {
		t.Fatalf("new records must start with both flags clear")
	}
}

func TestRegisterAutoApproveAllOverridesDomainRule(t *testing.T) {
	svc := newAuthService(&memUsersStore{})
	svc.AutoApproveAll = true

	u, err := svc.Register("b@co.com", "bob", "pw2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Status != domain.UserStatusApproved {
		t.Fatalf("status: got %s, want approved", u.Status)
	}
}

func TestRegisterRejectsDuplicateIgnoringCaseAndSpace(t *testing.T) {
	svc := newAuthService(&memUsersStore{records: []domain.UserRecord{
		{Email: "a@gmail.com", Username: "alice", Password: "pw1", Status: domain.UserStatusApproved},
	}})

	_, err := svc.Register("  A@GMAIL.com ", "alice2", "pw9")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterRejectsIncompleteFields(t *testing.T) {
	svc := newAuthService(&memUsersStore{})

	for _, tc := range [][3]string{
		{"", "alice", "pw"},
		{"a@gmail.com", "   ", "pw"},
		{"a@gmail.com", "alice", " "},
	} {
		_, err := svc.Register(tc[0], tc[1], tc[2])
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected validation error for %v, got %v", tc, err)
		}
	}
}

func TestLoginOutcomes(t *testing.T) {
	store := &memUsersStore{records: []domain.UserRecord{
		{Email: "a@gmail.com", Username: "alice", Password: "pw1", Status: domain.UserStatusApproved},
		{Email: "b@co.com", Username: "bob", Password: "pw2", Status: domain.UserStatusPending},
		{Email: "c@co.com", Username: "carol", Password: "pw3", Status: domain.UserStatusBlocked},
		{Email: "d@co.com", Username: "dave", Password: "pw4", Status: domain.UserStatusApproved, ForceChange: true, ResetRequested: true},
		{Email: "e@co.com", Username: "eve", Password: "pw5", Status: "mystery"},
	}}
	svc := newAuthService(store)

	u, mustChange, err := svc.Login("a@gmail.com", "pw1")
	if err != nil || mustChange {
		t.Fatalf("success login: err=%v mustChange=%v", err, mustChange)
	}
	if u.Username != "alice" {
		t.Fatalf("login identity: got %q", u.Username)
	}

	if _, _, err := svc.Login("a@gmail.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, _, err := svc.Login("ghost@co.com", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", err)
	}
	if _, _, err := svc.Login("b@co.com", "pw2"); !errors.Is(err, domain.ErrPendingApproval) {
		t.Fatalf("pending: got %v", err)
	}
	if _, _, err := svc.Login("c@co.com", "pw3"); !errors.Is(err, domain.ErrUserBlocked) {
		t.Fatalf("blocked: got %v", err)
	}

	// Unknown status denies login like pending.
	if _, _, err := svc.Login("e@co.com", "pw5"); !errors.Is(err, domain.ErrPendingApproval) {
		t.Fatalf("unknown status: got %v", err)
	}

	// force_change wins over reset_requested: the identity is established
	// but the caller must route to the password change.
	u, mustChange, err = svc.Login("d@co.com", "pw4")
	if err != nil || !mustChange {
		t.Fatalf("forced change login: err=%v mustChange=%v", err, mustChange)
	}
	if u.Email != "d@co.com" {
		t.Fatalf("forced change identity: got %q", u.Email)
	}
}

func TestRequestPasswordReset(t *testing.T) {
	store := &memUsersStore{records: []domain.UserRecord{
		{Email: "b@co.com", Username: "bob", Password: "pw2", Status: domain.UserStatusApproved},
	}}
	svc := newAuthService(store)

	if err := svc.RequestPasswordReset("ghost@co.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown email: got %v", err)
	}
	if err := svc.RequestPasswordReset(" B@CO.com"); err != nil {
		t.Fatalf("reset request: %v", err)
	}
	if !store.records[0].ResetRequested {
		t.Fatalf("reset_requested not persisted")
	}
}

func TestCompleteForcedChange(t *testing.T) {
	store := &memUsersStore{records: []domain.UserRecord{
		{Email: "d@co.com", Username: "dave", Password: "old", Status: domain.UserStatusApproved, ForceChange: true, ResetRequested: true},
	}}
	svc := newAuthService(store)

	if err := svc.CompleteForcedChange("d@co.com", "", "new"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("incomplete: got %v", err)
	}
	if err := svc.CompleteForcedChange("d@co.com", "new1", "new2"); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("mismatch: got %v", err)
	}
	if store.records[0].Password != "old" {
		t.Fatalf("password changed on failed attempt")
	}

	if err := svc.CompleteForcedChange("d@co.com", "newpw", "newpw"); err != nil {
		t.Fatalf("forced change: %v", err)
	}
	u := store.records[0]
	if u.Password != "newpw" || u.ForceChange || u.ResetRequested {
		t.Fatalf("unexpected record after change: %+v", u)
	}

	// The next login goes straight to the app.
	_, mustChange, err := svc.Login("d@co.com", "newpw")
	if err != nil || mustChange {
		t.Fatalf("login after change: err=%v mustChange=%v", err, mustChange)
	}
}

func TestRegisterSurfacesSaveFailure(t *testing.T) {
	store := &memUsersStore{saveErr: errors.New("disk full")}
	svc := newAuthService(store)

	if _, err := svc.Register("a@gmail.com", "alice", "pw1"); err == nil {
		t.Fatalf("expected save failure to surface")
	}
}

package domain

import "strings"

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusBlocked  UserStatus = "blocked"
)

// UserRecord is one row of the persisted user store. Passwords are stored
// and compared in plaintext; the store format predates this service and is
// kept compatible with it.
type UserRecord struct {
	Email          string
	Username       string
	Password       string
	Status         UserStatus
	ResetRequested bool
	ForceChange    bool
}

// Approved reports whether the account may log in. Anything other than an
// exact "approved" status counts as not approved, including statuses this
// version does not know about.
func (u UserRecord) Approved() bool { return u.Status == UserStatusApproved }

type Identity struct {
	Username string
	Email    string
}

func (i Identity) Empty() bool { return i.Email == "" && i.Username == "" }

// NormalizeEmail is the canonical form used as the unique account key:
// surrounding whitespace stripped, lower-cased.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Summary is the admin dashboard aggregate, recomputed from a full store
// snapshot on every call.
type Summary struct {
	Total          int
	Approved       int
	Pending        int
	Blocked        int
	ResetRequested int
}

func Summarize(records []UserRecord) Summary {
	var s Summary
	s.Total = len(records)
	for _, u := range records {
		switch u.Status {
		case UserStatusApproved:
			s.Approved++
		case UserStatusBlocked:
			s.Blocked++
		default:
			s.Pending++
		}
		if u.ResetRequested {
			s.ResetRequested++
		}
	}
	return s
}

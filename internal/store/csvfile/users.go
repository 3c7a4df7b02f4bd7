package csvfile

import (
	"log/slog"
	"strings"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
)

var userHeader = []string{"email", "username", "password", "status", "reset_requested", "force_change"}

// UsersStore is the durable account set. One row per account, keyed by
// normalized email. Load never fails: a corrupt or absent file is
// indistinguishable from "no users yet" by design.
type UsersStore struct {
	path   string
	logger *slog.Logger
}

func NewUsersStore(path string, logger *slog.Logger) *UsersStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UsersStore{path: path, logger: logger}
}

// Load reads the persisted set in file order. Emails are re-normalized on
// every load (older writers did not normalize on disk) and records missing
// the reset_requested/force_change columns are backfilled with "no". The
// backfill is not written back until the next Save.
func (s *UsersStore) Load() []domain.UserRecord {
	rows, err := readRows(s.path)
	if err != nil {
		s.logger.Warn("users store unreadable, treating as empty", "path", s.path, "err", err)
		return nil
	}

	records := make([]domain.UserRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		records = append(records, domain.UserRecord{
			Email:          domain.NormalizeEmail(col(row, 0)),
			Username:       col(row, 1),
			Password:       col(row, 2),
			Status:         domain.UserStatus(strings.TrimSpace(col(row, 3))),
			ResetRequested: flagSet(col(row, 4)),
			ForceChange:    flagSet(col(row, 5)),
		})
	}
	return records
}

// Save overwrites the persisted set from the in-memory working set. The
// write itself is atomic (temp file + rename); there is no locking between
// concurrent Save callers.
func (s *UsersStore) Save(records []domain.UserRecord) error {
	rows := make([][]string, 0, len(records))
	for _, u := range records {
		rows = append(rows, []string{
			u.Email,
			u.Username,
			u.Password,
			string(u.Status),
			flagString(u.ResetRequested),
			flagString(u.ForceChange),
		})
	}
	return writeRowsAtomic(s.path, userHeader, rows)
}

// FindByEmail does a normalized-email exact match over the current snapshot.
func (s *UsersStore) FindByEmail(email string) (domain.UserRecord, error) {
	email = domain.NormalizeEmail(email)
	for _, u := range s.Load() {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.UserRecord{}, domain.ErrNotFound
}

func flagSet(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}

func flagString(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

package webui

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/namankhandelwal900-boop/trackify/internal/auth"
	"github.com/namankhandelwal900-boop/trackify/internal/domain"
	"github.com/namankhandelwal900-boop/trackify/internal/service"
	"github.com/namankhandelwal900-boop/trackify/internal/session"
)

type memUsers struct {
	records []domain.UserRecord
}

func (m *memUsers) Load() []domain.UserRecord { return append([]domain.UserRecord(nil), m.records...) }

func (m *memUsers) Save(records []domain.UserRecord) error {
	m.records = append([]domain.UserRecord(nil), records...)
	return nil
}

func (m *memUsers) FindByEmail(email string) (domain.UserRecord, error) {
	email = domain.NormalizeEmail(email)
	for _, u := range m.records {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.UserRecord{}, domain.ErrNotFound
}

type memActivity struct {
	entries []domain.ActivityEntry
}

func (m *memActivity) Append(entries []domain.ActivityEntry) error {
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *memActivity) ListByUser(username string) []domain.ActivityEntry {
	var out []domain.ActivityEntry
	for _, e := range m.entries {
		if e.Username == username {
			out = append(out, e)
		}
	}
	return out
}

type memGoals struct {
	goals []domain.Goal
}

func (m *memGoals) Load() []domain.Goal { return append([]domain.Goal(nil), m.goals...) }

func (m *memGoals) Save(goals []domain.Goal) error {
	m.goals = append([]domain.Goal(nil), goals...)
	return nil
}

func (m *memGoals) ListByUser(username string) []domain.Goal {
	var out []domain.Goal
	for _, g := range m.goals {
		if g.Username == username {
			out = append(out, g)
		}
	}
	return out
}

type testEnv struct {
	handler  http.Handler
	users    *memUsers
	activity *memActivity
	goals    *memGoals
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := &memUsers{}
	activity := &memActivity{}
	goals := &memGoals{}

	handler := New(Opts{
		Auth:        &service.AuthService{Users: users, AutoApproveDomain: "gmail.com"},
		Activity:    &service.ActivityService{Store: activity},
		Goals:       &service.GoalService{Store: goals},
		Sessions:    session.NewRegistry(time.Hour),
		CookieCodec: auth.NewCookieCodec(nil),
		SessionTTL:  time.Hour,
		AdminEmail:  "admin@trackify.app",
	})
	return &testEnv{handler: handler, users: users, activity: activity, goals: goals}
}

func (e *testEnv) do(t *testing.T, method, target, cookie string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: cookie})
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c.Value
		}
	}
	t.Fatalf("no session cookie set")
	return ""
}

func TestRegisterAutoApprovedThenLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/register", "", url.Values{
		"email":    {"Ana@Gmail.com"},
		"username": {"ana"},
		"password": {"secret"},
	})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login?notice=registered" {
		t.Fatalf("unexpected register response: %d %s", rec.Code, rec.Header().Get("Location"))
	}

	rec = env.do(t, http.MethodPost, "/login", "", url.Values{
		"email":    {"ana@gmail.com"},
		"password": {"secret"},
	})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/app/" {
		t.Fatalf("unexpected login response: %d %s", rec.Code, rec.Header().Get("Location"))
	}
	cookie := sessionCookie(t, rec)

	rec = env.do(t, http.MethodGet, "/app/", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ana") {
		t.Fatalf("dashboard should greet the user")
	}
}

func TestRegisterOutsideDomainIsPending(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/register", "", url.Values{
		"email":    {"bob@example.com"},
		"username": {"bob"},
		"password": {"secret"},
	})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login?notice=pending" {
		t.Fatalf("unexpected register response: %d %s", rec.Code, rec.Header().Get("Location"))
	}

	rec = env.do(t, http.MethodPost, "/login", "", url.Values{
		"email":    {"bob@example.com"},
		"password": {"secret"},
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("pending login status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "awaiting approval") {
		t.Fatalf("pending login should explain the wait")
	}
}

func TestAppRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/app/", "", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestForcedChangePinsNavigation(t *testing.T) {
	env := newTestEnv(t)
	env.users.records = []domain.UserRecord{{
		Email:       "cara@gmail.com",
		Username:    "cara",
		Password:    "old",
		Status:      domain.UserStatusApproved,
		ForceChange: true,
	}}

	rec := env.do(t, http.MethodPost, "/login", "", url.Values{
		"email":    {"cara@gmail.com"},
		"password": {"old"},
	})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/password" {
		t.Fatalf("login should route to the password view, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	cookie := sessionCookie(t, rec)

	rec = env.do(t, http.MethodGet, "/app/", cookie, nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/password" {
		t.Fatalf("dashboard should stay pinned, got %d %s", rec.Code, rec.Header().Get("Location"))
	}

	rec = env.do(t, http.MethodPost, "/password", cookie, url.Values{
		"new_password":     {"fresh"},
		"confirm_password": {"fresh"},
	})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/app/" {
		t.Fatalf("change should land on the dashboard, got %d %s", rec.Code, rec.Header().Get("Location"))
	}

	u, err := env.users.FindByEmail("cara@gmail.com")
	if err != nil || u.Password != "fresh" || u.ForceChange {
		t.Fatalf("record not updated: %+v err=%v", u, err)
	}

	rec = env.do(t, http.MethodGet, "/app/", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard after change = %d", rec.Code)
	}
}

func TestPasswordViewNeedsPendingChange(t *testing.T) {
	env := newTestEnv(t)
	env.users.records = []domain.UserRecord{{
		Email: "ida@gmail.com", Username: "ida", Password: "original",
		Status: domain.UserStatusApproved,
	}}

	rec := env.do(t, http.MethodPost, "/login", "", url.Values{
		"email": {"ida@gmail.com"}, "password": {"original"},
	})
	cookie := sessionCookie(t, rec)

	rec = env.do(t, http.MethodGet, "/password", cookie, nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/app/" {
		t.Fatalf("password view without a pending change: %d %s", rec.Code, rec.Header().Get("Location"))
	}

	rec = env.do(t, http.MethodPost, "/password", cookie, url.Values{
		"new_password":     {"hijacked"},
		"confirm_password": {"hijacked"},
	})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/app/" {
		t.Fatalf("password post without a pending change: %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if env.users.records[0].Password != "original" {
		t.Fatalf("password was overwritten: %+v", env.users.records[0])
	}
}

func TestLoginKeepsPasswordWhitespace(t *testing.T) {
	env := newTestEnv(t)
	env.users.records = []domain.UserRecord{{
		Email: "joy@gmail.com", Username: "joy", Password: "  padded  ",
		Status: domain.UserStatusApproved,
	}}

	rec := env.do(t, http.MethodPost, "/login", "", url.Values{
		"email": {"joy@gmail.com"}, "password": {"  padded  "},
	})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/app/" {
		t.Fatalf("padded password should match verbatim: %d %s", rec.Code, rec.Header().Get("Location"))
	}

	rec = env.do(t, http.MethodPost, "/login", "", url.Values{
		"email": {"joy@gmail.com"}, "password": {"padded"},
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("trimmed guess should be rejected, got %d", rec.Code)
	}
}

func TestForgotAlwaysReturnsToLogin(t *testing.T) {
	env := newTestEnv(t)
	env.users.records = []domain.UserRecord{{
		Email: "dan@gmail.com", Username: "dan", Password: "pw",
		Status: domain.UserStatusApproved,
	}}

	rec := env.do(t, http.MethodPost, "/forgot", "", url.Values{"email": {"dan@gmail.com"}})
	if rec.Header().Get("Location") != "/login?notice=reset_submitted" {
		t.Fatalf("known email: %s", rec.Header().Get("Location"))
	}
	if !env.users.records[0].ResetRequested {
		t.Fatalf("reset flag not set")
	}

	rec = env.do(t, http.MethodPost, "/forgot", "", url.Values{"email": {"ghost@gmail.com"}})
	if rec.Header().Get("Location") != "/login?notice=reset_unknown" {
		t.Fatalf("unknown email: %s", rec.Header().Get("Location"))
	}
}

func TestDemoFlowKeepsDataInSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/demo", "", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/demo" {
		t.Fatalf("demo entry: %d %s", rec.Code, rec.Header().Get("Location"))
	}
	cookie := sessionCookie(t, rec)

	rec = env.do(t, http.MethodGet, "/demo", cookie, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "guest-") {
		t.Fatalf("demo page should show the guest identity, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/demo/planner", cookie, url.Values{
		"hour":       {"9"},
		"task":       {"Writing"},
		"productive": {"yes"},
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("demo planner post = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/demo", cookie, nil)
	if !strings.Contains(rec.Body.String(), "Writing") {
		t.Fatalf("demo entry should survive within the session")
	}
	if len(env.activity.entries) != 0 {
		t.Fatalf("demo data must never reach the store")
	}
}

func TestLogoutResetsSession(t *testing.T) {
	env := newTestEnv(t)
	env.users.records = []domain.UserRecord{{
		Email: "eve@gmail.com", Username: "eve", Password: "pw",
		Status: domain.UserStatusApproved,
	}}

	rec := env.do(t, http.MethodPost, "/login", "", url.Values{
		"email": {"eve@gmail.com"}, "password": {"pw"},
	})
	cookie := sessionCookie(t, rec)

	rec = env.do(t, http.MethodPost, "/logout", cookie, nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("logout: %d %s", rec.Code, rec.Header().Get("Location"))
	}

	rec = env.do(t, http.MethodGet, "/app/", cookie, nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("session should be gone: %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestPlannerSaveAndDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.users.records = []domain.UserRecord{{
		Email: "fox@gmail.com", Username: "fox", Password: "pw",
		Status: domain.UserStatusApproved,
	}}

	rec := env.do(t, http.MethodPost, "/login", "", url.Values{
		"email": {"fox@gmail.com"}, "password": {"pw"},
	})
	cookie := sessionCookie(t, rec)

	form := url.Values{"date": {"2026-03-02"}}
	form.Set("task_9", "Deep work")
	form.Set("productive_9", "yes")
	form.Set("task_14", "Email")

	rec = env.do(t, http.MethodPost, "/app/planner", cookie, form)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/app/?notice=day_saved" {
		t.Fatalf("planner save: %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if len(env.activity.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(env.activity.entries))
	}

	rec = env.do(t, http.MethodGet, "/app/", cookie, nil)
	if !strings.Contains(rec.Body.String(), "Deep work") {
		t.Fatalf("dashboard should list the saved entry")
	}
}

func TestGoalsAddAndComplete(t *testing.T) {
	env := newTestEnv(t)
	env.users.records = []domain.UserRecord{{
		Email: "gil@gmail.com", Username: "gil", Password: "pw",
		Status: domain.UserStatusApproved,
	}}

	rec := env.do(t, http.MethodPost, "/login", "", url.Values{
		"email": {"gil@gmail.com"}, "password": {"pw"},
	})
	cookie := sessionCookie(t, rec)

	rec = env.do(t, http.MethodPost, "/app/goals", cookie, url.Values{
		"goal": {"Read a book"}, "type": {"Weekly"},
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("add goal: %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/app/goals/done", cookie, url.Values{"index": {"0"}})
	if rec.Code != http.StatusFound {
		t.Fatalf("mark done: %d", rec.Code)
	}
	if len(env.goals.goals) != 1 || !env.goals.goals[0].Completed {
		t.Fatalf("goal not completed: %+v", env.goals.goals)
	}
}

func TestBlankPlannerDayRejected(t *testing.T) {
	env := newTestEnv(t)
	env.users.records = []domain.UserRecord{{
		Email: "hal@gmail.com", Username: "hal", Password: "pw",
		Status: domain.UserStatusApproved,
	}}

	rec := env.do(t, http.MethodPost, "/login", "", url.Values{
		"email": {"hal@gmail.com"}, "password": {"pw"},
	})
	cookie := sessionCookie(t, rec)

	rec = env.do(t, http.MethodPost, "/app/planner", cookie, url.Values{"date": {"2026-03-02"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank day should be rejected, got %d", rec.Code)
	}
	if len(env.activity.entries) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

package webui

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
	"github.com/namankhandelwal900-boop/trackify/internal/service"
	"github.com/namankhandelwal900-boop/trackify/internal/session"
)

// Demo mode lives entirely inside the session: entries and goals land in the
// state's scratch buffers and evaporate when the session does.

func (a *app) handleDemoEnter(w http.ResponseWriter, r *http.Request) {
	id, st := a.ensureSession(w, r)
	st = st.ChooseDemo()
	a.saveState(id, st)
	http.Redirect(w, r, "/demo", http.StatusFound)
}

func (a *app) handleDemoGet(w http.ResponseWriter, r *http.Request) {
	id, st := a.ensureSession(w, r)
	st = st.Visit(domain.RouteDemo, a.adminEmail)
	a.saveState(id, st)
	if st.Route != domain.RouteDemo {
		http.Redirect(w, r, routePath(st.Route), http.StatusFound)
		return
	}
	a.renderDemoPage(w, http.StatusOK, st.Demo, st.Identity, "", mapDemoNotice(r.URL.Query().Get("notice")))
}

func (a *app) handleDemoPlannerPost(w http.ResponseWriter, r *http.Request) {
	id, st := a.currentState(r)
	if st.Route != domain.RouteDemo || st.Demo == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		a.renderDemoPage(w, http.StatusBadRequest, st.Demo, st.Identity, "Invalid form", "")
		return
	}

	hour, err := strconv.Atoi(r.FormValue("hour"))
	task := strings.TrimSpace(r.FormValue("task"))
	if err != nil || hour < 0 || hour > 23 || task == "" {
		a.renderDemoPage(w, http.StatusBadRequest, st.Demo, st.Identity, "Pick an hour and describe the task.", "")
		return
	}

	st.Demo.Activity = append(st.Demo.Activity, domain.ActivityEntry{
		Username:   st.Identity.Username,
		Date:       time.Now().UTC().Truncate(24 * time.Hour),
		Hour:       hour,
		TimeLabel:  service.HourRangeLabel(hour),
		Task:       task,
		Productive: r.FormValue("productive") == "yes",
	})
	a.saveState(id, st)
	http.Redirect(w, r, "/demo?notice=entry_added", http.StatusFound)
}

func (a *app) handleDemoGoalPost(w http.ResponseWriter, r *http.Request) {
	id, st := a.currentState(r)
	if st.Route != domain.RouteDemo || st.Demo == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		a.renderDemoPage(w, http.StatusBadRequest, st.Demo, st.Identity, "Invalid form", "")
		return
	}

	text := strings.TrimSpace(r.FormValue("goal"))
	typ := domain.GoalType(r.FormValue("type"))
	if text == "" || (typ != domain.GoalDaily && typ != domain.GoalWeekly && typ != domain.GoalMonthly) {
		a.renderDemoPage(w, http.StatusBadRequest, st.Demo, st.Identity, "Goal cannot be empty and needs a valid type.", "")
		return
	}

	st.Demo.Goals = append(st.Demo.Goals, domain.Goal{
		Username:  st.Identity.Username,
		Text:      text,
		Type:      typ,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	})
	a.saveState(id, st)
	http.Redirect(w, r, "/demo?notice=goal_added", http.StatusFound)
}

func (a *app) renderDemoPage(w http.ResponseWriter, status int, demo *session.DemoData, identity domain.Identity, errMsg, notice string) {
	data := demoViewData{
		Title:       "Demo",
		Identity:    identity,
		HourOptions: hourOptions(),
		Error:       errMsg,
		Notice:      notice,
	}
	if demo != nil {
		data.TotalHours = len(demo.Activity)
		for _, e := range demo.Activity {
			if e.Productive {
				data.Productive++
			}
		}
		if data.TotalHours > 0 {
			data.Score = data.Productive * 100 / data.TotalHours
		}
		data.Recent = tail(demo.Activity, 10)
		data.Goals = goalRows(demo.Goals)
		if ins, ok := service.BuildInsights(demo.Activity); ok {
			data.Insights = &ins
		}
	}
	a.templates.renderDemo(w, status, data)
}

func hourOptions() []plannerSlot {
	out := make([]plannerSlot, 0, 24)
	for h := 0; h < 24; h++ {
		out = append(out, plannerSlot{Hour: h, Label: service.HourRangeLabel(h)})
	}
	return out
}

func tail(entries []domain.ActivityEntry, n int) []domain.ActivityEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

func mapDemoNotice(code string) string {
	switch code {
	case "entry_added":
		return "Entry added to your demo day."
	case "goal_added":
		return "Goal added."
	default:
		return ""
	}
}

package webui

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
	"github.com/namankhandelwal900-boop/trackify/internal/service"
	"github.com/namankhandelwal900-boop/trackify/internal/session"
)

func (a *app) handleDashboard(w http.ResponseWriter, r *http.Request, _ string, st session.State) {
	entries := a.activitySvc.Entries(st.Identity.Username)
	current, longest := service.Streaks(entries)

	data := homeViewData{
		Title:         "Dashboard",
		Identity:      st.Identity,
		IsAdmin:       st.IsAdmin(a.adminEmail),
		TotalHours:    len(entries),
		CurrentStreak: current,
		LongestStreak: longest,
		Recent:        a.activitySvc.Recent(st.Identity.Username, 10),
		Notice:        mapAppNotice(r.URL.Query().Get("notice")),
	}
	for _, e := range entries {
		if e.Productive {
			data.Productive++
		}
	}
	if data.TotalHours > 0 {
		data.Score = data.Productive * 100 / data.TotalHours
	}
	a.templates.renderHome(w, http.StatusOK, data)
}

func (a *app) handlePlannerGet(w http.ResponseWriter, r *http.Request, _ string, st session.State) {
	a.templates.renderPlanner(w, http.StatusOK, plannerViewData{
		Title:    "Planner",
		Identity: st.Identity,
		Date:     time.Now().Format("2006-01-02"),
		Sections: plannerSections(),
	})
}

func (a *app) handlePlannerPost(w http.ResponseWriter, r *http.Request, _ string, st session.State) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderPlanner(w, http.StatusBadRequest, plannerViewData{
			Title: "Planner", Identity: st.Identity,
			Date: time.Now().Format("2006-01-02"), Sections: plannerSections(),
			Error: "Invalid form",
		})
		return
	}

	date, slots, formErr := parsePlannerForm(r)
	if formErr == "" {
		if err := a.activitySvc.SaveDay(st.Identity.Username, date, slots); err != nil {
			if errors.Is(err, domain.ErrValidation) {
				formErr = "Fill in at least one hour before saving."
			} else {
				a.logger.Error("webui: save day failed", "err", err)
				formErr = "Could not save the day."
			}
		}
	}
	if formErr != "" {
		a.templates.renderPlanner(w, http.StatusBadRequest, plannerViewData{
			Title: "Planner", Identity: st.Identity,
			Date: r.FormValue("date"), Sections: plannerSections(),
			Error: formErr,
		})
		return
	}
	http.Redirect(w, r, "/app/?notice=day_saved", http.StatusFound)
}

func (a *app) handleReports(w http.ResponseWriter, r *http.Request, _ string, st session.State) {
	entries := a.activitySvc.Entries(st.Identity.Username)
	data := reportsViewData{Title: "Reports", Identity: st.Identity}
	if weekly, ok := service.WeeklyReport(entries); ok {
		data.Weekly = &weekly
	}
	if monthly, ok := service.MonthlyReport(entries); ok {
		data.Monthly = &monthly
	}
	if data.Weekly == nil && data.Monthly == nil {
		data.Notice = "No data yet. Start using the planner."
	}
	a.templates.renderReports(w, http.StatusOK, data)
}

func (a *app) handleInsights(w http.ResponseWriter, r *http.Request, _ string, st session.State) {
	entries := a.activitySvc.Entries(st.Identity.Username)
	data := insightsViewData{Title: "Insights", Identity: st.Identity}
	if ins, ok := service.BuildInsights(entries); ok {
		data.Insights = &ins
	} else {
		data.Notice = "No data yet. Start using the planner."
	}
	a.templates.renderInsights(w, http.StatusOK, data)
}

func (a *app) handleGoalsGet(w http.ResponseWriter, r *http.Request, _ string, st session.State) {
	a.templates.renderGoals(w, http.StatusOK, goalsViewData{
		Title:    "Goals",
		Identity: st.Identity,
		Goals:    goalRows(a.goalSvc.List(st.Identity.Username)),
		Notice:   mapAppNotice(r.URL.Query().Get("notice")),
	})
}

func (a *app) handleGoalAdd(w http.ResponseWriter, r *http.Request, _ string, st session.State) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderError(w, http.StatusBadRequest, "Goals", "Invalid form")
		return
	}

	_, err := a.goalSvc.Add(st.Identity.Username, r.FormValue("goal"), domain.GoalType(r.FormValue("type")))
	if err != nil {
		msg := "Could not add the goal."
		if errors.Is(err, domain.ErrValidation) {
			msg = "Goal cannot be empty and needs a valid type."
		} else {
			a.logger.Error("webui: add goal failed", "err", err)
		}
		a.templates.renderGoals(w, http.StatusBadRequest, goalsViewData{
			Title:    "Goals",
			Identity: st.Identity,
			Goals:    goalRows(a.goalSvc.List(st.Identity.Username)),
			Error:    msg,
		})
		return
	}
	http.Redirect(w, r, "/app/goals?notice=goal_added", http.StatusFound)
}

func (a *app) handleGoalDone(w http.ResponseWriter, r *http.Request, _ string, st session.State) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderError(w, http.StatusBadRequest, "Goals", "Invalid form")
		return
	}

	idx, err := strconv.Atoi(r.FormValue("index"))
	if err != nil || idx < 0 {
		a.templates.renderError(w, http.StatusBadRequest, "Goals", "Invalid goal reference")
		return
	}
	if err := a.goalSvc.MarkDone(st.Identity.Username, idx); err != nil && !errors.Is(err, domain.ErrNotFound) {
		a.logger.Error("webui: mark goal done failed", "err", err)
	}
	http.Redirect(w, r, "/app/goals", http.StatusFound)
}

// plannerSections groups the 24 hours into the four times of day shown as
// planner sections.
func plannerSections() []plannerSection {
	sections := []struct {
		name  string
		hours []int
	}{
		{"Night", []int{0, 1, 2, 3, 4, 5}},
		{"Morning", []int{6, 7, 8, 9, 10, 11}},
		{"Afternoon", []int{12, 13, 14, 15, 16, 17}},
		{"Evening", []int{18, 19, 20, 21, 22, 23}},
	}
	out := make([]plannerSection, 0, len(sections))
	for _, s := range sections {
		sec := plannerSection{Name: s.name}
		for _, h := range s.hours {
			sec.Slots = append(sec.Slots, plannerSlot{Hour: h, Label: service.HourRangeLabel(h)})
		}
		out = append(out, sec)
	}
	return out
}

// parsePlannerForm reads the date and the 24 task/productive pairs. Fields
// are named task_<hour> and productive_<hour>.
func parsePlannerForm(r *http.Request) (time.Time, []service.DaySlot, string) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(r.FormValue("date")))
	if err != nil {
		return time.Time{}, nil, "Select a valid date."
	}

	slots := make([]service.DaySlot, 0, 24)
	for h := 0; h < 24; h++ {
		slots = append(slots, service.DaySlot{
			Hour:       h,
			Task:       r.FormValue("task_" + strconv.Itoa(h)),
			Productive: r.FormValue("productive_"+strconv.Itoa(h)) == "yes",
		})
	}
	return date, slots, ""
}

func goalRows(goals []domain.Goal) []goalRow {
	rows := make([]goalRow, 0, len(goals))
	for i, g := range goals {
		rows = append(rows, goalRow{Index: i, Text: g.Text, Type: string(g.Type), Completed: g.Completed})
	}
	return rows
}

func mapAppNotice(code string) string {
	switch code {
	case "day_saved":
		return "Day saved."
	case "goal_added":
		return "Goal added."
	default:
		return ""
	}
}

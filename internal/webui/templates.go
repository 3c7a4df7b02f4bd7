package webui

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
	"github.com/namankhandelwal900-boop/trackify/internal/service"
)

type templates struct {
	public   *template.Template
	login    *template.Template
	register *template.Template
	forgot   *template.Template
	password *template.Template
	demo     *template.Template
	home     *template.Template
	planner  *template.Template
	reports  *template.Template
	insights *template.Template
	goals    *template.Template
	errorT   *template.Template
}

type viewData struct {
	Title  string
	Error  string
	Notice string
}

type loginViewData struct {
	Title  string
	Email  string
	Error  string
	Notice string
}

type registerViewData struct {
	Title    string
	Email    string
	Username string
	Error    string
	Notice   string
}

type forgotViewData struct {
	Title  string
	Email  string
	Error  string
	Notice string
}

type passwordViewData struct {
	Title    string
	Identity domain.Identity
	Error    string
	Notice   string
}

type homeViewData struct {
	Title         string
	Identity      domain.Identity
	IsDemo        bool
	IsAdmin       bool
	TotalHours    int
	Productive    int
	Score         int
	CurrentStreak int
	LongestStreak int
	Recent        []domain.ActivityEntry
	Error         string
	Notice        string
}

type plannerViewData struct {
	Title    string
	Identity domain.Identity
	Date     string
	Sections []plannerSection
	Error    string
	Notice   string
}

type plannerSection struct {
	Name  string
	Slots []plannerSlot
}

type plannerSlot struct {
	Hour  int
	Label string
}

type reportsViewData struct {
	Title    string
	Identity domain.Identity
	Weekly   *service.Report
	Monthly  *service.Report
	Error    string
	Notice   string
}

type insightsViewData struct {
	Title    string
	Identity domain.Identity
	Insights *service.Insights
	Error    string
	Notice   string
}

type goalsViewData struct {
	Title    string
	Identity domain.Identity
	IsDemo   bool
	Goals    []goalRow
	Error    string
	Notice   string
}

type goalRow struct {
	Index     int
	Text      string
	Type      string
	Completed bool
}

type demoViewData struct {
	Title       string
	Identity    domain.Identity
	TotalHours  int
	Productive  int
	Score       int
	Recent      []domain.ActivityEntry
	Goals       []goalRow
	HourOptions []plannerSlot
	Insights    *service.Insights
	Error       string
	Notice      string
}

func parseTemplates() (*templates, error) {
	parse := func(page string) (*template.Template, error) {
		return template.New("base").ParseFS(assets, "templates/layout.html", "templates/"+page)
	}

	t := &templates{}
	for _, p := range []struct {
		dst  **template.Template
		page string
	}{
		{&t.public, "public.html"},
		{&t.login, "login.html"},
		{&t.register, "register.html"},
		{&t.forgot, "forgot.html"},
		{&t.password, "password.html"},
		{&t.demo, "demo.html"},
		{&t.home, "home.html"},
		{&t.planner, "planner.html"},
		{&t.reports, "reports.html"},
		{&t.insights, "insights.html"},
		{&t.goals, "goals.html"},
		{&t.errorT, "error.html"},
	} {
		parsed, err := parse(p.page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p.page, err)
		}
		*p.dst = parsed
	}
	return t, nil
}

func (t *templates) render(w http.ResponseWriter, tmpl *template.Template, name string, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = tmpl.ExecuteTemplate(w, name, data)
}

func (t *templates) renderPublic(w http.ResponseWriter, status int, data any) {
	t.render(w, t.public, "public.html", status, data)
}

func (t *templates) renderLogin(w http.ResponseWriter, status int, data any) {
	t.render(w, t.login, "login.html", status, data)
}

func (t *templates) renderRegister(w http.ResponseWriter, status int, data any) {
	t.render(w, t.register, "register.html", status, data)
}

func (t *templates) renderForgot(w http.ResponseWriter, status int, data any) {
	t.render(w, t.forgot, "forgot.html", status, data)
}

func (t *templates) renderPassword(w http.ResponseWriter, status int, data any) {
	t.render(w, t.password, "password.html", status, data)
}

func (t *templates) renderDemo(w http.ResponseWriter, status int, data any) {
	t.render(w, t.demo, "demo.html", status, data)
}

func (t *templates) renderHome(w http.ResponseWriter, status int, data any) {
	t.render(w, t.home, "home.html", status, data)
}

func (t *templates) renderPlanner(w http.ResponseWriter, status int, data any) {
	t.render(w, t.planner, "planner.html", status, data)
}

func (t *templates) renderReports(w http.ResponseWriter, status int, data any) {
	t.render(w, t.reports, "reports.html", status, data)
}

func (t *templates) renderInsights(w http.ResponseWriter, status int, data any) {
	t.render(w, t.insights, "insights.html", status, data)
}

func (t *templates) renderGoals(w http.ResponseWriter, status int, data any) {
	t.render(w, t.goals, "goals.html", status, data)
}

func (t *templates) renderError(w http.ResponseWriter, status int, title, message string) {
	t.render(w, t.errorT, "error.html", status, viewData{Title: title, Error: message})
}

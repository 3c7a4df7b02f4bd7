package adminui

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
)

type templates struct {
	dashboard *template.Template
	errorT    *template.Template
}

type dashboardViewData struct {
	Title   string
	Summary domain.Summary
	Users   []userRow
	Error   string
	Notice  string
}

type userRow struct {
	Email          string
	Username       string
	Status         string
	ResetRequested bool
	ForceChange    bool
}

type errorViewData struct {
	Title string
	Error string
}

func parseTemplates() (*templates, error) {
	parse := func(files ...string) (*template.Template, error) {
		return template.New("base").ParseFS(assets, files...)
	}

	dashboard, err := parse("templates/layout.html", "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard: %w", err)
	}
	errorT, err := parse("templates/layout.html", "templates/error.html")
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return &templates{dashboard: dashboard, errorT: errorT}, nil
}

func (t *templates) renderDashboard(w http.ResponseWriter, status int, data dashboardViewData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = t.dashboard.ExecuteTemplate(w, "dashboard.html", data)
}

func (t *templates) renderError(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = t.errorT.ExecuteTemplate(w, "error.html", errorViewData{Title: title, Error: message})
}

// Package pages holds the server-rendered page components. The markup lives
// in embedded html/template files and is adapted into templ components with
// templ.FromGoHTML, so handlers render everything through the same ui.Render
// pipeline.
package pages

import (
	"embed"
	"html/template"
	"time"

	"github.com/a-h/templ"
	"github.com/southgate-leisure/feedback/internal/model"
	"github.com/southgate-leisure/feedback/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

var tmpl = template.Must(template.New("pages").Funcs(template.FuncMap{
	"shortDate": func(t time.Time) string {
		return t.Format("02 Jan 2006 15:04")
	},
	// safeHTML marks already-sanitized markup (rendered markdown) as safe
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
}).ParseFS(templatesFS, "templates/*.html"))

func page(name string, data any) templ.Component {
	return templ.FromGoHTML(tmpl.Lookup(name), data)
}

// HomeData renders the public feedback form. Error and Success are mutually
// exclusive; both empty on first load.
type HomeData struct {
	Title      string
	Error      string
	Success    string
	Activities []string
	CSRFToken  string
}

func Home(data HomeData) templ.Component {
	if data.Activities == nil {
		data.Activities = model.Activities
	}
	return page("home.html", data)
}

type PrivacyData struct {
	Title string
	Page  *service.ContentPage
}

func Privacy(data PrivacyData) templ.Component {
	return page("privacy.html", data)
}

type LoginData struct {
	Error     string
	CSRFToken string
}

func StaffLogin(data LoginData) templ.Component {
	return page("staff_login.html", data)
}

type DashboardData struct {
	Summary *service.Summary
}

func Dashboard(data DashboardData) templ.Component {
	return page("staff_dashboard.html", data)
}

type FeedbackListData struct {
	Result *service.BrowseResult
}

func FeedbackList(data FeedbackListData) templ.Component {
	return page("staff_feedback.html", data)
}

func NotFound() templ.Component {
	return page("not_found.html", nil)
}

// ErrorData carries optional detail rendered only in development mode.
type ErrorData struct {
	Detail string
}

func ServerError(data ErrorData) templ.Component {
	return page("server_error.html", data)
}

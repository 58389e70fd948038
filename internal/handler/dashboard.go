package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/southgate-leisure/feedback/internal/service"
	"github.com/southgate-leisure/feedback/internal/ui"
	"github.com/southgate-leisure/feedback/internal/ui/pages"
)

type DashboardHandler struct {
	feedbackService *service.FeedbackService
}

func NewDashboardHandler(feedbackService *service.FeedbackService) *DashboardHandler {
	return &DashboardHandler{
		feedbackService: feedbackService,
	}
}

func (h *DashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = service.PeriodAll
	}

	summary, err := h.feedbackService.Summary(period, time.Now())
	if err != nil {
		slog.Error("failed to load dashboard", "error", err, "period", period)
		serverError(w, r, err)
		return
	}

	ui.Render(w, r, pages.Dashboard(pages.DashboardData{Summary: summary}))
}

func (h *DashboardHandler) FeedbackListPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.feedbackService.Browse(service.BrowseFilters{
		Activity:  q.Get("activity"),
		Rating:    q.Get("rating"),
		Search:    q.Get("search"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Sort:      q.Get("sort"),
	})
	if err != nil {
		slog.Error("failed to load feedback list", "error", err)
		serverError(w, r, err)
		return
	}

	ui.Render(w, r, pages.FeedbackList(pages.FeedbackListData{Result: result}))
}

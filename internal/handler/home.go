package handler

import (
	"log/slog"
	"net/http"

	"github.com/southgate-leisure/feedback/internal/ctxkeys"
	"github.com/southgate-leisure/feedback/internal/service"
	"github.com/southgate-leisure/feedback/internal/ui"
	"github.com/southgate-leisure/feedback/internal/ui/pages"
)

const feedbackFormTitle = "Southgate Leisure Centre | Feedback"

type HomeHandler struct {
	contentService *service.ContentService
}

func NewHomeHandler(contentService *service.ContentService) *HomeHandler {
	handler := &HomeHandler{
		contentService: contentService,
	}

	// Load content pages on initialization
	err := handler.contentService.LoadPages()
	if err != nil {
		// Silently continue - pages might be added later
		_ = err
	}

	return handler
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Home(pages.HomeData{
		Title:     feedbackFormTitle,
		CSRFToken: ctxkeys.CSRFToken(r.Context()),
	}))
}

func (h *HomeHandler) PrivacyPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.contentService.Page("privacy")
	if err != nil {
		slog.Error("failed to load privacy page", "error", err)
		w.WriteHeader(http.StatusNotFound)
		ui.Render(w, r, pages.NotFound())
		return
	}

	ui.Render(w, r, pages.Privacy(pages.PrivacyData{
		Title: "Privacy Policy | Southgate Leisure Centre",
		Page:  page,
	}))
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	ui.Render(w, r, pages.NotFound())
}

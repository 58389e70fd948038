package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/southgate-leisure/feedback/internal/ctxkeys"
	"github.com/southgate-leisure/feedback/internal/service"
	"github.com/southgate-leisure/feedback/internal/ui"
	"github.com/southgate-leisure/feedback/internal/ui/pages"
	"github.com/southgate-leisure/feedback/internal/validation"
)

const (
	submitSuccessMessage = "Your feedback has been submitted successfully! We truly appreciate you taking the time to share your thoughts."
	submitFailureMessage = "Something went wrong. Please try again."
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

// Submit handles the public feedback form. The form is re-rendered with the
// first validation failure, the success confirmation, or a generic message on
// storage errors.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		h.renderForm(w, r, submitFailureMessage, "")
		return
	}

	sub := validation.Submission{
		Activity: r.PostFormValue("activity"),
		Rating:   r.PostFormValue("rating"),
		Comments: r.PostFormValue("comments"),
		Email:    r.PostFormValue("email"),
		Name:     r.PostFormValue("name"),
		BetterID: r.PostFormValue("betterId"),
		Consent:  r.PostFormValue("consent"),
	}

	_, err = h.feedbackService.Submit(sub)
	if err != nil {
		var ruleErr *validation.RuleError
		if errors.As(err, &ruleErr) {
			h.renderForm(w, r, ruleErr.Message, "")
			return
		}

		slog.Error("failed to save feedback", "error", err)
		h.renderForm(w, r, submitFailureMessage, "")
		return
	}

	h.renderForm(w, r, "", submitSuccessMessage)
}

func (h *FeedbackHandler) renderForm(w http.ResponseWriter, r *http.Request, errMsg, successMsg string) {
	ui.Render(w, r, pages.Home(pages.HomeData{
		Title:     feedbackFormTitle,
		Error:     errMsg,
		Success:   successMsg,
		CSRFToken: ctxkeys.CSRFToken(r.Context()),
	}))
}

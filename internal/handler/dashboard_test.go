package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/southgate-leisure/feedback/internal/repository"
	"github.com/southgate-leisure/feedback/internal/service"
	"github.com/southgate-leisure/feedback/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardHandler(t *testing.T) (*DashboardHandler, *service.FeedbackService) {
	t.Helper()

	svc := service.NewFeedbackService(repository.NewFeedbackRepository(testDB(t)))
	return NewDashboardHandler(svc), svc
}

func seedFeedback(t *testing.T, svc *service.FeedbackService, activity, rating, comments string) {
	t.Helper()

	_, err := svc.Submit(validation.Submission{
		Activity: activity,
		Rating:   rating,
		Comments: comments,
		Consent:  "on",
	})
	require.NoError(t, err)
}

func TestDashboardHandler_DashboardPage(t *testing.T) {
	h, svc := newDashboardHandler(t)

	seedFeedback(t, svc, "Gym", "5", "Excellent equipment this morning")
	seedFeedback(t, svc, "Gym", "4", "Busy but well organised")
	seedFeedback(t, svc, "Cafe", "3", "Coffee was lukewarm again")

	t.Run("defaults to all time", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/staff/dashboard", nil)
		rec := httptest.NewRecorder()
		h.DashboardPage(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "All Time")
		assert.Contains(t, body, "Excellent equipment this morning")
		assert.Contains(t, body, "Gym")
		assert.Contains(t, body, "Cafe")
	})

	t.Run("honours the period selector", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/staff/dashboard?period=ytd", nil)
		rec := httptest.NewRecorder()
		h.DashboardPage(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `value="ytd" selected`)
	})
}

func TestDashboardHandler_FeedbackListPage(t *testing.T) {
	h, svc := newDashboardHandler(t)

	seedFeedback(t, svc, "Gym", "5", "Excellent equipment this morning")
	seedFeedback(t, svc, "Cafe", "2", "Coffee was lukewarm again")

	t.Run("unfiltered shows everything", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/staff/feedback", nil)
		rec := httptest.NewRecorder()
		h.FeedbackListPage(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Excellent equipment this morning")
		assert.Contains(t, body, "Coffee was lukewarm again")
	})

	t.Run("activity filter narrows the result", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/staff/feedback?activity=Cafe", nil)
		rec := httptest.NewRecorder()
		h.FeedbackListPage(rec, req)

		body := rec.Body.String()
		assert.Contains(t, body, "Coffee was lukewarm again")
		assert.NotContains(t, body, "Excellent equipment this morning")
	})

	t.Run("search matches comments case-insensitively", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/staff/feedback?search=LUKEWARM", nil)
		rec := httptest.NewRecorder()
		h.FeedbackListPage(rec, req)

		body := rec.Body.String()
		assert.Contains(t, body, "Coffee was lukewarm again")
		assert.NotContains(t, body, "Excellent equipment this morning")
	})
}

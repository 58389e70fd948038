package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/southgate-leisure/feedback/internal/model"
	"github.com/southgate-leisure/feedback/internal/repository"
	"github.com/southgate-leisure/feedback/internal/validation"
)

const (
	PeriodAll       = "all"
	PeriodYTD       = "ytd"
	PeriodMonth     = "month"
	PeriodLastMonth = "lastmonth"
)

// recentLimit is how many of the latest records the dashboard shows.
const recentLimit = 10

type FeedbackService struct {
	feedbackRepository repository.FeedbackRepository
}

func NewFeedbackService(feedbackRepository repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{
		feedbackRepository: feedbackRepository,
	}
}

// Submit validates a submission and persists exactly one record. Validation
// failures come back as *validation.RuleError with the visitor-facing message;
// anything else is a storage error.
func (s *FeedbackService) Submit(sub validation.Submission) (*model.Feedback, error) {
	err := validation.ValidateSubmission(sub)
	if err != nil {
		return nil, err
	}

	rating, err := strconv.Atoi(strings.TrimSpace(sub.Rating))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rating: %w", err)
	}

	fb := &model.Feedback{
		ID:           uuid.New().String(),
		Activity:     sub.Activity,
		Rating:       rating,
		Comments:     strings.TrimSpace(sub.Comments),
		ConsentGiven: true,
		CreatedAt:    time.Now(),
	}

	// Optional fields are stored only when supplied
	if email := validation.NormalizeEmail(sub.Email); email != "" {
		fb.Email = &email
	}
	if name := strings.TrimSpace(sub.Name); name != "" {
		fb.Name = &name
	}
	if betterID := strings.TrimSpace(sub.BetterID); betterID != "" {
		fb.BetterID = &betterID
	}

	err = s.feedbackRepository.Create(fb)
	if err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	return fb, nil
}

// Summary aggregates feedback over the window selected by period.
type Summary struct {
	Period            string
	PeriodLabel       string
	TotalFeedback     int
	AvgRating         float64 // rounded to one decimal place
	ActivityBreakdown []repository.ActivityCount
	RatingBreakdown   []repository.RatingCount
	RecentFeedback    []*model.Feedback
}

// Summary computes the dashboard aggregates for the given period selector.
// All aggregates run against the same resolved date range.
func (s *FeedbackService) Summary(period string, now time.Time) (*Summary, error) {
	filter, label := PeriodRange(period, now)

	total, err := s.feedbackRepository.Count(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}

	avg, err := s.feedbackRepository.AverageRating(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}

	byActivity, err := s.feedbackRepository.ActivityBreakdown(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to break down by activity: %w", err)
	}

	byRating, err := s.feedbackRepository.RatingBreakdown(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to break down by rating: %w", err)
	}

	recent, err := s.feedbackRepository.Recent(filter, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent feedback: %w", err)
	}

	return &Summary{
		Period:            period,
		PeriodLabel:       label,
		TotalFeedback:     total,
		AvgRating:         math.Round(avg*10) / 10,
		ActivityBreakdown: byActivity,
		RatingBreakdown:   byRating,
		RecentFeedback:    recent,
	}, nil
}

// PeriodRange resolves a period selector into a date-range filter and a
// human-readable label. Unknown selectors fall back to all time.
func PeriodRange(period string, now time.Time) (repository.Filter, string) {
	var filter repository.Filter

	switch period {
	case PeriodYTD:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		filter.From = &start
		return filter, "Year to Date"
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		filter.From = &start
		return filter, now.Format("January 2006")
	case PeriodLastMonth:
		start := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		// Last instant of the previous month
		end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Add(-time.Millisecond)
		filter.From = &start
		filter.To = &end
		return filter, start.Format("January 2006")
	default: // PeriodAll or unknown
		return filter, "All Time"
	}
}

// BrowseFilters echoes the raw query values of the feedback browser form.
type BrowseFilters struct {
	Activity  string
	Rating    string
	Search    string
	StartDate string
	EndDate   string
	Sort      string
}

// BrowseResult is the full matching set plus the distinct activities across
// all records, used to populate the filter dropdown.
type BrowseResult struct {
	Feedback   []*model.Feedback
	Activities []string
	Filters    BrowseFilters
}

// Browse lists feedback matching the supplied ad-hoc filters, AND-combined.
func (s *FeedbackService) Browse(f BrowseFilters) (*BrowseResult, error) {
	filter := browseFilter(f)

	rows, err := s.feedbackRepository.List(filter, f.Sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	activities, err := s.feedbackRepository.DistinctActivities()
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return &BrowseResult{
		Feedback:   rows,
		Activities: activities,
		Filters:    f.withDefaults(),
	}, nil
}

// browseFilter translates the raw form values into a repository filter.
// Unset, "all" and unparsable values leave a field unconstrained.
func browseFilter(f BrowseFilters) repository.Filter {
	var filter repository.Filter

	if f.Activity != "" && f.Activity != "all" {
		filter.Activity = f.Activity
	}
	if f.Rating != "" && f.Rating != "all" {
		rating, err := strconv.Atoi(f.Rating)
		if err == nil {
			filter.Rating = &rating
		}
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		filter.Search = search
	}
	if f.StartDate != "" {
		start, err := time.ParseInLocation("2006-01-02", f.StartDate, time.Local)
		if err == nil {
			filter.From = &start
		}
	}
	if f.EndDate != "" {
		end, err := time.ParseInLocation("2006-01-02", f.EndDate, time.Local)
		if err == nil {
			// Inclusive: extend to the last instant of that day
			end = end.Add(24*time.Hour - time.Millisecond)
			filter.To = &end
		}
	}

	return filter
}

func (f BrowseFilters) withDefaults() BrowseFilters {
	if f.Activity == "" {
		f.Activity = "all"
	}
	if f.Rating == "" {
		f.Rating = "all"
	}
	if f.Sort == "" {
		f.Sort = repository.FeedbackSortNewest
	}
	return f
}

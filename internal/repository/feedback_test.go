package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/southgate-leisure/feedback/internal/db"
	"github.com/southgate-leisure/feedback/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	return database
}

func newFeedback(activity string, rating int, comments string, createdAt time.Time) *model.Feedback {
	return &model.Feedback{
		ID:           uuid.New().String(),
		Activity:     activity,
		Rating:       rating,
		Comments:     comments,
		ConsentGiven: true,
		CreatedAt:    createdAt,
	}
}

func TestBuildWhere(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC)
	rating := 3

	tests := []struct {
		name      string
		filter    Filter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "empty filter matches everything",
			filter:    Filter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "activity only",
			filter:    Filter{Activity: "Gym"},
			wantWhere: " WHERE activity = $1",
			wantArgs:  []any{"Gym"},
		},
		{
			name:      "date range only",
			filter:    Filter{From: &from, To: &to},
			wantWhere: " WHERE created_at >= $1 AND created_at <= $2",
			wantArgs:  []any{from, to},
		},
		{
			name:      "search uses escaped like pattern",
			filter:    Filter{Search: "50% OFF_now"},
			wantWhere: ` WHERE LOWER(comments) LIKE $1 ESCAPE '\'`,
			wantArgs:  []any{`%50\% off\_now%`},
		},
		{
			name:      "all filters are ANDed in order",
			filter:    Filter{Activity: "Gym", Rating: &rating, Search: "pool", From: &from, To: &to},
			wantWhere: ` WHERE activity = $1 AND rating = $2 AND LOWER(comments) LIKE $3 ESCAPE '\' AND created_at >= $4 AND created_at <= $5`,
			wantArgs:  []any{"Gym", 3, "%pool%", from, to},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildWhere(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "ORDER BY created_at DESC", orderBy(FeedbackSortNewest))
	assert.Equal(t, "ORDER BY created_at ASC", orderBy(FeedbackSortOldest))
	assert.Equal(t, "ORDER BY rating DESC, created_at DESC", orderBy(FeedbackSortHighest))
	assert.Equal(t, "ORDER BY rating ASC, created_at DESC", orderBy(FeedbackSortLowest))

	// Unset and unknown keys both fall back to newest first
	assert.Equal(t, "ORDER BY created_at DESC", orderBy(""))
	assert.Equal(t, "ORDER BY created_at DESC", orderBy("sideways"))
}

func TestFeedbackRepository_RoundTrip(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))

	email := "visitor@example.com"
	name := "Alex Visitor"
	betterID := "BTR-42"

	fb := newFeedback("Gym", 4, "Great session today", time.Now())
	fb.Email = &email
	fb.Name = &name
	fb.BetterID = &betterID

	require.NoError(t, repo.Create(fb))

	got, err := repo.ByID(fb.ID)
	require.NoError(t, err)

	assert.Equal(t, fb.Activity, got.Activity)
	assert.Equal(t, fb.Rating, got.Rating)
	assert.Equal(t, fb.Comments, got.Comments)
	assert.True(t, got.ConsentGiven)
	require.NotNil(t, got.Email)
	assert.Equal(t, email, *got.Email)
	require.NotNil(t, got.Name)
	assert.Equal(t, name, *got.Name)
	require.NotNil(t, got.BetterID)
	assert.Equal(t, betterID, *got.BetterID)
}

func TestFeedbackRepository_RoundTripWithoutOptionals(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))

	fb := newFeedback("Cafe", 5, "Lovely coffee and cake", time.Now())
	require.NoError(t, repo.Create(fb))

	got, err := repo.ByID(fb.ID)
	require.NoError(t, err)

	assert.Nil(t, got.Email)
	assert.Nil(t, got.Name)
	assert.Nil(t, got.BetterID)
}

func TestFeedbackRepository_ByIDNotFound(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))

	_, err := repo.ByID(uuid.New().String())
	assert.ErrorIs(t, err, ErrFeedbackNotFound)
}

func TestFeedbackRepository_Aggregates(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(newFeedback("Gym", 5, "Excellent machines", now)))
	require.NoError(t, repo.Create(newFeedback("Gym", 4, "Busy but good overall", now.Add(-time.Hour))))
	require.NoError(t, repo.Create(newFeedback("Cafe", 2, "Slow service at lunch", now.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(newFeedback("Cafe", 4, "Nice flat white today", feb)))

	// Unfiltered
	count, err := repo.Count(Filter{})
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	avg, err := repo.AverageRating(Filter{})
	require.NoError(t, err)
	assert.InDelta(t, 3.75, avg, 0.0001)

	// March only
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	march := Filter{From: &from}

	count, err = repo.Count(march)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	byActivity, err := repo.ActivityBreakdown(march)
	require.NoError(t, err)
	require.Len(t, byActivity, 2)
	assert.Equal(t, ActivityCount{Activity: "Gym", Count: 2}, byActivity[0])
	assert.Equal(t, ActivityCount{Activity: "Cafe", Count: 1}, byActivity[1])

	byRating, err := repo.RatingBreakdown(march)
	require.NoError(t, err)
	require.Len(t, byRating, 3)
	assert.Equal(t, RatingCount{Rating: 2, Count: 1}, byRating[0])
	assert.Equal(t, RatingCount{Rating: 4, Count: 1}, byRating[1])
	assert.Equal(t, RatingCount{Rating: 5, Count: 1}, byRating[2])

	// Count equals the sum across the rating breakdown
	sum := 0
	for _, rc := range byRating {
		sum += rc.Count
	}
	assert.Equal(t, count, sum)
}

func TestFeedbackRepository_AverageRatingEmpty(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))

	avg, err := repo.AverageRating(Filter{})
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestFeedbackRepository_Recent(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		fb := newFeedback("Gym", 3, "Another visit to the gym", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, repo.Create(fb))
	}

	recent, err := repo.Recent(Filter{}, 10)
	require.NoError(t, err)
	require.Len(t, recent, 10)

	// Newest first
	for i := 1; i < len(recent); i++ {
		assert.True(t, !recent[i].CreatedAt.After(recent[i-1].CreatedAt))
	}
}

func TestFeedbackRepository_ListSorting(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	older := newFeedback("Gym", 2, "Could use more free weights", base)
	newer := newFeedback("Gym", 2, "Still short on free weights", base.Add(time.Hour))
	top := newFeedback("Cafe", 5, "Best brownie in the borough", base.Add(2*time.Hour))

	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))
	require.NoError(t, repo.Create(top))

	// lowest: ascending rating, ties broken by most recent first
	rows, err := repo.List(Filter{}, FeedbackSortLowest)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, older.ID, rows[1].ID)
	assert.Equal(t, top.ID, rows[2].ID)

	rows, err = repo.List(Filter{}, FeedbackSortHighest)
	require.NoError(t, err)
	assert.Equal(t, top.ID, rows[0].ID)

	rows, err = repo.List(Filter{}, FeedbackSortOldest)
	require.NoError(t, err)
	assert.Equal(t, older.ID, rows[0].ID)

	rows, err = repo.List(Filter{}, "")
	require.NoError(t, err)
	assert.Equal(t, top.ID, rows[0].ID)
}

func TestFeedbackRepository_SearchIsCaseInsensitive(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))

	match := newFeedback("Swim for All", 4, "The POOL temperature was perfect", time.Now())
	miss := newFeedback("Gym", 4, "Treadmills all working fine", time.Now())
	require.NoError(t, repo.Create(match))
	require.NoError(t, repo.Create(miss))

	rows, err := repo.List(Filter{Search: "pool"}, FeedbackSortNewest)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, match.ID, rows[0].ID)
}

func TestFeedbackRepository_DistinctActivities(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))

	require.NoError(t, repo.Create(newFeedback("Gym", 4, "Good range of machines", time.Now())))
	require.NoError(t, repo.Create(newFeedback("Gym", 2, "Too crowded this evening", time.Now())))
	require.NoError(t, repo.Create(newFeedback("Cafe", 5, "Lovely spot after a swim", time.Now())))

	activities, err := repo.DistinctActivities()
	require.NoError(t, err)
	assert.Equal(t, []string{"Cafe", "Gym"}, activities)
}

func TestFeedbackRepository_DeleteOlderThan(t *testing.T) {
	repo := NewFeedbackRepository(testDB(t))

	now := time.Now()
	aged := newFeedback("Gym", 3, "A visit from a long time ago", now.AddDate(-1, 0, -1))
	fresh := newFeedback("Gym", 3, "A visit from this morning", now)
	require.NoError(t, repo.Create(aged))
	require.NoError(t, repo.Create(fresh))

	deleted, err := repo.DeleteOlderThan(now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = repo.ByID(aged.ID)
	assert.ErrorIs(t, err, ErrFeedbackNotFound)

	_, err = repo.ByID(fresh.ID)
	assert.NoError(t, err)
}

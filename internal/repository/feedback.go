package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/southgate-leisure/feedback/internal/model"
)

const (
	FeedbackSortNewest  = "newest"
	FeedbackSortOldest  = "oldest"
	FeedbackSortHighest = "highest"
	FeedbackSortLowest  = "lowest"
)

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
)

// Filter selects a subset of feedback records. The zero value matches
// everything; each set field adds one AND-ed predicate.
type Filter struct {
	Activity string     // exact match when non-empty
	Rating   *int       // exact match when set
	Search   string     // case-insensitive substring match on comments
	From     *time.Time // created_at >= From (inclusive)
	To       *time.Time // created_at <= To (inclusive)
}

// ActivityCount is one row of the per-activity breakdown.
type ActivityCount struct {
	Activity string `db:"activity"`
	Count    int    `db:"count"`
}

// RatingCount is one row of the per-rating breakdown.
type RatingCount struct {
	Rating int `db:"rating"`
	Count  int `db:"count"`
}

type FeedbackRepository interface {
	Create(fb *model.Feedback) error
	ByID(id string) (*model.Feedback, error)
	Count(f Filter) (int, error)
	AverageRating(f Filter) (float64, error)
	ActivityBreakdown(f Filter) ([]ActivityCount, error)
	RatingBreakdown(f Filter) ([]RatingCount, error)
	Recent(f Filter, limit int) ([]*model.Feedback, error)
	List(f Filter, sortBy string) ([]*model.Feedback, error)
	DistinctActivities() ([]string, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type feedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(fb *model.Feedback) error {
	query := `INSERT INTO feedback (id, email, better_id, name, activity, rating, comments, consent_given, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		fb.ID,
		fb.Email,
		fb.BetterID,
		fb.Name,
		fb.Activity,
		fb.Rating,
		fb.Comments,
		fb.ConsentGiven,
		fb.CreatedAt,
	)

	return err
}

func (r *feedbackRepository) ByID(id string) (*model.Feedback, error) {
	fb := &model.Feedback{}
	query := `SELECT * FROM feedback WHERE id = $1`

	err := r.db.Get(fb, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFeedbackNotFound
	}

	return fb, err
}

func (r *feedbackRepository) Count(f Filter) (int, error) {
	where, args := buildWhere(f)

	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM feedback`+where, args...)
	return count, err
}

func (r *feedbackRepository) AverageRating(f Filter) (float64, error) {
	where, args := buildWhere(f)

	var avg float64
	err := r.db.Get(&avg, `SELECT COALESCE(AVG(rating), 0) FROM feedback`+where, args...)
	return avg, err
}

func (r *feedbackRepository) ActivityBreakdown(f Filter) ([]ActivityCount, error) {
	where, args := buildWhere(f)

	var rows []ActivityCount
	query := `SELECT activity, COUNT(*) AS count FROM feedback` + where +
		` GROUP BY activity ORDER BY count DESC, activity ASC`

	err := r.db.Select(&rows, query, args...)
	return rows, err
}

func (r *feedbackRepository) RatingBreakdown(f Filter) ([]RatingCount, error) {
	where, args := buildWhere(f)

	var rows []RatingCount
	query := `SELECT rating, COUNT(*) AS count FROM feedback` + where +
		` GROUP BY rating ORDER BY rating ASC`

	err := r.db.Select(&rows, query, args...)
	return rows, err
}

func (r *feedbackRepository) Recent(f Filter, limit int) ([]*model.Feedback, error) {
	where, args := buildWhere(f)

	var rows []*model.Feedback
	query := fmt.Sprintf(`SELECT * FROM feedback%s ORDER BY created_at DESC LIMIT %d`, where, limit)

	err := r.db.Select(&rows, query, args...)
	return rows, err
}

func (r *feedbackRepository) List(f Filter, sortBy string) ([]*model.Feedback, error) {
	where, args := buildWhere(f)

	var rows []*model.Feedback
	query := `SELECT * FROM feedback` + where + ` ` + orderBy(sortBy)

	err := r.db.Select(&rows, query, args...)
	return rows, err
}

func (r *feedbackRepository) DistinctActivities() ([]string, error) {
	var activities []string
	err := r.db.Select(&activities, `SELECT DISTINCT activity FROM feedback ORDER BY activity ASC`)
	return activities, err
}

func (r *feedbackRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM feedback WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// buildWhere turns a Filter into a WHERE clause and its arguments. It starts
// from an always-true predicate (the empty clause) and conjunctively adds one
// condition per set field, so filter composition is testable without a store.
func buildWhere(f Filter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Activity != "" {
		add("activity = $%d", f.Activity)
	}
	if f.Rating != nil {
		add("rating = $%d", *f.Rating)
	}
	if f.Search != "" {
		add(`LOWER(comments) LIKE $%d ESCAPE '\'`, likePattern(f.Search))
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// likePattern builds a case-insensitive substring pattern with LIKE
// metacharacters in the user input escaped.
func likePattern(search string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(search))
	return "%" + escaped + "%"
}

// orderBy validates the sort key and builds the ORDER BY clause. Rating sorts
// break ties by recency; an unknown or empty key sorts newest first.
func orderBy(sortBy string) string {
	switch sortBy {
	case FeedbackSortOldest:
		return "ORDER BY created_at ASC"
	case FeedbackSortHighest:
		return "ORDER BY rating DESC, created_at DESC"
	case FeedbackSortLowest:
		return "ORDER BY rating ASC, created_at DESC"
	default: // FeedbackSortNewest or empty
		return "ORDER BY created_at DESC"
	}
}

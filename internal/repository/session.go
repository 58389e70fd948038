package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/southgate-leisure/feedback/internal/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

type SessionRepository interface {
	Create(session *model.Session) error
	ByToken(token string) (*model.Session, error)
	Touch(token string, expiresAt time.Time) error
	Delete(token string) error
	DeleteExpired(now time.Time) (int64, error)
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	query := `INSERT INTO sessions (token, staff_id, created_at, expires_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, session.Token, session.StaffID, session.CreatedAt, session.ExpiresAt)
	return err
}

func (r *sessionRepository) ByToken(token string) (*model.Session, error) {
	session := &model.Session{}
	query := `SELECT * FROM sessions WHERE token = $1`

	err := r.db.Get(session, query, token)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}

	return session, err
}

// Touch extends the idle expiry. Concurrent touches of the same session are
// last-write-wins.
func (r *sessionRepository) Touch(token string, expiresAt time.Time) error {
	_, err := r.db.Exec(`UPDATE sessions SET expires_at = $1 WHERE token = $2`, expiresAt, token)
	return err
}

func (r *sessionRepository) Delete(token string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *sessionRepository) DeleteExpired(now time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

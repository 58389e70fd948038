package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/southgate-leisure/feedback/internal/model"
)

var (
	ErrStaffNotFound     = errors.New("staff account not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

type StaffRepository interface {
	Create(staff *model.StaffAccount) error
	ByID(id string) (*model.StaffAccount, error)
	ByUsername(username string) (*model.StaffAccount, error)
}

type staffRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(staff *model.StaffAccount) error {
	query := `INSERT INTO staff_accounts (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, staff.ID, staff.Username, staff.PasswordHash, staff.CreatedAt)
	if err != nil {
		// Check for unique constraint violation (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateUsername
		}
		return err
	}

	return nil
}

func (r *staffRepository) ByID(id string) (*model.StaffAccount, error) {
	staff := &model.StaffAccount{}
	query := `SELECT * FROM staff_accounts WHERE id = $1`

	err := r.db.Get(staff, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}

	return staff, err
}

func (r *staffRepository) ByUsername(username string) (*model.StaffAccount, error) {
	staff := &model.StaffAccount{}
	query := `SELECT * FROM staff_accounts WHERE username = $1`

	err := r.db.Get(staff, query, username)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}

	return staff, err
}

package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/southgate-leisure/feedback/internal/model"
	"github.com/southgate-leisure/feedback/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const sessionCookieName = "staff_session"

// bcryptCost matches the cost used when accounts are provisioned.
const bcryptCost = 12

// dummyHash is compared against when the username is unknown, so a login
// attempt takes the same time whether or not the account exists.
var dummyHash = func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("placeholder-password"), bcryptCost)
	if err != nil {
		panic("failed to generate dummy hash: " + err.Error())
	}
	return string(hash)
}()

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords. Callers must not surface which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type AuthService struct {
	staffRepository   repository.StaffRepository
	sessionRepository repository.SessionRepository
	idleTimeout       time.Duration
	isProduction      bool
}

func NewAuthService(
	staffRepository repository.StaffRepository,
	sessionRepository repository.SessionRepository,
	idleTimeout time.Duration,
	isProduction bool,
) *AuthService {
	return &AuthService{
		staffRepository:   staffRepository,
		sessionRepository: sessionRepository,
		idleTimeout:       idleTimeout,
		isProduction:      isProduction,
	}
}

// Login verifies the credentials and establishes a server-side session.
// Unknown username and wrong password return the same ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (*model.Session, error) {
	staff, err := s.staffRepository.ByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			// Burn a hash comparison anyway to keep timing flat
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up staff account: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &model.Session{
		Token:     token,
		StaffID:   staff.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.idleTimeout),
	}

	err = s.sessionRepository.Create(session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// SessionStaff resolves a session token to its staff account. Valid sessions
// are touched so the idle window restarts; expired ones are deleted.
func (s *AuthService) SessionStaff(token string) (*model.Session, *model.StaffAccount, error) {
	session, err := s.sessionRepository.ByToken(token)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	if session.Expired(now) {
		_ = s.sessionRepository.Delete(session.Token)
		return nil, nil, repository.ErrSessionNotFound
	}

	staff, err := s.staffRepository.ByID(session.StaffID)
	if err != nil {
		return nil, nil, err
	}

	session.ExpiresAt = now.Add(s.idleTimeout)
	err = s.sessionRepository.Touch(session.Token, session.ExpiresAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to touch session: %w", err)
	}

	return session, staff, nil
}

// Logout invalidates the session.
func (s *AuthService) Logout(token string) error {
	return s.sessionRepository.Delete(token)
}

// CreateStaff provisions a staff account. Used by staffctl, never by an HTTP
// handler.
func (s *AuthService) CreateStaff(username, password string) (*model.StaffAccount, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := &model.StaffAccount{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	err = s.staffRepository.Create(staff)
	if err != nil {
		return nil, err
	}

	return staff, nil
}

func (s *AuthService) SetSessionCookie(w http.ResponseWriter, session *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionCookie returns the session token from the request, if any.
func SessionCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func generateSessionToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

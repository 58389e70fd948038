package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/southgate-leisure/feedback/internal/ctxkeys"
	"github.com/southgate-leisure/feedback/internal/service"
	"github.com/southgate-leisure/feedback/internal/ui"
	"github.com/southgate-leisure/feedback/internal/ui/pages"
)

const (
	// loginErrorMessage is identical for unknown usernames and wrong
	// passwords so the form cannot be used to enumerate accounts.
	loginErrorMessage        = "Invalid username or password"
	loginMissingFieldMessage = "Please enter both username and password"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, "")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		h.renderLogin(w, r, loginMissingFieldMessage)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	if username == "" || password == "" {
		h.renderLogin(w, r, loginMissingFieldMessage)
		return
	}

	session, err := h.authService.Login(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.renderLogin(w, r, loginErrorMessage)
			return
		}

		slog.Error("login failed", "error", err)
		h.renderLogin(w, r, submitFailureMessage)
		return
	}

	h.authService.SetSessionCookie(w, session)
	http.Redirect(w, r, "/staff/dashboard", http.StatusSeeOther)
}

// Logout destroys the session. A failed delete is logged but the client is
// sent back to the login page regardless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := service.SessionCookie(r)
	if ok {
		err := h.authService.Logout(token)
		if err != nil {
			slog.Error("logout failed", "error", err)
		}
	}

	h.authService.ClearSessionCookie(w)
	http.Redirect(w, r, "/staff/login", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, errMsg string) {
	ui.Render(w, r, pages.StaffLogin(pages.LoginData{
		Error:     errMsg,
		CSRFToken: ctxkeys.CSRFToken(r.Context()),
	}))
}

package routes

import (
	"io/fs"
	"net/http"

	"github.com/southgate-leisure/feedback/assets"
	"github.com/southgate-leisure/feedback/internal/app"
	"github.com/southgate-leisure/feedback/internal/handler"
	"github.com/southgate-leisure/feedback/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.ContentService)
	feedback := handler.NewFeedbackHandler(app.FeedbackService)
	auth := handler.NewAuthHandler(app.AuthService)
	dashboard := handler.NewDashboardHandler(app.FeedbackService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	// Feedback form
	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /privacy", home.PrivacyPage)

	// Submissions (rate limited, checked before validation)
	submitLimiter := middleware.RateLimitSubmit()
	mux.HandleFunc("POST /submit-feedback", submitLimiter(feedback.Submit))

	// ============================================================================
	// STAFF ROUTES
	// ============================================================================

	// Login (rate limited, checked before credential lookup)
	loginLimiter := middleware.RateLimitLogin()
	mux.HandleFunc("GET /staff/login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("POST /staff/login", loginLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("GET /staff/logout", auth.Logout)

	// Protected pages
	mux.HandleFunc("GET /staff/dashboard", middleware.RequireStaff(dashboard.DashboardPage))
	mux.HandleFunc("GET /staff/feedback", middleware.RequireStaff(dashboard.FeedbackListPage))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),              // Config must be first (needed by CSRF and error pages)
		middleware.NonceMiddleware,              // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders,              // Security headers for all responses (XSS, clickjacking, etc.)
		middleware.RequestLogging,
		middleware.CSRFProtection,               // CSRF protection for all state-changing requests
		middleware.SessionMiddleware(app.AuthService),
		middleware.WithURLPath,
	)

	return handler
}

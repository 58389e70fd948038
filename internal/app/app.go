package app

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/southgate-leisure/feedback/internal/config"
	"github.com/southgate-leisure/feedback/internal/db"
	"github.com/southgate-leisure/feedback/internal/repository"
	"github.com/southgate-leisure/feedback/internal/service"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	AuthService     *service.AuthService
	FeedbackService *service.FeedbackService
	ContentService  *service.ContentService
	Janitor         *service.Janitor
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	feedbackRepository := repository.NewFeedbackRepository(database)
	staffRepository := repository.NewStaffRepository(database)
	sessionRepository := repository.NewSessionRepository(database)

	// Services
	authService := service.NewAuthService(
		staffRepository,
		sessionRepository,
		cfg.SessionIdleTimeout,
		cfg.IsProduction(),
	)
	feedbackService := service.NewFeedbackService(feedbackRepository)
	contentService := service.NewContentService(cfg.ContentPath)

	// Janitor evicts feedback past the retention window and stale sessions
	janitor := service.NewJanitor(feedbackRepository, sessionRepository, cfg.FeedbackRetention)
	janitor.Start(1 * time.Hour)

	return &App{
		Cfg:             cfg,
		DB:              database,
		AuthService:     authService,
		FeedbackService: feedbackService,
		ContentService:  contentService,
		Janitor:         janitor,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

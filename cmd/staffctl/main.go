// staffctl provisions staff accounts out of band. The web application has no
// endpoint for creating or changing accounts.
//
// Usage:
//
//	staffctl -username reception -password 'a long passphrase'
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/southgate-leisure/feedback/internal/config"
	"github.com/southgate-leisure/feedback/internal/db"
	"github.com/southgate-leisure/feedback/internal/logger"
	"github.com/southgate-leisure/feedback/internal/repository"
	"github.com/southgate-leisure/feedback/internal/service"
)

func main() {
	username := flag.String("username", "", "username for the new staff account")
	password := flag.String("password", "", "password for the new staff account")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: staffctl -username <name> -password <password>")
		os.Exit(2)
	}

	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "")

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	staffRepository := repository.NewStaffRepository(database)
	sessionRepository := repository.NewSessionRepository(database)
	authService := service.NewAuthService(staffRepository, sessionRepository, 0, cfg.IsProduction())

	staff, err := authService.CreateStaff(*username, *password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			slog.Error("staff account already exists", "username", *username)
			os.Exit(1)
		}
		slog.Error("failed to create staff account", "error", err)
		os.Exit(1)
	}

	slog.Info("staff account created", "username", staff.Username, "id", staff.ID)
	fmt.Printf("Staff account %q created. Log in at /staff/login\n", staff.Username)
}

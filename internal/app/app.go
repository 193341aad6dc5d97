// Package app wires the command-line client together: configuration, the
// credential store, the session manager and the API client, plus the
// command dispatch itself.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Hoangit1506/shortcourse/internal/session"
	"github.com/Hoangit1506/shortcourse/internal/session/drivers/sqlite"
	"github.com/Hoangit1506/shortcourse/pkg/coursesdk"
	"github.com/Hoangit1506/shortcourse/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the CLI client with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	store   session.Store
	manager *session.Manager
	api     *coursesdk.Client

	out *os.File
}

// cliNavigator is the terminal rendition of forced navigation: there is no
// page to redirect, so it tells the user to log in again.
type cliNavigator struct {
	logger *slog.Logger
}

func (n *cliNavigator) LoginRequired() {
	n.logger.Warn("session is no longer valid")
	fmt.Fprintln(os.Stderr, "Your session has expired. Run `shortcourse login` to sign in again.")
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			App:     "shortcourse",
			Version: BuildVersion,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		out: os.Stdout,
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	sealer, err := session.LoadSealer(ctx, app.store, cfg.MasterSecret)
	if err != nil {
		_ = app.store.Close()
		return nil, fmt.Errorf("failed to initialize token sealer: %w", err)
	}

	nav := &cliNavigator{logger: app.logger}
	app.manager = session.NewManager(app.store, sealer, nav)

	app.api = coursesdk.NewClient(cfg.BaseURL,
		coursesdk.WithTokenSource(app.manager),
		coursesdk.WithNavigator(nav),
		coursesdk.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		coursesdk.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)
	app.manager.AttachClient(app.api)

	if err := app.manager.Restore(ctx); err != nil {
		app.logger.Warn("failed to restore session, starting anonymous", "error", err)
	}

	return app, nil
}

// Run dispatches the command named in args and returns its error. args is
// os.Args[1:].
func (app *Application) Run(args []string) error {
	defer app.Close()

	if len(args) == 0 {
		app.printUsage()
		return nil
	}

	ctx := slogx.WithContext(context.Background(), app.logger)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return app.cmdLogin(ctx, rest)
	case "logout":
		return app.cmdLogout(ctx)
	case "register":
		return app.cmdRegister(ctx, rest)
	case "forgot-password":
		return app.cmdForgotPassword(ctx, rest)
	case "whoami":
		return app.cmdWhoami(ctx)
	case "categories":
		return app.cmdCategories(ctx, rest)
	case "courses":
		return app.cmdCourses(ctx, rest)
	case "classrooms":
		return app.cmdClassrooms(ctx, rest)
	case "lecturers":
		return app.cmdLecturers(ctx, rest)
	case "enroll":
		return app.cmdEnroll(ctx, rest)
	case "unenroll":
		return app.cmdUnenroll(ctx, rest)
	case "my-courses":
		return app.cmdMyCourses(ctx, rest)
	case "upload":
		return app.cmdUpload(ctx, rest)
	case "version":
		fmt.Fprintln(app.out, "shortcourse", BuildVersion)
		return nil
	case "help", "-h", "--help":
		app.printUsage()
		return nil
	default:
		app.printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// Close releases held resources.
func (app *Application) Close() {
	if err := app.store.Close(); err != nil {
		app.logger.Error("error closing credential store", "error", err)
	}
}

// initStore opens the credential database and applies migrations.
func (app *Application) initStore() error {
	if dir := filepath.Dir(app.cfg.StorePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.StorePath)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply store migrations: %w", err)
	}

	app.store = db
	return nil
}

// requireLogin guards commands that need an authenticated session.
func (app *Application) requireLogin() (*coursesdk.UserProfile, error) {
	user := app.manager.CurrentUser()
	if user == nil {
		return nil, fmt.Errorf("not logged in, run `shortcourse login` first")
	}
	return user, nil
}

// requireRoles additionally checks the logged-in user against the roles a
// command needs.
func (app *Application) requireRoles(roles ...string) (*coursesdk.UserProfile, error) {
	user, err := app.requireLogin()
	if err != nil {
		return nil, err
	}
	if !coursesdk.Allowed(user.Roles, roles) {
		return nil, fmt.Errorf("this command requires one of the roles %v", roles)
	}
	return user, nil
}

func (app *Application) printUsage() {
	fmt.Fprint(app.out, `shortcourse - short-term course platform client

Usage:
  shortcourse <command> [flags]

Session:
  login            Sign in with email and password (or --google)
  logout           Sign out and wipe stored credentials
  register         Create a new member account
  forgot-password  Request a password reset email
  whoami           Show the logged-in user

Catalog:
  categories       List or inspect categories
  courses          List or inspect courses
  classrooms       List or inspect classrooms
  lecturers        List or inspect lecturers

Enrollment:
  enroll           Register for a classroom
  unenroll         Cancel a classroom registration
  my-courses       List your enrollments

Admin:
  upload           Upload or delete stored files

Run "shortcourse <command> -h" for command flags.
`)
}

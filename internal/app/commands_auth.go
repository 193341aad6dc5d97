package app

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Hoangit1506/shortcourse/internal/callback"
)

func (app *Application) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	role := fs.String("role", "MEMBER", "role to sign in as (MEMBER, ADMIN, LECTURER)")
	google := fs.Bool("google", false, "sign in through Google instead of a password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *google {
		return app.loginGoogle(ctx)
	}

	if *email == "" {
		v, err := app.prompt("Email: ")
		if err != nil {
			return err
		}
		*email = v
	}
	if *password == "" {
		v, err := app.prompt("Password: ")
		if err != nil {
			return err
		}
		*password = v
	}

	user, err := app.manager.Login(ctx, *email, *password, strings.ToUpper(*role))
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Logged in as %s (%s)\n", user.DisplayName, user.Email)
	return nil
}

// loginGoogle runs the external-provider flow: start the loopback callback
// server, hand the user a provider URL to open, then wait for the redirect.
func (app *Application) loginGoogle(ctx context.Context) error {
	srv := callback.New(app.manager, app.logger)

	redirectURI, err := srv.Start()
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintln(app.out, "Open this URL in your browser to sign in with Google:")
	fmt.Fprintln(app.out, "  "+app.api.GoogleAuthURL(redirectURI))

	waitCtx, cancel := context.WithTimeout(ctx, app.cfg.LoginTimeout)
	defer cancel()

	user, err := srv.Wait(waitCtx)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "Logged in as %s (%s)\n", user.DisplayName, user.Email)
	return nil
}

func (app *Application) cmdLogout(ctx context.Context) error {
	if err := app.manager.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(app.out, "Logged out.")
	return nil
}

func (app *Application) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		v, err := app.prompt("Email: ")
		if err != nil {
			return err
		}
		*email = v
	}
	if *password == "" {
		v, err := app.prompt("Password: ")
		if err != nil {
			return err
		}
		*password = v
	}

	if err := app.api.Register(ctx, *email, *password); err != nil {
		return err
	}

	fmt.Fprintln(app.out, "Account created. Check your email to verify it, then log in.")
	return nil
}

func (app *Application) cmdForgotPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("forgot-password", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		v, err := app.prompt("Email: ")
		if err != nil {
			return err
		}
		*email = v
	}

	if err := app.api.ForgotPassword(ctx, *email); err != nil {
		return err
	}

	fmt.Fprintln(app.out, "Password reset email sent.")
	return nil
}

func (app *Application) cmdWhoami(_ context.Context) error {
	user, err := app.requireLogin()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.out, "%s <%s>\n", user.DisplayName, user.Email)
	if len(user.Roles) > 0 {
		fmt.Fprintf(app.out, "Roles: %s\n", strings.Join(user.Roles, ", "))
	}
	return nil
}

// prompt reads one line from stdin.
func (app *Application) prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

package cli

import (
	"context"
	"fmt"

	"taskflow/internal/domain"
	"taskflow/internal/errors"
)

// LoginCommand handles the login command
type LoginCommand struct {
	app      *App
	password string
}

// NewLoginCommand creates a new login command handler. An empty password is prompted for.
func NewLoginCommand(app *App, password string) *LoginCommand {
	return &LoginCommand{app: app, password: password}
}

// Execute runs the login command: login <username|email> [password]
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("identifier", "", "username or email is required")
	}

	password, err := c.app.passwordFrom(args[1:], c.password)
	if err != nil {
		return err
	}

	user, err := c.app.services.AuthService.Login(ctx, args[0], password)
	if err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	fmt.Fprintf(c.app.out, "Logged in as %s\n", user.Username)
	return nil
}

// RegisterCommand handles the register command
type RegisterCommand struct {
	app      *App
	password string
}

// NewRegisterCommand creates a new register command handler
func NewRegisterCommand(app *App, password string) *RegisterCommand {
	return &RegisterCommand{app: app, password: password}
}

// Execute runs the register command: register <username> <email> [password]
func (c *RegisterCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("arguments", len(args), "username and email are required")
	}

	password, err := c.app.passwordFrom(args[2:], c.password)
	if err != nil {
		return err
	}

	user, err := c.app.services.AuthService.Register(ctx, domain.Profile{
		Username: args[0],
		Email:    args[1],
		Password: password,
	})
	if err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	fmt.Fprintf(c.app.out, "Account created. Logged in as %s\n", user.Username)
	return nil
}

// LogoutCommand handles the logout command
type LogoutCommand struct {
	app *App
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{app: app}
}

// Execute forgets the stored token and cached user
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.services.AuthService.Logout(ctx); err != nil {
		return NewErrorHandler().Handle("log out", err)
	}
	fmt.Fprintln(c.app.out, "Logged out")
	return nil
}

// WhoamiCommand handles the whoami command
type WhoamiCommand struct {
	app *App
}

// NewWhoamiCommand creates a new whoami command handler
func NewWhoamiCommand(app *App) *WhoamiCommand {
	return &WhoamiCommand{app: app}
}

// Execute asks the backend who the stored token belongs to
func (c *WhoamiCommand) Execute(ctx context.Context, args []string) error {
	if _, err := c.app.requireUser(ctx); err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	user, err := c.app.services.AuthService.Refresh(ctx)
	if err != nil {
		return NewErrorHandler().HandleSimple(err)
	}

	fmt.Fprintf(c.app.out, "%s <%s>\n", user.Username, user.Email)
	return nil
}

// passwordFrom takes the password from a positional argument, then the flag value,
// and finally prompts for it
func (a *App) passwordFrom(args []string, flagValue string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if flagValue != "" {
		return flagValue, nil
	}
	return a.prompt("Password: ")
}

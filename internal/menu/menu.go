// Package menu runs the top-level interactive loop: login, forgot password,
// or exit.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jfmyers9/srfsongs/internal/auth"
	"github.com/jfmyers9/srfsongs/internal/console"
	"github.com/rs/zerolog"
)

// Authenticator is the part of the auth flow the menu drives.
// *auth.Flow satisfies it; tests can provide a stub.
type Authenticator interface {
	Login(ctx context.Context) (auth.Result, error)
	ForgotPassword(ctx context.Context) error
}

// ViewFunc shows the song list after a successful login
type ViewFunc func(ctx context.Context, w io.Writer) error

// Controller owns the menu loop
type Controller struct {
	auth   Authenticator
	view   ViewFunc
	prompt console.Prompter
	out    io.Writer
	logger zerolog.Logger
}

// New creates a new Controller
func New(a Authenticator, view ViewFunc, prompt console.Prompter, out io.Writer, logger zerolog.Logger) *Controller {
	return &Controller{
		auth:   a,
		view:   view,
		prompt: prompt,
		out:    out,
		logger: logger.With().Str("component", "menu").Logger(),
	}
}

// Run shows the menu until the user exits or input ends. Auth outcomes the
// user has already been told about (wrong password, lockout, unknown email)
// keep the loop going; store and view failures end it with an error.
func (c *Controller) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "1. Login")
		fmt.Fprintln(c.out, "2. Forgot Password")
		fmt.Fprintln(c.out, "3. Exit")

		choice, err := c.prompt.Prompt("Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		c.logger.Debug().Str("choice", choice).Msg("Menu choice")

		switch choice {
		case "1":
			err = c.login(ctx)
		case "2":
			err = c.auth.ForgotPassword(ctx)
		case "3":
			fmt.Fprintln(c.out, "Exiting the application.")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice. Try again.")
			continue
		}

		if err != nil && !auth.Reported(err) {
			return endOfInput(err)
		}
	}
}

func (c *Controller) login(ctx context.Context) error {
	result, err := c.auth.Login(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrLockedOut) {
			c.logger.Warn().Msg("Login disabled for this session")
		}
		return err
	}

	c.logger.Debug().Str("email", result.Email).Msg("Showing song list")
	return c.view(ctx, c.out)
}

// endOfInput treats running out of input as a normal exit
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Package auth implements the interactive login and password reset flows
// on top of a credential store and the password policy.
package auth

import (
	"context"
	"fmt"
	"io"

	"github.com/jfmyers9/srfsongs/internal/console"
	"github.com/jfmyers9/srfsongs/internal/credentials"
	"github.com/jfmyers9/srfsongs/internal/password"
	"github.com/rs/zerolog"
)

// DefaultMaxAttempts is the number of failed logins that triggers a lockout
const DefaultMaxAttempts = 5

// Config holds auth flow configuration
type Config struct {
	MaxAttempts int // Failed logins before lockout (default 5)
}

// Result describes a successful login
type Result struct {
	Email          string // Authenticated user
	FailedAttempts int    // Failed attempts before the successful one
}

// Flow runs login and password reset against a credential store.
// A Flow is not safe for concurrent use.
type Flow struct {
	store       credentials.Store
	prompt      console.Prompter
	out         io.Writer
	logger      zerolog.Logger
	maxAttempts int

	state State
}

// New creates a new Flow
func New(store credentials.Store, prompt console.Prompter, out io.Writer, cfg Config, logger zerolog.Logger) *Flow {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	return &Flow{
		store:       store,
		prompt:      prompt,
		out:         out,
		logger:      logger.With().Str("component", "auth").Logger(),
		maxAttempts: cfg.MaxAttempts,
		state:       StateAwaitingEmail,
	}
}

// State returns the current login state
func (f *Flow) State() State {
	return f.state
}

// LockedOut reports whether the flow has reached the failed login limit
func (f *Flow) LockedOut() bool {
	return f.state == StateLockedOut
}

// Login prompts for credentials until they match a record or the attempt
// limit is reached. Malformed emails and passwords are re-prompted without
// using up an attempt. Reaching the limit returns ErrLockedOut and every
// later call fails the same way without prompting.
func (f *Flow) Login(ctx context.Context) (Result, error) {
	if f.state == StateLockedOut {
		f.println("Login is disabled due to too many failed login attempts.")
		return Result{}, ErrLockedOut
	}

	failures := 0
	for failures < f.maxAttempts {
		f.state = StateAwaitingEmail
		email, err := f.prompt.Prompt("Enter email: ")
		if err != nil {
			return Result{}, err
		}
		if !password.ValidateEmail(email) {
			f.logger.Debug().Err(ErrInvalidEmail).Msg("Re-prompting")
			f.println("Invalid email format.")
			continue
		}

		f.state = StateAwaitingPassword
		plain, err := f.prompt.PromptSecret("Enter password: ")
		if err != nil {
			return Result{}, err
		}
		if !password.ValidatePassword(plain) {
			f.logger.Debug().Err(ErrInvalidPassword).Msg("Re-prompting")
			f.println("Invalid password format.")
			continue
		}

		records, err := f.store.Load(ctx)
		if err != nil {
			return Result{}, err
		}

		if matchCredentials(records, email, plain) {
			f.state = StateAuthenticated
			f.logger.Info().Str("email", email).Int("failed_attempts", failures).Msg("Login succeeded")
			f.println("Login successful!")
			return Result{Email: email, FailedAttempts: failures}, nil
		}

		failures++
		f.state = StateRejected
		f.logger.Warn().
			Err(ErrInvalidCredentials).
			Str("email", email).
			Int("attempt", failures).
			Int("max_attempts", f.maxAttempts).
			Msg("Login failed")
		f.println("Invalid email or password.")
	}

	f.state = StateLockedOut
	f.logger.Warn().Int("failed_attempts", failures).Msg("Locked out")
	f.println("You have been locked out due to too many failed login attempts.")
	return Result{FailedAttempts: failures}, ErrLockedOut
}

// ForgotPassword looks up the email, shows its security question, and hands
// the answer to Reset.
func (f *Flow) ForgotPassword(ctx context.Context) error {
	email, err := f.prompt.Prompt("Enter your registered email: ")
	if err != nil {
		return err
	}

	records, err := f.store.Load(ctx)
	if err != nil {
		return err
	}

	i := credentials.FindByEmail(records, email)
	if i < 0 {
		f.println("Email not found.")
		return ErrEmailNotFound
	}

	fmt.Fprintf(f.out, "Security Question: %s\n", records[i].SecurityQuestion)
	answer, err := f.prompt.Prompt("Enter the answer to your security question: ")
	if err != nil {
		return err
	}

	return f.Reset(ctx, email, answer)
}

// Reset replaces the password of the record matching both email and the
// exact security answer, then saves the whole table. Nothing is written
// when the answer is wrong or the new password is rejected.
func (f *Flow) Reset(ctx context.Context, email, answer string) error {
	records, err := f.store.Load(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, r := range records {
		if r.Email == email && r.SecurityAnswer == answer {
			idx = i
			break
		}
	}
	if idx < 0 {
		f.logger.Warn().Str("email", email).Msg("Password reset rejected")
		f.println("Invalid email or security answer.")
		return ErrResetRejected
	}

	plain, err := f.prompt.PromptSecret(fmt.Sprintf("Enter new password (%s): ", password.Requirements))
	if err != nil {
		return err
	}
	if !password.ValidatePassword(plain) {
		f.println("Invalid password format. Try again.")
		return ErrInvalidPassword
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	records[idx].HashedPassword = hash

	if err := f.store.Save(ctx, records); err != nil {
		return err
	}

	f.logger.Info().Str("email", email).Msg("Password reset")
	f.println("Password reset successful!")
	return nil
}

func matchCredentials(records []credentials.Record, email, plain string) bool {
	for _, r := range records {
		if r.Email == email && password.Verify(plain, r.HashedPassword) {
			return true
		}
	}
	return false
}

func (f *Flow) println(msg string) {
	fmt.Fprintln(f.out, msg)
}

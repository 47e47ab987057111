package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jfmyers9/srfsongs/internal/console"
	"github.com/jfmyers9/srfsongs/internal/credentials"
	"github.com/jfmyers9/srfsongs/internal/password"
	"github.com/spf13/cobra"
)

var (
	seedEmail    string
	seedPassword string
	seedQuestion string
	seedAnswer   string
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create or replace a user in the credential table",
	Long: `Create a user in the credential table so that you can log in.

Values not given as flags are prompted for interactively. The password
must have at least 8 characters (at most 72 bytes), 1 uppercase, 1 lowercase, 1 number and
1 special character (@$!%*?&).

If the credential table does not exist yet it is created. A user with the
same email is replaced; other users are kept.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedEmail, "email", "", "Email address")
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "Password (prompted without echo if omitted)")
	seedCmd.Flags().StringVar(&seedQuestion, "question", "", "Security question")
	seedCmd.Flags().StringVar(&seedAnswer, "answer", "", "Security answer")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	record, err := promptRecord(e.console)
	if err != nil {
		return err
	}

	if err := seedUser(ctx, e.store, record); err != nil {
		return err
	}

	e.logger.Info().Str("email", record.Email).Msg("User seeded")
	fmt.Fprintf(e.console.Out(), "✓ User %s saved\n", record.Email)
	return nil
}

// promptRecord fills in missing seed values and builds a hashed record
func promptRecord(p console.Prompter) (credentials.Record, error) {
	ask := func(value *string, label string, secret bool) error {
		if *value != "" {
			return nil
		}
		var err error
		if secret {
			*value, err = p.PromptSecret(label)
		} else {
			*value, err = p.Prompt(label)
		}
		return err
	}

	if err := ask(&seedEmail, "Email: ", false); err != nil {
		return credentials.Record{}, fmt.Errorf("failed to read email: %w", err)
	}
	if !password.ValidateEmail(seedEmail) {
		return credentials.Record{}, fmt.Errorf("invalid email format: %q", seedEmail)
	}

	if err := ask(&seedPassword, fmt.Sprintf("Password (%s): ", password.Requirements), true); err != nil {
		return credentials.Record{}, fmt.Errorf("failed to read password: %w", err)
	}
	if !password.ValidatePassword(seedPassword) {
		return credentials.Record{}, fmt.Errorf("invalid password format: need %s", password.Requirements)
	}

	if err := ask(&seedQuestion, "Security question: ", false); err != nil {
		return credentials.Record{}, fmt.Errorf("failed to read security question: %w", err)
	}
	if err := ask(&seedAnswer, "Security answer: ", false); err != nil {
		return credentials.Record{}, fmt.Errorf("failed to read security answer: %w", err)
	}

	hash, err := password.Hash(seedPassword)
	if err != nil {
		return credentials.Record{}, fmt.Errorf("failed to hash password: %w", err)
	}

	return credentials.Record{
		Email:            seedEmail,
		HashedPassword:   hash,
		SecurityQuestion: seedQuestion,
		SecurityAnswer:   seedAnswer,
	}, nil
}

// seedUser adds record to the store, replacing a user with the same email.
// A missing credential file is treated as an empty table.
func seedUser(ctx context.Context, store credentials.Store, record credentials.Record) error {
	records, err := store.Load(ctx)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load credential table: %w", err)
	}

	if i := credentials.FindByEmail(records, record.Email); i >= 0 {
		records[i] = record
	} else {
		records = append(records, record)
	}

	if err := store.Save(ctx, records); err != nil {
		return fmt.Errorf("failed to save credential table: %w", err)
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"

	"github.com/jfmyers9/srfsongs/internal/config"
	"github.com/jfmyers9/srfsongs/internal/credentials"
	"github.com/spf13/cobra"
)

var migrateNoSave bool

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate [sqlite-path]",
	Short: "Copy the CSV credential table into SQLite",
	Long: `Copy every user from the CSV credential table into a SQLite database
and switch the config to the sqlite store.

The database path defaults to sqlite_path from the config. The CSV file
is left untouched. Use --no-save to copy without changing the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().BoolVar(&migrateNoSave, "no-save", false, "Do not switch the config to the sqlite store")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flagUsersFile != "" {
		cfg.UsersFile = flagUsersFile
	}
	if len(args) == 1 {
		cfg.SQLitePath = args[0]
	}

	logger := setupLogger(cfg.LogFile, cfg.LogLevel)

	dst, err := credentials.NewSQLiteStore(cfg.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open credential database: %w", err)
	}
	defer func() { _ = dst.Close() }()

	n, err := migrateStore(ctx, credentials.NewCSVStore(cfg.UsersFile), dst)
	if err != nil {
		return err
	}

	logger.Info().
		Int("users", n).
		Str("from", cfg.UsersFile).
		Str("to", cfg.SQLitePath).
		Msg("Credential table migrated")
	fmt.Printf("✓ Copied %d user(s) from %s to %s\n", n, cfg.UsersFile, cfg.SQLitePath)

	if migrateNoSave {
		return nil
	}

	cfg.Store = config.StoreSQLite
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("✓ Config updated to use the sqlite store (%s/config.yaml)\n", config.GetConfigDir())
	return nil
}

// migrateStore copies the whole table from src to dst
func migrateStore(ctx context.Context, src, dst credentials.Store) (int, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load credential table: %w", err)
	}
	if err := dst.Save(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to save credential table: %w", err)
	}
	return len(records), nil
}

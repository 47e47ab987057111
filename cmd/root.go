/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Global flags
var (
	flagLogLevel  string
	flagLogFile   string
	flagUsersFile string
	flagWidth     int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "srfsongs",
	Short: "Log in and see what SRF radio is playing",
	Long: `srfsongs is a small interactive program that keeps user credentials in
a local credential table and, after a successful login, prints the songs
an SRF radio channel is playing now and played recently.

The menu offers:
1. Login           - up to 5 attempts, then login is disabled for the session
2. Forgot Password - answer your security question to set a new password
3. Exit

Create the first user with 'srfsongs seed'.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	RunE:    runMenu,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error; default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file path (default: stderr)")
	rootCmd.PersistentFlags().StringVar(&flagUsersFile, "users-file", "", "Credential table CSV file (overrides config)")
	rootCmd.Flags().IntVarP(&flagWidth, "width", "w", 0, "Fixed song line width (0=disabled, overrides config)")
}

func runMenu(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if flagWidth > 0 {
		e.feed.Width = flagWidth
	}

	return e.menu(e.feed.FetchAndRender).Run(ctx)
}

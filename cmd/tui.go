package cmd

import (
	"context"
	"io"
	"time"

	"github.com/jfmyers9/srfsongs/internal/tui"
	"github.com/spf13/cobra"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the menu with a full-screen song list",
	Long: `Run the same login menu as the root command, but show the song list
in a full-screen terminal UI after a successful login.

The TUI includes:
- The song that is playing now
- Recently played songs with the time they were played
- Automatic refresh (tui.refresh_interval in the config, 0 disables it)

Press 'r' to refresh and 'q' to return to the menu.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	tuiCfg := tui.DefaultConfig()
	tuiCfg.RefreshRate = time.Duration(e.cfg.TUI.RefreshInterval) * time.Second

	// A fresh App per login; tview applications cannot be restarted
	view := func(ctx context.Context, _ io.Writer) error {
		return tui.New(e.feed, tuiCfg).View(ctx, nil)
	}

	return e.menu(view).Run(ctx)
}

package console

import (
	"briefcast/internal/app"
	"briefcast/internal/cli/scheme/colours"
	"briefcast/internal/tui"

	"github.com/spf13/cobra"
)

// Interactive opens the terminal UI for pasting articles.
func (bc *Briefcast) Interactive(cmd *cobra.Command, args []string) {
	direct, _ := cmd.Flags().GetBool("direct")
	logFile, _ := cmd.Flags().GetString("log-file")

	b, err := app.Build(bc.ctx, bc.cfg, direct)
	if err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}
	bc.setActive(b)
	defer bc.release(b)

	if err := tui.Run(bc.ctx, b, logFile); err != nil {
		colours.Error.Printf("❌ %v\n", err)
	}
}

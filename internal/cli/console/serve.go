package console

import (
	"briefcast/internal/cli/scheme/colours"
	"briefcast/internal/server"

	"github.com/spf13/cobra"
)

// Serve runs the summarization proxy until the process is interrupted.
func (bc *Briefcast) Serve(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = bc.cfg.Server.Addr
	}

	srv := server.New(server.Options{
		APIKey:         bc.cfg.Gemini.APIKey,
		Model:          bc.cfg.Gemini.Model,
		RequestTimeout: bc.cfg.Server.RequestTimeout,
	})

	colours.Success.Printf("🚀 Listening on %s\n", addr)
	if err := srv.Run(bc.ctx, addr); err != nil {
		colours.Error.Printf("❌ Server stopped: %v\n", err)
	}
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"briefcast/internal/cli/console"
	"briefcast/internal/cli/scheme/colours"
	"briefcast/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	app := console.New()

	// serve shuts down by itself once the context is cancelled
	var graceful atomic.Bool

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		app.Close()
		if graceful.Load() {
			return
		}
		fmt.Println("\n" + colours.Warning.Sprint("👋 Goodbye! Have a good trip! 🚆"))
		os.Exit(0)
	}()

	var configFile string

	rootCmd := &cobra.Command{
		Use:   "briefcast",
		Short: "🎧 Audio news briefings",
		Long: `
┌─────────────────────────────────────┐
│  🎧 Welcome to briefcast! 📰        │
│  Paste an article, hear a summary   │
│  Made for your commute 🚆✨          │
└─────────────────────────────────────┘

briefcast summarizes news articles with Gemini and reads the summary aloud
with your system's text-to-speech engine.
		`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(configFile); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := config.ConfigureLogging(cfg.Log); err != nil {
				return err
			}
			if voice, _ := cmd.Flags().GetString("voice"); voice != "" {
				cfg.TTS.Voice = voice
			}
			app.Configure(cfg)
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			app.ShowWelcome()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $HOME/.briefcast/briefcast.yaml)")
	rootCmd.PersistentFlags().StringP("voice", "v", "", "Voice to read with. See 'briefcast voices' for options")

	// Brief command
	briefCmd := &cobra.Command{
		Use:   "brief [article-file | -]",
		Short: "📰 Summarize an article and read it aloud",
		Long:  "Summarize an article from a file, stdin or a web page, then play the summary",
		Args:  cobra.MaximumNArgs(1),
		Run:   app.Brief,
	}

	// Headlines command
	headlinesCmd := &cobra.Command{
		Use:   "headlines",
		Short: "📡 Browse news feeds",
		Long:  "List the latest headlines of a feed and brief one of them",
		Run:   app.Headlines,
	}

	// TUI command
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "🖥️ Open the terminal app",
		Long:  "Paste an article, summarize it, and control playback from the terminal",
		Run:   app.Interactive,
	}

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "🚀 Run the summarization proxy",
		Long:  "Serve POST /api/summarize, keeping the Gemini API key on the server",
		PreRun: func(cmd *cobra.Command, args []string) {
			graceful.Store(true)
		},
		Run: app.Serve,
	}

	// Voices command
	voicesCmd := &cobra.Command{
		Use:   "voices [filter]",
		Short: "🗣️ List speech voices",
		Long:  "List the voices of the configured text-to-speech engine",
		Args:  cobra.MaximumNArgs(1),
		Run:   app.Voices,
	}

	// Settings command
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "⚙️ Show current settings",
		Long:  "Show the resolved configuration and available speech engines",
		Run:   app.Settings,
	}

	// Privacy command
	privacyCmd := &cobra.Command{
		Use:   "privacy",
		Short: "🔒 What happens to your text",
		Run:   app.Privacy,
	}

	// Add flags
	for _, c := range []*cobra.Command{briefCmd, headlinesCmd, tuiCmd} {
		c.Flags().Bool("direct", false, "Call Gemini directly with the local API key instead of the proxy")
	}
	briefCmd.Flags().StringP("url", "u", "", "Fetch the article from a web page")
	headlinesCmd.Flags().StringP("feed", "f", "", "Feed preset (cna, st, hn, tr) or RSS URL")
	headlinesCmd.Flags().IntP("count", "n", 0, "Number of headlines")
	headlinesCmd.Flags().IntP("pick", "p", 0, "Brief the headline with this number")
	headlinesCmd.Flags().BoolP("interactive", "i", false, "Interactive headline selection")
	tuiCmd.Flags().String("log-file", "", "Write logs to this file while the app is open")
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (default server.addr)")

	rootCmd.AddCommand(briefCmd, headlinesCmd, tuiCmd, serveCmd, voicesCmd, settingsCmd, privacyCmd)

	err := rootCmd.Execute()
	app.Close()
	if err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
}

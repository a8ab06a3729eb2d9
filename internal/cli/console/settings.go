package console

import (
	"fmt"
	"sort"

	"briefcast/internal/app"
	"briefcast/internal/briefing"
	"briefcast/internal/cli/scheme/colours"
	"briefcast/internal/domain/feed"
	"briefcast/internal/speech/tts"

	"github.com/spf13/cobra"
)

// Voices lists the voices of the configured engine, optionally filtered.
func (bc *Briefcast) Voices(cmd *cobra.Command, args []string) {
	engine, err := app.NewEngine(bc.cfg)
	if err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}

	voices, err := engine.GetAvailableVoices()
	if err != nil {
		colours.Error.Printf("❌ Failed to list voices: %v\n", err)
		return
	}

	if len(args) > 0 {
		voices = tts.FilterVoices(args[0], voices)
	}
	if len(voices) == 0 {
		colours.Warning.Println("🔇 No matching voices")
		return
	}

	colours.Title.Printf("🗣️  %d voices\n", len(voices))
	for _, v := range voices {
		fmt.Printf("  • %s\n", v)
	}
}

func (bc *Briefcast) Settings(cmd *cobra.Command, args []string) {
	c := bc.cfg

	colours.Title.Println("⚙️  Current settings")
	fmt.Println()

	colours.Info.Println("🔊 Speech")
	fmt.Printf("  engine:  %s\n", c.TTS.Type)
	fmt.Printf("  voice:   %s\n", c.TTS.Voice)
	fmt.Printf("  volume:  %.1f\n", c.TTS.Volume)

	colours.Info.Println("🧠 Summaries")
	fmt.Printf("  endpoint: %s (timeout %s)\n", c.Client.Endpoint, c.Client.Timeout)
	fmt.Printf("  model:    %s\n", c.Gemini.Model)
	if c.Gemini.APIKey == "" {
		fmt.Println("  api key:  not set")
	} else {
		fmt.Println("  api key:  set")
	}

	colours.Info.Println("🌐 Server")
	fmt.Printf("  addr:    %s (model timeout %s)\n", c.Server.Addr, c.Server.RequestTimeout)

	colours.Info.Println("📤 Sharing")
	if c.Share.Command == "" {
		fmt.Println("  command: none, copying to clipboard")
	} else {
		fmt.Printf("  command: %s\n", c.Share.Command)
	}

	colours.Info.Println("📰 Feeds")
	fmt.Printf("  default: %s, %d headlines\n", c.Feed.Default, c.Feed.Count)
	names := make([]string, 0, len(feed.Presets))
	for k := range feed.Presets {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Printf("    %-4s %s\n", k, feed.Presets[k].Name)
	}

	fmt.Println()
	colours.Info.Println("🎙️  Available engines")
	engines := tts.GetAvailableEngines(tts.Config{CredentialsFile: c.TTS.Google.CredentialsFile})
	for _, e := range engines {
		fmt.Printf("  • %s\n", e)
	}
}

func (bc *Briefcast) Privacy(cmd *cobra.Command, args []string) {
	colours.Info.Println(briefing.PrivacyNotice)
}

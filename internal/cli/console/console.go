package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"briefcast/internal/app"
	"briefcast/internal/briefing"
	"briefcast/internal/cli/scheme/colours"
	"briefcast/internal/config"
	"briefcast/internal/domain/feed"
	"briefcast/internal/speech/playback"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Briefcast is the command-line application
type Briefcast struct {
	cfg    *config.Config
	ctx    context.Context
	Cancel context.CancelFunc

	in          *bufio.Reader
	interactive bool

	mu     sync.Mutex
	active *briefing.Briefing
}

// New returns an unconfigured application; Configure must run before any
// command.
func New() *Briefcast {
	ctx, cancel := context.WithCancel(context.Background())
	return &Briefcast{
		ctx:         ctx,
		Cancel:      cancel,
		in:          bufio.NewReader(os.Stdin),
		interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
}

func (bc *Briefcast) Configure(cfg *config.Config) {
	bc.cfg = cfg
}

// Close stops whatever is playing and cancels outstanding work.
func (bc *Briefcast) Close() {
	bc.Cancel()

	bc.mu.Lock()
	b := bc.active
	bc.active = nil
	bc.mu.Unlock()

	if b != nil {
		if err := b.Close(); err != nil {
			logrus.WithError(err).Warn("failed to stop playback")
		}
	}
}

func (bc *Briefcast) ShowWelcome() {
	fmt.Println()
	colours.Title.Println("🎧 Welcome to briefcast! 🎧")
	fmt.Println()
	colours.Info.Println("📰 Available commands:")
	fmt.Println("  • briefcast brief      - Summarize an article and read it aloud")
	fmt.Println("  • briefcast headlines  - Browse news feeds and brief a story")
	fmt.Println("  • briefcast tui        - Paste an article in the terminal app")
	fmt.Println("  • briefcast serve      - Run the summarization proxy")
	fmt.Println("  • briefcast voices     - List speech voices")
	fmt.Println("  • briefcast settings   - Show current settings")
	fmt.Println("  • briefcast privacy    - What happens to your text")
	fmt.Println()
	colours.Prompt.Println("✨ Your commute, summarized. ✨")
}

// Brief summarizes an article from a file, stdin or --url and reads it aloud.
func (bc *Briefcast) Brief(cmd *cobra.Command, args []string) {
	pageURL, _ := cmd.Flags().GetString("url")
	direct, _ := cmd.Flags().GetBool("direct")

	title, text, err := bc.readArticle(pageURL, args)
	if err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}

	bc.brief(title, text, direct)
}

func (bc *Briefcast) readArticle(pageURL string, args []string) (string, string, error) {
	if pageURL != "" {
		colours.Info.Printf("🌐 Fetching %s...\n", pageURL)
		a, err := feed.Extract(bc.ctx, nil, pageURL)
		if err != nil {
			return "", "", fmt.Errorf("could not read article: %w", err)
		}
		return a.Title, a.Text, nil
	}

	if len(args) == 0 || args[0] == "-" {
		if len(args) == 0 && bc.interactive {
			return "", "", errors.New("pass an article file, '-' for stdin, or --url")
		}
		data, err := io.ReadAll(bc.in)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		// stdin is used up, prompts cannot be answered
		bc.interactive = false
		return "", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read article: %w", err)
	}
	return args[0], string(data), nil
}

func (bc *Briefcast) brief(title, text string, direct bool) {
	b, err := app.Build(bc.ctx, bc.cfg, direct)
	if err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}
	bc.setActive(b)
	defer bc.release(b)

	b.SetArticleText(text)
	if !b.CanGenerate() {
		colours.Warning.Printf("✋ The article needs more than %d characters to summarize.\n", briefing.MinArticleLength)
		return
	}

	bc.followPlayback(b)

	fmt.Println()
	if title != "" {
		colours.Title.Printf("📰 %s\n", title)
	}
	colours.Info.Println("🧠 Summarizing...")

	if err := b.GenerateSummaryAndPlay(bc.ctx); err != nil {
		if errors.Is(err, briefing.ErrClosed) {
			return
		}
		colours.Error.Printf("❌ %s\n", b.Snapshot().Error)
		return
	}

	snap := b.Snapshot()
	fmt.Println()
	colours.Summary.Println(snap.Summary)
	fmt.Println()
	if snap.Error != "" {
		colours.Warning.Printf("⚠️  %s\n", snap.Error)
	}

	if bc.interactive {
		bc.waitForUserInput(b)
		return
	}
	bc.waitForPlaybackEnd(b)
}

// followPlayback prints playback transitions as they happen.
func (bc *Briefcast) followPlayback(b *briefing.Briefing) {
	var mu sync.Mutex
	last := playback.StatusStopped

	b.Subscribe(func(s briefing.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if s.Playback == last {
			return
		}
		last = s.Playback

		switch s.Playback {
		case playback.StatusPlaying:
			colours.Success.Println("▶️  Playing")
		case playback.StatusPaused:
			colours.Warning.Println("⏸️  Paused")
		case playback.StatusStopped:
			colours.Muted.Println("⏹️  Stopped")
		}
	})
}

func (bc *Briefcast) waitForUserInput(b *briefing.Briefing) {
	for {
		select {
		case <-bc.ctx.Done():
			return
		default:
			fmt.Print("\n🎛️  'p' pause/resume, 's' stop, 'c' share/copy, 'q' quit: ")
			input, err := bc.in.ReadString('\n')
			if err != nil && input == "" {
				return
			}
			input = strings.TrimSpace(strings.ToLower(input))

			switch input {
			case "p", "pause", "play":
				if err := b.TogglePlayback(); err != nil && !errors.Is(err, playback.ErrUnsupported) {
					colours.Error.Printf("❌ %v\n", err)
				}
			case "s", "stop":
				_ = b.Stop()
			case "c", "share", "copy":
				bc.share(b)
			case "q", "quit":
				colours.Warning.Println("👋 Have a good trip!")
				return
			case "":
				continue
			default:
				colours.Info.Println("ℹ️  Use 'p' for pause/resume, 's' to stop, 'c' to share, 'q' to quit")
			}
		}
	}
}

func (bc *Briefcast) share(b *briefing.Briefing) {
	err := b.ShareSummary(bc.ctx)
	switch {
	case err == nil && b.Snapshot().Share == briefing.ShareCopied:
		colours.Success.Println("📋 Summary copied to clipboard")
	case err == nil:
		colours.Success.Println("📤 Summary shared")
	case errors.Is(err, briefing.ErrShareUnavailable):
		colours.Error.Println("❌ No share command or clipboard available")
	default:
		colours.Error.Printf("❌ %v\n", err)
	}
}

// waitForPlaybackEnd blocks until the summary has been read out.
func (bc *Briefcast) waitForPlaybackEnd(b *briefing.Briefing) {
	done := make(chan struct{})
	var once sync.Once

	unsubscribe := b.Subscribe(func(s briefing.Snapshot) {
		if s.Playback == playback.StatusStopped {
			once.Do(func() { close(done) })
		}
	})
	defer unsubscribe()

	if b.Snapshot().Playback == playback.StatusStopped {
		return
	}

	select {
	case <-done:
	case <-bc.ctx.Done():
	}
}

func (bc *Briefcast) setActive(b *briefing.Briefing) {
	bc.mu.Lock()
	bc.active = b
	bc.mu.Unlock()
}

func (bc *Briefcast) release(b *briefing.Briefing) {
	bc.mu.Lock()
	if bc.active == b {
		bc.active = nil
	}
	bc.mu.Unlock()

	_ = b.Close()
}

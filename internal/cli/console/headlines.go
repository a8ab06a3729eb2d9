package console

import (
	"fmt"
	"strconv"
	"strings"

	"briefcast/internal/cli/scheme/colours"
	"briefcast/internal/domain/article"
	"briefcast/internal/domain/feed"

	"github.com/spf13/cobra"
)

// Headlines lists the latest stories of a feed and optionally briefs one.
func (bc *Briefcast) Headlines(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("feed")
	count, _ := cmd.Flags().GetInt("count")
	pick, _ := cmd.Flags().GetInt("pick")
	interactive, _ := cmd.Flags().GetBool("interactive")
	direct, _ := cmd.Flags().GetBool("direct")

	if name == "" {
		name = bc.cfg.Feed.Default
	}
	if count <= 0 {
		count = bc.cfg.Feed.Count
	}

	var src article.Source = feed.New(name)
	if dir := bc.cfg.Feed.CacheDir; dir != "" {
		src = feed.NewCache(src, dir, feed.ResolveURL(name), bc.cfg.Feed.CacheMaxAge)
	}
	colours.Source.Printf("📡 %s\n", feedTitle(name))

	headlines, err := src.ListHeadlines(bc.ctx, count)
	if err != nil {
		colours.Error.Printf("❌ Failed to fetch headlines: %v\n", err)
		return
	}
	if len(headlines) == 0 {
		colours.Warning.Println("📭 No headlines found")
		return
	}

	fmt.Println()
	for i, h := range headlines {
		colours.Title.Printf("%2d. %s\n", i+1, h.Title)
		if !h.Published.IsZero() {
			colours.Muted.Printf("    %s\n", h.Published.Local().Format("Mon 02 Jan 15:04"))
		}
	}
	fmt.Println()

	if pick == 0 && interactive && bc.interactive {
		pick = bc.selectHeadline(len(headlines))
	}
	if pick == 0 {
		return
	}
	if pick < 1 || pick > len(headlines) {
		colours.Error.Printf("❌ Pick a headline between 1 and %d\n", len(headlines))
		return
	}

	bc.briefHeadline(src, headlines[pick-1], direct)
}

func (bc *Briefcast) selectHeadline(n int) int {
	for {
		fmt.Printf("🔢 Brief which story (1-%d, enter to skip)? ", n)
		input, err := bc.in.ReadString('\n')
		if err != nil && input == "" {
			return 0
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return 0
		}

		i, err := strconv.Atoi(input)
		if err != nil || i < 1 || i > n {
			colours.Warning.Printf("⚠️  Enter a number between 1 and %d\n", n)
			continue
		}
		return i
	}
}

func (bc *Briefcast) briefHeadline(src article.Source, h *article.Headline, direct bool) {
	colours.Info.Printf("📖 Loading %q...\n", h.Title)

	a, err := src.LoadArticle(bc.ctx, h)
	if err != nil {
		colours.Error.Printf("❌ Failed to load article: %v\n", err)
		return
	}
	bc.brief(a.Title, a.Text, direct)
}

func feedTitle(name string) string {
	if p, ok := feed.Presets[name]; ok {
		return p.Name
	}
	return name
}

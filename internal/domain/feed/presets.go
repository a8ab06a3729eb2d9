package feed

// Preset is a named news feed.
type Preset struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

const (
	DefaultPreset = "st"
	DefaultCount  = 10
)

// Presets maps friendly keys to RSS feeds
var Presets = map[string]Preset{
	"cna": {
		Name: "Channel News Asia",
		URL:  "https://www.channelnewsasia.com/api/v1/rss-outbound-feed?_format=xml",
	},
	"st": {
		Name: "Straits Times",
		URL:  "https://www.straitstimes.com/news/singapore/rss.xml",
	},
	"hn": {
		Name: "Hacker News",
		URL:  "https://hnrss.org/newest",
	},
	"tr": {
		Name: "Technology Review",
		URL:  "https://www.technologyreview.com/feed/",
	},
}

// ResolveURL returns the URL for a preset name, or the input unchanged when
// it is not a preset.
func ResolveURL(feed string) string {
	if p, ok := Presets[feed]; ok {
		return p.URL
	}
	return feed
}

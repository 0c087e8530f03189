package widget

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/GriffinCanCode/Dashboard/internal/providers/feed"
	"github.com/GriffinCanCode/Dashboard/internal/providers/scraper"
)

// DescriptionLength is how many characters of a description are shown.
const DescriptionLength = 100

// FeedOptions is the resolved display configuration of a feed widget.
type FeedOptions struct {
	URL             string
	MaxItems        int // <= 0 means no cap
	FilterDays      int // 0 means no date filter; negative puts the cutoff in the future
	ShowDate        bool
	ShowDescription bool
}

// ResolveFeedOptions reads feed settings from a widget config. Numeric
// settings that do not parse as numbers are ignored.
func ResolveFeedOptions(config map[string]interface{}) FeedOptions {
	opts := FeedOptions{ShowDescription: true}

	if url, ok := config["url"].(string); ok {
		opts.URL = strings.TrimSpace(url)
	}
	if n, ok := number(config["maxItems"]); ok && n >= 1 {
		opts.MaxItems = int(n)
	}
	if n, ok := number(config["filterDays"]); ok {
		opts.FilterDays = int(n)
	}
	opts.ShowDate = truthy(config["showDate"])
	opts.ShowDescription = !explicitFalse(config["showDescription"])
	return opts
}

// number accepts JSON numbers and numeric strings, truncated toward zero.
func number(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return math.Trunc(f), true
}

func truthy(v interface{}) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != "" && b != "false"
	default:
		n, ok := number(v)
		return !ok || n != 0
	}
}

func explicitFalse(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return !b
	case string:
		return b == "false"
	}
	return false
}

// FilterItems applies the date window and then the item cap. Items whose
// date is missing or unparseable are kept. Order is preserved.
func FilterItems(items []feed.Item, opts FeedOptions, now time.Time) []feed.Item {
	out := items
	if opts.FilterDays != 0 {
		cutoff := now.AddDate(0, 0, -opts.FilterDays)
		out = make([]feed.Item, 0, len(items))
		for _, it := range items {
			if t, ok := ParseDate(it.PubDate); ok && t.Before(cutoff) {
				continue
			}
			out = append(out, it)
		}
	}
	if opts.MaxItems > 0 && len(out) > opts.MaxItems {
		out = out[:opts.MaxItems]
	}
	return out
}

var isoDatePrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)

// NormalizeDate rewrites a leading YYYY-MM-DD to YYYY/MM/DD.
func NormalizeDate(s string) string {
	return isoDatePrefix.ReplaceAllString(strings.TrimSpace(s), "$1/$2/$3")
}

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC822Z,
	time.RFC822,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	"2006/01/02T15:04:05Z07:00",
	"2006/01/02T15:04:05.999999999Z07:00",
	"2006/01/02T15:04:05",
	"2006/01/02 15:04:05 -0700",
	"2006/01/02 15:04:05 MST",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
}

// ParseDate parses the date formats feeds commonly use.
func ParseDate(s string) (time.Time, bool) {
	s = NormalizeDate(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate renders a feed date for display, falling back to the raw value.
func formatDate(raw string) string {
	if t, ok := ParseDate(raw); ok {
		return t.Format("1/2/2006, 3:04:05 PM")
	}
	return raw
}

// describe turns an HTML description into a short text excerpt.
func describe(description string) string {
	text := scraper.Text(description)
	if text == "" {
		return ""
	}
	return scraper.Cut(text, DescriptionLength) + "..."
}

func presentItems(items []feed.Item, opts FeedOptions) []itemData {
	out := make([]itemData, 0, len(items))
	for _, it := range items {
		d := itemData{Title: it.Title, Link: it.Link}
		if opts.ShowDate && it.PubDate != "" {
			d.Date = formatDate(it.PubDate)
		}
		if opts.ShowDescription {
			d.Description = describe(it.Description)
		}
		out = append(out, d)
	}
	return out
}

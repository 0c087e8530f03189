package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/Dashboard/internal/providers/feed"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestResolveFeedOptions(t *testing.T) {
	tests := []struct {
		name   string
		config map[string]interface{}
		want   FeedOptions
	}{
		{
			name:   "defaults",
			config: map[string]interface{}{},
			want:   FeedOptions{ShowDescription: true},
		},
		{
			name: "numbers and flags",
			config: map[string]interface{}{
				"url": " https://example.com/feed ", "maxItems": float64(5), "filterDays": float64(7),
				"showDate": true, "showDescription": false,
			},
			want: FeedOptions{URL: "https://example.com/feed", MaxItems: 5, FilterDays: 7, ShowDate: true},
		},
		{
			name:   "numeric strings",
			config: map[string]interface{}{"maxItems": "3", "filterDays": "2.9"},
			want:   FeedOptions{MaxItems: 3, FilterDays: 2, ShowDescription: true},
		},
		{
			name:   "invalid numbers ignored",
			config: map[string]interface{}{"maxItems": "lots", "filterDays": "soon"},
			want:   FeedOptions{ShowDescription: true},
		},
		{
			name:   "non-positive cap ignored",
			config: map[string]interface{}{"maxItems": float64(0)},
			want:   FeedOptions{ShowDescription: true},
		},
		{
			name:   "negative cap ignored",
			config: map[string]interface{}{"maxItems": float64(-1)},
			want:   FeedOptions{ShowDescription: true},
		},
		{
			name:   "zero string cap ignored",
			config: map[string]interface{}{"maxItems": "0"},
			want:   FeedOptions{ShowDescription: true},
		},
		{
			name:   "zero days disables the date filter",
			config: map[string]interface{}{"filterDays": float64(0)},
			want:   FeedOptions{ShowDescription: true},
		},
		{
			name:   "zero string days disables the date filter",
			config: map[string]interface{}{"filterDays": "0"},
			want:   FeedOptions{ShowDescription: true},
		},
		{
			name:   "negative days kept",
			config: map[string]interface{}{"filterDays": float64(-2)},
			want:   FeedOptions{FilterDays: -2, ShowDescription: true},
		},
		{
			name:   "only explicit false hides description",
			config: map[string]interface{}{"showDescription": nil},
			want:   FeedOptions{ShowDescription: true},
		},
		{
			name:   "string false hides description",
			config: map[string]interface{}{"showDescription": "false"},
			want:   FeedOptions{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveFeedOptions(tt.config))
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"Sat, 15 Jun 2024 10:00:00 +0000", time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC), true},
		{"Sat, 15 Jun 2024 10:00:00 GMT", time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC), true},
		{"2024-06-10 08:30:00", time.Date(2024, 6, 10, 8, 30, 0, 0, time.UTC), true},
		{"2024-06-10", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), true},
		{"2024-06-10T08:30:00Z", time.Date(2024, 6, 10, 8, 30, 0, 0, time.UTC), true},
		{"yesterday", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024/06/10 08:30:00", NormalizeDate("2024-06-10 08:30:00"))
	assert.Equal(t, "2024/06/10T08:30:00-05:00", NormalizeDate("2024-06-10T08:30:00-05:00"))
	assert.Equal(t, "Mon, 10 Jun 2024", NormalizeDate("Mon, 10 Jun 2024"))
}

func items(dates ...string) []feed.Item {
	out := make([]feed.Item, len(dates))
	for i, d := range dates {
		out[i] = feed.Item{Title: d, PubDate: d}
	}
	return out
}

func titles(in []feed.Item) []string {
	out := make([]string, len(in))
	for i, it := range in {
		out[i] = it.Title
	}
	return out
}

func TestFilterItemsDateWindow(t *testing.T) {
	in := items(
		"2024-06-14 12:00:00", // inside
		"2024-06-01 12:00:00", // outside
		"not a date",          // kept
		"",                    // kept
		"2024-06-08 12:00:00", // exactly on cutoff, kept
	)

	got := FilterItems(in, FeedOptions{FilterDays: 7}, now)
	assert.Equal(t, []string{"2024-06-14 12:00:00", "not a date", "", "2024-06-08 12:00:00"}, titles(got))
}

func TestFilterItemsCapAfterFilter(t *testing.T) {
	in := items("2024-06-14", "2024-01-01", "2024-06-13", "2024-06-12", "2024-06-11")

	filtered := FilterItems(in, FeedOptions{FilterDays: 7}, now)
	capped := FilterItems(in, FeedOptions{FilterDays: 7, MaxItems: 2}, now)

	assert.Len(t, filtered, 4)
	assert.Equal(t, []string{"2024-06-14", "2024-06-13"}, titles(capped))
	assert.LessOrEqual(t, len(capped), len(filtered))
}

func TestFilterItemsNoOptions(t *testing.T) {
	in := items("2020-01-01", "2024-06-14")
	assert.Equal(t, in, FilterItems(in, FeedOptions{}, now))
	assert.Equal(t, in, FilterItems(in, FeedOptions{MaxItems: 10}, now))
}

func TestFilterItemsZeroSettings(t *testing.T) {
	in := items("2020-01-01", "2024-06-14", "2024-06-13")

	for _, config := range []map[string]interface{}{
		{"maxItems": float64(0), "filterDays": float64(0)},
		{"maxItems": "0", "filterDays": "0"},
		{"maxItems": float64(-1)},
	} {
		got := FilterItems(in, ResolveFeedOptions(config), now)
		assert.Equal(t, titles(in), titles(got), "config %v", config)
	}
}

func TestFilterItemsNegativeDays(t *testing.T) {
	// A negative window puts the cutoff in the future, so only undated items survive.
	in := items("2024-06-14", "no date", "2024-06-15 11:00:00")
	got := FilterItems(in, FeedOptions{FilterDays: -1}, now)
	assert.Equal(t, []string{"no date"}, titles(got))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Hello world...", describe("<p>Hello <b>world</b></p>"))
	assert.Equal(t, "", describe(""))

	long := ""
	for i := 0; i < 30; i++ {
		long += "abcde"
	}
	got := describe(long)
	assert.Equal(t, 103, len(got))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "6/10/2024, 8:30:00 AM", formatDate("2024-06-10 08:30:00"))
	assert.Equal(t, "sometime", formatDate("sometime"))
}

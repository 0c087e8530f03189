package widget

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Dashboard/internal/providers/feed"
)

type fakeFetcher struct {
	mu    sync.Mutex
	urls  []string
	feed  *feed.Feed
	err   error
	block chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*feed.Feed, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.feed, f.err
}

func (f *fakeFetcher) lastURL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.urls) == 0 {
		return ""
	}
	return f.urls[len(f.urls)-1]
}

func testDeps(f feed.Fetcher) Deps {
	return Deps{Feed: f, Clock: func() time.Time { return now }}
}

func sampleFeed() *feed.Feed {
	return &feed.Feed{Status: "ok", Items: []feed.Item{
		{Title: "Fresh", Link: "https://example.com/1", Description: "<p>Fresh news</p>", PubDate: "2024-06-14 09:00:00"},
		{Title: "Stale", Link: "https://example.com/2", Description: "old", PubDate: "2024-01-01 09:00:00"},
		{Title: "Undated", Link: "https://example.com/3", Description: "?"},
	}}
}

func renderOne(t *testing.T, w Widget) *Card {
	t.Helper()
	c := NewContainer()
	w.Render(context.Background(), c)
	cards := c.Cards()
	require.Len(t, cards, 1)
	return cards[0]
}

func TestRSSMissingURL(t *testing.T) {
	fetcher := &fakeFetcher{}
	card := renderOne(t, NewRSS(testDeps(fetcher), "wgt_1", "News", nil))

	assert.Equal(t, CardError, card.State())
	assert.Equal(t, "No RSS URL provided.", card.Message())
	assert.Empty(t, fetcher.urls)
}

func TestRSSFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	card := renderOne(t, NewRSS(testDeps(fetcher), "wgt_1", "News", map[string]interface{}{"url": "https://example.com/feed"}))

	assert.Equal(t, CardError, card.State())
	assert.Equal(t, "Error loading feed: connection refused", card.Message())
}

func TestRSSNoFetcher(t *testing.T) {
	card := renderOne(t, NewRSS(Deps{}, "wgt_1", "News", map[string]interface{}{"url": "https://example.com/feed"}))
	assert.Equal(t, CardError, card.State())
}

func TestRSSPresentsFilteredItems(t *testing.T) {
	fetcher := &fakeFetcher{feed: sampleFeed()}
	card := renderOne(t, NewRSS(testDeps(fetcher), "wgt_1", "News", map[string]interface{}{
		"url":        "https://example.com/feed",
		"filterDays": float64(7),
		"showDate":   true,
	}))

	require.Equal(t, CardReady, card.State())
	body := string(card.Body())

	assert.Equal(t, "https://example.com/feed", fetcher.lastURL())
	assert.Contains(t, body, `href="https://example.com/1"`)
	assert.Contains(t, body, `target="_blank"`)
	assert.Contains(t, body, `rel="noopener noreferrer"`)
	assert.Contains(t, body, "Fresh news...")
	assert.Contains(t, body, "6/14/2024, 9:00:00 AM")
	assert.NotContains(t, body, "Stale")
	assert.Contains(t, body, "Undated")
}

func TestRSSHidesDescription(t *testing.T) {
	fetcher := &fakeFetcher{feed: sampleFeed()}
	card := renderOne(t, NewRSS(testDeps(fetcher), "wgt_1", "News", map[string]interface{}{
		"url":             "https://example.com/feed",
		"showDescription": false,
		"maxItems":        float64(1),
	}))

	body := string(card.Body())
	assert.NotContains(t, body, "rss-item-description")
	assert.Contains(t, body, "Fresh")
	assert.NotContains(t, body, "Undated")
	assert.NotContains(t, body, "rss-item-date")
}

func TestRSSUnsafeLinkNeutralised(t *testing.T) {
	fetcher := &fakeFetcher{feed: &feed.Feed{Status: "ok", Items: []feed.Item{
		{Title: "x", Link: "javascript:alert(1)"},
	}}}
	card := renderOne(t, NewRSS(testDeps(fetcher), "wgt_1", "News", map[string]interface{}{"url": "https://example.com/feed"}))

	assert.NotContains(t, string(card.Body()), "javascript:")
}

func TestRSSDetachedBeforeFetchCompletes(t *testing.T) {
	fetcher := &fakeFetcher{feed: sampleFeed(), block: make(chan struct{})}
	w := NewRSS(testDeps(fetcher), "wgt_1", "News", map[string]interface{}{"url": "https://example.com/feed"})

	c := NewContainer()
	done := make(chan struct{})
	go func() {
		w.Render(context.Background(), c)
		close(done)
	}()

	require.Eventually(t, func() bool { return c.Len() == 1 }, time.Second, time.Millisecond)
	card, _ := c.Card("wgt_1")
	require.True(t, c.Detach("wgt_1"))

	close(fetcher.block)
	<-done

	assert.Equal(t, CardLoading, card.State())
	assert.Zero(t, c.Len())
}

func TestGoogleNewsURL(t *testing.T) {
	assert.Equal(t, "https://news.google.com/rss/search?q=golang%20generics", GoogleNewsURL("golang generics"))
	assert.Equal(t, "https://news.google.com/rss/search?q=a%26b%3Dc", GoogleNewsURL("a&b=c"))
}

func TestGoogleNewsWidget(t *testing.T) {
	fetcher := &fakeFetcher{feed: sampleFeed()}
	card := renderOne(t, NewGoogleNews(testDeps(fetcher), "wgt_1", "News", map[string]interface{}{"query": "space x"}))

	assert.Equal(t, CardReady, card.State())
	assert.Equal(t, "https://news.google.com/rss/search?q=space%20x", fetcher.lastURL())
}

func TestGoogleNewsWithoutQuery(t *testing.T) {
	fetcher := &fakeFetcher{feed: sampleFeed()}
	card := renderOne(t, NewGoogleNews(testDeps(fetcher), "wgt_1", "News", nil))

	assert.Equal(t, "No RSS URL provided.", card.Message())
}

func TestParseRepo(t *testing.T) {
	tests := []struct {
		in          string
		owner, repo string
		wantErr     bool
	}{
		{"https://github.com/golang/go", "golang", "go", false},
		{"https://github.com/golang/go/", "golang", "go", false},
		{"https://github.com/golang/go.git", "golang", "go", false},
		{"https://github.com/golang/go/tree/master/src", "golang", "go", false},
		{"golang/go", "golang", "go", false},
		{"https://github.com/golang", "", "", true},
		{"golang", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			owner, repo, err := ParseRepo(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRepo)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}

func TestGitHubRepoWidget(t *testing.T) {
	tests := []struct {
		name    string
		config  map[string]interface{}
		wantURL string
		wantMsg string
	}{
		{"default releases", map[string]interface{}{"repoUrl": "golang/go"}, "https://github.com/golang/go/releases.atom", ""},
		{"commits", map[string]interface{}{"repoUrl": "golang/go", "updateType": "commits"}, "https://github.com/golang/go/commits.atom", ""},
		{"tags", map[string]interface{}{"repoUrl": "https://github.com/golang/go", "updateType": "tags"}, "https://github.com/golang/go/tags.atom", ""},
		{"unknown type", map[string]interface{}{"repoUrl": "golang/go", "updateType": "issues"}, "https://github.com/golang/go/releases.atom", ""},
		{"missing repo", map[string]interface{}{}, "", "No Repository URL provided."},
		{"invalid repo", map[string]interface{}{"repoUrl": "golang"}, "", "Invalid Repository URL."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{feed: sampleFeed()}
			card := renderOne(t, NewGitHubRepo(testDeps(fetcher), "wgt_1", "Repo", tt.config))

			assert.Equal(t, tt.wantURL, fetcher.lastURL())
			if tt.wantMsg != "" {
				assert.Equal(t, CardError, card.State())
				assert.Equal(t, tt.wantMsg, card.Message())
			} else {
				assert.Equal(t, CardReady, card.State())
			}
		})
	}
}

package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "just text", "just text"},
		{"markup", "<p>Hello <b>world</b></p>", "Hello world"},
		{"whitespace", "<div>\n  a\n\n  b  </div>", "a b"},
		{"script dropped", "<p>ok</p><script>alert(1)</script>", "ok"},
		{"entities", "Tom &amp; Jerry", "Tom & Jerry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestCut(t *testing.T) {
	assert.Equal(t, "", Cut("abc", 0))
	assert.Equal(t, "abc", Cut("abc", 5))
	assert.Equal(t, "ab", Cut("abc", 2))
	assert.Equal(t, "héł", Cut("héłło", 3))

	long := strings.Repeat("x", 150)
	assert.Len(t, Cut(long, 100), 100)
}

func TestSanitizer(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize(`<b onclick="evil()">bold</b><script>alert(1)</script>`)
	assert.Contains(t, out, "<b>bold</b>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
}

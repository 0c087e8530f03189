package registry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Dashboard/internal/domain/widget"
	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

func htmlCtor(id, title string, config map[string]interface{}) widget.Widget {
	return widget.NewHTML(widget.Deps{}, id, title, config)
}

func TestDefaultTypes(t *testing.T) {
	r := Default(widget.Deps{})

	assert.Equal(t, []string{"html", "rss", "google-news", "github-repo"}, r.AvailableTypes())
	for _, tag := range r.AvailableTypes() {
		assert.True(t, r.Has(tag))
	}
	assert.False(t, r.Has("weather"))
}

func TestCreateUnknownType(t *testing.T) {
	r := Default(widget.Deps{})

	w, err := r.Create("unknown-type", "wgt_1", "T", nil)
	assert.Nil(t, w)
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Contains(t, err.Error(), "unknown-type")
}

func TestCreateHTMLRendersCard(t *testing.T) {
	r := Default(widget.Deps{})

	w, err := r.Create("html", "wgt_1", "T", map[string]interface{}{"content": "<b>x</b>"})
	require.NoError(t, err)
	assert.Equal(t, types.WidgetHTML, w.Type())

	c := widget.NewContainer()
	w.Render(context.Background(), c)

	cards := c.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "T", cards[0].Title())
	assert.Contains(t, string(cards[0].HTML()), "<b>x</b>")
}

func TestCreateFromRecord(t *testing.T) {
	r := Default(widget.Deps{})

	w, err := r.CreateFromRecord(types.WidgetRecord{ID: "wgt_9", Type: types.WidgetGithubRepo, Title: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "wgt_9", w.ID())
	assert.Equal(t, types.WidgetGithubRepo, w.Type())
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		ctor    Constructor
		wantErr bool
	}{
		{name: "new tag", tag: "note", ctor: htmlCtor},
		{name: "duplicate tag", tag: "html", ctor: htmlCtor, wantErr: true},
		{name: "empty tag", tag: "", ctor: htmlCtor, wantErr: true},
		{name: "nil constructor", tag: "nil", ctor: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Default(widget.Deps{})
			err := r.Register(tt.tag, tt.ctor)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Len(t, r.AvailableTypes(), 4)
				return
			}
			require.NoError(t, err)
			types := r.AvailableTypes()
			assert.Equal(t, tt.tag, types[len(types)-1])
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := Default(widget.Deps{})

	assert.ErrorIs(t, r.Register("html", htmlCtor), ErrDuplicateType)
	assert.Panics(t, func() { r.MustRegister("html", htmlCtor) })
}

func TestConcurrentAccess(t *testing.T) {
	r := New()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = r.Register(string(rune('a'+i)), htmlCtor)
		}(i)
		go func() {
			defer wg.Done()
			_ = r.AvailableTypes()
			_, _ = r.Create("a", "wgt_1", "", nil)
		}()
	}
	wg.Wait()

	assert.Len(t, r.AvailableTypes(), 20)
}

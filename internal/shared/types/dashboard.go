package types

// WidgetType is the tag that selects a widget constructor in the registry
type WidgetType string

const (
	WidgetHTML       WidgetType = "html"
	WidgetRSS        WidgetType = "rss"
	WidgetGoogleNews WidgetType = "google-news"
	WidgetGithubRepo WidgetType = "github-repo"
)

// AppState is the single persisted document
type AppState struct {
	Dashboards        []Dashboard `json:"dashboards" yaml:"dashboards" toml:"dashboards"`
	ActiveDashboardID *string     `json:"activeDashboardId" yaml:"activeDashboardId" toml:"activeDashboardId,omitempty"`
}

// Dashboard is a named, ordered collection of widgets
type Dashboard struct {
	ID      string         `json:"id" yaml:"id" toml:"id"`
	Name    string         `json:"name" yaml:"name" toml:"name"`
	Widgets []WidgetRecord `json:"widgets" yaml:"widgets" toml:"widgets"`
}

// WidgetRecord is the persisted form of a widget. Config shape depends on Type.
type WidgetRecord struct {
	ID     string                 `json:"id" yaml:"id" toml:"id"`
	Type   WidgetType             `json:"type" yaml:"type" toml:"type"`
	Title  string                 `json:"title" yaml:"title" toml:"title"`
	Config map[string]interface{} `json:"config" yaml:"config" toml:"config"`
}

// NewAppState returns an empty state with no active dashboard
func NewAppState() *AppState {
	return &AppState{Dashboards: []Dashboard{}}
}

// Clone returns a deep copy of the state
func (s *AppState) Clone() *AppState {
	if s == nil {
		return nil
	}
	out := &AppState{Dashboards: make([]Dashboard, len(s.Dashboards))}
	for i := range s.Dashboards {
		out.Dashboards[i] = s.Dashboards[i].Clone()
	}
	if s.ActiveDashboardID != nil {
		active := *s.ActiveDashboardID
		out.ActiveDashboardID = &active
	}
	return out
}

// Find returns the index of the dashboard with the given ID, or -1
func (s *AppState) Find(id string) int {
	for i := range s.Dashboards {
		if s.Dashboards[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the dashboard
func (d Dashboard) Clone() Dashboard {
	out := Dashboard{ID: d.ID, Name: d.Name, Widgets: make([]WidgetRecord, len(d.Widgets))}
	for i := range d.Widgets {
		out.Widgets[i] = d.Widgets[i].Clone()
	}
	return out
}

// FindWidget returns the index of the widget with the given ID, or -1
func (d *Dashboard) FindWidget(id string) int {
	for i := range d.Widgets {
		if d.Widgets[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the record
func (w WidgetRecord) Clone() WidgetRecord {
	w.Config = CloneConfig(w.Config)
	return w
}

// CloneConfig deep-copies a widget config map. Nested maps and slices are
// copied; scalar values are shared.
func CloneConfig(config map[string]interface{}) map[string]interface{} {
	if config == nil {
		return nil
	}
	out := make(map[string]interface{}, len(config))
	for k, v := range config {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return CloneConfig(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i := range val {
			out[i] = cloneValue(val[i])
		}
		return out
	default:
		return v
	}
}

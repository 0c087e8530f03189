package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Dashboard/internal/domain/storage"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Dashboard/internal/shared/id"
	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

// DefaultDashboardName is the name of the dashboard created on first start.
const DefaultDashboardName = "Main Dashboard"

// Manager orchestrates dashboard and widget state
type Manager struct {
	mu      sync.RWMutex
	state   *types.AppState // Protected by mu
	store   storage.Store
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewManager creates a manager with empty state. Call Init to load.
func NewManager(store storage.Store, logger *logging.Logger) *Manager {
	return &Manager{
		state:  types.NewAppState(),
		store:  store,
		logger: logging.OrNop(logger).Named("dashboard"),
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Init loads persisted state. Missing, unreadable or empty state is replaced
// by a single "Main Dashboard", which becomes active.
func (m *Manager) Init(ctx context.Context) {
	loaded, err := m.store.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		m.logger.Info("No saved state, starting fresh")
	case err != nil:
		m.logger.Warn("Saved state unreadable, starting fresh", zap.Error(err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err == nil && loaded != nil && len(loaded.Dashboards) > 0 {
		normalize(loaded)
		m.state = loaded
		m.publishLocked()
		m.logger.Info("Loaded saved state",
			zap.Int("dashboards", len(loaded.Dashboards)),
			zap.Int("widgets", countWidgets(loaded)))
		return
	}

	m.state = types.NewAppState()
	m.addDashboardLocked(ctx, DefaultDashboardName)
}

// Dashboards returns a copy of all dashboards in order.
func (m *Manager) Dashboards() []types.Dashboard {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone().Dashboards
}

// Dashboard returns a copy of the dashboard with the given ID.
func (m *Manager) Dashboard(dashboardID string) (types.Dashboard, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.state.Find(dashboardID)
	if i < 0 {
		return types.Dashboard{}, false
	}
	return m.state.Dashboards[i].Clone(), true
}

// ActiveDashboard returns a copy of the active dashboard, or nil.
func (m *Manager) ActiveDashboard() *types.Dashboard {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.activeIndexLocked()
	if i < 0 {
		return nil
	}
	d := m.state.Dashboards[i].Clone()
	return &d
}

// Snapshot returns a deep copy of the whole state.
func (m *Manager) Snapshot() *types.AppState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone()
}

// SetActiveDashboard switches the active dashboard. Unknown IDs are ignored.
func (m *Manager) SetActiveDashboard(ctx context.Context, dashboardID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Find(dashboardID) < 0 {
		return false
	}
	active := dashboardID
	m.state.ActiveDashboardID = &active
	m.saveLocked(ctx)
	return true
}

// AddDashboard appends a new empty dashboard and makes it active.
func (m *Manager) AddDashboard(ctx context.Context, name string) types.Dashboard {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addDashboardLocked(ctx, name)
}

func (m *Manager) addDashboardLocked(ctx context.Context, name string) types.Dashboard {
	d := types.Dashboard{
		ID:      id.NewDashboardID().String(),
		Name:    name,
		Widgets: []types.WidgetRecord{},
	}
	m.state.Dashboards = append(m.state.Dashboards, d)
	active := d.ID
	m.state.ActiveDashboardID = &active
	m.saveLocked(ctx)
	return d.Clone()
}

// RemoveDashboard deletes a dashboard and its widgets. If it was active, the
// first remaining dashboard becomes active, or none when the list is empty.
func (m *Manager) RemoveDashboard(ctx context.Context, dashboardID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.state.Find(dashboardID)
	if i < 0 {
		return false
	}
	m.state.Dashboards = append(m.state.Dashboards[:i], m.state.Dashboards[i+1:]...)

	if m.state.ActiveDashboardID != nil && *m.state.ActiveDashboardID == dashboardID {
		m.state.ActiveDashboardID = firstID(m.state)
	}
	m.saveLocked(ctx)
	return true
}

// AddWidgetToCurrent appends a widget to the active dashboard. It returns
// nil when no dashboard is active.
func (m *Manager) AddWidgetToCurrent(ctx context.Context, widgetType types.WidgetType, title string, config map[string]interface{}) *types.WidgetRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.activeIndexLocked()
	if i < 0 {
		return nil
	}

	rec := types.WidgetRecord{
		ID:     id.NewWidgetID().String(),
		Type:   widgetType,
		Title:  title,
		Config: configOrEmpty(config),
	}
	d := &m.state.Dashboards[i]
	d.Widgets = append(d.Widgets, rec)
	m.saveLocked(ctx)

	out := rec.Clone()
	return &out
}

// UpdateWidget edits a widget in place, keeping its ID and position. An empty
// title or nil config leaves that field unchanged.
func (m *Manager) UpdateWidget(ctx context.Context, dashboardID, widgetID, title string, config map[string]interface{}) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, w := m.findWidgetLocked(dashboardID, widgetID)
	if w < 0 {
		return false
	}
	rec := &m.state.Dashboards[d].Widgets[w]
	if title != "" {
		rec.Title = title
	}
	if config != nil {
		rec.Config = types.CloneConfig(config)
	}
	m.saveLocked(ctx)
	return true
}

// RemoveWidget deletes a widget from a dashboard.
func (m *Manager) RemoveWidget(ctx context.Context, dashboardID, widgetID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, w := m.findWidgetLocked(dashboardID, widgetID)
	if w < 0 {
		return false
	}
	widgets := m.state.Dashboards[d].Widgets
	m.state.Dashboards[d].Widgets = append(widgets[:w], widgets[w+1:]...)
	m.saveLocked(ctx)
	return true
}

// ReorderWidgets puts the listed widgets first, in the given order. Unknown
// and repeated IDs are ignored; unlisted widgets follow in their old order.
func (m *Manager) ReorderWidgets(ctx context.Context, dashboardID string, orderedIDs []string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.state.Find(dashboardID)
	if i < 0 {
		return false
	}
	d := &m.state.Dashboards[i]
	d.Widgets = reorder(d.Widgets, orderedIDs)
	m.saveLocked(ctx)
	return true
}

func reorder(widgets []types.WidgetRecord, orderedIDs []string) []types.WidgetRecord {
	byID := make(map[string]int, len(widgets))
	for i, w := range widgets {
		byID[w.ID] = i
	}

	placed := make([]bool, len(widgets))
	out := make([]types.WidgetRecord, 0, len(widgets))
	for _, wid := range orderedIDs {
		i, ok := byID[wid]
		if !ok || placed[i] {
			continue
		}
		placed[i] = true
		out = append(out, widgets[i])
	}
	for i, w := range widgets {
		if !placed[i] {
			out = append(out, w)
		}
	}
	return out
}

// ImportState replaces the whole state with candidate after structural
// validation: it must be an object whose "dashboards" is a list, and it must
// decode into the state shape. On failure the current state is untouched.
func (m *Manager) ImportState(ctx context.Context, candidate any) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Import panicked", zap.Any("panic", r))
			ok = false
		}
		m.metrics.RecordStateImport(ok)
	}()

	next, err := decodeCandidate(candidate)
	if err != nil {
		m.logger.Warn("Rejected import", zap.Error(err))
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = next
	if m.activeIndexLocked() < 0 {
		m.state.ActiveDashboardID = firstID(m.state)
	}
	m.saveLocked(ctx)
	m.logger.Info("Imported state", zap.Int("dashboards", len(next.Dashboards)))
	return true
}

var errNotAState = errors.New("import must be an object with a dashboards list")

func decodeCandidate(candidate any) (*types.AppState, error) {
	switch c := candidate.(type) {
	case *types.AppState:
		if c == nil || c.Dashboards == nil {
			return nil, errNotAState
		}
		next := c.Clone()
		normalize(next)
		return next, nil
	case types.AppState:
		return decodeCandidate(&c)
	case map[string]any:
		if _, ok := c["dashboards"].([]any); !ok {
			return nil, errNotAState
		}
	default:
		return nil, errNotAState
	}

	data, err := sonic.Marshal(candidate)
	if err != nil {
		return nil, fmt.Errorf("encode candidate: %w", err)
	}
	var next types.AppState
	if err := sonic.Unmarshal(data, &next); err != nil {
		return nil, fmt.Errorf("decode candidate: %w", err)
	}
	normalize(&next)
	return &next, nil
}

// ExportState writes the current state to w in the given format.
func (m *Manager) ExportState(w io.Writer, format storage.Format) error {
	return storage.Export(w, m.Snapshot(), format)
}

func (m *Manager) activeIndexLocked() int {
	if m.state.ActiveDashboardID == nil {
		return -1
	}
	return m.state.Find(*m.state.ActiveDashboardID)
}

func (m *Manager) findWidgetLocked(dashboardID, widgetID string) (int, int) {
	d := m.state.Find(dashboardID)
	if d < 0 {
		return -1, -1
	}
	return d, m.state.Dashboards[d].FindWidget(widgetID)
}

// saveLocked persists the current state. Failures never propagate.
func (m *Manager) saveLocked(ctx context.Context) {
	m.publishLocked()

	err := m.store.Save(ctx, m.state)
	m.metrics.RecordStateSave(err)
	if err != nil {
		m.logger.Error("Failed to persist state", zap.Error(err))
	}
}

func (m *Manager) publishLocked() {
	m.metrics.SetStateSize(len(m.state.Dashboards), countWidgets(m.state))
}

func normalize(s *types.AppState) {
	if s.Dashboards == nil {
		s.Dashboards = []types.Dashboard{}
	}
	for i := range s.Dashboards {
		if s.Dashboards[i].Widgets == nil {
			s.Dashboards[i].Widgets = []types.WidgetRecord{}
		}
		for j := range s.Dashboards[i].Widgets {
			w := &s.Dashboards[i].Widgets[j]
			w.Config = configOrEmpty(w.Config)
		}
	}
	if s.ActiveDashboardID != nil && s.Find(*s.ActiveDashboardID) < 0 {
		s.ActiveDashboardID = firstID(s)
	}
}

func firstID(s *types.AppState) *string {
	if len(s.Dashboards) == 0 {
		return nil
	}
	first := s.Dashboards[0].ID
	return &first
}

func configOrEmpty(config map[string]interface{}) map[string]interface{} {
	if config == nil {
		return map[string]interface{}{}
	}
	return types.CloneConfig(config)
}

func countWidgets(s *types.AppState) int {
	n := 0
	for _, d := range s.Dashboards {
		n += len(d.Widgets)
	}
	return n
}

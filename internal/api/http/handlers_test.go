package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Dashboard/internal/domain/board"
	"github.com/GriffinCanCode/Dashboard/internal/domain/dashboard"
	"github.com/GriffinCanCode/Dashboard/internal/domain/registry"
	"github.com/GriffinCanCode/Dashboard/internal/domain/storage"
	"github.com/GriffinCanCode/Dashboard/internal/domain/widget"
	"github.com/GriffinCanCode/Dashboard/internal/shared/types"
)

type testEnv struct {
	router  *gin.Engine
	manager *dashboard.Manager
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := dashboard.NewManager(storage.NewStateStore(storage.NewMemoryKV(), ""), nil)
	manager.Init(context.Background())
	reg := registry.Default(widget.Deps{})

	router := gin.New()
	NewHandlers(manager, reg, board.NewRenderer(reg, 2, nil), nil).Register(router)
	return &testEnv{router: router, manager: manager}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRootAndHealth(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do("GET", "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", decode(t, w)["status"])

	w = env.do("GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.EqualValues(t, 1, body["dashboards"])
}

func TestWidgetTypes(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do("GET", "/widgets/types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t,
		[]any{"html", "rss", "google-news", "github-repo"},
		decode(t, w)["types"])
}

func TestDashboardLifecycle(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do("POST", "/dashboards", map[string]string{"name": "  News  "})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)["dashboard"].(map[string]any)
	assert.Equal(t, "News", created["name"])
	newID := created["id"].(string)

	w = env.do("GET", "/dashboards/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, newID, decode(t, w)["dashboard"].(map[string]any)["id"])

	first := env.manager.Dashboards()[0].ID
	w = env.do("POST", "/dashboards/"+first+"/activate", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first, env.manager.ActiveDashboard().ID)

	w = env.do("DELETE", "/dashboards/"+first, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, newID, decode(t, w)["activeDashboardId"])

	w = env.do("GET", "/dashboards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["dashboards"], 1)
}

func TestDashboardErrors(t *testing.T) {
	env := setupTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{"missing name", "POST", "/dashboards", map[string]string{}, http.StatusBadRequest},
		{"blank name", "POST", "/dashboards", map[string]string{"name": "   "}, http.StatusBadRequest},
		{"unknown dashboard delete", "DELETE", "/dashboards/dash_missing", nil, http.StatusNotFound},
		{"unknown dashboard activate", "POST", "/dashboards/dash_missing/activate", nil, http.StatusNotFound},
		{"invalid id", "DELETE", "/dashboards/bad.id", nil, http.StatusBadRequest},
		{"unknown dashboard render", "GET", "/dashboards/dash_missing/render", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestWidgetLifecycle(t *testing.T) {
	env := setupTestRouter(t)
	dashboardID := env.manager.ActiveDashboard().ID

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		w := env.do("POST", "/widgets", map[string]any{
			"type":   "html",
			"title":  title,
			"config": map[string]any{"content": "<b>" + title + "</b>"},
		})
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, decode(t, w)["widget"].(map[string]any)["id"].(string))
	}

	w := env.do("PUT", "/dashboards/"+dashboardID+"/widgets/order",
		map[string]any{"ids": []string{ids[2], ids[0], ids[1]}})
	require.Equal(t, http.StatusOK, w.Code)
	d, _ := env.manager.Dashboard(dashboardID)
	assert.Equal(t, []string{ids[2], ids[0], ids[1]}, []string{d.Widgets[0].ID, d.Widgets[1].ID, d.Widgets[2].ID})

	w = env.do("PUT", "/dashboards/"+dashboardID+"/widgets/"+ids[0],
		map[string]any{"title": "renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	d, _ = env.manager.Dashboard(dashboardID)
	assert.Equal(t, "renamed", d.Widgets[1].Title)
	assert.Equal(t, "<b>one</b>", d.Widgets[1].Config["content"])

	w = env.do("DELETE", "/dashboards/"+dashboardID+"/widgets/"+ids[1], nil)
	require.Equal(t, http.StatusOK, w.Code)
	d, _ = env.manager.Dashboard(dashboardID)
	assert.Len(t, d.Widgets, 2)

	w = env.do("DELETE", "/dashboards/"+dashboardID+"/widgets/"+ids[1], nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddWidgetRejectsUnknownType(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do("POST", "/widgets", map[string]any{"type": "unknown-type"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.manager.ActiveDashboard().Widgets)
}

func TestAddWidgetWithoutActiveDashboard(t *testing.T) {
	env := setupTestRouter(t)
	only := env.manager.ActiveDashboard().ID
	require.True(t, env.manager.RemoveDashboard(context.Background(), only))

	w := env.do("POST", "/widgets", map[string]any{"type": "html"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRenderDashboard(t *testing.T) {
	env := setupTestRouter(t)
	ctx := context.Background()
	env.manager.AddWidgetToCurrent(ctx, types.WidgetHTML, "T", map[string]any{"content": "<b>x</b>"})
	env.manager.AddWidgetToCurrent(ctx, types.WidgetRSS, "Feed", map[string]any{})
	d := env.manager.ActiveDashboard()

	w := env.do("GET", "/dashboards/"+d.ID+"/render", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	page := w.Body.String()
	assert.Contains(t, page, "<b>x</b>")
	assert.Contains(t, page, "No RSS URL provided.")
	assert.Less(t, strings.Index(page, "<b>x</b>"), strings.Index(page, "No RSS URL provided."))
}

func TestExportImportRoundTrip(t *testing.T) {
	env := setupTestRouter(t)
	env.manager.AddWidgetToCurrent(context.Background(), types.WidgetRSS, "Feed",
		map[string]any{"url": "https://example.com/rss", "maxItems": float64(3)})
	before := env.manager.Snapshot()

	w := env.do("GET", "/state/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="dashboard_config.json"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "\n  \"dashboards\"")
	exported := w.Body.Bytes()

	env.manager.AddDashboard(context.Background(), "scratch")

	w = env.do("POST", "/state/import", exported)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before, env.manager.Snapshot())
}

func TestExportFormats(t *testing.T) {
	env := setupTestRouter(t)

	tests := []struct {
		format   string
		wantCode int
		wantName string
	}{
		{"json", http.StatusOK, "dashboard_config.json"},
		{"yaml", http.StatusOK, "dashboard_config.yaml"},
		{"toml", http.StatusOK, "dashboard_config.toml"},
		{"xml", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w := env.do("GET", "/state/export?format="+tt.format, nil)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantName != "" {
				assert.Contains(t, w.Header().Get("Content-Disposition"), tt.wantName)
			}
		})
	}
}

func TestImportRejectsInvalidDocuments(t *testing.T) {
	env := setupTestRouter(t)
	before := env.manager.Snapshot()

	tests := []struct {
		name string
		body []byte
	}{
		{"empty", []byte{}},
		{"dashboards not a list", []byte(`{"dashboards":"not-an-array"}`)},
		{"missing dashboards", []byte(`{"activeDashboardId":null}`)},
		{"top-level array", []byte(`[1,2,3]`)},
		{"garbage", []byte("\x00\x01\x02 not a document")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do("POST", "/state/import", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, InvalidImportMessage, decode(t, w)["error"])
			assert.Equal(t, before, env.manager.Snapshot())
		})
	}
}

func TestImportMultipart(t *testing.T) {
	env := setupTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "dashboard_config.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(`{"dashboards":[{"id":"d1","name":"Imported","widgets":[]}],"activeDashboardId":"d1"}`))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/state/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	active := env.manager.ActiveDashboard()
	require.NotNil(t, active)
	assert.Equal(t, "Imported", active.Name)
}

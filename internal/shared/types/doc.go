// Package types provides shared data structures for the dashboard backend.
//
// Core Types:
//   - AppState: The whole persisted configuration (dashboards + active pointer)
//   - Dashboard: A named, ordered collection of widget records
//   - WidgetRecord: A widget's persisted type, title and configuration
//   - WidgetType: Widget type tag (html, rss, google-news, github-repo)
//
// Request Types:
//   - CreateDashboardRequest, AddWidgetRequest, UpdateWidgetRequest
//   - ReorderRequest: Widget order after a drag-and-drop
//   - WSMessage: WebSocket communication
//
// Example Usage:
//
//	state := types.NewAppState()
//	state.Dashboards = append(state.Dashboards, types.Dashboard{
//	    ID:      string(id.NewDashboardID()),
//	    Name:    "Main Dashboard",
//	    Widgets: []types.WidgetRecord{},
//	})
package types

// Package http exposes the dashboard manager over REST.
//
// Routes:
//   - GET  /, /health, /widgets/types
//   - GET/POST /dashboards, GET /dashboards/active
//   - DELETE /dashboards/:id, POST /dashboards/:id/activate
//   - GET  /dashboards/:id/render (HTML page of rendered cards)
//   - POST /widgets (adds to the active dashboard)
//   - PUT/DELETE /dashboards/:id/widgets/:wid, PUT /dashboards/:id/widgets/order
//   - GET  /state/export?format=json|yaml|toml, POST /state/import
//
// Handlers validate path parameters and bodies with shared/utils before
// touching the manager; manager operations that report false map to 404.
package http

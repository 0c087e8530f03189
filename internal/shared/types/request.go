package types

// CreateDashboardRequest creates a new dashboard
type CreateDashboardRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddWidgetRequest adds a widget to the active dashboard
type AddWidgetRequest struct {
	Type   WidgetType             `json:"type" binding:"required"`
	Title  string                 `json:"title"`
	Config map[string]interface{} `json:"config"`
}

// UpdateWidgetRequest replaces a widget's title and config
type UpdateWidgetRequest struct {
	Title  string                 `json:"title"`
	Config map[string]interface{} `json:"config"`
}

// ReorderRequest carries widget IDs in their new order
type ReorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type     string                 `json:"type"`
	WidgetID string                 `json:"widgetId,omitempty"`
	Title    string                 `json:"title,omitempty"`
	Config   map[string]interface{} `json:"config,omitempty"`
	Message  string                 `json:"message,omitempty"`
}

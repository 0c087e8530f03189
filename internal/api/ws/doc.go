// Package ws streams a live dashboard over WebSocket.
//
// On connect the dashboard is rendered in the background and every card
// change is pushed as {"type":"card","card":{...}}. Clients send
// widget-delete and widget-edit messages carrying a widgetId; deletes go
// through the card's signal so an in-flight fetch for a removed card is
// dropped, and edits re-render just the edited widget.
package ws

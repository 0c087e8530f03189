/*
Package dashboard owns the application state: the list of dashboards, their
widget records and the active dashboard pointer.

Every mutation runs under one mutex and persists the full snapshot through a
storage.Store before returning. A failed save is logged and counted but does
not fail the mutation; the in-memory state stays authoritative and the next
successful save catches the store up.

All read accessors return deep copies, so callers can never alias the live
state.
*/
package dashboard

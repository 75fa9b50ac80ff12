// Package store holds the live synchronization state behind each connected
// session: notifications, the conversation list, and the open conversation's
// messages. Each store is constructed per session, started with an explicit
// Start/Stop lifecycle, and publishes full snapshots on every backend change.
package store

// AlertSender delivers transient user-facing alerts. Satisfied by the
// websocket manager.
type AlertSender interface {
	SendToUser(userID string, message []byte)
}

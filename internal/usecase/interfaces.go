package usecase

// Alerter is the outbound alert channel for transient user-facing pushes.
// Satisfied by the websocket manager.
type Alerter interface {
	SendToUser(userID string, message []byte)
}

// Role classifications consumed by the surrounding router. Produced here,
// enforced by the route middleware.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
	RoleNone   = "none"
)

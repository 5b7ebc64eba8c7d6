// Package constants holds cross-layer constant values.
package constants

// Pub/Sub provider names accepted in configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Context keys set by the HTTP middleware.
const (
	ContextKeyUserID    = "userID"
	ContextKeyRoles     = "roles"
	ContextKeySessionID = "cartSessionID"
)

// RoleAdmin guards the order-management routes.
const RoleAdmin = "admin"

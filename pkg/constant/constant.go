package constant

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	CtxKeyUserUUID ContextKey = "user_uuid"
	CtxKeyLogger   ContextKey = "logger"
)

package constants

import "time"

// Timeouts
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultTimeout        = 10 * time.Second
	ShutdownTimeout       = 15 * time.Second
)

// Database pool defaults
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // in minutes
	DatabaseSSLMode         = "disable"
)

// Context keys
const (
	ContextUserID = "user_id"
)

// HTTP headers
const (
	HeaderUserID = "X-User-ID"
)

// Redis key prefixes
const (
	RedisKeyInvitationToken = "invitation:token:"
)

// Invitation token lifetime
const InvitationTokenTTL = 7 * 24 * time.Hour

// Package queue defines message payloads exchanged over the message broker.
package queue

// LoginQueueName is the durable queue carrying authentication events.
const LoginQueueName = "auth.login"

// LoginEvent is published after every successful login so the panel's
// access log and system-log screens can be fed without querying the primary
// database on the hot path.
type LoginEvent struct {
    Role         string `json:"role"`                    // admin | provedor | usuario
    ActorID      uint64 `json:"actor_id"`                // id within the role's table
    ProviderCode string `json:"provider_code,omitempty"` // set for end-user logins
    Username     string `json:"username,omitempty"`      // remote login name for end users
    IP           string `json:"ip"`
    At           string `json:"at"` // RFC3339 UTC timestamp
}

package types

// SystemStatus is the provider-pushed message that opens every session.
type SystemStatus struct {
	APIVersion   string `json:"api_version"`
	ConnectionID uint64 `json:"connection_id"`
	System       string `json:"system"`
	Version      string `json:"version"`
}

// Heartbeat is an idle-keepalive message carrying no payload.
type Heartbeat struct{}

// Pong answers a client-initiated ping, echoing its request id.
type Pong struct {
	ReqID int64 `json:"req_id"`
}

// SubscriptionStatus reports the outcome of a subscribe/unsubscribe request.
type SubscriptionStatus struct {
	Success bool   `json:"success"`
	Method  string `json:"method"`
	Channel string `json:"channel"`
	Symbol  string `json:"symbol,omitempty"`
	Error   string `json:"error,omitempty"`
}

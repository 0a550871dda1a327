// Package krakenerr defines the error-kind taxonomy shared by every
// component of the client: transport, codec, subscription, and auth
// failures all wrap one of these sentinels so callers can classify an
// error with errors.Is regardless of which layer produced it.
package krakenerr

import "errors"

// Kind identifies the broad category of a client error.
type Kind string

const (
	KindTransport            Kind = "transport"
	KindJSONMalformed        Kind = "json_malformed"
	KindInvalidURL           Kind = "invalid_url"
	KindChannelClosed        Kind = "channel_closed"
	KindProviderAPI          Kind = "provider_api"
	KindSubscriptionRejected Kind = "subscription_rejected"
	KindInvalidFrame         Kind = "invalid_frame"
	KindConnectionClosed     Kind = "connection_closed"
	KindAuthentication       Kind = "authentication"
	KindRateLimited          Kind = "rate_limited"
	KindInvalidPair          Kind = "invalid_pair"
)

// Sentinel errors, one per Kind, for use with errors.Is/errors.As and
// fmt.Errorf("...: %w", ErrX) wrapping.
var (
	ErrTransport            = errors.New(string(KindTransport))
	ErrJSONMalformed        = errors.New(string(KindJSONMalformed))
	ErrInvalidURL           = errors.New(string(KindInvalidURL))
	ErrChannelClosed        = errors.New(string(KindChannelClosed))
	ErrProviderAPI          = errors.New(string(KindProviderAPI))
	ErrSubscriptionRejected = errors.New(string(KindSubscriptionRejected))
	ErrInvalidFrame         = errors.New(string(KindInvalidFrame))
	ErrConnectionClosed     = errors.New(string(KindConnectionClosed))
	ErrAuthentication       = errors.New(string(KindAuthentication))
	ErrRateLimited          = errors.New(string(KindRateLimited))
	ErrInvalidPair          = errors.New(string(KindInvalidPair))
)

// ErrInvalidMessage is an alias consumers of the auth package expect: a
// malformed secret or nonce produces an authentication-kind error.
var ErrInvalidMessage = ErrAuthentication

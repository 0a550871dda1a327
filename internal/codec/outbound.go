package codec

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// subscribeParams mirrors the provider's subscribe/unsubscribe params
// object. Depth and Interval are omitted unless the channel uses them;
// Token is omitted for public channels.
type subscribeParams struct {
	Channel  string   `json:"channel"`
	Symbol   []string `json:"symbol"`
	Depth    int      `json:"depth,omitempty"`
	Interval int      `json:"interval,omitempty"`
	Snapshot bool     `json:"snapshot,omitempty"`
	Token    string   `json:"token,omitempty"`
}

type request struct {
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
	ReqID  int64       `json:"req_id,omitempty"`
}

// SubscribeOptions carries the channel-specific parameters a subscribe
// request may need. Depth applies only to the book channel, Interval only
// to ohlc; Token is set only for private channels.
type SubscribeOptions struct {
	Depth    int
	Interval int
	Token    string
}

// BuildSubscribe serializes a subscribe request for one channel and one or
// more symbols.
func BuildSubscribe(channel string, symbols []string, opts SubscribeOptions) ([]byte, error) {
	return buildSubscription("subscribe", channel, symbols, opts)
}

// BuildUnsubscribe serializes an unsubscribe request.
func BuildUnsubscribe(channel string, symbols []string, opts SubscribeOptions) ([]byte, error) {
	return buildSubscription("unsubscribe", channel, symbols, opts)
}

func buildSubscription(method, channel string, symbols []string, opts SubscribeOptions) ([]byte, error) {
	params := subscribeParams{
		Channel:  channel,
		Symbol:   symbols,
		Depth:    opts.Depth,
		Interval: opts.Interval,
		Token:    opts.Token,
	}
	if method == "subscribe" {
		params.Snapshot = true
	}

	data, err := json.Marshal(request{Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", method, err)
	}
	return data, nil
}

// BuildPing serializes a ping request carrying reqID for pong correlation.
func BuildPing(reqID int64) ([]byte, error) {
	data, err := json.Marshal(request{Method: "ping", ReqID: reqID})
	if err != nil {
		return nil, fmt.Errorf("marshal ping request: %w", err)
	}
	return data, nil
}

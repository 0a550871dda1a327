package wsconn

import "sync/atomic"

// State is one of the connection manager's lifecycle phases. Transitions
// are driven exclusively by the manager goroutine; every other goroutine
// only reads.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
)

// stateCell is an atomic single-writer, many-reader holder for State.
type stateCell struct {
	v atomic.Value
}

func newStateCell(initial State) *stateCell {
	c := &stateCell{}
	c.v.Store(initial)
	return c
}

func (c *stateCell) get() State {
	return c.v.Load().(State)
}

func (c *stateCell) set(s State) {
	c.v.Store(s)
}

package commands

import "testing"

func TestNonceSource_StrictlyIncreasing(t *testing.T) {
	n := NewNonceSource()
	prev := n.Next()
	for i := 0; i < 1000; i++ {
		next := n.Next()
		if next <= prev {
			t.Fatalf("nonce did not strictly increase: %d -> %d", prev, next)
		}
		prev = next
	}
}

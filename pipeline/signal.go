package pipeline

import "context"

// Gate is a concrete, auto-reset datapipe.Signal: Ready blocks until the
// single-slot token is available, taking it; Set puts the token back. It is
// the same channel-as-mutex idiom proxyrule.Proxy uses to guard its rule
// list, applied here to serialize fetches instead of reads/writes.
type Gate struct {
	tokens chan struct{}
}

// NewGate returns a Gate that starts open (the first Ready returns
// immediately).
func NewGate() *Gate {
	g := &Gate{tokens: make(chan struct{}, 1)}
	g.tokens <- struct{}{}
	return g
}

// Ready blocks until the gate's token is available or ctx is done.
func (g *Gate) Ready(ctx context.Context) error {
	select {
	case <-g.tokens:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Set returns the token, admitting the next waiter. If the token is already
// in place (Set without a prior successful Ready), Set does nothing.
// WithSignal always pairs a successful Ready with a deferred Set.
func (g *Gate) Set() {
	select {
	case g.tokens <- struct{}{}:
	default:
	}
}

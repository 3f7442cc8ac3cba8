package live

import "sync"

// Coalescer is a single-slot mailbox: a newer Offer replaces a value nobody
// has taken yet, so a slow consumer only ever sees the freshest input.
type Coalescer[T any] struct {
	mu      sync.Mutex
	pending T
	has     bool
	ready   chan struct{}
}

func NewCoalescer[T any]() *Coalescer[T] {
	return &Coalescer[T]{ready: make(chan struct{}, 1)}
}

func (c *Coalescer[T]) Offer(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = v
	c.has = true
	select {
	case c.ready <- struct{}{}:
	default:
	}
}

// Ready is signalled whenever a value is waiting.
func (c *Coalescer[T]) Ready() <-chan struct{} { return c.ready }

// Take returns the pending value, if any, and empties the slot.
func (c *Coalescer[T]) Take() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.ready:
	default:
	}

	var zero T
	if !c.has {
		return zero, false
	}
	v := c.pending
	c.pending, c.has = zero, false
	return v, true
}

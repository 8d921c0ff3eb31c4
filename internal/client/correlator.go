package client

import "sync/atomic"

// IDGenerator hands out request ids for sidecar calls.
type IDGenerator interface {
	Next() uint64
}

// Counter is an IDGenerator returning 1, 2, 3, ...
// It is safe for concurrent use and never returns the same id twice.
type Counter struct {
	n atomic.Uint64
}

// Next returns the next id.
func (c *Counter) Next() uint64 {
	return c.n.Add(1)
}

// defaultIDs is shared by clients created without their own generator, so
// ids stay unique across every client in the process.
var defaultIDs = &Counter{}

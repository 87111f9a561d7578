package device

import "fmt"

// Verify that MockContext implements Context.
var _ Context = (*MockContext)(nil)

// MockContext is a stream context for testing. It services host memory only,
// but with accelerator semantics: CopyBytes records the transfer and returns
// immediately, and nothing lands in the destination until Wait, which applies
// the queued transfers in enqueue order. Source bytes are read at apply time,
// the way a real stream reads them at execution time.
type MockContext struct {
	queue []mockTransfer
}

type mockTransfer struct {
	dst    *HostMemory
	dstOff int
	src    *HostMemory
	srcOff int
	n      int
}

// NewMock creates a MockContext with an empty queue.
func NewMock() *MockContext { return &MockContext{} }

// Device returns the domain this context executes on.
func (c *MockContext) Device() Device { return CPU }

// CopyBytes enqueues a host-to-host transfer without executing it.
func (c *MockContext) CopyBytes(dst Memory, dstOff int, src Memory, srcOff, n int) error {
	d, dok := dst.(*HostMemory)
	s, sok := src.(*HostMemory)
	if !dok || !sok {
		return fmt.Errorf("mock: unsupported transfer %s to %s: %w", src.Device(), dst.Device(), ErrDevice)
	}
	if n < 0 {
		return fmt.Errorf("mock: negative length %d: %w", n, ErrDevice)
	}
	c.queue = append(c.queue, mockTransfer{dst: d, dstOff: dstOff, src: s, srcOff: srcOff, n: n})
	return nil
}

// Wait executes all queued transfers in enqueue order and empties the queue.
// A failing transfer faults the stream: the rest of the queue is discarded,
// never applied on a later Wait. Transfers before the failure remain applied.
func (c *MockContext) Wait() error {
	queue := c.queue
	c.queue = nil
	for _, tr := range queue {
		if err := hostCopy(tr.dst, tr.dstOff, tr.src, tr.srcOff, tr.n); err != nil {
			return err
		}
	}
	return nil
}

// Pending returns the number of enqueued transfers not yet applied.
func (c *MockContext) Pending() int { return len(c.queue) }

package signature

import "sync"

// Surface size used when the container has not been laid out yet.
const (
	DefaultWidth  = 600
	DefaultHeight = 150
)

// Container reports the width available to the signature surface. A width of
// zero means layout has not happened yet.
type Container interface {
	Width() int
}

// ResizeNotifier delivers resize events. OnResize returns a function that
// cancels the subscription.
type ResizeNotifier interface {
	OnResize(fn func()) (cancel func())
}

// Capture binds a Pad to its container and keeps strokes across resizes.
type Capture struct {
	pad       *Pad
	container Container
	height    int

	mu     sync.Mutex
	cancel func()
}

// NewCapture sizes a pad to the container, falling back to the default
// surface when the container has no width yet.
func NewCapture(container Container) *Capture {
	c := &Capture{container: container, height: DefaultHeight}
	c.pad = NewPad(c.width(), c.height)
	return c
}

// Pad returns the underlying drawing surface.
func (c *Capture) Pad() *Pad { return c.pad }

func (c *Capture) width() int {
	if c.container == nil {
		return DefaultWidth
	}
	if w := c.container.Width(); w > 0 {
		return w
	}
	return DefaultWidth
}

// Attach subscribes to resize events. Any earlier subscription is released
// first. The returned func is the same as calling Detach.
func (c *Capture) Attach(n ResizeNotifier) (detach func()) {
	c.Detach()
	cancel := n.OnResize(c.handleResize)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	return c.Detach
}

// Detach releases the resize subscription. Safe to call more than once.
func (c *Capture) Detach() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Attached reports whether a resize subscription is live.
func (c *Capture) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// resizing clears the surface, so strokes are saved and replayed
func (c *Capture) handleResize() {
	strokes := c.pad.ToData()
	c.pad.SetSize(c.width(), c.height)
	c.pad.FromData(strokes)
}

// ResizeBus is a minimal ResizeNotifier that fans Notify out to every
// subscriber.
type ResizeBus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// NewResizeBus returns an empty bus.
func NewResizeBus() *ResizeBus {
	return &ResizeBus{subs: make(map[int]func())}
}

// OnResize implements ResizeNotifier.
func (b *ResizeBus) OnResize(fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Notify calls every live subscriber.
func (b *ResizeBus) Notify() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of live subscriptions.
func (b *ResizeBus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

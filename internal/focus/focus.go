// Package focus implements the verse-focus behavior of the reader: when a
// verse is requested it is scrolled into view and highlighted, and the
// highlight is dropped once the user scrolls away on their own.
//
// A programmatic scroll produces scroll events of its own. For a short
// debounce window after focusing, scroll events restart the window instead
// of clearing the focus.
package focus

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDebounce is the window after a programmatic scroll during which
// scroll events are attributed to that scroll.
const DefaultDebounce = 150 * time.Millisecond

// Container is the scrollable region holding verse elements. Elements are
// addressed by anchor ids of the form "v<number>". Implementations must not
// call back into the Controller from ScrollIntoView.
type Container interface {
	ScrollMetrics() (scrollHeight, clientHeight int)
	HasElement(id string) bool
	ScrollIntoView(id string)
}

type State int

const (
	Cleared State = iota
	Focused
)

func (s State) String() string {
	switch s {
	case Focused:
		return "focused"
	default:
		return "cleared"
	}
}

// VerseID returns the anchor id for verse n.
func VerseID(n int) string {
	return fmt.Sprintf("v%d", n)
}

type Option func(*Controller)

// WithOnClearFocus sets a callback run when focus is cleared while the
// requested verse is still set, so the host can reset its own source.
func WithOnClearFocus(fn func()) Option {
	return func(c *Controller) { c.onClearFocus = fn }
}

func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// Controller owns the focus state of one reading view.
type Controller struct {
	container    Container
	requested    *Signal
	onClearFocus func()
	clock        Clock
	debounce     time.Duration
	logger       *zap.Logger
	unsubscribe  func()

	mu       sync.Mutex
	targetID string
	timer    Timer
	window   uint64
	closed   bool
}

// New creates a controller in the Cleared state and subscribes it to the
// requested verse signal. Call Close when the view goes away.
func New(container Container, requested *Signal, opts ...Option) *Controller {
	c := &Controller{
		container: container,
		requested: requested,
		clock:     wallClock{},
		debounce:  DefaultDebounce,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if requested != nil {
		c.unsubscribe = requested.Subscribe(c.HandleVerseFocus)
	}
	return c
}

func (c *Controller) State() State {
	if c.IsFocusActive() {
		return Focused
	}
	return Cleared
}

func (c *Controller) IsFocusActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.targetID != ""
}

// FocusedVerseID returns the anchor id of the focused verse, or "".
func (c *Controller) FocusedVerseID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.targetID
}

// OverlayHeight is the container's full scroll height while a verse is
// focused and zero otherwise.
func (c *Controller) OverlayHeight() int {
	if !c.IsFocusActive() || c.container == nil {
		return 0
	}
	scrollHeight, _ := c.container.ScrollMetrics()
	return scrollHeight
}

// Debouncing reports whether a debounce window is open.
func (c *Controller) Debouncing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// ShouldFocusVerse is false for verse 1 and for containers with nothing to
// scroll.
func (c *Controller) ShouldFocusVerse(verse int) bool {
	if verse == 1 || c.container == nil {
		return false
	}
	scrollHeight, clientHeight := c.container.ScrollMetrics()
	return scrollHeight > clientHeight
}

// HandleVerseFocus reacts to a new requested verse. It runs automatically on
// every change of the signal passed to New.
func (c *Controller) HandleVerseFocus(verse int) {
	if verse <= 0 || !c.ShouldFocusVerse(verse) {
		c.ClearFocus()
		return
	}
	c.focusVerse(verse)
}

func (c *Controller) focusVerse(verse int) {
	id := VerseID(verse)
	if !c.container.HasElement(id) {
		c.logger.Debug("verse element not found", zap.String("verse", id))
		return
	}

	c.mu.Lock()
	c.targetID = id
	c.mu.Unlock()

	c.container.ScrollIntoView(id)

	c.mu.Lock()
	c.restartWindowLocked()
	c.mu.Unlock()

	c.logger.Debug("verse focused", zap.String("verse", id))
}

// HandleScroll is called for every scroll event of the container.
func (c *Controller) HandleScroll() {
	c.mu.Lock()
	if c.timer != nil {
		c.restartWindowLocked()
		c.mu.Unlock()
		return
	}
	active := c.targetID != ""
	c.mu.Unlock()

	if !active {
		return
	}
	c.logger.Debug("user scroll while focused")
	c.ClearFocus()
}

// ClearFocus drops the focused verse. If a verse is still requested the
// onClearFocus callback runs once.
func (c *Controller) ClearFocus() {
	c.mu.Lock()
	prev := c.targetID
	c.targetID = ""
	c.mu.Unlock()

	if prev != "" {
		c.logger.Debug("verse focus cleared", zap.String("verse", prev))
	}

	if c.requested != nil && c.requested.Get() > 0 && c.onClearFocus != nil {
		c.onClearFocus()
	}
}

// Close unsubscribes from the requested verse signal and stops any pending
// debounce timer. The controller stays readable but never starts another
// window.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// restartWindowLocked cancels the pending window, if any, and opens a new
// one. Each window's expiry only clears its own handle.
func (c *Controller) restartWindowLocked() {
	if c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}

	c.window++
	window := c.window
	c.timer = c.clock.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.window == window {
			c.timer = nil
		}
	})
}

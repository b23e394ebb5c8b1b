package focus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeContainer struct {
	scrollHeight int
	clientHeight int
	elements     map[string]bool
	scrolledTo   []string
}

func newFakeContainer(verses int, scrollHeight, clientHeight int) *fakeContainer {
	c := &fakeContainer{
		scrollHeight: scrollHeight,
		clientHeight: clientHeight,
		elements:     make(map[string]bool),
	}
	for i := 1; i <= verses; i++ {
		c.elements[VerseID(i)] = true
	}
	return c
}

func (c *fakeContainer) ScrollMetrics() (int, int) { return c.scrollHeight, c.clientHeight }
func (c *fakeContainer) HasElement(id string) bool { return c.elements[id] }
func (c *fakeContainer) ScrollIntoView(id string)  { c.scrolledTo = append(c.scrolledTo, id) }

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	f       func()
	d       time.Duration
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{f: f, d: d}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// expire fires every timer that is neither stopped nor fired.
func (c *fakeClock) expire() {
	c.mu.Lock()
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func (c *fakeClock) started() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type fixture struct {
	container *fakeContainer
	clock     *fakeClock
	signal    *Signal
	ctrl      *Controller
	cleared   int
}

// newFixture wires a controller the way the reader does: the clear callback
// resets the requested verse.
func newFixture(t *testing.T, container *fakeContainer) *fixture {
	t.Helper()
	f := &fixture{container: container, clock: &fakeClock{}, signal: NewSignal(0)}
	f.ctrl = New(container, f.signal,
		WithClock(f.clock),
		WithOnClearFocus(func() {
			f.cleared++
			f.signal.Set(0)
		}),
	)
	t.Cleanup(f.ctrl.Close)
	return f
}

func TestInitialState(t *testing.T) {
	f := newFixture(t, newFakeContainer(10, 500, 100))

	assert.Equal(t, Cleared, f.ctrl.State())
	assert.False(t, f.ctrl.IsFocusActive())
	assert.Equal(t, 0, f.ctrl.OverlayHeight())
	assert.False(t, f.ctrl.Debouncing())
}

func TestFocusQualifyingVerse(t *testing.T) {
	f := newFixture(t, newFakeContainer(10, 500, 100))

	f.signal.Set(5)

	assert.Equal(t, Focused, f.ctrl.State())
	assert.Equal(t, "v5", f.ctrl.FocusedVerseID())
	assert.Equal(t, []string{"v5"}, f.container.scrolledTo)
	assert.Equal(t, 500, f.ctrl.OverlayHeight())
	assert.True(t, f.ctrl.Debouncing())
	require.Equal(t, 1, f.clock.started())
	assert.Equal(t, DefaultDebounce, f.clock.timers[0].d)
}

func TestNonPositiveVerseClears(t *testing.T) {
	for _, v := range []int{0, -1, -40} {
		f := newFixture(t, newFakeContainer(10, 500, 100))
		f.ctrl.HandleVerseFocus(7)
		require.True(t, f.ctrl.IsFocusActive())

		f.ctrl.HandleVerseFocus(v)

		assert.Equal(t, Cleared, f.ctrl.State(), "verse %d", v)
		assert.Equal(t, 0, f.ctrl.OverlayHeight())
	}
}

func TestFirstVerseNeverFocuses(t *testing.T) {
	f := newFixture(t, newFakeContainer(10, 500, 100))
	f.ctrl.HandleVerseFocus(4)
	require.True(t, f.ctrl.IsFocusActive())

	f.ctrl.HandleVerseFocus(1)

	assert.Equal(t, Cleared, f.ctrl.State())
	assert.Equal(t, []string{"v4"}, f.container.scrolledTo)
	assert.False(t, f.ctrl.ShouldFocusVerse(1))
}

func TestNothingToScrollClears(t *testing.T) {
	for _, heights := range [][2]int{{100, 100}, {80, 100}} {
		f := newFixture(t, newFakeContainer(10, heights[0], heights[1]))

		f.ctrl.HandleVerseFocus(3)

		assert.Equal(t, Cleared, f.ctrl.State())
		assert.Empty(t, f.container.scrolledTo)
		assert.Equal(t, 0, f.clock.started())
	}
}

func TestMissingElementIsNoOp(t *testing.T) {
	f := newFixture(t, newFakeContainer(10, 500, 100))
	f.ctrl.HandleVerseFocus(4)
	f.clock.expire()
	require.Equal(t, "v4", f.ctrl.FocusedVerseID())

	f.ctrl.HandleVerseFocus(99)

	assert.Equal(t, "v4", f.ctrl.FocusedVerseID())
	assert.Equal(t, 1, f.clock.started())
	assert.False(t, f.ctrl.Debouncing())
	assert.Equal(t, 0, f.cleared)
}

func TestNilContainerClears(t *testing.T) {
	ctrl := New(nil, nil, WithClock(&fakeClock{}))
	defer ctrl.Close()

	ctrl.HandleVerseFocus(5)

	assert.Equal(t, Cleared, ctrl.State())
	assert.Equal(t, 0, ctrl.OverlayHeight())
}

func TestScrollDuringDebounceRestartsWindow(t *testing.T) {
	f := newFixture(t, newFakeContainer(10, 500, 100))
	f.signal.Set(6)
	require.Equal(t, 1, f.clock.started())

	f.ctrl.HandleScroll()
	f.ctrl.HandleScroll()

	assert.Equal(t, 3, f.clock.started())
	assert.Equal(t, 1, f.clock.pending())
	assert.True(t, f.clock.timers[0].stopped)
	assert.True(t, f.clock.timers[1].stopped)
	assert.Equal(t, Focused, f.ctrl.State())
	assert.Equal(t, 0, f.cleared)
}

func TestUserScrollAfterWindowClears(t *testing.T) {
	f := newFixture(t, newFakeContainer(10, 500, 100))
	f.signal.Set(6)
	f.clock.expire()
	require.False(t, f.ctrl.Debouncing())

	f.ctrl.HandleScroll()

	assert.Equal(t, Cleared, f.ctrl.State())
	assert.Equal(t, 1, f.cleared)
	assert.Equal(t, 0, f.signal.Get())

	// Further scrolls while cleared do nothing.
	f.ctrl.HandleScroll()
	assert.Equal(t, 1, f.cleared)
	assert.Equal(t, 1, f.clock.started())
}

func TestScrollWhileClearedIsNoOp(t *testing.T) {
	f := newFixture(t, newFakeContainer(10, 500, 100))

	f.ctrl.HandleScroll()

	assert.Equal(t, Cleared, f.ctrl.State())
	assert.Equal(t, 0, f.cleared)
	assert.Equal(t, 0, f.clock.started())
}

func TestClearFocusCallbackOnlyWhileRequested(t *testing.T) {
	f := newFixture(t, newFakeContainer(10, 500, 100))

	f.ctrl.ClearFocus()
	assert.Equal(t, 0, f.cleared)

	f.signal.Set(8)
	f.ctrl.ClearFocus()
	assert.Equal(t, 1, f.cleared)
	assert.Equal(t, 0, f.signal.Get())
	assert.Equal(t, Cleared, f.ctrl.State())
}

func TestSetThenResetLeavesOnlyFirstWindow(t *testing.T) {
	f := newFixture(t, newFakeContainer(10, 500, 100))

	f.signal.Set(5)
	f.signal.Set(0)

	assert.Equal(t, Cleared, f.ctrl.State())
	assert.Equal(t, 1, f.clock.started())
	assert.Equal(t, 1, f.clock.pending())

	f.clock.expire()
	assert.False(t, f.ctrl.Debouncing())
	assert.Equal(t, Cleared, f.ctrl.State())
}

func TestStaleExpiryDoesNotCloseNewWindow(t *testing.T) {
	f := newFixture(t, newFakeContainer(10, 500, 100))
	f.signal.Set(5)
	first := f.clock.timers[0]

	f.ctrl.HandleScroll()

	// A timer that raced past Stop still runs its callback.
	first.f()
	assert.True(t, f.ctrl.Debouncing())
}

func TestRefocusRestartsWindow(t *testing.T) {
	f := newFixture(t, newFakeContainer(10, 500, 100))
	f.signal.Set(3)
	f.signal.Set(9)

	assert.Equal(t, "v9", f.ctrl.FocusedVerseID())
	assert.Equal(t, []string{"v3", "v9"}, f.container.scrolledTo)
	assert.Equal(t, 2, f.clock.started())
	assert.Equal(t, 1, f.clock.pending())
}

func TestCloseUnsubscribesAndStopsTimer(t *testing.T) {
	container := newFakeContainer(10, 500, 100)
	clock := &fakeClock{}
	signal := NewSignal(0)

	ctrl := New(container, signal, WithClock(clock))
	require.Equal(t, 1, signal.Listeners())

	signal.Set(4)
	require.Equal(t, 1, clock.pending())

	ctrl.Close()
	ctrl.Close()

	assert.Equal(t, 0, signal.Listeners())
	assert.Equal(t, 0, clock.pending())
	assert.False(t, ctrl.Debouncing())

	signal.Set(7)
	assert.Equal(t, "v4", ctrl.FocusedVerseID())

	ctrl.HandleVerseFocus(8)
	assert.False(t, ctrl.Debouncing())
}

func TestRepeatedMountUnmountDoesNotLeakListeners(t *testing.T) {
	signal := NewSignal(3)
	for i := 0; i < 50; i++ {
		ctrl := New(newFakeContainer(5, 300, 100), signal, WithClock(&fakeClock{}))
		ctrl.Close()
	}
	assert.Equal(t, 0, signal.Listeners())
}

func TestWallClockWindowExpires(t *testing.T) {
	container := newFakeContainer(10, 500, 100)
	signal := NewSignal(0)
	cleared := 0
	ctrl := New(container, signal,
		WithDebounce(10*time.Millisecond),
		WithOnClearFocus(func() {
			cleared++
			signal.Set(0)
		}),
	)
	defer ctrl.Close()

	signal.Set(2)
	require.True(t, ctrl.Debouncing())

	require.Eventually(t, func() bool { return !ctrl.Debouncing() }, time.Second, 5*time.Millisecond)

	ctrl.HandleScroll()
	assert.Equal(t, Cleared, ctrl.State())
	assert.Equal(t, 1, cleared)
}

package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const scrollFrame = 16 * time.Millisecond

// scrollStepMsg advances the animation started as generation gen. Ticks of
// an older generation are ignored.
type scrollStepMsg struct{ gen int }

func scrollTick(gen int) tea.Cmd {
	return tea.Tick(scrollFrame, func(time.Time) tea.Msg { return scrollStepMsg{gen: gen} })
}

// readerPane is the scrollable chapter region. It is the focus.Container of
// the reader: verse anchors map to the first line of each verse, and
// ScrollIntoView animates the viewport towards that line one frame at a
// time.
type readerPane struct {
	vp        viewport.Model
	anchors   map[string]int
	target    int
	scrolling bool
	gen       int
}

func newReaderPane() *readerPane {
	return &readerPane{vp: viewport.New(0, 0), anchors: map[string]int{}}
}

func (p *readerPane) ScrollMetrics() (scrollHeight, clientHeight int) {
	return p.vp.TotalLineCount(), p.vp.Height
}

func (p *readerPane) HasElement(id string) bool {
	_, ok := p.anchors[id]
	return ok
}

func (p *readerPane) ScrollIntoView(id string) {
	line, ok := p.anchors[id]
	if !ok {
		return
	}
	p.gen++
	p.target = min(line, p.maxOffset())
	p.scrolling = p.target != p.vp.YOffset
}

// setContent replaces the text and its anchors, keeping the scroll offset.
func (p *readerPane) setContent(content string, anchors map[string]int) {
	p.anchors = anchors
	p.vp.SetContent(content)
}

func (p *readerPane) resize(width, height int) {
	p.vp.Width = width
	p.vp.Height = max(height, 1)
}

// step advances a running scroll animation by one frame, easing out. It
// reports whether the offset moved.
func (p *readerPane) step() bool {
	if !p.scrolling {
		return false
	}

	from := p.vp.YOffset
	dist := p.target - from
	if dist == 0 {
		p.scrolling = false
		return false
	}

	delta := dist / 3
	if delta == 0 {
		delta = sign(dist)
	}
	p.vp.SetYOffset(from + delta)

	if p.vp.YOffset == p.target || p.vp.YOffset == from {
		p.scrolling = false
	}
	return p.vp.YOffset != from
}

// stop cancels a running animation, e.g. when the user takes over.
func (p *readerPane) stop() {
	p.gen++
	p.scrolling = false
}

func (p *readerPane) maxOffset() int {
	return max(0, p.vp.TotalLineCount()-p.vp.Height)
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}

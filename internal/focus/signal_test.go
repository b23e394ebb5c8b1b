package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalNotifiesOnChangeOnly(t *testing.T) {
	s := NewSignal(0)
	var got []int
	unsubscribe := s.Subscribe(func(v int) { got = append(got, v) })

	s.Set(3)
	s.Set(3)
	s.Set(-5)
	s.Set(0)
	s.Set(12)

	assert.Equal(t, []int{3, 0, 12}, got)
	assert.Equal(t, 12, s.Get())

	unsubscribe()
	unsubscribe()
	s.Set(4)
	assert.Equal(t, []int{3, 0, 12}, got)
	assert.Equal(t, 0, s.Listeners())
}

func TestSignalListenerMaySet(t *testing.T) {
	s := NewSignal(0)
	var seen []int
	s.Subscribe(func(v int) {
		seen = append(seen, v)
		if v > 0 {
			s.Set(0)
		}
	})

	s.Set(9)

	assert.Equal(t, []int{9, 0}, seen)
	assert.Equal(t, 0, s.Get())
}

func TestNewSignalClampsNegative(t *testing.T) {
	assert.Equal(t, 0, NewSignal(-2).Get())
	assert.Equal(t, 2, NewSignal(2).Get())
}

package filter

import (
	"github.com/asecurityteam/rolling"
	"github.com/markusressel/heat2go/internal/util"
)

// SampleBuffer holds the last N temperature samples, written circularly.
// It is "filled" once N samples have been written, which is latched and never reset.
type SampleBuffer struct {
	window *rolling.PointPolicy
	size   int
	// next write position, always in [0, size)
	index  int
	filled bool
}

func NewSampleBuffer(size int) *SampleBuffer {
	return &SampleBuffer{
		window: util.CreateRollingWindow(size),
		size:   size,
	}
}

// Append writes the value at the current position and advances it.
// Returns true if this write completed a full cycle of the buffer.
func (b *SampleBuffer) Append(value float64) (wrapped bool) {
	b.window.Append(value)
	b.index = (b.index + 1) % b.size
	if b.index == 0 {
		b.filled = true
		return true
	}
	return false
}

func (b *SampleBuffer) IsFilled() bool {
	return b.filled
}

func (b *SampleBuffer) Index() int {
	return b.index
}

func (b *SampleBuffer) Size() int {
	return b.size
}

// Sorted returns a sorted copy of the buffer content
func (b *SampleBuffer) Sorted() []float64 {
	return util.GetSortedWindowValues(b.window)
}

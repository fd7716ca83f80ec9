package hud

import "time"

// windowSize is the number of frames averaged by FrameTimes.
const windowSize = 20

// FrameTimes keeps a rolling average over the most recent frame durations.
// The zero value is ready to use.
type FrameTimes struct {
	samples [windowSize]time.Duration
	n       int
	next    int
	sum     time.Duration
}

// Push records one frame duration, evicting the oldest once the window is full.
func (f *FrameTimes) Push(d time.Duration) {
	if f.n == windowSize {
		f.sum -= f.samples[f.next]
	} else {
		f.n++
	}
	f.samples[f.next] = d
	f.sum += d
	f.next = (f.next + 1) % windowSize
}

// Average returns the mean of the recorded samples, or 0 if there are none.
func (f *FrameTimes) Average() time.Duration {
	if f.n == 0 {
		return 0
	}
	return f.sum / time.Duration(f.n)
}

// Len returns the number of samples in the window.
func (f *FrameTimes) Len() int {
	return f.n
}

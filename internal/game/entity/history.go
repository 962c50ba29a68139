package entity

import "github.com/Faultbox/sakura-forest/pkg/math"

// PathSample is one recorded position.
type PathSample struct {
	Position math.Vec3
	Time     float64 // Simulation seconds
}

// PathHistory is a fixed-capacity FIFO of position samples.
// When full, recording a new sample evicts the oldest one.
type PathHistory struct {
	samples []PathSample
	head    int // Index of the oldest sample
	count   int
}

// NewPathHistory creates an empty history holding at most capacity samples.
func NewPathHistory(capacity int) *PathHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &PathHistory{samples: make([]PathSample, capacity)}
}

// Record appends a sample.
func (h *PathHistory) Record(pos math.Vec3, t float64) {
	capacity := len(h.samples)
	if h.count < capacity {
		h.samples[(h.head+h.count)%capacity] = PathSample{pos, t}
		h.count++
		return
	}
	h.samples[h.head] = PathSample{pos, t}
	h.head = (h.head + 1) % capacity
}

// Len returns the number of samples held.
func (h *PathHistory) Len() int {
	return h.count
}

// Cap returns the maximum number of samples held.
func (h *PathHistory) Cap() int {
	return len(h.samples)
}

// Oldest returns the first sample still retained.
func (h *PathHistory) Oldest() (PathSample, bool) {
	if h.count == 0 {
		return PathSample{}, false
	}
	return h.samples[h.head], true
}

// Latest returns the most recent sample.
func (h *PathHistory) Latest() (PathSample, bool) {
	if h.count == 0 {
		return PathSample{}, false
	}
	return h.samples[(h.head+h.count-1)%len(h.samples)], true
}

// Samples returns a copy of the history, oldest first.
func (h *PathHistory) Samples() []PathSample {
	out := make([]PathSample, h.count)
	for i := range out {
		out[i] = h.samples[(h.head+i)%len(h.samples)]
	}
	return out
}

// Clear drops every sample.
func (h *PathHistory) Clear() {
	h.head = 0
	h.count = 0
}

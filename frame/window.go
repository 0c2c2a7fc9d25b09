// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame implements per-frame timing measurement: a rolling
// window of frame samples and a monitor that detects sustained frame
// rate drops. All operations are O(1) and run on the render thread
// inside the host's per-frame callback.
package frame

import "time"

// Sample is one frame timing measurement. Samples are ephemeral:
// produced once per frame, consumed into the rolling window, then
// discarded.
type Sample struct {

	// Time is the frame timestamp.
	Time time.Time

	// Duration is the time since the previous accepted frame.
	Duration time.Duration

	// FPS is the instantaneous frame rate implied by Duration.
	FPS float64
}

// DefaultWindowSize is the default rolling window capacity:
// 180 samples is about 3 seconds at 60 FPS.
const DefaultWindowSize = 180

// Window is a fixed-capacity ring buffer of recent frame samples,
// with a running duration sum for O(1) average computation.
// It always holds the most recent <= capacity samples.
type Window struct {
	samples []Sample
	head    int // next write position
	n       int // number of valid samples
	sum     time.Duration
}

// NewWindow returns a new rolling window with the given capacity,
// or [DefaultWindowSize] if capacity is <= 0.
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	return &Window{samples: make([]Sample, capacity)}
}

// Add adds a sample, evicting the oldest if the window is full.
func (w *Window) Add(s Sample) {
	if w.n == len(w.samples) {
		w.sum -= w.samples[w.head].Duration
	} else {
		w.n++
	}
	w.sum += s.Duration
	w.samples[w.head] = s
	w.head = (w.head + 1) % len(w.samples)
}

// Len returns the number of samples currently held.
func (w *Window) Len() int {
	return w.n
}

// AverageFPS returns the mean frame rate over the window:
// the number of samples divided by their total duration.
// It returns 0 for an empty window.
func (w *Window) AverageFPS() float64 {
	if w.n == 0 || w.sum <= 0 {
		return 0
	}
	return float64(w.n) / w.sum.Seconds()
}

// Reset empties the window.
func (w *Window) Reset() {
	w.head = 0
	w.n = 0
	w.sum = 0
}

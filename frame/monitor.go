// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import "time"

// DefaultSustainedFrames is the default number of consecutive
// below-threshold frames required to report a sustained drop.
const DefaultSustainedFrames = 180

// DropFunc is called when the frame rate has stayed below the
// threshold for the required number of consecutive frames.
// It receives the rolling-average FPS at the time of the crossing.
type DropFunc func(averageFPS float64)

// Monitor samples frame timestamps and detects sustained frame-rate
// drops. It must be driven from the render thread, once per rendered
// frame, via [Monitor.OnFrame].
type Monitor struct {

	// Threshold is the FPS below which a frame counts toward a
	// sustained drop. A threshold of 0 disables detection (used at
	// the terminal tier, where no downgrade target exists).
	Threshold float64

	// SustainedFrames is the consecutive-frame count required to
	// report a drop.
	SustainedFrames int

	// OnSustainedDrop is called exactly once per threshold crossing.
	// The low counter resets after firing, so the same dip cannot
	// re-trigger without first recovering and degrading again.
	OnSustainedDrop DropFunc

	window   *Window
	last     time.Time
	current  float64 // instantaneous FPS of the last accepted sample
	lowCount int
}

// NewMonitor returns a new Monitor with the given rolling window
// capacity ([DefaultWindowSize] if <= 0) and
// [DefaultSustainedFrames].
func NewMonitor(windowSize int) *Monitor {
	return &Monitor{
		SustainedFrames: DefaultSustainedFrames,
		window:          NewWindow(windowSize),
	}
}

// OnFrame records a frame timestamp. It returns the resulting sample
// and true if the frame was accepted. The first frame only primes the
// monitor; non-monotonic or zero-delta timestamps (e.g. after a
// suspend/resume) are dropped without touching the rolling window or
// the sustained-drop counter.
func (mn *Monitor) OnFrame(t time.Time) (Sample, bool) {
	if mn.last.IsZero() {
		mn.last = t
		return Sample{}, false
	}
	dur := t.Sub(mn.last)
	if dur <= 0 {
		return Sample{}, false
	}
	mn.last = t

	s := Sample{Time: t, Duration: dur, FPS: float64(time.Second) / float64(dur)}
	mn.current = s.FPS
	mn.window.Add(s)

	if mn.Threshold > 0 && s.FPS < mn.Threshold {
		mn.lowCount++
		if mn.lowCount >= mn.sustainedFrames() {
			mn.lowCount = 0
			if mn.OnSustainedDrop != nil {
				mn.OnSustainedDrop(mn.window.AverageFPS())
			}
		}
	} else {
		mn.lowCount = 0
	}
	return s, true
}

// CurrentFPS returns the instantaneous FPS of the last accepted frame.
func (mn *Monitor) CurrentFPS() float64 {
	return mn.current
}

// AverageFPS returns the rolling window mean FPS.
func (mn *Monitor) AverageFPS() float64 {
	return mn.window.AverageFPS()
}

// SetThreshold sets the sustained-drop FPS threshold and resets the
// consecutive-low counter, so a tier change starts a fresh count.
func (mn *Monitor) SetThreshold(fps float64) {
	mn.Threshold = fps
	mn.lowCount = 0
}

func (mn *Monitor) sustainedFrames() int {
	if mn.SustainedFrames <= 0 {
		return DefaultSustainedFrames
	}
	return mn.SustainedFrames
}

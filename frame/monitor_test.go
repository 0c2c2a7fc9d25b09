// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testStart = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// feed runs n frames at the given FPS through the monitor,
// returning the last timestamp used.
func feed(mn *Monitor, from time.Time, n int, fps float64) time.Time {
	interval := time.Duration(float64(time.Second) / fps)
	t := from
	for i := 0; i < n; i++ {
		t = t.Add(interval)
		mn.OnFrame(t)
	}
	return t
}

func TestMonitorPriming(t *testing.T) {
	mn := NewMonitor(0)
	_, ok := mn.OnFrame(testStart)
	assert.False(t, ok, "first frame only primes the clock")
	s, ok := mn.OnFrame(testStart.Add(16 * time.Millisecond))
	assert.True(t, ok)
	assert.Equal(t, 16*time.Millisecond, s.Duration)
}

func TestMonitorRejectsBadTimestamps(t *testing.T) {
	mn := NewMonitor(0)
	mn.OnFrame(testStart)
	last := feed(mn, testStart, 10, 60)
	avg := mn.AverageFPS()

	_, ok := mn.OnFrame(last) // zero delta
	assert.False(t, ok)
	_, ok = mn.OnFrame(last.Add(-time.Second)) // non-monotonic
	assert.False(t, ok)
	assert.Equal(t, avg, mn.AverageFPS(), "window untouched by dropped samples")

	// the clock is not corrupted: the next good frame is measured
	// from the last accepted timestamp.
	s, ok := mn.OnFrame(last.Add(20 * time.Millisecond))
	assert.True(t, ok)
	assert.Equal(t, 20*time.Millisecond, s.Duration)
}

func TestMonitorAverage(t *testing.T) {
	mn := NewMonitor(0)
	mn.OnFrame(testStart)
	feed(mn, testStart, 60, 50)
	assert.InDelta(t, 50, mn.AverageFPS(), 0.1)
	assert.InDelta(t, 50, mn.CurrentFPS(), 0.1)
}

func TestMonitorWindowEviction(t *testing.T) {
	w := NewWindow(3)
	for i := 1; i <= 5; i++ {
		w.Add(Sample{Duration: time.Duration(i) * 10 * time.Millisecond})
	}
	assert.Equal(t, 3, w.Len())
	// samples 3,4,5 remain: 3 frames over 120ms = 25 fps
	assert.InDelta(t, 25, w.AverageFPS(), 0.01)
}

func TestMonitorSustainedDropBoundary(t *testing.T) {
	mn := NewMonitor(0)
	mn.SustainedFrames = 180
	mn.SetThreshold(55)
	fired := 0
	mn.OnSustainedDrop = func(avgFPS float64) { fired++ }

	mn.OnFrame(testStart)
	last := feed(mn, testStart, 179, 40)
	assert.Equal(t, 0, fired, "179 consecutive low frames must not trigger")

	feed(mn, last, 1, 40)
	assert.Equal(t, 1, fired, "the 180th frame must trigger")
}

func TestMonitorDropCounterResetOnRecovery(t *testing.T) {
	mn := NewMonitor(0)
	mn.SustainedFrames = 180
	mn.SetThreshold(55)
	fired := 0
	mn.OnSustainedDrop = func(avgFPS float64) { fired++ }

	mn.OnFrame(testStart)
	last := feed(mn, testStart, 179, 40)
	last = feed(mn, last, 1, 60) // one good frame resets the count
	last = feed(mn, last, 179, 40)
	assert.Equal(t, 0, fired)
	feed(mn, last, 1, 40)
	assert.Equal(t, 1, fired)
}

func TestMonitorFiresOncePerCrossing(t *testing.T) {
	mn := NewMonitor(0)
	mn.SustainedFrames = 180
	mn.SetThreshold(55)
	fired := 0
	mn.OnSustainedDrop = func(avgFPS float64) { fired++ }

	mn.OnFrame(testStart)
	last := feed(mn, testStart, 180, 40)
	assert.Equal(t, 1, fired)
	// the same dip keeps going: the counter restarted at zero, so it
	// takes another full run of low frames to fire again.
	last = feed(mn, last, 179, 40)
	assert.Equal(t, 1, fired)
	feed(mn, last, 1, 40)
	assert.Equal(t, 2, fired)
}

func TestMonitorThresholdZeroDisables(t *testing.T) {
	mn := NewMonitor(0)
	mn.SustainedFrames = 10
	mn.SetThreshold(0)
	fired := 0
	mn.OnSustainedDrop = func(avgFPS float64) { fired++ }
	mn.OnFrame(testStart)
	feed(mn, testStart, 100, 5)
	assert.Equal(t, 0, fired)
}

// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics aggregates the controller's counters into a
// read-only snapshot for external diagnostics. The render thread is
// the single writer; snapshots are published through an atomic
// pointer so any number of reader threads observe whole values only,
// never a torn update.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/viztier/viztier/tier"
)

// Snapshot is one read-only metrics aggregate. A Snapshot is never
// mutated after publication.
type Snapshot struct {

	// Time is when the snapshot was taken.
	Time time.Time `json:"time"`

	// CurrentFPS is the instantaneous frame rate.
	CurrentFPS float64 `json:"currentFPS"`

	// AverageFPS is the rolling window mean frame rate.
	AverageFPS float64 `json:"averageFPS"`

	// DrawCalls is the draw-call count of the last frame.
	DrawCalls int `json:"drawCalls"`

	// Triangles is the triangle count of the last frame.
	Triangles int `json:"triangles"`

	// MemoryEstimate is the estimated GPU memory held by live
	// resources, in bytes.
	MemoryEstimate int64 `json:"memoryEstimate"`

	// Tier is the current rendering tier.
	Tier tier.Tier `json:"tier"`

	// TierName is the human-readable tier name.
	TierName string `json:"tierName"`
}

// Sink holds the most recent [Snapshot]. The zero value is usable.
type Sink struct {
	cur atomic.Pointer[Snapshot]
}

// NewSink returns a new Sink seeded with an empty snapshot.
func NewSink() *Sink {
	sk := &Sink{}
	sk.Publish(&Snapshot{})
	return sk
}

// Publish atomically replaces the current snapshot. Render thread only.
// The caller must not mutate the snapshot after publishing it.
func (sk *Sink) Publish(sn *Snapshot) {
	sn.TierName = sn.Tier.String()
	sk.cur.Store(sn)
}

// Snapshot returns the most recently published snapshot.
// Safe to call from any thread.
func (sk *Sink) Snapshot() *Snapshot {
	sn := sk.cur.Load()
	if sn == nil {
		return &Snapshot{}
	}
	return sn
}

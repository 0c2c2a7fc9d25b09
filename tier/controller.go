// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tier

import (
	"log/slog"
	"sync/atomic"
)

// ChangeFunc is called synchronously on every tier transition,
// before control returns to the caller for that frame.
type ChangeFunc func(old, new Tier, reason string)

// Controller owns the current rendering tier and enforces the one-way
// auto-downgrade ratchet with manual override.
//
// All mutating methods must be called from the render thread. The
// current tier is additionally published through an atomic so that
// other threads (diagnostics, metrics publishers) can read a whole
// tier value at any time.
type Controller struct {

	// current is the atomically published current tier.
	current atomic.Int32

	// autoDowngrade is whether automatic downgrades are armed.
	// A manual override disarms it; [Controller.EnableAutoDowngrade]
	// re-arms it without changing the tier.
	autoDowngrade bool

	// listeners are invoked synchronously, in registration order,
	// on every transition.
	listeners []ChangeFunc

	// averageFPS is the most recently reported rolling-average FPS,
	// included in transition logs.
	averageFPS float64
}

// NewController returns a new [Controller] seeded with the given
// initial tier (normally from the capability probe), with automatic
// downgrades armed.
func NewController(initial Tier) *Controller {
	if !initial.IsValid() {
		initial = Static
	}
	ct := &Controller{autoDowngrade: true}
	ct.current.Store(int32(initial))
	return ct
}

// Current returns the current tier. Safe to call from any thread.
func (ct *Controller) Current() Tier {
	return Tier(ct.current.Load())
}

// Config returns the feature [Config] for the current tier.
func (ct *Controller) Config() Config {
	return FlagsFor(ct.Current())
}

// AutoDowngradeEnabled returns whether automatic downgrades are armed.
func (ct *Controller) AutoDowngradeEnabled() bool {
	return ct.autoDowngrade
}

// OnChange registers a listener called synchronously on every
// transition, manual or automatic.
func (ct *Controller) OnChange(fn ChangeFunc) {
	ct.listeners = append(ct.listeners, fn)
}

// SetAverageFPS records the latest rolling-average FPS, for inclusion
// in transition logs.
func (ct *Controller) SetAverageFPS(fps float64) {
	ct.averageFPS = fps
}

// SetTier is the manual override: it sets the tier to any value, in
// either direction, and disarms automatic downgrades until
// [Controller.EnableAutoDowngrade] is called. An override always wins
// over any pending automatic transition.
func (ct *Controller) SetTier(t Tier, reason string) {
	if !t.IsValid() {
		return
	}
	ct.autoDowngrade = false
	ct.transition(t, reason)
}

// EnableAutoDowngrade re-arms automatic downgrades without changing
// the current tier.
func (ct *Controller) EnableAutoDowngrade() {
	ct.autoDowngrade = true
}

// SustainedDrop reports a sustained frame-rate drop from the frame
// monitor. If automatic downgrades are armed and a lower tier exists,
// the controller moves down exactly one tier and returns true.
func (ct *Controller) SustainedDrop(averageFPS float64, reason string) bool {
	ct.averageFPS = averageFPS
	if !ct.autoDowngrade {
		return false
	}
	next, ok := ct.Current().Downgraded()
	if !ok {
		return false
	}
	ct.transition(next, reason)
	return true
}

// DowngradeTo applies an automatic transition to the given tier if
// automatic downgrades are armed and the target is strictly lower
// than the current tier. Used for mid-session events that force
// degradation, such as the system reduce-motion preference changing.
func (ct *Controller) DowngradeTo(t Tier, reason string) bool {
	if !ct.autoDowngrade || !t.IsValid() || t <= ct.Current() {
		return false
	}
	ct.transition(t, reason)
	return true
}

func (ct *Controller) transition(t Tier, reason string) {
	old := ct.Current()
	if t == old {
		return
	}
	ct.current.Store(int32(t))
	slog.Info("tier transition",
		"old", old, "new", t, "averageFPS", ct.averageFPS, "reason", reason)
	for _, fn := range ct.listeners {
		fn(old, t, reason)
	}
}

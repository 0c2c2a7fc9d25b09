// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package perf wires the capability probe, frame monitor, tier
// controller, scene optimizer, and metrics sink into one explicit
// [Context] object, constructed at application start and passed by
// reference to every consumer. There are no package-level globals:
// init happens in [New], teardown in [Context.Close].
package perf

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/viztier/viztier/base/errors"
	"github.com/viztier/viztier/capability"
	"github.com/viztier/viztier/frame"
	"github.com/viztier/viztier/metrics"
	"github.com/viztier/viztier/scene"
	"github.com/viztier/viztier/tier"
)

// Context is the performance controller's root object. All methods
// except the read-only metrics accessors must be called from the
// render thread; the current tier and metrics snapshots are published
// atomically for other threads.
type Context struct {

	// Caps is the immutable capability report from the boot probe.
	Caps capability.Capabilities

	// Tiers is the tier controller state machine.
	Tiers *tier.Controller

	// Monitor is the per-frame sampler.
	Monitor *frame.Monitor

	// Scene is the scene graph.
	Scene *scene.Scene

	// Optimizer performs culling, batching, disposal, and accounting.
	Optimizer *scene.Optimizer

	// Sink exposes metrics snapshots to diagnostics consumers.
	Sink *metrics.Sink

	// Options are the active tuning knobs.
	Options *Options

	frameN  int64
	watcher *fsnotify.Watcher

	// pending holds options reloaded off-thread by the watcher,
	// waiting to be applied by the render thread at the next frame.
	pending atomic.Pointer[Options]
}

// New constructs the controller context: it runs the capability probe
// exactly once, seeds the tier controller, and wires the frame
// monitor's sustained-drop events to automatic downgrades.
func New(opts *Options, q capability.Query, rn scene.Renderer) *Context {
	if opts == nil {
		opts = &Options{}
	}
	opts.Defaults()

	caps, initial := capability.Probe(q)
	if opts.ReduceMotion {
		caps.ReduceMotion = true
		initial = tier.Static
	}
	// reduce motion forces Static no matter what the options say
	if opts.InitialTier != "" && !caps.ReduceMotion {
		if t, ok := tier.FromString(opts.InitialTier); ok {
			initial = t
		} else {
			slog.Warn("perf: unknown initial tier in options", "value", opts.InitialTier)
		}
	}

	c := &Context{
		Caps:    caps,
		Tiers:   tier.NewController(initial),
		Monitor: frame.NewMonitor(opts.WindowSize),
		Sink:    metrics.NewSink(),
		Options: opts,
	}
	sc := scene.NewScene(rn)
	c.Scene = sc
	c.Optimizer = scene.NewOptimizer(sc, rn)
	c.Optimizer.DrawCallCeiling = opts.DrawCallCeiling

	c.Monitor.SustainedFrames = opts.SustainedFrames
	c.Monitor.SetThreshold(opts.ThresholdFor(initial))
	c.Monitor.OnSustainedDrop = func(avgFPS float64) {
		c.Tiers.SustainedDrop(avgFPS, "sustained low fps")
	}
	// keep the monitor threshold in step with the tier; registered
	// first so external listeners see consistent state.
	c.Tiers.OnChange(func(old, new tier.Tier, reason string) {
		c.Monitor.SetThreshold(opts.ThresholdFor(new))
	})
	return c
}

// Frame runs the per-frame pipeline for the given timestamp: apply
// any pending options reload, sample the frame clock (which may
// trigger a downgrade, observed by all later consumers in this frame
// as the whole new tier), run the culling pass on the tier's cadence,
// submit draws, and refresh the metrics snapshot on its cadence.
func (c *Context) Frame(now time.Time) {
	if opts := c.pending.Swap(nil); opts != nil {
		c.applyOptions(opts)
	}
	c.Monitor.OnFrame(now)
	c.Tiers.SetAverageFPS(c.Monitor.AverageFPS())

	cur := c.Tiers.Current()
	c.Optimizer.FrameCull(cur)
	c.Optimizer.Render()
	st := c.Optimizer.Stats()

	c.frameN++
	if c.frameN%int64(c.Options.SnapshotFrames) == 0 {
		c.Sink.Publish(&metrics.Snapshot{
			Time:           now,
			CurrentFPS:     c.Monitor.CurrentFPS(),
			AverageFPS:     c.Monitor.AverageFPS(),
			DrawCalls:      st.DrawCalls,
			Triangles:      st.Triangles,
			MemoryEstimate: st.MemoryBytes,
			Tier:           cur,
		})
	}
}

// Config returns the feature flags for the current tier.
func (c *Context) Config() tier.Config {
	return c.Tiers.Config()
}

// SetTier is the manual tier override; it disarms automatic
// downgrades until [Context.EnableAutoDowngrade] is called.
func (c *Context) SetTier(t tier.Tier) {
	c.Tiers.SetTier(t, "manual override")
}

// EnableAutoDowngrade re-arms automatic downgrades without changing
// the current tier.
func (c *Context) EnableAutoDowngrade() {
	c.Tiers.EnableAutoDowngrade()
}

// WatchOptions watches the given TOML options file and applies
// changes as they are saved. The watcher goroutine only parses the
// file and hands the result to the render thread, which applies it at
// the start of the next [Context.Frame]; monitor, controller, and
// optimizer state stay single-writer. A reduce-motion preference
// turning on mid-session downgrades to Static, unless a manual
// override is active, in which case the preference change is ignored.
func (c *Context) WatchOptions(filename string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filename); err != nil {
		w.Close()
		return err
	}
	c.watcher = w
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					c.reloadOptions(filename)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Error("perf: options watch error", "err", err)
			}
		}
	}()
	return nil
}

// reloadOptions parses a changed options file off-thread and stashes
// the result for the render thread. Only the latest reload survives
// a burst of file events.
func (c *Context) reloadOptions(filename string) {
	opts, err := OpenOptions(filename)
	if errors.Log(err) != nil {
		return
	}
	c.pending.Store(opts)
}

// applyOptions applies a reloaded options value. Render thread only.
// Thresholds and budgets take effect immediately; only the
// reduce-motion flag can move the tier, and only downward.
func (c *Context) applyOptions(opts *Options) {
	c.Options = opts
	c.Optimizer.DrawCallCeiling = opts.DrawCallCeiling
	c.Monitor.SustainedFrames = opts.SustainedFrames
	c.Monitor.SetThreshold(opts.ThresholdFor(c.Tiers.Current()))
	if opts.ReduceMotion {
		c.Tiers.DowngradeTo(tier.Static, "reduce motion preference")
	}
}

// Close tears down the controller: it stops any options watcher and
// releases all scene resources.
func (c *Context) Close() {
	if c.watcher != nil {
		errors.Log(c.watcher.Close())
		c.watcher = nil
	}
	c.Optimizer.Teardown()
}

// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perf

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viztier/viztier/capability"
	"github.com/viztier/viztier/scene"
	"github.com/viztier/viztier/tier"
)

var testStart = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func lowEndQuery() capability.Query {
	return capability.StaticQuery{Caps: capability.Capabilities{
		Vendor:   "Intel",
		Renderer: "Intel(R) HD Graphics 620",
	}}
}

func highEndQuery() capability.Query {
	return capability.StaticQuery{Caps: capability.Capabilities{
		Vendor:   "NVIDIA Corporation",
		Renderer: "NVIDIA GeForce RTX 3060",
		Extensions: capability.Extensions{
			FloatTextures: true,
			Instancing:    true,
		},
	}}
}

// run feeds n frames at the given FPS, returning the last timestamp.
func run(c *Context, from time.Time, n int, fps float64) time.Time {
	interval := time.Duration(float64(time.Second) / fps)
	t := from
	for i := 0; i < n; i++ {
		t = t.Add(interval)
		c.Frame(t)
	}
	return t
}

func TestBootLowEnd(t *testing.T) {
	c := New(nil, lowEndQuery(), scene.NewCounter())
	defer c.Close()
	assert.Equal(t, tier.Static, c.Tiers.Current())
	assert.False(t, c.Config().Tilt)
}

func TestBootHighEnd(t *testing.T) {
	c := New(nil, highEndQuery(), scene.NewCounter())
	defer c.Close()
	assert.Equal(t, tier.Full, c.Tiers.Current())
	assert.True(t, c.Config().Tilt)
}

func TestHealthyFPSNeverDowngrades(t *testing.T) {
	c := New(nil, highEndQuery(), scene.NewCounter())
	defer c.Close()
	c.Frame(testStart) // prime the clock
	run(c, testStart, 1000, 60)
	assert.Equal(t, tier.Full, c.Tiers.Current())
}

func TestSustainedDropAtExactly180(t *testing.T) {
	opts := &Options{InitialTier: "lite"}
	c := New(opts, lowEndQuery(), scene.NewCounter())
	defer c.Close()
	assert.Equal(t, tier.Lite, c.Tiers.Current(),
		"options initial tier overrides the probe but keeps auto armed")

	c.Frame(testStart)
	last := run(c, testStart, 179, 40)
	assert.Equal(t, tier.Lite, c.Tiers.Current(), "179 low samples must not downgrade")

	last = run(c, last, 1, 40)
	assert.Equal(t, tier.Static, c.Tiers.Current(), "the 180th sample downgrades")

	// Static is terminal: 40 FPS forever changes nothing more
	run(c, last, 200, 40)
	assert.Equal(t, tier.Static, c.Tiers.Current())
}

func TestFullDegradesStepwise(t *testing.T) {
	c := New(nil, highEndQuery(), scene.NewCounter())
	defer c.Close()

	c.Frame(testStart)
	// 50 FPS is below the Full threshold (55) but above Lite's (45):
	// one downgrade, then stable.
	last := run(c, testStart, 180, 50)
	assert.Equal(t, tier.Lite, c.Tiers.Current())
	last = run(c, last, 600, 50)
	assert.Equal(t, tier.Lite, c.Tiers.Current())

	// dropping to 40 FPS crosses Lite's threshold
	run(c, last, 180, 40)
	assert.Equal(t, tier.Static, c.Tiers.Current())
}

func TestManualOverrideFreezesAuto(t *testing.T) {
	c := New(nil, highEndQuery(), scene.NewCounter())
	defer c.Close()

	c.SetTier(tier.Full)
	c.Frame(testStart)
	last := run(c, testStart, 500, 30)
	assert.Equal(t, tier.Full, c.Tiers.Current(), "no auto-downgrade while overridden")

	c.EnableAutoDowngrade()
	run(c, last, 180, 30)
	assert.Equal(t, tier.Lite, c.Tiers.Current())
}

func TestTierChangeListener(t *testing.T) {
	c := New(nil, highEndQuery(), scene.NewCounter())
	defer c.Close()

	var transitions []tier.Tier
	c.Tiers.OnChange(func(old, new tier.Tier, reason string) {
		transitions = append(transitions, new)
	})

	c.Frame(testStart)
	run(c, testStart, 400, 30)
	assert.Equal(t, []tier.Tier{tier.Lite, tier.Static}, transitions,
		"30 FPS crosses both thresholds, one tier per 180-frame run")
}

func TestSnapshotCadence(t *testing.T) {
	c := New(&Options{SnapshotFrames: 30}, highEndQuery(), scene.NewCounter())
	defer c.Close()

	mesh := &scene.Mesh{Name: "box", NumVertex: 24, NumIndex: 36}
	c.Scene.AddMesh(mesh)
	nd := &scene.Node{Name: "n", Mesh: "box"}
	nd.Matrix.SetTranslation(0, 0, -10)
	c.Scene.AddNode(nd)

	c.Frame(testStart)
	run(c, testStart, 60, 60)

	sn := c.Sink.Snapshot()
	assert.Equal(t, tier.Full, sn.Tier)
	assert.InDelta(t, 60, sn.CurrentFPS, 0.5)
	assert.InDelta(t, 60, sn.AverageFPS, 0.5)
	assert.Equal(t, 1, sn.DrawCalls)
	assert.Equal(t, int64(24*32+36*4), sn.MemoryEstimate)
}

func TestReduceMotionOption(t *testing.T) {
	c := New(&Options{ReduceMotion: true}, highEndQuery(), scene.NewCounter())
	defer c.Close()
	assert.Equal(t, tier.Static, c.Tiers.Current())
	assert.True(t, c.Caps.ReduceMotion)
}

func TestReduceMotionBeatsInitialTier(t *testing.T) {
	c := New(&Options{ReduceMotion: true, InitialTier: "full"},
		highEndQuery(), scene.NewCounter())
	defer c.Close()
	assert.Equal(t, tier.Static, c.Tiers.Current(),
		"reduce motion forces Static regardless of the configured initial tier")

	q := capability.StaticQuery{Caps: capability.Capabilities{
		Vendor:       "NVIDIA Corporation",
		Renderer:     "NVIDIA GeForce RTX 3060",
		ReduceMotion: true,
	}}
	c2 := New(&Options{InitialTier: "full"}, q, scene.NewCounter())
	defer c2.Close()
	assert.Equal(t, tier.Static, c2.Tiers.Current(),
		"a probed reduce-motion preference also wins over the options")
}

func TestWatchOptionsAppliedOnFrame(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "perf.toml")
	assert.NoError(t, os.WriteFile(fn, []byte("draw_call_ceiling = 120\n"), 0o644))

	c := New(nil, highEndQuery(), scene.NewCounter())
	defer c.Close()
	assert.NoError(t, c.WatchOptions(fn))

	assert.NoError(t, os.WriteFile(fn,
		[]byte("draw_call_ceiling = 300\nreduce_motion = true\n"), 0o644))

	// reloads only take effect when the render thread runs a frame
	now := testStart
	deadline := time.Now().Add(5 * time.Second)
	for c.Optimizer.DrawCallCeiling != 300 && time.Now().Before(deadline) {
		now = now.Add(16 * time.Millisecond)
		c.Frame(now)
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, 300, c.Optimizer.DrawCallCeiling)
	assert.Equal(t, tier.Static, c.Tiers.Current(),
		"reduce motion turning on mid-session downgrades at the next frame")
}

func TestWatchOptionsConcurrentFrames(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "perf.toml")
	assert.NoError(t, os.WriteFile(fn, []byte("draw_call_ceiling = 120\n"), 0o644))

	c := New(nil, highEndQuery(), scene.NewCounter())
	defer c.Close()
	assert.NoError(t, c.WatchOptions(fn))

	// hammer the watched file while the render loop keeps framing;
	// the watcher must never touch monitor or controller state itself
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			ceiling := 150 + (i%2)*50
			os.WriteFile(fn,
				[]byte("draw_call_ceiling = "+strconv.Itoa(ceiling)+"\n"), 0o644)
			time.Sleep(time.Millisecond)
		}
	}()

	now := testStart
	for i := 0; i < 500; i++ {
		now = now.Add(16 * time.Millisecond)
		c.Frame(now)
	}
	close(done)
	wg.Wait()

	assert.Equal(t, tier.Full, c.Tiers.Current())
	assert.Contains(t, []int{120, 150, 200}, c.Optimizer.DrawCallCeiling)
}

// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perf

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/viztier/viztier/frame"
	"github.com/viztier/viztier/scene"
	"github.com/viztier/viztier/tier"
)

// Options are the external tuning knobs for the performance
// controller, loadable from a TOML file. Zero values mean "use the
// default"; [Options.Defaults] fills them in.
type Options struct {

	// InitialTier overrides the probed initial tier when non-empty
	// ("full", "lite", or "static"). Unlike a manual override at
	// runtime, it leaves automatic downgrades armed.
	InitialTier string `toml:"initial_tier"`

	// FullToLiteFPS is the FPS threshold below which sustained
	// operation at the Full tier degrades to Lite.
	FullToLiteFPS float64 `toml:"full_to_lite_fps"`

	// LiteToStaticFPS is the FPS threshold below which sustained
	// operation at the Lite tier degrades to Static.
	LiteToStaticFPS float64 `toml:"lite_to_static_fps"`

	// SustainedFrames is the consecutive below-threshold frame count
	// required to trigger a downgrade.
	SustainedFrames int `toml:"sustained_frames"`

	// WindowSize is the rolling FPS window capacity in samples.
	WindowSize int `toml:"window_size"`

	// DrawCallCeiling is the per-frame draw-call budget; exceeding it
	// is logged as a warning only.
	DrawCallCeiling int `toml:"draw_call_ceiling"`

	// SnapshotFrames is how often, in frames, a metrics snapshot is
	// published.
	SnapshotFrames int `toml:"snapshot_frames"`

	// ReduceMotion reflects the system reduce-motion preference as
	// seen by the host's configuration layer; when set it forces the
	// Static tier.
	ReduceMotion bool `toml:"reduce_motion"`
}

// Defaults fills any zero-valued fields with the standard defaults.
func (op *Options) Defaults() {
	if op.FullToLiteFPS == 0 {
		op.FullToLiteFPS = 55
	}
	if op.LiteToStaticFPS == 0 {
		op.LiteToStaticFPS = 45
	}
	if op.SustainedFrames == 0 {
		op.SustainedFrames = frame.DefaultSustainedFrames
	}
	if op.WindowSize == 0 {
		op.WindowSize = frame.DefaultWindowSize
	}
	if op.DrawCallCeiling == 0 {
		op.DrawCallCeiling = scene.DefaultDrawCallCeiling
	}
	if op.SnapshotFrames == 0 {
		op.SnapshotFrames = 30
	}
}

// ThresholdFor returns the sustained-drop FPS threshold in effect at
// the given tier: the Full to Lite threshold at Full, the Lite to
// Static threshold at Lite, and 0 (detection disabled) at Static,
// which has no downgrade target.
func (op *Options) ThresholdFor(t tier.Tier) float64 {
	switch t {
	case tier.Full:
		return op.FullToLiteFPS
	case tier.Lite:
		return op.LiteToStaticFPS
	default:
		return 0
	}
}

// OpenOptions reads Options from the given TOML file and applies
// defaults to unset fields.
func OpenOptions(filename string) (*Options, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	op := &Options{}
	if err := toml.Unmarshal(b, op); err != nil {
		return nil, err
	}
	op.Defaults()
	return op, nil
}

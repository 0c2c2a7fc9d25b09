// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tier

// Config is the immutable per-tier feature configuration. A tier
// change always yields a whole new Config value; Configs are never
// edited in place.
type Config struct {

	// Tilt is whether the pointer-tilt effect on cards is enabled.
	Tilt bool

	// Parallax is whether background parallax layers are enabled.
	Parallax bool

	// EmissivePulse is whether pulsing emissive highlights are enabled.
	EmissivePulse bool

	// CameraTransitions is whether animated camera transition effects
	// are enabled.
	CameraTransitions bool

	// TargetFPS is the frame rate the renderer aims for at this tier.
	TargetFPS int
}

// configs is the fixed tier to feature mapping.
var configs = [TierN]Config{
	Full:   {Tilt: true, Parallax: true, EmissivePulse: true, CameraTransitions: true, TargetFPS: 60},
	Lite:   {Tilt: false, Parallax: true, EmissivePulse: true, CameraTransitions: true, TargetFPS: 55},
	Static: {Tilt: false, Parallax: false, EmissivePulse: false, CameraTransitions: false, TargetFPS: 30},
}

// FlagsFor returns the feature [Config] for the given tier.
// It is a pure function of its argument. Invalid tiers get the
// [Static] configuration.
func FlagsFor(t Tier) Config {
	if !t.IsValid() {
		return configs[Static]
	}
	return configs[t]
}

// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tier implements the discrete rendering-quality tiers and the
// controller state machine that moves between them. Automatic
// transitions form a one-way ratchet toward [Static]: recovery requires
// an explicit operator action, which avoids flapping between tiers near
// a threshold boundary.
package tier

import "strings"

// Tier is a discrete rendering-quality level. Tiers are ordered from
// richest ([Full]) to most degraded ([Static]); automatic transitions
// only ever move toward Static.
type Tier int32

const (
	// Full enables all visual features, targeting 60 FPS.
	Full Tier = iota

	// Lite disables the most expensive effects, targeting 55 FPS.
	Lite

	// Static disables all motion effects, targeting 30 FPS.
	// It is terminal for automatic transitions.
	Static

	// TierN is the number of tiers.
	TierN
)

var tierNames = [TierN]string{"Full", "Lite", "Static"}

func (t Tier) String() string {
	if t < Full || t >= TierN {
		return "Tier(invalid)"
	}
	return tierNames[t]
}

// FromString returns the tier named by the given string
// (case-insensitive), and whether the name was recognized.
func FromString(name string) (Tier, bool) {
	for i, nm := range tierNames {
		if strings.EqualFold(nm, name) {
			return Tier(i), true
		}
	}
	return Static, false
}

// IsValid returns whether the tier is one of the defined levels.
func (t Tier) IsValid() bool {
	return t >= Full && t < TierN
}

// Downgraded returns the next tier down from this one, and whether
// a further downgrade exists ([Static] is terminal).
func (t Tier) Downgraded() (Tier, bool) {
	if t >= Static {
		return Static, false
	}
	return t + 1, true
}

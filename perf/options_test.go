// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viztier/viztier/tier"
)

func TestOptionsDefaults(t *testing.T) {
	op := &Options{}
	op.Defaults()
	assert.Equal(t, 55.0, op.FullToLiteFPS)
	assert.Equal(t, 45.0, op.LiteToStaticFPS)
	assert.Equal(t, 180, op.SustainedFrames)
	assert.Equal(t, 180, op.WindowSize)
	assert.Equal(t, 120, op.DrawCallCeiling)
	assert.Equal(t, 30, op.SnapshotFrames)
}

func TestOptionsThresholdFor(t *testing.T) {
	op := &Options{}
	op.Defaults()
	assert.Equal(t, 55.0, op.ThresholdFor(tier.Full))
	assert.Equal(t, 45.0, op.ThresholdFor(tier.Lite))
	assert.Equal(t, 0.0, op.ThresholdFor(tier.Static), "no downgrade target at Static")
}

func TestOpenOptions(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "perf.toml")
	src := `
initial_tier = "lite"
full_to_lite_fps = 50
draw_call_ceiling = 200
reduce_motion = true
`
	assert.NoError(t, os.WriteFile(fn, []byte(src), 0o644))

	op, err := OpenOptions(fn)
	assert.NoError(t, err)
	assert.Equal(t, "lite", op.InitialTier)
	assert.Equal(t, 50.0, op.FullToLiteFPS)
	assert.Equal(t, 200, op.DrawCallCeiling)
	assert.True(t, op.ReduceMotion)
	// unset fields get defaults
	assert.Equal(t, 45.0, op.LiteToStaticFPS)
	assert.Equal(t, 180, op.SustainedFrames)
}

func TestOpenOptionsMissingFile(t *testing.T) {
	_, err := OpenOptions(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viztier/viztier/tier"
)

func allExtensions() Extensions {
	return Extensions{
		FloatTextures:      true,
		Anisotropy:         true,
		Instancing:         true,
		CompressedTextures: true,
	}
}

func TestProbeNilQuery(t *testing.T) {
	caps, initial := Probe(nil)
	assert.True(t, caps.Unknown)
	assert.Equal(t, tier.Static, initial)
}

func TestProbeQueryError(t *testing.T) {
	q := QueryFunc(func() (Capabilities, error) {
		return Capabilities{}, errors.New("no graphics context")
	})
	caps, initial := Probe(q)
	assert.True(t, caps.Unknown)
	assert.Equal(t, tier.Static, initial)
}

func TestProbeQueryPanic(t *testing.T) {
	q := QueryFunc(func() (Capabilities, error) {
		panic("extension query on dead context")
	})
	caps, initial := Probe(q)
	assert.True(t, caps.Unknown)
	assert.Equal(t, tier.Static, initial)
}

func TestProbeReduceMotion(t *testing.T) {
	q := StaticQuery{Caps: Capabilities{
		Vendor:       "NVIDIA Corporation",
		Renderer:     "NVIDIA GeForce RTX 4090",
		Extensions:   allExtensions(),
		ReduceMotion: true,
	}}
	_, initial := Probe(q)
	assert.Equal(t, tier.Static, initial, "reduce motion wins regardless of hardware")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		vendor   string
		renderer string
		ext      Extensions
		want     tier.Tier
	}{
		{"discrete nvidia", "NVIDIA Corporation", "NVIDIA GeForce RTX 3060", allExtensions(), tier.Full},
		{"apple silicon", "Apple", "Apple M2 Pro", allExtensions(), tier.Full},
		{"radeon discrete", "AMD", "AMD Radeon RX 6700 XT", allExtensions(), tier.Full},
		{"high-end name, missing extensions", "NVIDIA Corporation", "NVIDIA GeForce GTX 960", Extensions{}, tier.Lite},
		{"intel integrated", "Intel", "Intel(R) HD Graphics 620", allExtensions(), tier.Static},
		{"uhd integrated", "Intel", "UHD Graphics 630", allExtensions(), tier.Static},
		{"software rasterizer", "Google Inc.", "SwiftShader", allExtensions(), tier.Static},
		{"llvmpipe", "Mesa", "llvmpipe (LLVM 15.0.7)", Extensions{}, tier.Static},
		{"unrecognized hardware", "Acme", "Acme FastGPU 9000", allExtensions(), tier.Lite},
		{"masked strings", "", "", allExtensions(), tier.Lite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(Capabilities{
				Vendor:     tt.vendor,
				Renderer:   tt.renderer,
				Extensions: tt.ext,
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	assert.Equal(t, tier.Static, Classify(Capabilities{Unknown: true}))
}

// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package capability implements the one-shot hardware capability probe
// that classifies the initial rendering tier at startup. The actual
// graphics-API introspection lives behind the [Query] interface, with
// one implementation per target API (Vulkan, Metal, D3D, OpenGL) all
// sharing the same classification contract. Probing never fails
// fatally: missing or erroring capability data degrades to the
// [tier.Static] tier instead of crashing.
package capability

import "image"

// Extensions is the set of optional graphics features the device
// driver reports support for.
type Extensions struct {

	// FloatTextures is support for floating point texture formats.
	FloatTextures bool

	// Anisotropy is support for anisotropic texture filtering.
	Anisotropy bool

	// Instancing is support for hardware instanced drawing.
	Instancing bool

	// CompressedTextures is support for GPU compressed texture formats.
	CompressedTextures bool
}

// Capabilities is the hardware and driver capability report gathered
// once at boot. Vendor and renderer strings are best-effort: drivers
// and privacy layers may mask or omit them, in which case they are
// empty and Unknown is set. Immutable after the probe.
type Capabilities struct {

	// APIVersion is the graphics API version string, such as "Vulkan 1.3".
	APIVersion string

	// Vendor is the GPU vendor identifier string, if available.
	Vendor string

	// Renderer is the GPU renderer/device identifier string, if available.
	Renderer string

	// Extensions is the supported extension set.
	Extensions Extensions

	// MaxTextureSize is the maximum supported texture dimension in pixels.
	MaxTextureSize int

	// DevicePixelRatio is the display scaling factor.
	DevicePixelRatio float32

	// ScreenSize is the screen resolution in physical pixels.
	ScreenSize image.Point

	// ReduceMotion is the system "reduce motion" accessibility
	// preference at probe time.
	ReduceMotion bool

	// Unknown indicates the underlying query failed and the other
	// fields carry no real information.
	Unknown bool
}

// Query is the platform-neutral capability query interface.
// Implementations wrap a concrete graphics API's introspection calls
// and may return an error (or panic) when the context is unavailable;
// [Probe] converts both into a degraded report.
type Query interface {
	Capabilities() (Capabilities, error)
}

// QueryFunc adapts a plain function to the [Query] interface.
type QueryFunc func() (Capabilities, error)

func (f QueryFunc) Capabilities() (Capabilities, error) {
	return f()
}

// StaticQuery is a [Query] returning a fixed [Capabilities] value,
// for tests and configuration-driven overrides.
type StaticQuery struct {
	Caps Capabilities
}

func (sq StaticQuery) Capabilities() (Capabilities, error) {
	return sq.Caps, nil
}

// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "image"

// RenderStats is the renderer's internal counter snapshot. It is
// recomputed on every query and exposed transiently through the
// metrics sink; it is diagnostic signal only and never drives tier
// changes.
type RenderStats struct {

	// DrawCalls is the number of draw submissions in the last frame.
	DrawCalls int

	// Triangles is the number of triangles submitted in the last frame.
	Triangles int

	// LiveGeometries is the number of mesh buffers currently resident
	// on the GPU.
	LiveGeometries int

	// LiveTextures is the number of textures currently resident.
	LiveTextures int

	// LivePrograms is the number of shader programs currently resident.
	LivePrograms int

	// MemoryBytes is an estimate of GPU memory held by live resources.
	MemoryBytes int64
}

// Renderer is the host GPU renderer abstraction. The controller only
// needs resource upload/release and draw accounting; the actual
// drawing backend (WebGPU, OpenGL, a software rasterizer) lives in
// the host application.
type Renderer interface {

	// UploadMesh makes an indexed triangle mesh resident.
	UploadMesh(name string, numVertex, numIndex int)

	// UploadTexture makes a texture resident.
	UploadTexture(name string, size image.Point)

	// UploadProgram makes a shader program resident.
	UploadProgram(name string)

	// ReleaseMesh releases a resident mesh. Releasing an unknown
	// name is a no-op.
	ReleaseMesh(name string)

	// ReleaseTexture releases a resident texture.
	ReleaseTexture(name string)

	// ReleaseProgram releases a resident program.
	ReleaseProgram(name string)

	// BeginFrame resets the per-frame draw counters.
	BeginFrame()

	// Draw records one draw call for the given mesh.
	Draw(mesh string, triangles int)

	// DrawInstanced records one instanced draw call covering the
	// given number of instances of the mesh.
	DrawInstanced(mesh string, instances, triangles int)

	// Stats returns the current counters.
	Stats() RenderStats
}

// vertexBytes is the per-vertex GPU footprint: position + normal
// (3 float32 each) and texture coordinates (2 float32).
const vertexBytes = (3 + 3 + 2) * 4

// Counter is an in-memory [Renderer] that only keeps the accounting.
// It backs tests and headless hosts, and can wrap a real backend's
// bookkeeping.
type Counter struct {
	meshes   map[string]int64 // name to byte estimate
	textures map[string]int64
	programs map[string]struct{}

	drawCalls int
	triangles int
}

// NewCounter returns a new counting renderer.
func NewCounter() *Counter {
	return &Counter{
		meshes:   make(map[string]int64),
		textures: make(map[string]int64),
		programs: make(map[string]struct{}),
	}
}

func (ct *Counter) UploadMesh(name string, numVertex, numIndex int) {
	ct.meshes[name] = int64(numVertex)*vertexBytes + int64(numIndex)*4
}

func (ct *Counter) UploadTexture(name string, size image.Point) {
	ct.textures[name] = int64(size.X) * int64(size.Y) * 4
}

func (ct *Counter) UploadProgram(name string) {
	ct.programs[name] = struct{}{}
}

func (ct *Counter) ReleaseMesh(name string) {
	delete(ct.meshes, name)
}

func (ct *Counter) ReleaseTexture(name string) {
	delete(ct.textures, name)
}

func (ct *Counter) ReleaseProgram(name string) {
	delete(ct.programs, name)
}

func (ct *Counter) BeginFrame() {
	ct.drawCalls = 0
	ct.triangles = 0
}

func (ct *Counter) Draw(mesh string, triangles int) {
	ct.drawCalls++
	ct.triangles += triangles
}

func (ct *Counter) DrawInstanced(mesh string, instances, triangles int) {
	ct.drawCalls++
	ct.triangles += instances * triangles
}

func (ct *Counter) Stats() RenderStats {
	var mem int64
	for _, b := range ct.meshes {
		mem += b
	}
	for _, b := range ct.textures {
		mem += b
	}
	return RenderStats{
		DrawCalls:      ct.drawCalls,
		Triangles:      ct.triangles,
		LiveGeometries: len(ct.meshes),
		LiveTextures:   len(ct.textures),
		LivePrograms:   len(ct.programs),
		MemoryBytes:    mem,
	}
}

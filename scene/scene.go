// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene implements a minimal scene graph and the per-frame
// GPU work the performance controller owns: frustum culling with
// tier-scaled cadence, instanced draw batching, idempotent resource
// disposal, and draw-call/triangle accounting. It runs entirely on
// the render thread.
package scene

import (
	"image"

	"github.com/viztier/viztier/base/ordmap"
	"github.com/viztier/viztier/math32"
)

// Mesh is the shape data for an indexed triangle mesh resource.
// Meshes are shared across nodes and referenced by name.
type Mesh struct {

	// Name is the unique resource name.
	Name string

	// NumVertex is the number of vertex points.
	NumVertex int

	// NumIndex is the number of triangle indexes (3 per triangle).
	NumIndex int

	// BBox is the local space bounding box of the mesh.
	BBox math32.Box3
}

// Triangles returns the triangle count of the mesh.
func (ms *Mesh) Triangles() int {
	return ms.NumIndex / 3
}

// Texture is a texture resource shared across nodes by name.
type Texture struct {

	// Name is the unique resource name.
	Name string

	// Size is the texture size in pixels.
	Size image.Point
}

// Scene holds the scene graph roots, the shared mesh and texture
// registries, and the camera. Resource registries keep insertion
// order so accounting and teardown are deterministic.
type Scene struct {

	// Camera determines the view onto the scene.
	Camera Camera

	// Meshes holds all mesh resources, by name.
	Meshes ordmap.Map[string, *Mesh]

	// Textures holds all texture resources, by name.
	Textures ordmap.Map[string, *Texture]

	// Nodes are the scene graph roots.
	Nodes []*Node

	rn Renderer
}

// NewScene returns a new empty scene rendered through the given
// renderer, with a default camera and the standard shader program
// resident.
func NewScene(rn Renderer) *Scene {
	sc := &Scene{rn: rn}
	sc.Camera.Defaults()
	rn.UploadProgram("standard")
	return sc
}

// AddMesh registers a mesh resource and uploads it to the renderer.
func (sc *Scene) AddMesh(ms *Mesh) {
	sc.Meshes.Add(ms.Name, ms)
	sc.rn.UploadMesh(ms.Name, ms.NumVertex, ms.NumIndex)
}

// AddTexture registers a texture resource and uploads it.
func (sc *Scene) AddTexture(tx *Texture) {
	sc.Textures.Add(tx.Name, tx)
	sc.rn.UploadTexture(tx.Name, tx.Size)
}

// AddNode adds a scene graph root node. New nodes start visible;
// the next culling pass owns visibility from then on.
func (sc *Scene) AddNode(nd *Node) *Node {
	if nd.Matrix == (math32.Matrix4{}) {
		nd.Matrix = math32.Identity4()
	}
	nd.Visible = true
	sc.Nodes = append(sc.Nodes, nd)
	return nd
}

// RemoveNode removes a root node from the graph. The caller must
// dispose it through [Optimizer.DisposeNode]; removal alone leaks
// the GPU resources.
func (sc *Scene) RemoveNode(nd *Node) {
	for i, n := range sc.Nodes {
		if n == nd {
			sc.Nodes = append(sc.Nodes[:i], sc.Nodes[i+1:]...)
			return
		}
	}
}

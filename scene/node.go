// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/viztier/viztier/math32"

// Node is one element of the scene graph: a solid with a transform,
// a local bounding box, and references to shared mesh and texture
// resources by name (all resources are collected on the [Scene]).
type Node struct {

	// Name is the unique name of this node.
	Name string

	// Mesh is the name of the mesh rendered by this node; empty for
	// group-only nodes.
	Mesh string

	// Texture is the name of the texture bound to this node, if any.
	Texture string

	// Matrix is the world transform of this node.
	Matrix math32.Matrix4

	// Visible is whether this node passed (or was exempted from)
	// the last culling pass.
	Visible bool

	// Children are the nodes parented under this one.
	Children []*Node
}

// WorldBounds returns the node's mesh bounding box transformed into
// world coordinates, and false for nodes without a mesh.
func (nd *Node) WorldBounds(sc *Scene) (math32.Box3, bool) {
	if nd.Mesh == "" {
		return math32.Box3{}, false
	}
	ms, ok := sc.Meshes.ValueByKey(nd.Mesh)
	if !ok {
		return math32.Box3{}, false
	}
	return ms.BBox.MulMatrix4(&nd.Matrix), true
}

// Walk calls fn for this node and all nodes under it, depth-first.
func (nd *Node) Walk(fn func(n *Node)) {
	fn(nd)
	for _, ch := range nd.Children {
		ch.Walk(fn)
	}
}

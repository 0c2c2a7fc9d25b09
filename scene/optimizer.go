// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"log/slog"

	"github.com/viztier/viztier/base/ordmap"
	"github.com/viztier/viztier/math32"
	"github.com/viztier/viztier/tier"
)

// DefaultDrawCallCeiling is the default draw-call budget above which
// a warning is logged.
const DefaultDrawCallCeiling = 120

// Batch is a single instanced draw unit: one mesh and texture drawn
// with N per-instance transforms in one draw call, replacing N
// individual calls.
type Batch struct {

	// Mesh is the instanced mesh name.
	Mesh string

	// Texture is the texture name shared by all instances.
	Texture string

	// Transforms are the per-instance world transforms.
	Transforms []math32.Matrix4
}

// Optimizer performs the per-frame and event-driven GPU work:
// frustum culling at a tier-scaled cadence, instanced draw batching,
// idempotent resource disposal, and draw accounting. Culling runs on
// a frame cadence; batching and disposal are event-driven, invoked
// only when the scene graph mutates, so batch rebuilds never cause
// unpredictable frame-time spikes.
type Optimizer struct {

	// DrawCallCeiling is the draw-call budget; exceeding it logs a
	// warning but never triggers a tier change (only sustained low
	// FPS does).
	DrawCallCeiling int

	sc *Scene
	rn Renderer

	// batches are the live instanced draw units, keyed by mesh and
	// texture.
	batches ordmap.Map[string, *Batch]

	// disposed records resource identities already released, making
	// disposal idempotent. Entries are only removed by a full scene
	// teardown, which bounds the registry by scene lifetime.
	disposed map[string]struct{}

	frameCount int64
	overBudget bool
}

// NewOptimizer returns a new Optimizer for the given scene and
// renderer with the default draw-call ceiling.
func NewOptimizer(sc *Scene, rn Renderer) *Optimizer {
	return &Optimizer{
		DrawCallCeiling: DefaultDrawCallCeiling,
		sc:              sc,
		rn:              rn,
		disposed:        make(map[string]struct{}),
	}
}

// CullInterval returns the culling cadence for a tier: culling runs
// every frame on [tier.Full], every 2nd frame on [tier.Lite], and
// every 4th frame on [tier.Static], bounding CPU cost as rendering
// degrades.
func CullInterval(t tier.Tier) int64 {
	switch t {
	case tier.Full:
		return 1
	case tier.Lite:
		return 2
	default:
		return 4
	}
}

// FrameCull advances the frame counter and runs the culling pass if
// this frame falls on the cadence for the given tier. It returns
// whether culling ran.
func (op *Optimizer) FrameCull(t tier.Tier) bool {
	op.frameCount++
	if op.frameCount%CullInterval(t) != 0 {
		return false
	}
	op.Cull()
	return true
}

// Cull tests every mesh node's world bounding box against the camera
// frustum and updates its visibility. Culling is conservative: a node
// is marked invisible only if its box is fully outside at least one
// frustum plane, so boxes straddling a plane stay visible (no false
// negatives; occasional false positives near boundaries are
// acceptable). Returns the number of visible mesh nodes.
func (op *Optimizer) Cull() int {
	frustum := op.sc.Camera.Frustum
	visible := 0
	for _, root := range op.sc.Nodes {
		root.Walk(func(nd *Node) {
			bb, ok := nd.WorldBounds(op.sc)
			if !ok {
				return // group-only node; no draw to cull
			}
			nd.Visible = frustum == nil || frustum.IntersectsBox(bb)
			if nd.Visible {
				visible++
			}
		})
	}
	return visible
}

// BatchInstances builds or updates the instanced draw unit for the
// given mesh and texture. Calling it again with an updated transform
// list of the same length updates the existing batch in place rather
// than reallocating.
func (op *Optimizer) BatchInstances(mesh, texture string, transforms []math32.Matrix4) *Batch {
	key := mesh + "|" + texture
	if bt, ok := op.batches.ValueByKey(key); ok {
		if len(transforms) == len(bt.Transforms) {
			copy(bt.Transforms, transforms)
			return bt
		}
		bt.Transforms = append(bt.Transforms[:0], transforms...)
		return bt
	}
	bt := &Batch{Mesh: mesh, Texture: texture}
	bt.Transforms = append(bt.Transforms, transforms...)
	op.batches.Add(key, bt)
	return bt
}

// Render submits the frame's draw calls: one per visible mesh node
// and one per instanced batch.
func (op *Optimizer) Render() {
	op.rn.BeginFrame()
	for _, root := range op.sc.Nodes {
		root.Walk(func(nd *Node) {
			if !nd.Visible || nd.Mesh == "" {
				return
			}
			if ms, ok := op.sc.Meshes.ValueByKey(nd.Mesh); ok {
				op.rn.Draw(ms.Name, ms.Triangles())
			}
		})
	}
	for _, kv := range op.batches.Order {
		bt := kv.Value
		if len(bt.Transforms) == 0 {
			continue
		}
		if ms, ok := op.sc.Meshes.ValueByKey(bt.Mesh); ok {
			op.rn.DrawInstanced(ms.Name, len(bt.Transforms), ms.Triangles())
		}
	}
}

// DisposeNode releases the GPU resources bound to the node and all
// nodes under it. It must be invoked for every node removed from the
// scene graph; omitting it leaks GPU memory, which is unacceptable
// for multi-hour continuous operation. Resources already disposed are
// skipped, so double disposal is a no-op rather than an error.
func (op *Optimizer) DisposeNode(nd *Node) {
	nd.Walk(func(n *Node) {
		if n.Mesh != "" && op.disposeOnce("mesh/"+n.Mesh) {
			op.rn.ReleaseMesh(n.Mesh)
			op.sc.Meshes.DeleteKey(n.Mesh)
		}
		if n.Texture != "" && op.disposeOnce("texture/"+n.Texture) {
			op.rn.ReleaseTexture(n.Texture)
			op.sc.Textures.DeleteKey(n.Texture)
		}
	})
}

// disposeOnce records the identity in the disposal registry,
// returning true only on first disposal.
func (op *Optimizer) disposeOnce(id string) bool {
	if _, done := op.disposed[id]; done {
		return false
	}
	op.disposed[id] = struct{}{}
	return true
}

// Teardown releases every resource in the scene, clears the batches,
// and resets the disposal registry. Call when the scene is fully torn
// down; the fresh registry keeps it bounded by scene lifetime rather
// than process lifetime.
func (op *Optimizer) Teardown() {
	for _, nd := range op.sc.Nodes {
		op.DisposeNode(nd)
	}
	// release resources not referenced by any node
	for _, kv := range op.sc.Meshes.Order {
		op.rn.ReleaseMesh(kv.Key)
	}
	for _, kv := range op.sc.Textures.Order {
		op.rn.ReleaseTexture(kv.Key)
	}
	op.rn.ReleaseProgram("standard")
	op.sc.Meshes.Reset()
	op.sc.Textures.Reset()
	op.sc.Nodes = nil
	op.batches.Reset()
	op.disposed = make(map[string]struct{})
}

// Stats queries the renderer counters. Exceeding the draw-call
// ceiling logs a warning on the transition into the exceeded state;
// draw-call spikes are diagnostic signal, not a control input, so
// rendering continues unaffected.
func (op *Optimizer) Stats() RenderStats {
	st := op.rn.Stats()
	over := st.DrawCalls > op.DrawCallCeiling
	if over && !op.overBudget {
		slog.Warn("draw-call budget exceeded",
			"drawCalls", st.DrawCalls, "ceiling", op.DrawCallCeiling)
	}
	op.overBudget = over
	return st
}

// OverBudget returns whether the last stats query exceeded the
// draw-call ceiling.
func (op *Optimizer) OverBudget() bool {
	return op.overBudget
}

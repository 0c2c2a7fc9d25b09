// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/viztier/viztier/math32"

// Camera defines the viewing transform onto the scene, along with the
// derived view and projection matrices and the culling frustum.
type Camera struct {

	// Pos is the camera position in world coordinates.
	Pos math32.Vector3

	// Target is the location the camera is pointing at.
	Target math32.Vector3

	// UpDir is the up direction; defaults to positive Y.
	UpDir math32.Vector3

	// Ortho uses an orthographic projection instead of perspective.
	Ortho bool

	// FOV is the field of view in degrees.
	FOV float32

	// Aspect is the aspect ratio (width / height).
	Aspect float32

	// Near is the near plane z coordinate.
	Near float32

	// Far is the far plane z coordinate.
	Far float32

	// ViewMatrix is the world-to-camera matrix.
	ViewMatrix math32.Matrix4

	// ProjectionMatrix is the camera projection transform.
	ProjectionMatrix math32.Matrix4

	// Frustum is the viewable volume, from projection * view,
	// updated by [Camera.UpdateMatrix].
	Frustum *math32.Frustum
}

// Defaults sets standard initial camera parameters: looking at the
// origin from 0,0,10, 30 degree FOV.
func (cm *Camera) Defaults() {
	cm.Pos = math32.Vec3(0, 0, 10)
	cm.Target = math32.Vector3{}
	cm.UpDir = math32.Vec3(0, 1, 0)
	cm.FOV = 30
	cm.Aspect = 1.5
	cm.Near = 0.01
	cm.Far = 1000
	cm.UpdateMatrix()
}

// LookAt points the camera at the given target location with the
// given up direction and updates the matrices.
func (cm *Camera) LookAt(target, upDir math32.Vector3) {
	cm.Target = target
	if upDir.IsNil() {
		upDir = math32.Vec3(0, 1, 0)
	}
	cm.UpDir = upDir
	cm.UpdateMatrix()
}

// UpdateMatrix updates the view and projection matrices and the
// culling frustum. Must be called after any change to the camera
// parameters, before culling or rendering.
func (cm *Camera) UpdateMatrix() {
	cm.ViewMatrix.SetLookAt(cm.Pos, cm.Target, cm.UpDir)
	if cm.Ortho {
		height := 2 * cm.Far * math32.Tan(math32.DegToRad(cm.FOV*0.5))
		width := cm.Aspect * height
		cm.ProjectionMatrix.SetOrthographic(width, height, cm.Near, cm.Far)
	} else {
		cm.ProjectionMatrix.SetPerspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
	}
	var proj math32.Matrix4
	proj.MulMatrices(&cm.ProjectionMatrix, &cm.ViewMatrix)
	cm.Frustum = math32.NewFrustumFromMatrix(&proj)
}

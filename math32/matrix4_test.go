// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const standardTol = 1e-5

func assertEqualVector3(t *testing.T, expect, have Vector3) {
	t.Helper()
	assert.InDelta(t, expect.X, have.X, standardTol)
	assert.InDelta(t, expect.Y, have.Y, standardTol)
	assert.InDelta(t, expect.Z, have.Z, standardTol)
}

func TestMatrix4Identity(t *testing.T) {
	m := Identity4()
	v := Vec3(1, 2, 3)
	assertEqualVector3(t, v, v.MulMatrix4(&m))
}

func TestMatrix4Translation(t *testing.T) {
	var m Matrix4
	m.SetTranslation(1, -2, 3)
	assertEqualVector3(t, Vec3(2, 0, 6), Vec3(1, 2, 3).MulMatrix4(&m))
}

func TestMatrix4MulMatrices(t *testing.T) {
	var a, b, ab Matrix4
	a.SetTranslation(1, 0, 0)
	b.SetTranslation(0, 2, 0)
	ab.MulMatrices(&a, &b)
	assertEqualVector3(t, Vec3(1, 2, 0), Vector3{}.MulMatrix4(&ab))
}

func TestMatrix4LookAt(t *testing.T) {
	var view Matrix4
	view.SetLookAt(Vec3(0, 0, 10), Vec3(0, 0, 0), Vec3(0, 1, 0))
	// the target maps to 10 units down -Z in camera space
	assertEqualVector3(t, Vec3(0, 0, -10), Vector3{}.MulMatrix4(&view))
	// the eye maps to the camera-space origin
	assertEqualVector3(t, Vector3{}, Vec3(0, 0, 10).MulMatrix4(&view))
}

func TestMatrix4Perspective(t *testing.T) {
	var proj Matrix4
	proj.SetPerspective(90, 1, 1, 100)
	// a point on the near plane maps to NDC z = -1
	near := Vec3(0, 0, -1).MulMatrix4(&proj)
	assert.InDelta(t, -1, float64(near.Z), standardTol)
	// a point at 45 degrees up maps to the top edge
	edge := Vec3(0, 10, -10).MulMatrix4(&proj)
	assert.InDelta(t, 1, float64(edge.Y), 1e-4)
}

func TestVector3Ops(t *testing.T) {
	a := Vec3(1, 0, 0)
	b := Vec3(0, 1, 0)
	assertEqualVector3(t, Vec3(0, 0, 1), a.Cross(b))
	assert.Equal(t, float32(0), a.Dot(b))
	assert.InDelta(t, 1, float64(a.Normal().Length()), standardTol)
	assertEqualVector3(t, Vector3{}, Vector3{}.Normal())
}

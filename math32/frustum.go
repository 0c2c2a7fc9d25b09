// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Frustum represents a frustum: the viewable volume of a camera,
// defined by its 6 bounding planes with normals pointing inward.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix creates and returns a Frustum based on the
// provided matrix, typically the combined projection * view matrix
// of a camera.
func NewFrustumFromMatrix(m *Matrix4) *Frustum {
	f := &Frustum{}
	f.SetFromMatrix(m)
	return f
}

// NewFrustum returns a pointer to a new Frustum object made of 6 explicit planes.
func NewFrustum(p0, p1, p2, p3, p4, p5 Plane) *Frustum {
	return &Frustum{Planes: [6]Plane{p0, p1, p2, p3, p4, p5}}
}

// SetFromMatrix sets the frustum's planes based on the provided matrix,
// using the standard Gribb/Hartmann clip-plane extraction.
func (f *Frustum) SetFromMatrix(m *Matrix4) {
	me0 := m[0]
	me1 := m[1]
	me2 := m[2]
	me3 := m[3]
	me4 := m[4]
	me5 := m[5]
	me6 := m[6]
	me7 := m[7]
	me8 := m[8]
	me9 := m[9]
	me10 := m[10]
	me11 := m[11]
	me12 := m[12]
	me13 := m[13]
	me14 := m[14]
	me15 := m[15]

	f.Planes[0].SetDims(me3-me0, me7-me4, me11-me8, me15-me12)
	f.Planes[1].SetDims(me3+me0, me7+me4, me11+me8, me15+me12)
	f.Planes[2].SetDims(me3+me1, me7+me5, me11+me9, me15+me13)
	f.Planes[3].SetDims(me3-me1, me7-me5, me11-me9, me15-me13)
	f.Planes[4].SetDims(me3-me2, me7-me6, me11-me10, me15-me14)
	f.Planes[5].SetDims(me3+me2, me7+me6, me11+me10, me15+me14)
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
}

// ContainsPoint determines whether the frustum contains the specified point.
func (f *Frustum) ContainsPoint(point Vector3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(point) < 0 {
			return false
		}
	}
	return true
}

// IntersectsBox determines whether the specified box is intersecting
// the frustum. A box fully outside any single plane does not intersect;
// boxes straddling a plane do.
func (f *Frustum) IntersectsBox(box Box3) bool {
	if box.IsEmpty() {
		return false
	}
	var p Vector3
	for i := range f.Planes {
		plane := &f.Planes[i]
		// the corner of the box at maximum distance along the plane normal
		p.X = box.Min.X
		if plane.Norm.X > 0 {
			p.X = box.Max.X
		}
		p.Y = box.Min.Y
		if plane.Norm.Y > 0 {
			p.Y = box.Max.Y
		}
		p.Z = box.Min.Z
		if plane.Norm.Z > 0 {
			p.Z = box.Max.Z
		}
		if plane.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

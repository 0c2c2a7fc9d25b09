// Copyright (c) 2025, Viztier Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Matrix4 is a 4x4 matrix stored in column-major order, as used
// throughout computer graphics.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4].
func Identity4() Matrix4 {
	m := Matrix4{}
	m.SetIdentity()
	return m
}

// SetIdentity sets this matrix to the identity matrix.
func (m *Matrix4) SetIdentity() {
	*m = Matrix4{}
	m[0] = 1
	m[5] = 1
	m[10] = 1
	m[15] = 1
}

// Set sets all the elements of this matrix, row by row starting at
// row 1, column 1 (the transpose of internal column-major storage,
// for human-readable call sites).
func (m *Matrix4) Set(n11, n12, n13, n14, n21, n22, n23, n24, n31, n32, n33, n34, n41, n42, n43, n44 float32) {
	m[0] = n11
	m[4] = n12
	m[8] = n13
	m[12] = n14
	m[1] = n21
	m[5] = n22
	m[9] = n23
	m[13] = n24
	m[2] = n31
	m[6] = n32
	m[10] = n33
	m[14] = n34
	m[3] = n41
	m[7] = n42
	m[11] = n43
	m[15] = n44
}

// SetTranslation sets this matrix to a translation matrix from the
// given x, y and z values.
func (m *Matrix4) SetTranslation(x, y, z float32) {
	m.Set(
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	)
}

// MulMatrices sets this matrix as the matrix multiplication a by b
// (i.e., b*a).
func (m *Matrix4) MulMatrices(a, b *Matrix4) {
	a11 := a[0]
	a12 := a[4]
	a13 := a[8]
	a14 := a[12]
	a21 := a[1]
	a22 := a[5]
	a23 := a[9]
	a24 := a[13]
	a31 := a[2]
	a32 := a[6]
	a33 := a[10]
	a34 := a[14]
	a41 := a[3]
	a42 := a[7]
	a43 := a[11]
	a44 := a[15]

	b11 := b[0]
	b12 := b[4]
	b13 := b[8]
	b14 := b[12]
	b21 := b[1]
	b22 := b[5]
	b23 := b[9]
	b24 := b[13]
	b31 := b[2]
	b32 := b[6]
	b33 := b[10]
	b34 := b[14]
	b41 := b[3]
	b42 := b[7]
	b43 := b[11]
	b44 := b[15]

	m[0] = a11*b11 + a12*b21 + a13*b31 + a14*b41
	m[4] = a11*b12 + a12*b22 + a13*b32 + a14*b42
	m[8] = a11*b13 + a12*b23 + a13*b33 + a14*b43
	m[12] = a11*b14 + a12*b24 + a13*b34 + a14*b44

	m[1] = a21*b11 + a22*b21 + a23*b31 + a24*b41
	m[5] = a21*b12 + a22*b22 + a23*b32 + a24*b42
	m[9] = a21*b13 + a22*b23 + a23*b33 + a24*b43
	m[13] = a21*b14 + a22*b24 + a23*b34 + a24*b44

	m[2] = a31*b11 + a32*b21 + a33*b31 + a34*b41
	m[6] = a31*b12 + a32*b22 + a33*b32 + a34*b42
	m[10] = a31*b13 + a32*b23 + a33*b33 + a34*b43
	m[14] = a31*b14 + a32*b24 + a33*b34 + a34*b44

	m[3] = a41*b11 + a42*b21 + a43*b31 + a44*b41
	m[7] = a41*b12 + a42*b22 + a43*b32 + a44*b42
	m[11] = a41*b13 + a42*b23 + a43*b33 + a44*b43
	m[15] = a41*b14 + a42*b24 + a43*b34 + a44*b44
}

// Mul returns this matrix multiplied by the other given matrix.
func (m *Matrix4) Mul(other *Matrix4) Matrix4 {
	nm := Matrix4{}
	nm.MulMatrices(m, other)
	return nm
}

// SetLookAt sets this matrix as the view (world to camera) matrix for
// a camera at the given eye position, looking at the given target,
// with the given up direction.
func (m *Matrix4) SetLookAt(eye, target, up Vector3) {
	z := eye.Sub(target).Normal()
	if z.IsNil() {
		// eye and target are in the same position
		z.Z = 1
	}
	x := up.Cross(z).Normal()
	if x.IsNil() {
		// up and z are parallel
		z.X += 0.0001
		z = z.Normal()
		x = up.Cross(z).Normal()
	}
	y := z.Cross(x)

	m.Set(
		x.X, x.Y, x.Z, -x.Dot(eye),
		y.X, y.Y, y.Z, -y.Dot(eye),
		z.X, z.Y, z.Z, -z.Dot(eye),
		0, 0, 0, 1,
	)
}

// SetPerspective sets this matrix to a perspective projection matrix
// with the given field of view in degrees, aspect ratio (width/height),
// and near and far planes.
func (m *Matrix4) SetPerspective(fov, aspect, near, far float32) {
	ymax := near * Tan(DegToRad(fov*0.5))
	ymin := -ymax
	xmin := ymin * aspect
	xmax := ymax * aspect
	m.Set(
		2*near/(xmax-xmin), 0, (xmax+xmin)/(xmax-xmin), 0,
		0, 2*near/(ymax-ymin), (ymax+ymin)/(ymax-ymin), 0,
		0, 0, -(far+near)/(far-near), -2*far*near/(far-near),
		0, 0, -1, 0,
	)
}

// SetOrthographic sets this matrix to an orthographic projection
// matrix with the given view width, height, and near and far planes.
func (m *Matrix4) SetOrthographic(width, height, near, far float32) {
	p := far - near
	z := (far + near) / p
	m.Set(
		2/width, 0, 0, 0,
		0, 2/height, 0, 0,
		0, 0, -2/p, -z,
		0, 0, 0, 1,
	)
}

package geom

import "math"

// Mat4 is a 4x4 matrix in row-major order, used for rigid surface frames
// and for the accumulated assembly transform chain (root to leaf). It
// acts on homogeneous column vectors, with the translation in the last
// column.
type Mat4 [4][4]float64

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// RigidFromAxes builds the world<-local transform whose columns are the
// local X, Y, Z axes (plus translation), following the axis2-placement
// convention: zAxis is the placement's normal/axis, xAxis is its
// reference direction, yAxis completes the right-handed frame.
func RigidFromAxes(xAxis, yAxis, zAxis, origin Point3) Mat4 {
	var m Mat4
	m[0][0], m[1][0], m[2][0], m[3][0] = xAxis.X, xAxis.Y, xAxis.Z, 0
	m[0][1], m[1][1], m[2][1], m[3][1] = yAxis.X, yAxis.Y, yAxis.Z, 0
	m[0][2], m[1][2], m[2][2], m[3][2] = zAxis.X, zAxis.Y, zAxis.Z, 0
	m[0][3], m[1][3], m[2][3], m[3][3] = origin.X, origin.Y, origin.Z, 1
	return m
}

// RigidFromZX builds a right-handed frame from a Z (normal) axis and an
// X (reference) direction, with Y = Z cross X, matching the
// make_rigid_transform convention used for planes, cylinders, cones,
// spheres and tori.
func RigidFromZX(zAxis, xAxis, origin Point3) Mat4 {
	return RigidFromAxes(xAxis, zAxis.Cross(xAxis), zAxis, origin)
}

// Transpose returns the matrix transpose.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t[i][j] = m[j][i]
		}
	}
	return t
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += m[i][k] * n[k][j]
			}
			r[i][j] = s
		}
	}
	return r
}

// Apply transforms a point (w=1), dividing through by the resulting w.
func (m Mat4) Apply(p Point3) Point3 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w == 1 || w == 0 {
		return Point3{x, y, z}
	}
	return Point3{x / w, y / w, z / w}
}

// ApplyVector transforms a direction vector (w=0); translation does not apply.
func (m Mat4) ApplyVector(v Point3) Point3 {
	return Point3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Invert returns the inverse of m via Gauss-Jordan elimination with
// partial pivoting, and false if m is singular to working precision.
func (m Mat4) Invert() (Mat4, bool) {
	var a [4][8]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			a[i][j] = m[i][j]
		}
		a[i][4+i] = 1
	}

	for col := 0; col < 4; col++ {
		pivot := col
		best := math.Abs(a[col][col])
		for r := col + 1; r < 4; r++ {
			if v := math.Abs(a[r][col]); v > best {
				best = v
				pivot = r
			}
		}
		if best < 1e-14 {
			return Mat4{}, false
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
		}
		pv := a[col][col]
		for j := 0; j < 8; j++ {
			a[col][j] /= pv
		}
		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			f := a[r][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 8; j++ {
				a[r][j] -= f * a[col][j]
			}
		}
	}

	var inv Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			inv[i][j] = a[i][4+j]
		}
	}
	return inv, true
}

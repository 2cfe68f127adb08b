package math3d

import "math"

// Matrix4 is a 4x4 row-major matrix: M[row][col].
type Matrix4 [4][4]float64

// Identity4 is the multiplicative identity.
func Identity4() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Translate(x, y, z float64) Matrix4 {
	m := Identity4()
	m[0][3], m[1][3], m[2][3] = x, y, z
	return m
}

func Scale(x, y, z float64) Matrix4 {
	m := Identity4()
	m[0][0], m[1][1], m[2][2] = x, y, z
	return m
}

func RotX(r float64) Matrix4 {
	m := Identity4()
	c, s := math.Cos(r), math.Sin(r)
	m[1][1], m[1][2] = c, -s
	m[2][1], m[2][2] = s, c
	return m
}

func RotY(r float64) Matrix4 {
	m := Identity4()
	c, s := math.Cos(r), math.Sin(r)
	m[0][0], m[0][2] = c, s
	m[2][0], m[2][2] = -s, c
	return m
}

func RotZ(r float64) Matrix4 {
	m := Identity4()
	c, s := math.Cos(r), math.Sin(r)
	m[0][0], m[0][1] = c, -s
	m[1][0], m[1][1] = s, c
	return m
}

// Multiply performs standard row-major 4x4 matrix multiplication, a*b.
func (a Matrix4) Multiply(b Matrix4) Matrix4 {
	var out Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[r][k] * b[k][c]
			}
			out[r][c] = sum
		}
	}
	return out
}

// MultiplyPoint treats v as a point (implicit w=1) and uses only the
// top-left 3x4 block of the matrix.
func (a Matrix4) MultiplyPoint(v Vec3) Vec3 {
	return Vec3{
		X: a[0][0]*v.X + a[0][1]*v.Y + a[0][2]*v.Z + a[0][3],
		Y: a[1][0]*v.X + a[1][1]*v.Y + a[1][2]*v.Z + a[1][3],
		Z: a[2][0]*v.X + a[2][1]*v.Y + a[2][2]*v.Z + a[2][3],
	}
}

// MultiplyVector treats v as a direction (implicit w=0) — used to carry
// normals through rotation matrices without translation contaminating
// the result.
func (a Matrix4) MultiplyVector(v Vec3) Vec3 {
	return Vec3{
		X: a[0][0]*v.X + a[0][1]*v.Y + a[0][2]*v.Z,
		Y: a[1][0]*v.X + a[1][1]*v.Y + a[1][2]*v.Z,
		Z: a[2][0]*v.X + a[2][1]*v.Y + a[2][2]*v.Z,
	}
}

func (a Matrix4) Transpose() Matrix4 {
	var out Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c][r] = a[r][c]
		}
	}
	return out
}

// toSlice copies the matrix into a mutable [][]float64 for the
// submatrix-deletion algorithms below.
func (a Matrix4) toSlice() [][]float64 {
	rows := make([][]float64, 4)
	for r := 0; r < 4; r++ {
		rows[r] = append([]float64(nil), a[r][:]...)
	}
	return rows
}

// submatrix returns a copy of m with the given row and column deleted.
func submatrix(m [][]float64, row, col int) [][]float64 {
	out := make([][]float64, 0, len(m)-1)
	for r, rowVals := range m {
		if r == row {
			continue
		}
		newRow := make([]float64, 0, len(rowVals)-1)
		for c, v := range rowVals {
			if c == col {
				continue
			}
			newRow = append(newRow, v)
		}
		out = append(out, newRow)
	}
	return out
}

// determinant computes the determinant of a square matrix by cofactor
// expansion along the first row. 2x2 is the direct ad-bc base case.
func determinant(m [][]float64) float64 {
	n := len(m)
	if n == 2 {
		return m[0][0]*m[1][1] - m[0][1]*m[1][0]
	}
	var sum float64
	for c := 0; c < n; c++ {
		sum += m[0][c] * cofactor(m, 0, c)
	}
	return sum
}

// cofactor is (-1)^(row+col) times the determinant of the minor obtained
// by deleting row and col.
func cofactor(m [][]float64, row, col int) float64 {
	minor := determinant(submatrix(m, row, col))
	if (row+col)%2 != 0 {
		return -minor
	}
	return minor
}

// Determinant computes the 4x4 determinant via cofactor expansion along
// the first row.
func (a Matrix4) Determinant() float64 {
	return determinant(a.toSlice())
}

// Inverse returns the matrix inverse via cofactor expansion: inverse =
// transpose(cofactor matrix) / determinant. If the matrix is singular
// (determinant zero), it returns a copy of the input matrix unchanged —
// a tolerated degenerate policy; callers must not hit this in normal use.
func (a Matrix4) Inverse() Matrix4 {
	rows := a.toSlice()
	det := determinant(rows)
	if det == 0 {
		return a
	}
	var cof Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			cof[r][c] = cofactor(rows, r, c)
		}
	}
	adj := cof.Transpose()
	var out Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r][c] = adj[r][c] / det
		}
	}
	return out
}

// Orientation builds an orthonormal view-basis matrix: forward =
// normalize(to-from), left = forward x normalize(up), true_up = left x
// forward. left, true_up, -forward become the matrix's first three rows
// over a unit homogeneous fourth row.
func Orientation(to, from, up Vec3) Matrix4 {
	forward := to.Sub(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)
	return Matrix4{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	}
}

// ViewTransform is the full camera view transform:
// inverse(orientation(to, from, up) * translate(-from)).
func ViewTransform(to, from, up Vec3) Matrix4 {
	m := Orientation(to, from, up).Multiply(Translate(-from.X, -from.Y, -from.Z))
	return m.Inverse()
}

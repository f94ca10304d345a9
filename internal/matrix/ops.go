package matrix

// Add adds o element-wise into m and returns m.
func (m *Matrix) Add(o *Matrix) *Matrix {
	if !m.SameShape(o) {
		reportMismatch("Add", m, o)
		return m
	}
	for i := range m.data {
		m.data[i] += o.data[i]
	}
	return m
}

// Sub subtracts o element-wise from m and returns m.
func (m *Matrix) Sub(o *Matrix) *Matrix {
	if !m.SameShape(o) {
		reportMismatch("Sub", m, o)
		return m
	}
	for i := range m.data {
		m.data[i] -= o.data[i]
	}
	return m
}

// Mul multiplies m element-wise (Hadamard product) by o and returns m.
// Use the package function Mul for the matrix product.
func (m *Matrix) Mul(o *Matrix) *Matrix {
	if !m.SameShape(o) {
		reportMismatch("Mul", m, o)
		return m
	}
	for i := range m.data {
		m.data[i] *= o.data[i]
	}
	return m
}

// Div divides m element-wise by o and returns m.
func (m *Matrix) Div(o *Matrix) *Matrix {
	if !m.SameShape(o) {
		reportMismatch("Div", m, o)
		return m
	}
	for i := range m.data {
		m.data[i] /= o.data[i]
	}
	return m
}

// AddScalar adds s to every element.
func (m *Matrix) AddScalar(s float64) *Matrix {
	for i := range m.data {
		m.data[i] += s
	}
	return m
}

// SubScalar subtracts s from every element.
func (m *Matrix) SubScalar(s float64) *Matrix {
	for i := range m.data {
		m.data[i] -= s
	}
	return m
}

// Scale multiplies every element by s.
func (m *Matrix) Scale(s float64) *Matrix {
	for i := range m.data {
		m.data[i] *= s
	}
	return m
}

// DivScalar divides every element by s.
func (m *Matrix) DivScalar(s float64) *Matrix {
	for i := range m.data {
		m.data[i] /= s
	}
	return m
}

// Fill sets every element to v.
func (m *Matrix) Fill(v float64) *Matrix {
	for i := range m.data {
		m.data[i] = v
	}
	return m
}

// Map replaces every element with fn(value, row, col) and returns m.
func (m *Matrix) Map(fn func(v float64, r, c int) float64) *Matrix {
	for r := 0; r < m.rows; r++ {
		row := m.data[r*m.cols : (r+1)*m.cols]
		for c, v := range row {
			row[c] = fn(v, r, c)
		}
	}
	return m
}

// Map returns a new matrix whose elements are fn applied to the elements of m.
func Map(m *Matrix, fn func(v float64, r, c int) float64) *Matrix {
	return Copy(m).Map(fn)
}

// Add returns a + b.
func Add(a, b *Matrix) (*Matrix, error) {
	if !a.SameShape(b) {
		return nil, mismatch("Add", a, b)
	}
	out := New(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = a.data[i] + b.data[i]
	}
	return out, nil
}

// Sub returns a - b.
func Sub(a, b *Matrix) (*Matrix, error) {
	if !a.SameShape(b) {
		return nil, mismatch("Sub", a, b)
	}
	out := New(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = a.data[i] - b.data[i]
	}
	return out, nil
}

// Hadamard returns the element-wise product of a and b.
func Hadamard(a, b *Matrix) (*Matrix, error) {
	if !a.SameShape(b) {
		return nil, mismatch("Hadamard", a, b)
	}
	out := New(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = a.data[i] * b.data[i]
	}
	return out, nil
}

// Div returns the element-wise quotient a / b.
func Div(a, b *Matrix) (*Matrix, error) {
	if !a.SameShape(b) {
		return nil, mismatch("Div", a, b)
	}
	out := New(a.rows, a.cols)
	for i := range out.data {
		out.data[i] = a.data[i] / b.data[i]
	}
	return out, nil
}

// Mul returns the matrix product a·b. It requires a.Cols() == b.Rows(); the
// result is a.Rows() x b.Cols().
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, mismatch("Mul", a, b)
	}
	out := New(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		dst := out.data[i*b.cols : (i+1)*b.cols]
		for j := range dst {
			var sum float64
			for k := 0; k < a.cols; k++ {
				sum += a.data[i*a.cols+k] * b.data[k*b.cols+j]
			}
			dst[j] = sum
		}
	}
	return out, nil
}

// Dot returns the Frobenius inner product Σ a[i,j]·b[i,j].
func Dot(a, b *Matrix) (float64, error) {
	if !a.SameShape(b) {
		return 0, mismatch("Dot", a, b)
	}
	var sum float64
	for i, v := range a.data {
		sum += v * b.data[i]
	}
	return sum, nil
}

// Transpose returns a new matrix with result[j,i] = m[i,j].
func Transpose(m *Matrix) *Matrix {
	out := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

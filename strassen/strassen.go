// SPDX-License-Identifier: MIT
// Package: strassen
//
// strassen.go - recursive Strassen multiplication of square power-of-two
// matrices.
//
// Algorithm (one level, h = n/2, quadrants copied into the level's frame):
//
//	M1 = (A11 + A22)(B11 + B22)
//	M2 = (A21 + A22) B11
//	M3 = A11 (B12 - B22)
//	M4 = A22 (B21 - B11)
//	M5 = (A11 + A12) B22
//	M6 = (A21 - A11)(B11 + B12)
//	M7 = (A12 - A22)(B21 + B22)
//
//	C11 = M1 + M4 - M5 + M7    C12 = M3 + M5
//	C21 = M2 + M4              C22 = M1 + M3 - M2 + M6
//
// Complexity: O(n^log2(7)) ≈ O(n^2.807) time, O(n²) scratch.

package strassen

import (
	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/matmul/blocked"
	"github.com/katalvlaran/matmul/matrix"
	"golang.org/x/sync/errgroup"
)

const opMultiply = "strassen.Multiply"

// Multiply returns C = A·B for square n×n operands, n a power of two.
//
// Stage 1 (Validate): both operands non-nil, square and of equal size; n a
// power of two unless WithPadding is given. Violations return
// matrix.ErrInvalidShape before any work.
// Stage 2 (Prepare): copy into flat buffers (int64 under Checked), pad if
// requested, allocate the scratch arena.
// Stage 3 (Execute): recurse; combine quadrants.
// Stage 4 (Finalize): narrow (Checked), crop padding.
//
// Under the default Wrap policy all arithmetic wraps modulo 2^32 exactly as
// the blocked multiplier does, so both agree bit for bit. Under Checked the
// result is the exact product or matrix.ErrOverflow when some entry does not
// fit in int32; intermediate sums that cancel are not an error. Neither
// input is mutated.
func Multiply(a, b matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts)
	n, err := validate(a, b, o.pad)
	if err != nil {
		return nil, errors.Wrap(err, opMultiply)
	}

	da, err := matrix.AsDense(a)
	if err != nil {
		return nil, errors.Wrap(err, opMultiply)
	}
	db, err := matrix.AsDense(b)
	if err != nil {
		return nil, errors.Wrap(err, opMultiply)
	}

	size := n
	if !matrix.IsPowerOfTwo(n) {
		size = matrix.NextPowerOfTwo(n)
		if da, err = matrix.Pad(da, size, size); err != nil {
			return nil, errors.Wrap(err, opMultiply)
		}
		if db, err = matrix.Pad(db, size, size); err != nil {
			return nil, errors.Wrap(err, opMultiply)
		}
	}

	var out []int32
	if o.overflow == matrix.Checked {
		out, err = runChecked(da.RawData(), db.RawData(), size, o)
	} else {
		out, err = run(narrowKernels, da.RawData(), db.RawData(), size, o)
	}
	if err != nil {
		return nil, errors.Wrap(err, opMultiply)
	}

	c, err := matrix.NewDenseData(size, size, out)
	if err != nil {
		return nil, errors.Wrap(err, opMultiply)
	}
	if size != n {
		if c, err = matrix.Submatrix(c, 0, 0, n, n); err != nil {
			return nil, errors.Wrap(err, opMultiply)
		}
	}

	return c, nil
}

// validate returns the common size n of two square operands.
func validate(a, b matrix.Matrix, pad bool) (int, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return 0, err
	}
	if err := matrix.ValidateNotNil(b); err != nil {
		return 0, err
	}
	if err := matrix.ValidateSquare(a); err != nil {
		return 0, errors.Wrap(err, "A")
	}
	if err := matrix.ValidateSquare(b); err != nil {
		return 0, errors.Wrap(err, "B")
	}
	n := a.Rows()
	if b.Rows() != n {
		return 0, errors.Wrapf(matrix.ErrInvalidShape,
			"operands differ in size: A is %dx%d, B is %dx%d", n, n, b.Rows(), b.Cols())
	}
	if !pad && !matrix.IsPowerOfTwo(n) {
		return 0, errors.Wrapf(matrix.ErrInvalidShape,
			"n=%d is not a power of two (use WithPadding)", n)
	}

	return n, nil
}

// runChecked multiplies in wrapping int64 arithmetic, which is exact modulo
// 2^64. When n·max|A|·max|B| < 2^63 every true entry lies in int64, so the
// residue is the product itself and only narrowing can fail. Larger
// operands go through the checked blocked kernel instead, whose partial
// sums are exact dot-product prefixes.
func runChecked(a, b []int32, n int, o options) ([]int32, error) {
	if !exactIn64(a, b, n) {
		return runCheckedBlocked(a, b, n)
	}

	wide, err := run(wideKernels, widen(a), widen(b), n, o)
	if err != nil {
		return nil, err
	}

	out := make([]int32, len(wide))
	var ok bool
	for idx, v := range wide {
		if out[idx], ok = matrix.NarrowInt32(v); !ok {
			return nil, errors.Wrapf(matrix.ErrOverflow,
				"C[%d][%d]=%d does not fit in int32", idx/n, idx%n, v)
		}
	}

	return out, nil
}

// exactIn64 reports whether n·max|a|·max|b| fits in int64.
func exactIn64(a, b []int32, n int) bool {
	bound, ok := matrix.MulInt64(maxAbs(a), maxAbs(b))
	if !ok {
		return false
	}
	_, ok = matrix.MulInt64(bound, int64(n))

	return ok
}

func maxAbs(v []int32) int64 {
	var m int64
	for _, x := range v {
		w := int64(x)
		if w < 0 {
			w = -w
		}
		m = max(m, w)
	}

	return m
}

func runCheckedBlocked(a, b []int32, n int) ([]int32, error) {
	da, err := matrix.NewDenseData(n, n, a)
	if err != nil {
		return nil, err
	}
	db, err := matrix.NewDenseData(n, n, b)
	if err != nil {
		return nil, err
	}
	c, err := blocked.Multiply(da, db, blocked.DefaultBlockSize, blocked.WithOverflow(matrix.Checked))
	if err != nil {
		return nil, err
	}

	return c.RawData(), nil
}

func widen(src []int32) []int64 {
	dst := make([]int64, len(src))
	for i, v := range src {
		dst[i] = int64(v)
	}

	return dst
}

func run[T element](k kernels[T], a, b []T, n int, o options) ([]T, error) {
	s := newSolver(k, n, o.leaf, o.parallelDepth)
	dst := make([]T, n*n)
	if err := s.mul(dst, a, b, n, 0); err != nil {
		return nil, err
	}

	return dst, nil
}

// solver owns one arena. With parDepth > 0 it only materializes its top
// frame; each parallel branch runs a child solver with its own arena.
type solver[T element] struct {
	k        kernels[T]
	leaf     int
	parDepth int
	frames   []frame[T]
}

func newSolver[T element](k kernels[T], n, leaf, parDepth int) *solver[T] {
	levels := len(levelSizes(n, leaf))
	if parDepth > 0 {
		levels = min(levels, 1)
	}

	return &solver[T]{
		k:        k,
		leaf:     leaf,
		parDepth: parDepth,
		frames:   newFrames[T](n, leaf, levels),
	}
}

// mul writes a·b into dst; all three are n×n and dst must not alias a or b.
func (s *solver[T]) mul(dst, a, b []T, n, depth int) error {
	if n <= s.leaf || n == 1 {
		s.k.leaf(dst, a, b, n)
		return nil
	}

	h := n / 2
	f := &s.frames[depth]
	split(a, n, f.a11, f.a12, f.a21, f.a22)
	split(b, n, f.b11, f.b12, f.b21, f.b22)

	var err error
	if s.parDepth > 0 {
		err = s.productsParallel(f, h)
	} else {
		err = s.productsSequential(f, h, depth)
	}
	if err != nil {
		return err
	}
	s.combine(dst, f, n)

	return nil
}

func (s *solver[T]) productsSequential(f *frame[T], h, depth int) error {
	for p := range f.m {
		l, r, err := s.operands(p, f, f.t1, f.t2)
		if err != nil {
			return err
		}
		if err = s.mul(f.m[p], l, r, h, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func (s *solver[T]) productsParallel(f *frame[T], h int) error {
	var g errgroup.Group
	for p := range f.m {
		g.Go(func() error {
			x, y := make([]T, h*h), make([]T, h*h)
			l, r, err := s.operands(p, f, x, y)
			if err != nil {
				return err
			}
			child := newSolver(s.k, h, s.leaf, s.parDepth-1)

			return child.mul(f.m[p], l, r, h, 0)
		})
	}

	return g.Wait()
}

// operands prepares the factors of product p (0-based M1..M7), using x and
// y as destinations for sums and differences. Quadrants used as-is are
// returned directly.
func (s *solver[T]) operands(p int, f *frame[T], x, y []T) (l, r []T, err error) {
	add, sub := s.k.add, s.k.sub
	switch p {
	case 0: // (A11 + A22)(B11 + B22)
		add(x, f.a11, f.a22)
		add(y, f.b11, f.b22)
		return x, y, nil
	case 1: // (A21 + A22) B11
		add(x, f.a21, f.a22)
		return x, f.b11, nil
	case 2: // A11 (B12 - B22)
		sub(y, f.b12, f.b22)
		return f.a11, y, nil
	case 3: // A22 (B21 - B11)
		sub(y, f.b21, f.b11)
		return f.a22, y, nil
	case 4: // (A11 + A12) B22
		add(x, f.a11, f.a12)
		return x, f.b22, nil
	case 5: // (A21 - A11)(B11 + B12)
		sub(x, f.a21, f.a11)
		add(y, f.b11, f.b12)
		return x, y, nil
	case 6: // (A12 - A22)(B21 + B22)
		sub(x, f.a12, f.a22)
		add(y, f.b21, f.b22)
		return x, y, nil
	}

	return nil, nil, errors.AssertionFailedf("strassen: product index %d out of range", p)
}

// combine assembles the four output quadrants from M1..M7 into dst,
// staging each quadrant in f.t1.
func (s *solver[T]) combine(dst []T, f *frame[T], n int) {
	h := n / 2
	add, sub := s.k.add, s.k.sub
	m, acc := &f.m, f.t1

	// C11 = M1 + M4 - M5 + M7
	add(acc, m[0], m[3])
	sub(acc, acc, m[4])
	add(acc, acc, m[6])
	join(dst, n, acc, 0, 0)

	// C12 = M3 + M5
	add(acc, m[2], m[4])
	join(dst, n, acc, 0, h)

	// C21 = M2 + M4
	add(acc, m[1], m[3])
	join(dst, n, acc, h, 0)

	// C22 = M1 + M3 - M2 + M6
	add(acc, m[0], m[2])
	sub(acc, acc, m[1])
	add(acc, acc, m[5])
	join(dst, n, acc, h, h)
}

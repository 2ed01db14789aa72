// Package region provides an N-dimensional axis-aligned box value
// type and a pure proportional splitting algorithm over it. Splitting
// is exact: the two children of a split cover the parent without
// overlap, neither child is ever empty, and the sum of their pixel
// counts equals the parent's.
package region

import (
	"fmt"
)

// A Region is an N-dimensional axis-aligned box, described by a
// per-dimension start index and size. The dimension count is fixed at
// construction. Regions are value types: Split returns children with
// fresh backing storage, so no mutable state is ever shared between a
// region and its children.
type Region struct {
	// Index is the start coordinate per dimension.
	Index []int

	// Size is the extent per dimension. All entries are
	// non-negative; a region with any zero entry is empty.
	Size []int
}

// New returns a Region with the given per-dimension start indices and
// sizes. The slices are copied. New panics if the slices differ in
// length, if the dimension count is zero, or if any size is negative.
func New(index, size []int) Region {
	if len(index) != len(size) {
		panic(fmt.Sprintf("region: mismatched dimensions: %v:%v", len(index), len(size)))
	}
	if len(size) == 0 {
		panic("region: zero dimensions")
	}
	for d, s := range size {
		if s < 0 {
			panic(fmt.Sprintf("region: negative size %v in dimension %v", s, d))
		}
	}
	r := Region{
		Index: make([]int, len(index)),
		Size:  make([]int, len(size)),
	}
	copy(r.Index, index)
	copy(r.Size, size)
	return r
}

// Dim returns the number of dimensions.
func (r Region) Dim() int {
	return len(r.Size)
}

// Pixels returns the number of cells covered by the region, the
// product of all sizes.
func (r Region) Pixels() int {
	pixels := 1
	for _, s := range r.Size {
		pixels *= s
	}
	return pixels
}

// IsEmpty reports whether the region covers no cells, that is,
// whether any dimension has size zero. Empty regions must never be
// dispatched as work units.
func (r Region) IsEmpty() bool {
	for _, s := range r.Size {
		if s == 0 {
			return true
		}
	}
	return false
}

// IsDivisible reports whether the region can be split, that is,
// whether any dimension has size greater than one.
func (r Region) IsDivisible() bool {
	for _, s := range r.Size {
		if s > 1 {
			return true
		}
	}
	return false
}

func (r Region) String() string {
	return fmt.Sprintf("region{index: %v, size: %v}", r.Index, r.Size)
}

// A Proportion expresses the desired work ratio between the two
// children of a split. Both components must be positive.
type Proportion struct {
	Left, Right int
}

// Balanced is the default even split.
var Balanced = Proportion{1, 1}

// An IndivisibleError is the panic value raised when Split is called
// on a region with no splittable dimension. It indicates a defect in
// the caller's granularity policy: correct callers check IsDivisible
// before splitting.
type IndivisibleError struct {
	Region Region
}

func (e *IndivisibleError) Error() string {
	return fmt.Sprintf("region: %v cannot be split", e.Region)
}

// Split divides r into two disjoint children covering it exactly.
//
// The split dimension is the highest-indexed dimension with size
// greater than one. Higher dimensions have the worst memory locality
// per access, so splitting there first keeps access within each child
// contiguous for as long as possible.
//
// The split point along that dimension is size*p.Right/(p.Left+p.Right),
// clamped so that neither child is empty even for extreme
// proportions. The left child keeps the low part of the dimension;
// the right child receives the rest, with its start index shifted
// accordingly. All other dimensions are identical between the
// children. For a balanced proportion the children are the two
// halves.
//
// Split panics with an *IndivisibleError if r is not divisible, and
// panics if either component of p is not positive.
func (r Region) Split(p Proportion) (left, right Region) {
	if p.Left < 1 || p.Right < 1 {
		panic(fmt.Sprintf("region: invalid proportion: %v:%v", p.Left, p.Right))
	}
	for d := r.Dim() - 1; d >= 0; d-- {
		if r.Size[d] > 1 {
			splitPoint := r.Size[d] * p.Right / (p.Left + p.Right)
			if splitPoint < 1 {
				splitPoint = 1
			} else if splitPoint > r.Size[d]-1 {
				splitPoint = r.Size[d] - 1
			}
			left = New(r.Index, r.Size)
			right = New(r.Index, r.Size)
			left.Size[d] = splitPoint
			right.Size[d] = r.Size[d] - splitPoint
			right.Index[d] = r.Index[d] + splitPoint
			return left, right
		}
	}
	panic(&IndivisibleError{Region: r})
}

// Package geom holds the rectangle type used for every placement decision.
package geom

import (
	"fmt"
	"math"
)

// Dimensions is a position and a non-negative extent.
type Dimensions struct {
	X, Y int
	W, H uint
}

// New builds a Dimensions value.
func New(x, y int, w, h uint) Dimensions {
	return Dimensions{X: x, Y: y, W: w, H: h}
}

// FromInts builds a Dimensions value from signed sizes, treating negative
// extents as zero.
func FromInts(x, y, w, h int) Dimensions {
	return Dimensions{X: x, Y: y, W: Size(w), H: Size(h)}
}

func (d Dimensions) Pos() (int, int) {
	return d.X, d.Y
}

func (d Dimensions) Size() (uint, uint) {
	return d.W, d.H
}

// Center returns the middle point, rounded towards the origin.
func (d Dimensions) Center() (int, int) {
	return d.X + int(d.W/2), d.Y + int(d.H/2)
}

// Right is the first x coordinate past the rectangle.
func (d Dimensions) Right() int {
	return d.X + int(d.W)
}

// Bottom is the first y coordinate past the rectangle.
func (d Dimensions) Bottom() int {
	return d.Y + int(d.H)
}

func (d Dimensions) Empty() bool {
	return d.W == 0 || d.H == 0
}

// Contains reports whether o lies completely inside d.
func (d Dimensions) Contains(o Dimensions) bool {
	return o.X >= d.X && o.Y >= d.Y && o.Right() <= d.Right() && o.Bottom() <= d.Bottom()
}

// ContainsPoint reports whether (x, y) lies inside d.
func (d Dimensions) ContainsPoint(x, y int) bool {
	return x >= d.X && x < d.Right() && y >= d.Y && y < d.Bottom()
}

// Inset shrinks d by n on every side. The extent never goes below zero.
func (d Dimensions) Inset(n uint) Dimensions {
	return Dimensions{
		X: d.X + int(n),
		Y: d.Y + int(n),
		W: subSat(d.W, 2*n),
		H: subSat(d.H, 2*n),
	}
}

// Intersect returns the overlap of d and o, or an empty rectangle at d's
// origin when they do not overlap.
func (d Dimensions) Intersect(o Dimensions) Dimensions {
	x1 := max(d.X, o.X)
	y1 := max(d.Y, o.Y)
	x2 := min(d.Right(), o.Right())
	y2 := min(d.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Dimensions{X: d.X, Y: d.Y}
	}
	return FromInts(x1, y1, x2-x1, y2-y1)
}

// AtLeast raises the extent to floor in both directions.
func (d Dimensions) AtLeast(floor uint) Dimensions {
	d.W = max(d.W, floor)
	d.H = max(d.H, floor)
	return d
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", d.W, d.H, d.X, d.Y)
}

// Size converts a signed length into an extent, clamping negatives to zero.
func Size(v int) uint {
	if v < 0 {
		return 0
	}
	return uint(v)
}

// Int16 saturates v into the protocol's coordinate range.
func Int16(v int) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// Uint16 saturates v into the protocol's extent range.
func Uint16(v uint) uint16 {
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}

// Uint32 encodes a signed coordinate the way configure requests expect it,
// saturating to the int16 range first.
func Uint32(v int) uint32 {
	return uint32(int32(Int16(v)))
}

func subSat(a, b uint) uint {
	if b >= a {
		return 0
	}
	return a - b
}

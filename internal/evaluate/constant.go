package evaluate

import (
	"fmt"
	"strings"
)

// Constant is a typed constant value: scalars in element order plus a
// shape. Rank 0 denotes a scalar. The value count always equals the
// product of the extents. Elements are stored in row-major order.
type Constant struct {
	typ    TypeSpec
	values []Scalar
	shape  []int
}

// NewScalarConstant wraps a single scalar as a rank-0 constant.
func NewScalarConstant(v Scalar) *Constant {
	return &Constant{
		typ:    TypeSpec{Category: v.Category(), Kind: v.Kind()},
		values: []Scalar{v},
	}
}

// NewArrayConstant builds an array constant, checking that the element
// count matches the shape.
func NewArrayConstant(typ TypeSpec, values []Scalar, shape []int) (*Constant, error) {
	if n := shapeElements(shape); n != len(values) {
		return nil, fmt.Errorf("constant of shape %v needs %d elements, got %d", shape, n, len(values))
	}
	return &Constant{typ: typ, values: values, shape: shape}, nil
}

func shapeElements(shape []int) int {
	n := 1
	for _, extent := range shape {
		n *= extent
	}
	return n
}

func (c *Constant) Type() TypeSpec { return c.typ }
func (c *Constant) isExpr()        {}

// Rank is the number of dimensions; 0 for a scalar.
func (c *Constant) Rank() int { return len(c.shape) }

// Shape returns the per-dimension extents.
func (c *Constant) Shape() []int { return c.shape }

// Values returns the elements in row-major order.
func (c *Constant) Values() []Scalar { return c.values }

// Len is the total element count.
func (c *Constant) Len() int { return len(c.values) }

// IsScalar reports whether the constant has rank 0.
func (c *Constant) IsScalar() bool { return len(c.shape) == 0 }

// ScalarValue returns the value of a rank-0 constant.
func (c *Constant) ScalarValue() (Scalar, bool) {
	if c.IsScalar() && len(c.values) == 1 {
		return c.values[0], true
	}
	return nil, false
}

func (c *Constant) String() string {
	if v, ok := c.ScalarValue(); ok {
		return v.String()
	}
	parts := make([]string, len(c.values))
	for i, v := range c.values {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal compares type, shape, and every element for identity. Used by the
// idempotence guarantee: refolding an already-constant node yields an equal
// constant.
func (c *Constant) Equal(o *Constant) bool {
	if c.typ != o.typ || len(c.values) != len(o.values) || len(c.shape) != len(o.shape) {
		return false
	}
	for i, extent := range c.shape {
		if o.shape[i] != extent {
			return false
		}
	}
	for i, v := range c.values {
		if v != o.values[i] {
			return false
		}
	}
	return true
}

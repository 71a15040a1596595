package evaluate

// Elementwise broadcasting over constant operands. A scalar operand
// conforms with any array; two arrays conform only when their shapes are
// equal. Elements are visited in row-major order, matching constant
// storage.

// conformedShape returns the common shape of two constants, or false when
// the shapes do not conform.
func conformedShape(a, b *Constant) ([]int, bool) {
	if a.IsScalar() {
		return b.Shape(), true
	}
	if b.IsScalar() {
		return a.Shape(), true
	}
	if a.Rank() != b.Rank() {
		return nil, false
	}
	for i, extent := range a.Shape() {
		if b.Shape()[i] != extent {
			return nil, false
		}
	}
	return a.Shape(), true
}

// mapConstant applies a scalar operation to every element of a constant,
// producing a constant of the same shape and the given result type. The
// operation may decline, which aborts the fold.
func mapConstant(c *Constant, result TypeSpec, f func(Scalar) (Scalar, bool)) (*Constant, bool) {
	values := make([]Scalar, c.Len())
	for i, v := range c.Values() {
		out, ok := f(v)
		if !ok {
			return nil, false
		}
		values[i] = out
	}
	return &Constant{typ: result, values: values, shape: c.Shape()}, true
}

// mapConstant2 applies a binary scalar operation pointwise across two
// conforming constants, broadcasting a scalar operand against an array.
func mapConstant2(a, b *Constant, result TypeSpec, f func(x, y Scalar) (Scalar, bool)) (*Constant, bool) {
	shape, ok := conformedShape(a, b)
	if !ok {
		return nil, false
	}
	n := shapeElements(shape)
	values := make([]Scalar, n)
	for i := 0; i < n; i++ {
		out, ok := f(broadcastElement(a, i), broadcastElement(b, i))
		if !ok {
			return nil, false
		}
		values[i] = out
	}
	return &Constant{typ: result, values: values, shape: shape}, true
}

func broadcastElement(c *Constant, i int) Scalar {
	if c.IsScalar() {
		return c.Values()[0]
	}
	return c.Values()[i]
}

// applyElementwise is the broadcaster contract for operator folding: it
// applies only when at least one operand is an array, so purely scalar
// operands fall through to scalar folding.
func applyElementwise(a, b *Constant, result TypeSpec, f func(x, y Scalar) (Scalar, bool)) (*Constant, bool) {
	if a.IsScalar() && b.IsScalar() {
		return nil, false
	}
	return mapConstant2(a, b, result, f)
}

package evaluate

// Narrow static queries consumed by the folding dispatcher. None of these
// perform general analysis; they inspect only what earlier phases already
// decided.

// IsActuallyConstant reports whether the expression has been fully reduced
// to a constant value.
func IsActuallyConstant(e Expr) bool {
	_, ok := e.(*Constant)
	return ok
}

// GetScalarConstantValue returns the scalar value of a rank-0 constant
// expression.
func GetScalarConstantValue(e Expr) (Scalar, bool) {
	if c, ok := e.(*Constant); ok {
		return c.ScalarValue()
	}
	return nil, false
}

// IsNullPointer reports whether the expression is statically a
// disassociated pointer. This is a syntactic check, not aliasing analysis.
func IsNullPointer(e Expr) bool {
	_, ok := e.(*NullPointer)
	return ok
}

// IsContiguous returns the statically known contiguity of a designator, or
// nil when it cannot be determined at compile time.
func IsContiguous(d *Designator) *bool {
	if d.Contiguity != nil {
		return d.Contiguity
	}
	if d.Rank == 0 {
		t := true
		return &t
	}
	if !d.Pointer {
		// A whole non-pointer array object is contiguous.
		t := true
		return &t
	}
	return nil
}

// declaredDerivedType returns the statically declared derived type of an
// expression, if one is known.
func declaredDerivedType(e Expr) *DerivedTypeSpec {
	if d, ok := e.(*Designator); ok {
		return d.Derived
	}
	return nil
}

package evaluate

// Reduction engine for ALL, ANY, and PARITY, plus the logical DOT_PRODUCT
// reduction. The caller supplies the accumulation operator and its identity
// element; reducing an empty set yields the identity.

// ProcessReductionArgs resolves the operand of a logical reduction: the
// array argument at arrayPos and the optional DIM argument at dimPos. It
// returns the array as a constant and the one-based reduction dimension,
// or ok=false when the reduction cannot be folded yet. An out-of-range DIM
// is diagnosed and declines the fold.
func ProcessReductionArgs(ctx *FoldingContext, args []*ActualArgument, arrayPos, dimPos int) (*Constant, *int, bool) {
	array, ok := argExpr(args, arrayPos).(*Constant)
	if !ok || array.Type().Category != TypeLogical {
		return nil, nil, false
	}
	var dim *int
	if dimExpr := argExpr(args, dimPos); dimExpr != nil {
		v, ok := GetScalarConstantValue(dimExpr)
		if !ok {
			return nil, nil, false
		}
		d, ok := v.(Integer)
		if !ok {
			return nil, nil, false
		}
		n := int(d.ToInt64())
		if n < 1 || n > array.Rank() {
			ctx.Messages().Say("DIM=%d is not valid for an array of rank %d", n, array.Rank())
			return nil, nil, false
		}
		dim = &n
	}
	return array, dim, true
}

// DoReduction folds op over the array, seeded with the identity. Without
// DIM the whole array reduces to a scalar. With DIM the reduction runs
// independently along the remaining axes and the reduced dimension is
// removed from the result shape.
func DoReduction(array *Constant, dim *int, identity Logical, op func(Logical, Logical) Logical) *Constant {
	if dim == nil {
		acc := identity
		for _, v := range array.Values() {
			acc = op(acc, v.(Logical))
		}
		return NewScalarConstant(acc)
	}
	k := *dim - 1
	shape := array.Shape()
	outer, inner := 1, 1
	for _, extent := range shape[:k] {
		outer *= extent
	}
	for _, extent := range shape[k+1:] {
		inner *= extent
	}
	n := shape[k]
	values := make([]Scalar, 0, outer*inner)
	for i := 0; i < outer; i++ {
		for j := 0; j < inner; j++ {
			acc := identity
			for l := 0; l < n; l++ {
				acc = op(acc, array.Values()[(i*n+l)*inner+j].(Logical))
			}
			values = append(values, acc)
		}
	}
	resultShape := make([]int, 0, len(shape)-1)
	resultShape = append(resultShape, shape[:k]...)
	resultShape = append(resultShape, shape[k+1:]...)
	return &Constant{
		typ:    LogicalType(identity.Kind()),
		values: values,
		shape:  resultShape,
	}
}

// foldAllAnyParity folds ALL, ANY, and PARITY through the reduction
// engine. The array argument is at slot 0, DIM at slot 1.
func foldAllAnyParity(ctx *FoldingContext, ref *FunctionRef, op func(Logical, Logical) Logical, identity Logical) Expr {
	array, dim, ok := ProcessReductionArgs(ctx, ref.Args, 0, 1)
	if !ok {
		return ref
	}
	return DoReduction(array, dim, identity, op)
}

// FoldDotProduct folds DOT_PRODUCT over logical vectors: the OR reduction
// of the pairwise AND, false over empty vectors. Non-constant or
// non-conforming operands leave the call unevaluated.
func FoldDotProduct(ctx *FoldingContext, ref *FunctionRef) Expr {
	a, okA := argExpr(ref.Args, 0).(*Constant)
	b, okB := argExpr(ref.Args, 1).(*Constant)
	if !okA || !okB {
		return ref
	}
	if a.Type().Category != TypeLogical || b.Type().Category != TypeLogical {
		return ref
	}
	if a.Rank() != 1 || b.Rank() != 1 || a.Len() != b.Len() {
		return ref
	}
	acc := NewLogical(false, ref.Result.Kind)
	for i, v := range a.Values() {
		acc = acc.Or(v.(Logical).And(b.Values()[i].(Logical)))
	}
	return NewScalarConstant(acc)
}

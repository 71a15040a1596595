package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logicals(kind int, values ...bool) []Scalar {
	out := make([]Scalar, len(values))
	for i, v := range values {
		out[i] = NewLogical(v, kind)
	}
	return out
}

func logicalVector(t *testing.T, values ...bool) *Constant {
	t.Helper()
	c, err := NewArrayConstant(LogicalType(DefaultLogicalKind), logicals(DefaultLogicalKind, values...), []int{len(values)})
	require.NoError(t, err)
	return c
}

func call(t *testing.T, name string, args ...Expr) *FunctionRef {
	t.Helper()
	op := BindIntrinsic(name)
	slots := make([]*ActualArgument, len(args))
	for i, arg := range args {
		if arg != nil {
			slots[i] = &ActualArgument{Expr: arg}
		}
	}
	return &FunctionRef{Op: op, Name: name, Args: slots, Result: LogicalType(DefaultLogicalKind)}
}

func requireLogicalConstant(t *testing.T, e Expr) bool {
	t.Helper()
	c, ok := e.(*Constant)
	require.True(t, ok, "expected a constant, got %T: %s", e, e)
	v, ok := c.ScalarValue()
	require.True(t, ok, "expected a scalar constant, got shape %v", c.Shape())
	return v.(Logical).IsTrue()
}

func TestReductionIdentities(t *testing.T) {
	ctx := NewFoldingContext()
	empty := logicalVector(t)

	assert.True(t, requireLogicalConstant(t, Fold(ctx, call(t, "all", empty))))
	assert.False(t, requireLogicalConstant(t, Fold(ctx, call(t, "any", empty))))
	assert.False(t, requireLogicalConstant(t, Fold(ctx, call(t, "parity", empty))))
}

func TestReductionValues(t *testing.T) {
	ctx := NewFoldingContext()

	assert.False(t, requireLogicalConstant(t, Fold(ctx, call(t, "all", logicalVector(t, true, true, false)))))
	assert.True(t, requireLogicalConstant(t, Fold(ctx, call(t, "all", logicalVector(t, true, true)))))
	assert.True(t, requireLogicalConstant(t, Fold(ctx, call(t, "any", logicalVector(t, false, false, true)))))
	assert.False(t, requireLogicalConstant(t, Fold(ctx, call(t, "any", logicalVector(t, false, false)))))
	// Odd number of true values.
	assert.True(t, requireLogicalConstant(t, Fold(ctx, call(t, "parity", logicalVector(t, true, true, true)))))
	assert.False(t, requireLogicalConstant(t, Fold(ctx, call(t, "parity", logicalVector(t, true, true, false)))))
}

func TestReductionAlongDimension(t *testing.T) {
	ctx := NewFoldingContext()
	// 2x3 array, rows [T T F] and [T F F].
	array, err := NewArrayConstant(LogicalType(4),
		logicals(4, true, true, false, true, false, false), []int{2, 3})
	require.NoError(t, err)

	// DIM=2 reduces each row: ALL -> [F, F], ANY -> [T, T].
	folded := Fold(ctx, call(t, "any", array, NewScalarConstant(NewInteger(2, 4))))
	c, ok := folded.(*Constant)
	require.True(t, ok)
	assert.Equal(t, []int{2}, c.Shape())
	assert.True(t, c.Values()[0].(Logical).IsTrue())
	assert.True(t, c.Values()[1].(Logical).IsTrue())

	// DIM=1 reduces each column: ALL -> [T, F, F].
	folded = Fold(ctx, call(t, "all", array, NewScalarConstant(NewInteger(1, 4))))
	c, ok = folded.(*Constant)
	require.True(t, ok)
	assert.Equal(t, []int{3}, c.Shape())
	assert.True(t, c.Values()[0].(Logical).IsTrue())
	assert.False(t, c.Values()[1].(Logical).IsTrue())
	assert.False(t, c.Values()[2].(Logical).IsTrue())
}

func TestReductionInvalidDim(t *testing.T) {
	ctx := NewFoldingContext()
	ref := call(t, "all", logicalVector(t, true), NewScalarConstant(NewInteger(3, 4)))

	folded := Fold(ctx, ref)
	assert.IsType(t, &FunctionRef{}, folded, "invalid DIM declines the fold")
	require.Len(t, ctx.Messages().Messages(), 1)
	assert.Contains(t, ctx.Messages().Messages()[0].Text, "DIM=3")
}

func TestReductionNonConstantStaysUnevaluated(t *testing.T) {
	ctx := NewFoldingContext()
	mask := &Designator{Name: "m", Typ: LogicalType(4), Rank: 1}

	folded := Fold(ctx, call(t, "all", mask))
	assert.IsType(t, &FunctionRef{}, folded)
	assert.True(t, ctx.Messages().Empty())
}

func TestDotProductLogical(t *testing.T) {
	ctx := NewFoldingContext()

	folded := Fold(ctx, call(t, "dot_product",
		logicalVector(t, true, false, true),
		logicalVector(t, false, false, true)))
	assert.True(t, requireLogicalConstant(t, folded))

	folded = Fold(ctx, call(t, "dot_product",
		logicalVector(t, true, false),
		logicalVector(t, false, true)))
	assert.False(t, requireLogicalConstant(t, folded))

	// Empty vectors reduce to the OR identity.
	folded = Fold(ctx, call(t, "dot_product", logicalVector(t), logicalVector(t)))
	assert.False(t, requireLogicalConstant(t, folded))

	// Non-conforming lengths stay unevaluated.
	folded = Fold(ctx, call(t, "dot_product", logicalVector(t, true), logicalVector(t, true, false)))
	assert.IsType(t, &FunctionRef{}, folded)
}

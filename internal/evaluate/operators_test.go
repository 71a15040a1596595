package evaluate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relation(op RelationalOperator, left, right Expr) *Relational {
	return &Relational{Op: op, Left: left, Right: right, Result: LogicalType(DefaultLogicalKind)}
}

func logicalOp(op LogicalOperator, left, right Expr) *LogicalOperation {
	return &LogicalOperation{Op: op, Left: left, Right: right, Result: LogicalType(DefaultLogicalKind)}
}

func TestIntegerRelationalFolding(t *testing.T) {
	ctx := NewFoldingContext()

	assert.True(t, requireLogicalConstant(t, Fold(ctx, relation(OpLT, intScalar(-5, 4), intScalar(3, 4)))))
	assert.False(t, requireLogicalConstant(t, Fold(ctx, relation(OpGT, intScalar(-5, 4), intScalar(3, 4)))))
	assert.True(t, requireLogicalConstant(t, Fold(ctx, relation(OpEQ, intScalar(7, 4), intScalar(7, 4)))))
	assert.True(t, requireLogicalConstant(t, Fold(ctx, relation(OpNE, intScalar(7, 4), intScalar(8, 4)))))
}

func TestRealRelationalNaN(t *testing.T) {
	ctx := NewFoldingContext()
	nan := realScalar(math.NaN(), 8)
	one := realScalar(1.0, 8)

	// Unordered comparisons are false for every relation, equality included.
	for _, op := range []RelationalOperator{OpLT, OpLE, OpEQ, OpNE, OpGT, OpGE} {
		assert.False(t, requireLogicalConstant(t, Fold(ctx, relation(op, nan, one))), op.String())
		assert.False(t, requireLogicalConstant(t, Fold(ctx, relation(op, nan, nan))), op.String())
	}
	assert.True(t, requireLogicalConstant(t, Fold(ctx, relation(OpLE, one, one))))
}

func TestComplexEqualityFolding(t *testing.T) {
	ctx := NewFoldingContext()
	a := NewScalarConstant(NewComplex(1, 2, 8))
	b := NewScalarConstant(NewComplex(1, 2, 8))
	c := NewScalarConstant(NewComplex(1, 3, 8))

	assert.True(t, requireLogicalConstant(t, Fold(ctx, relation(OpEQ, a, b))))
	assert.False(t, requireLogicalConstant(t, Fold(ctx, relation(OpEQ, a, c))))
	assert.True(t, requireLogicalConstant(t, Fold(ctx, relation(OpNE, a, c))))
}

func TestComplexOrderingPanics(t *testing.T) {
	ctx := NewFoldingContext()
	a := NewScalarConstant(NewComplex(1, 2, 8))
	b := NewScalarConstant(NewComplex(1, 2, 8))

	assert.Panics(t, func() {
		Fold(ctx, relation(OpLT, a, b))
	}, "ordering complex operands is an upstream bug, not a user error")
}

func TestCharacterRelationalFolding(t *testing.T) {
	ctx := NewFoldingContext()

	assert.True(t, requireLogicalConstant(t, Fold(ctx, relation(OpLT, charScalar("abc", 1), charScalar("abd", 1)))))
	assert.True(t, requireLogicalConstant(t, Fold(ctx, relation(OpEQ, charScalar("ab", 1), charScalar("ab ", 1)))))
}

func TestRelationalElementwiseBroadcast(t *testing.T) {
	ctx := NewFoldingContext()
	values := []Scalar{NewInteger(1, 4), NewInteger(5, 4), NewInteger(9, 4)}
	array, err := NewArrayConstant(IntegerType(4), values, []int{3})
	require.NoError(t, err)

	folded := Fold(ctx, relation(OpGT, array, intScalar(4, 4)))
	c, ok := folded.(*Constant)
	require.True(t, ok)
	require.Equal(t, []int{3}, c.Shape())
	assert.False(t, c.Values()[0].(Logical).IsTrue())
	assert.True(t, c.Values()[1].(Logical).IsTrue())
	assert.True(t, c.Values()[2].(Logical).IsTrue())
}

func TestRelationalNonConstantStaysUnevaluated(t *testing.T) {
	ctx := NewFoldingContext()
	x := &Designator{Name: "x", Typ: IntegerType(4)}

	folded := Fold(ctx, relation(OpLT, x, intScalar(3, 4)))
	assert.IsType(t, &Relational{}, folded, "never partially folded")
}

func TestLogicalOperationFolding(t *testing.T) {
	ctx := NewFoldingContext()
	tr := NewScalarConstant(NewLogical(true, 4))
	fa := NewScalarConstant(NewLogical(false, 4))

	tests := []struct {
		op          LogicalOperator
		left, right Expr
		want        bool
	}{
		{OpAnd, tr, tr, true},
		{OpAnd, tr, fa, false},
		{OpOr, fa, tr, true},
		{OpOr, fa, fa, false},
		{OpEqv, tr, tr, true},
		{OpEqv, tr, fa, false},
		{OpNeqv, tr, fa, true},
		{OpNeqv, fa, fa, false},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			folded := Fold(ctx, logicalOp(tt.op, tt.left, tt.right))
			assert.Equal(t, tt.want, requireLogicalConstant(t, folded))
		})
	}
}

func TestNotFolding(t *testing.T) {
	ctx := NewFoldingContext()

	folded := Fold(ctx, &Not{Operand: NewScalarConstant(NewLogical(true, 4)), Result: LogicalType(4)})
	assert.False(t, requireLogicalConstant(t, folded))

	array := logicalVector(t, true, false)
	folded = Fold(ctx, &Not{Operand: array, Result: LogicalType(4)})
	c, ok := folded.(*Constant)
	require.True(t, ok)
	assert.False(t, c.Values()[0].(Logical).IsTrue())
	assert.True(t, c.Values()[1].(Logical).IsTrue())

	x := &Designator{Name: "x", Typ: LogicalType(4)}
	assert.IsType(t, &Not{}, Fold(ctx, &Not{Operand: x, Result: LogicalType(4)}))
}

func TestLogicalOperationElementwise(t *testing.T) {
	ctx := NewFoldingContext()
	a := logicalVector(t, true, true, false)
	b := logicalVector(t, true, false, false)

	folded := Fold(ctx, logicalOp(OpAnd, a, b))
	c, ok := folded.(*Constant)
	require.True(t, ok)
	require.Equal(t, []int{3}, c.Shape())
	assert.True(t, c.Values()[0].(Logical).IsTrue())
	assert.False(t, c.Values()[1].(Logical).IsTrue())
	assert.False(t, c.Values()[2].(Logical).IsTrue())

	// Scalar against array broadcasts.
	folded = Fold(ctx, logicalOp(OpOr, a, NewScalarConstant(NewLogical(true, 4))))
	c, ok = folded.(*Constant)
	require.True(t, ok)
	for _, v := range c.Values() {
		assert.True(t, v.(Logical).IsTrue())
	}
}

func TestNestedExpressionFolding(t *testing.T) {
	ctx := NewFoldingContext()
	// (1 < 2) .and. .not. (3 == 4)
	expr := logicalOp(OpAnd,
		relation(OpLT, intScalar(1, 4), intScalar(2, 4)),
		&Not{
			Operand: relation(OpEQ, intScalar(3, 4), intScalar(4, 4)),
			Result:  LogicalType(DefaultLogicalKind),
		})
	assert.True(t, requireLogicalConstant(t, Fold(ctx, expr)))
}

func TestOperandsOfDifferentShapesDecline(t *testing.T) {
	ctx := NewFoldingContext()
	a := logicalVector(t, true, false)
	b := logicalVector(t, true, false, true)

	folded := Fold(ctx, logicalOp(OpAnd, a, b))
	assert.IsType(t, &LogicalOperation{}, folded)
}

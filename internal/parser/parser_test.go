package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-lang/lumina/internal/evaluate"
)

func fold(t *testing.T, input string) evaluate.Expr {
	t.Helper()
	expr, err := Parse(input)
	require.NoError(t, err, "parse %q", input)
	return evaluate.Fold(evaluate.NewFoldingContext(), expr)
}

func foldToLogical(t *testing.T, input string) bool {
	t.Helper()
	folded := fold(t, input)
	v, ok := evaluate.GetScalarConstantValue(folded)
	require.True(t, ok, "%q did not fold to a scalar constant: %s", input, folded)
	l, ok := v.(evaluate.Logical)
	require.True(t, ok, "%q folded to a %s constant", input, v.Category())
	return l.IsTrue()
}

func TestFoldEndToEnd(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"all([.true., .true.])", true},
		{"all([.true., .true., .false.])", false},
		{"all([])", true},
		{"any([.false., .false., .true.])", true},
		{"any([])", false},
		{"parity([.true., .true., .false.])", true},
		{"parity([])", false},
		{"bge(-1_1, 1_8)", true},
		{"blt(1_8, -1_1)", true},
		{"bge(z'ff', -1_1)", true},
		{"ble(b'101', o'5')", true},
		{"btest(4, 2)", true},
		{"btest(4, 1)", false},
		{"associated(null())", false},
		{"associated(null(), null())", false},
		{"lge(\"abc\", \"abd\")", false},
		{"lgt(\"abd\", \"abc\")", true},
		{"lle('abc', 'abc')", true},
		{"llt('abc', 'abd')", true},
		{"is_iostat_end(-1)", true},
		{"is_iostat_end(0)", false},
		{"is_iostat_eor(-2)", true},
		{"out_of_range(3.0e10, 1)", true},
		{"out_of_range(100.0, 1)", false},
		{"out_of_range(127.5, 1_1, .true.)", true},
		{"out_of_range(127.5, 1_1)", false},
		{"out_of_range(300, 1_1)", true},
		{"logical(.true., 8)", true},
		{"__builtin_ieee_support_nan()", true},
		{"1 < 2", true},
		{"2 .le. 1", false},
		{"\"ab\" == \"ab \"", true},
		{"1.5 > 1.0 .and. .not. 2 == 3", true},
		{".true. .eqv. .true.", true},
		{".true. .neqv. .true.", false},
		{".true. .or. .false. .and. .false.", true}, // .and. binds tighter
		{"dot_product([.true., .false.], [.true., .true.])", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, foldToLogical(t, tt.input))
		})
	}
}

func TestFoldDeclines(t *testing.T) {
	inputs := []string{
		"bge(i, 1)",          // non-constant operand
		"associated(p)",      // not statically null
		"isnan(x)",           // operand not constant
		"out_of_range(x, 1)", // operand not constant
		"matmul(a, b)",       // unrecognized intrinsic
		"i < 2",              // non-constant comparison
		".not. l(1)",         // unknown call
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			folded := fold(t, input)
			assert.False(t, evaluate.IsActuallyConstant(folded), "%q should stay unevaluated", input)
		})
	}
}

func TestKeywordArguments(t *testing.T) {
	folded := fold(t, "any([[.false., .true., .false.], [.false., .false., .false.]], dim=2)")
	c, ok := folded.(*evaluate.Constant)
	require.True(t, ok)
	require.Equal(t, []int{2}, c.Shape())
	assert.True(t, c.Values()[0].(evaluate.Logical).IsTrue())
	assert.False(t, c.Values()[1].(evaluate.Logical).IsTrue())
}

func TestArrayConstructor(t *testing.T) {
	expr, err := Parse("[[1, 2], [3, 4], [5, 6]]")
	require.NoError(t, err)
	c, ok := expr.(*evaluate.Constant)
	require.True(t, ok)
	assert.Equal(t, []int{3, 2}, c.Shape())
	assert.Equal(t, 6, c.Len())

	_, err = Parse("[1, .true.]")
	assert.Error(t, err, "mixed element types are rejected")

	_, err = Parse("[[1, 2], [3]]")
	assert.Error(t, err, "ragged nesting is rejected")
}

func TestLiteralKinds(t *testing.T) {
	expr, err := Parse("123_2")
	require.NoError(t, err)
	v, ok := evaluate.GetScalarConstantValue(expr)
	require.True(t, ok)
	assert.Equal(t, 2, v.Kind())
	assert.Equal(t, int64(123), v.(evaluate.Integer).ToInt64())

	expr, err = Parse("1.5d0")
	require.NoError(t, err)
	v, ok = evaluate.GetScalarConstantValue(expr)
	require.True(t, ok)
	assert.Equal(t, 8, v.Kind())

	expr, err = Parse("z'deadbeef'")
	require.NoError(t, err)
	boz, ok := expr.(*evaluate.BOZLiteral)
	require.True(t, ok)
	assert.Equal(t, uint64(0xdeadbeef), boz.Pattern)
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"1 <",
		"(1 == 1",
		"[1, 2",
		"'unterminated",
		"all(mask=, 2)",
		"btest(1, oops=2)",
		"9_3", // unsupported kind
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}

func TestImplicitTyping(t *testing.T) {
	expr, err := Parse("i")
	require.NoError(t, err)
	assert.Equal(t, evaluate.TypeInteger, expr.Type().Category)

	expr, err = Parse("x")
	require.NoError(t, err)
	assert.Equal(t, evaluate.TypeReal, expr.Type().Category)
}

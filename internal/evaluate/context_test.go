package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBufferSay(t *testing.T) {
	var buffer MessageBuffer
	buffer.Say("POS=%d out of range for BTEST", 42)

	require.Len(t, buffer.Messages(), 1)
	assert.Equal(t, "POS=42 out of range for BTEST", buffer.Messages()[0].Text)
	assert.False(t, buffer.Empty())
}

func TestDiscardMessagesDropsScopedDiagnostics(t *testing.T) {
	var buffer MessageBuffer
	buffer.Say("committed before")

	restore := buffer.DiscardMessages()
	buffer.Say("speculative one")
	buffer.Say("speculative two")
	restore()

	require.Len(t, buffer.Messages(), 1)
	assert.Equal(t, "committed before", buffer.Messages()[0].Text)
}

func TestDiscardMessagesNests(t *testing.T) {
	var buffer MessageBuffer

	outer := buffer.DiscardMessages()
	buffer.Say("outer speculation")
	inner := buffer.DiscardMessages()
	buffer.Say("inner speculation")
	inner()
	outer()

	assert.True(t, buffer.Empty())
}

func TestSpeculativeFoldLeavesSinkUntouched(t *testing.T) {
	ctx := NewFoldingContext()
	before := len(ctx.Messages().Messages())

	// A speculative OUT_OF_RANGE fold over a non-constant operand must
	// decline without leaking diagnostics.
	x := &Designator{Name: "x", Typ: RealType(8)}
	folded := Fold(ctx, call(t, "out_of_range", x, intScalar(1, 4)))
	assert.IsType(t, &FunctionRef{}, folded)
	assert.Len(t, ctx.Messages().Messages(), before)
}

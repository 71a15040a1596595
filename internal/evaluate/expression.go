package evaluate

import (
	"fmt"
	"strings"
)

// Expr is a node in the expression tree: a constant leaf, an operator over
// operand expressions, or an intrinsic function call. Nodes are immutable;
// folding builds replacement nodes rather than editing in place.
type Expr interface {
	Type() TypeSpec
	String() string
	isExpr()
}

// BOZLiteral is a raw bit-pattern literal with no inherent category. It is
// usable as an integer-like operand of the bit-comparison intrinsics, where
// it behaves as if zero-extended to the widest integer kind.
type BOZLiteral struct {
	Pattern uint64
}

func (b *BOZLiteral) Type() TypeSpec { return IntegerType(LargestIntegerKind) }
func (b *BOZLiteral) isExpr()        {}

func (b *BOZLiteral) String() string { return fmt.Sprintf("z'%x'", b.Pattern) }

// NullPointer is the disassociated pointer expression NULL().
type NullPointer struct{}

func (n *NullPointer) Type() TypeSpec { return TypeSpec{} }
func (n *NullPointer) isExpr()        {}
func (n *NullPointer) String() string { return "null()" }

// Designator names a declared entity. The folder never resolves a
// designator to a value; it only consults the declared type, the derived
// type chain, and the statically known contiguity.
type Designator struct {
	Name    string
	Typ     TypeSpec
	Derived *DerivedTypeSpec // non-nil when the declared type is statically known
	Rank    int
	Pointer bool

	// Contiguity is the statically determined contiguity of the entity:
	// nil when analysis could not decide.
	Contiguity *bool
}

func (d *Designator) Type() TypeSpec { return d.Typ }
func (d *Designator) isExpr()        {}
func (d *Designator) String() string { return d.Name }

// ActualArgument is one slot of an intrinsic call's argument list. A slot
// wraps an expression or names an assumed-type dummy; a nil slot in the
// list is an omitted optional argument. Positional correspondence to the
// intrinsic's parameter list is fixed by the caller.
type ActualArgument struct {
	Expr        Expr
	AssumedType *Designator
}

// FunctionRef is an intrinsic function call. The intrinsic is resolved to
// its IntrinsicOp once, at bind time; the folding dispatcher matches on the
// op, never on the name.
type FunctionRef struct {
	Op     IntrinsicOp
	Name   string
	Args   []*ActualArgument
	Result TypeSpec
}

func (f *FunctionRef) Type() TypeSpec { return f.Result }
func (f *FunctionRef) isExpr()        {}

func (f *FunctionRef) String() string {
	parts := make([]string, len(f.Args))
	for i, arg := range f.Args {
		switch {
		case arg == nil:
			parts[i] = ""
		case arg.Expr != nil:
			parts[i] = arg.Expr.String()
		case arg.AssumedType != nil:
			parts[i] = arg.AssumedType.Name
		}
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Relational is a comparison of two operands of the same category.
type Relational struct {
	Op          RelationalOperator
	Left, Right Expr
	Result      TypeSpec
}

func (r *Relational) Type() TypeSpec { return r.Result }
func (r *Relational) isExpr()        {}

func (r *Relational) String() string {
	return fmt.Sprintf("%s %s %s", r.Left, r.Op, r.Right)
}

// LogicalOperation is a binary logical operator over logical operands.
type LogicalOperation struct {
	Op          LogicalOperator
	Left, Right Expr
	Result      TypeSpec
}

func (o *LogicalOperation) Type() TypeSpec { return o.Result }
func (o *LogicalOperation) isExpr()        {}

func (o *LogicalOperation) String() string {
	return fmt.Sprintf("%s %s %s", o.Left, o.Op, o.Right)
}

// Not is logical negation.
type Not struct {
	Operand Expr
	Result  TypeSpec
}

func (n *Not) Type() TypeSpec { return n.Result }
func (n *Not) isExpr()        {}
func (n *Not) String() string { return ".not. " + n.Operand.String() }

// Convert is a value-preserving conversion of its operand to the result
// type: a logical kind change, or reinterpretation of character data as
// ASCII for collation.
type Convert struct {
	Operand Expr
	Result  TypeSpec
}

func (c *Convert) Type() TypeSpec { return c.Result }
func (c *Convert) isExpr()        {}

func (c *Convert) String() string {
	return fmt.Sprintf("%s::(%s)", c.Result, c.Operand)
}

// argExpr returns the expression in argument slot i, or nil when the slot
// is absent or holds an assumed-type dummy.
func argExpr(args []*ActualArgument, i int) Expr {
	if i < len(args) && args[i] != nil {
		return args[i].Expr
	}
	return nil
}

// argPresent reports whether argument slot i is present.
func argPresent(args []*ActualArgument, i int) bool {
	return i < len(args) && args[i] != nil
}

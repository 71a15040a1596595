package evaluate

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/rtabi"
)

// Constant folding for logical-valued expressions and relational
// comparisons. Every routine here either produces a replacement constant
// or returns the node unchanged; "cannot fold yet" is a normal, silent
// outcome. Some folds report diagnostics while still producing a value
// (BTEST), others speculate with diagnostics suppressed (ISNAN family,
// OUT_OF_RANGE).

// Fold rewrites an expression bottom-up, replacing every subexpression
// whose value is knowable at compile time with a constant. Folding an
// already-constant node is the identity.
func Fold(ctx *FoldingContext, e Expr) Expr {
	switch x := e.(type) {
	case *Constant, *BOZLiteral, *Designator, *NullPointer:
		return e
	case *Convert:
		return foldConvert(ctx, x)
	case *Not:
		return foldNot(ctx, x)
	case *LogicalOperation:
		return foldLogicalOperation(ctx, x)
	case *Relational:
		return foldRelational(ctx, x)
	case *FunctionRef:
		return FoldIntrinsicFunction(ctx, foldArguments(ctx, x))
	default:
		return e
	}
}

// foldArguments folds every present argument expression of a call,
// rebuilding the reference so the original tree is left intact.
func foldArguments(ctx *FoldingContext, ref *FunctionRef) *FunctionRef {
	args := make([]*ActualArgument, len(ref.Args))
	for i, arg := range ref.Args {
		if arg == nil || arg.Expr == nil {
			args[i] = arg
			continue
		}
		args[i] = &ActualArgument{Expr: Fold(ctx, arg.Expr)}
	}
	return &FunctionRef{Op: ref.Op, Name: ref.Name, Args: args, Result: ref.Result}
}

// FoldIntrinsicFunction applies the per-intrinsic folding rule for a
// logical-result intrinsic call. It never fails; it only may decline to
// simplify, returning the call unevaluated.
func FoldIntrinsicFunction(ctx *FoldingContext, ref *FunctionRef) Expr {
	kind := ref.Result.Kind
	switch ref.Op {
	case IntrinsicAll:
		return foldAllAnyParity(ctx, ref, Logical.And, NewLogical(true, kind))
	case IntrinsicAny:
		return foldAllAnyParity(ctx, ref, Logical.Or, NewLogical(false, kind))
	case IntrinsicParity:
		return foldAllAnyParity(ctx, ref, Logical.Neqv, NewLogical(false, kind))
	case IntrinsicAssociated:
		return foldAssociated(ref)
	case IntrinsicBGE:
		return foldBitCompare(ref, OpGE)
	case IntrinsicBGT:
		return foldBitCompare(ref, OpGT)
	case IntrinsicBLE:
		return foldBitCompare(ref, OpLE)
	case IntrinsicBLT:
		return foldBitCompare(ref, OpLT)
	case IntrinsicBTest:
		return foldBTest(ctx, ref)
	case IntrinsicDotProduct:
		return FoldDotProduct(ctx, ref)
	case IntrinsicExtendsTypeOf:
		return foldTypeRelation(ref, (*DerivedTypeSpec).Extends)
	case IntrinsicSameTypeAs:
		return foldTypeRelation(ref, (*DerivedTypeSpec).Same)
	case IntrinsicIsNaN:
		return foldRealClassification(ctx, ref, Real.IsNotANumber)
	case IntrinsicIsNegative:
		return foldRealClassification(ctx, ref, Real.IsNegative)
	case IntrinsicIsNormal:
		return foldRealClassification(ctx, ref, Real.IsNormal)
	case IntrinsicIsContiguous:
		return foldIsContiguous(ref)
	case IntrinsicIsIostatEnd:
		return foldIostatTest(ref, rtabi.IostatEnd)
	case IntrinsicIsIostatEor:
		return foldIostatTest(ref, rtabi.IostatEor)
	case IntrinsicLGE:
		return foldCharCompare(ctx, ref, OpGE)
	case IntrinsicLGT:
		return foldCharCompare(ctx, ref, OpGT)
	case IntrinsicLLE:
		return foldCharCompare(ctx, ref, OpLE)
	case IntrinsicLLT:
		return foldCharCompare(ctx, ref, OpLT)
	case IntrinsicLogical:
		return foldLogicalConversion(ctx, ref)
	case IntrinsicOutOfRange:
		return foldOutOfRange(ctx, ref)
	case IntrinsicIEEESupport:
		// Conservatively assume full IEEE support; downstream consumers
		// depend on this folding to .true.
		return NewScalarConstant(NewLogical(true, kind))
	default:
		return ref
	}
}

// foldAssociated folds ASSOCIATED(POINTER [, TARGET]) to false when the
// pointer is statically disassociated and any target is as well. No
// aliasing analysis is attempted; everything else stays unevaluated.
func foldAssociated(ref *FunctionRef) Expr {
	pointer := argExpr(ref.Args, 0)
	if pointer == nil || !IsNullPointer(pointer) {
		return ref
	}
	if argPresent(ref.Args, 1) {
		target := argExpr(ref.Args, 1)
		if target == nil || !IsNullPointer(target) {
			return ref
		}
	}
	return NewScalarConstant(NewLogical(false, ref.Result.Kind))
}

// foldBitCompare folds BGE/BGT/BLE/BLT. Each operand is zero-extended to
// the widest integer kind and the raw bit patterns are compared unsigned.
// The zero-extended operands are built locally; argument slots are never
// rewritten. If either operand is not constant the extension is deferred
// to lowering and the call stays unevaluated.
func foldBitCompare(ref *FunctionRef, op RelationalOperator) Expr {
	operands := [2]*Constant{}
	for i := 0; i <= 1; i++ {
		c, ok := zeroExtendOperand(argExpr(ref.Args, i))
		if !ok {
			return ref
		}
		operands[i] = c
	}
	result, ok := mapConstant2(operands[0], operands[1], ref.Result,
		func(x, y Scalar) (Scalar, bool) {
			ordering := x.(Integer).CompareUnsigned(y.(Integer))
			return NewLogical(Satisfies(op, ordering), ref.Result.Kind), true
		})
	if !ok {
		return ref
	}
	return result
}

// zeroExtendOperand reduces a BGE-family operand to a constant of the
// widest integer kind: a BOZ literal is adopted directly, an integer
// constant has every element zero-extended.
func zeroExtendOperand(e Expr) (*Constant, bool) {
	switch x := e.(type) {
	case *BOZLiteral:
		return NewScalarConstant(IntegerFromPattern(x.Pattern, LargestIntegerKind)), true
	case *Constant:
		if x.Type().Category != TypeInteger {
			return nil, false
		}
		return mapConstant(x, IntegerType(LargestIntegerKind), func(v Scalar) (Scalar, bool) {
			return v.(Integer).ZeroExtend(), true
		})
	default:
		return nil, false
	}
}

// foldBTest folds BTEST(I, POS). An out-of-range POS is diagnosed but the
// fold still completes with the best-effort bit test result.
func foldBTest(ctx *FoldingContext, ref *FunctionRef) Expr {
	x, okX := argExpr(ref.Args, 0).(*Constant)
	pos, okPos := argExpr(ref.Args, 1).(*Constant)
	if !okX || !okPos || x.Type().Category != TypeInteger || pos.Type().Category != TypeInteger {
		return ref
	}
	result, ok := mapConstant2(x, pos, ref.Result, func(xv, posv Scalar) (Scalar, bool) {
		i := xv.(Integer)
		p := posv.(Integer).ToInt64()
		if p < 0 || p >= int64(i.Bits()) {
			ctx.Messages().Say("POS=%d out of range for BTEST", p)
		}
		return NewLogical(i.BTest(p), ref.Result.Kind), true
	})
	if !ok {
		return ref
	}
	return result
}

// foldTypeRelation folds EXTENDS_TYPE_OF and SAME_TYPE_AS. Both argument
// types must be statically known; type parameters are ignored.
func foldTypeRelation(ref *FunctionRef, relation func(a, b *DerivedTypeSpec) bool) Expr {
	a := argExpr(ref.Args, 0)
	b := argExpr(ref.Args, 1)
	if a == nil || b == nil {
		return ref
	}
	ta, tb := declaredDerivedType(a), declaredDerivedType(b)
	if ta == nil || tb == nil {
		return ref
	}
	return NewScalarConstant(NewLogical(relation(ta, tb), ref.Result.Kind))
}

// foldRealClassification folds ISNAN and the IEEE classification builtins.
// The fold is attempted only when the operand is already an actual real
// constant, and any diagnostics raised during the speculative evaluation
// are discarded.
func foldRealClassification(ctx *FoldingContext, ref *FunctionRef, classify func(Real) bool) Expr {
	operand := argExpr(ref.Args, 0)
	if operand == nil || !IsActuallyConstant(operand) {
		return ref
	}
	restore := ctx.Messages().DiscardMessages()
	defer restore()
	c := operand.(*Constant)
	if c.Type().Category != TypeReal {
		return ref
	}
	result, ok := mapConstant(c, ref.Result, func(v Scalar) (Scalar, bool) {
		return NewLogical(classify(v.(Real)), ref.Result.Kind), true
	})
	if !ok {
		return ref
	}
	return result
}

// foldIsContiguous folds IS_CONTIGUOUS when the contiguity of the
// designator or assumed-type dummy is statically determinable.
func foldIsContiguous(ref *FunctionRef) Expr {
	if !argPresent(ref.Args, 0) {
		return ref
	}
	var d *Designator
	if arg := ref.Args[0]; arg.AssumedType != nil {
		d = arg.AssumedType
	} else if des, ok := arg.Expr.(*Designator); ok {
		d = des
	}
	if d == nil {
		return ref
	}
	if contiguous := IsContiguous(d); contiguous != nil {
		return NewScalarConstant(NewLogical(*contiguous, ref.Result.Kind))
	}
	return ref
}

// foldIostatTest folds IS_IOSTAT_END and IS_IOSTAT_EOR: the operand is
// widened to the 64-bit integer kind and compared with the runtime ABI
// sentinel.
func foldIostatTest(ref *FunctionRef, sentinel int64) Expr {
	c, ok := argExpr(ref.Args, 0).(*Constant)
	if !ok || c.Type().Category != TypeInteger {
		return ref
	}
	result, ok := mapConstant(c, ref.Result, func(v Scalar) (Scalar, bool) {
		wide, _ := v.(Integer).ConvertSigned(8)
		return NewLogical(wide.ToInt64() == sentinel, ref.Result.Kind), true
	})
	if !ok {
		return ref
	}
	return result
}

// foldCharCompare rewrites LGE/LGT/LLE/LLT as a relational comparison over
// both operands converted to ASCII, then folds the rewritten node. The
// declared character kind is irrelevant to the comparison order.
func foldCharCompare(ctx *FoldingContext, ref *FunctionRef, op RelationalOperator) Expr {
	left := argExpr(ref.Args, 0)
	right := argExpr(ref.Args, 1)
	if left == nil || right == nil ||
		left.Type().Category != TypeCharacter || right.Type().Category != TypeCharacter {
		return ref
	}
	relation := &Relational{
		Op:     op,
		Left:   asASCII(left),
		Right:  asASCII(right),
		Result: LogicalType(DefaultLogicalKind),
	}
	return Fold(ctx, &Convert{Operand: relation, Result: ref.Result})
}

func asASCII(e Expr) Expr {
	if e.Type().Kind == DefaultCharacterKind {
		return e
	}
	return &Convert{Operand: e, Result: CharacterType(DefaultCharacterKind)}
}

// foldLogicalConversion folds LOGICAL(L [, KIND]): a value-preserving kind
// conversion of a logical operand.
func foldLogicalConversion(ctx *FoldingContext, ref *FunctionRef) Expr {
	operand := argExpr(ref.Args, 0)
	if operand == nil || operand.Type().Category != TypeLogical {
		return ref
	}
	return Fold(ctx, &Convert{Operand: operand, Result: ref.Result})
}

// foldOutOfRange folds OUT_OF_RANGE(X, MOLD [, ROUND]). The tested operand
// is folded speculatively with diagnostics suppressed; the MOLD's declared
// type selects the conversion whose overflow behavior is tested. The
// result has the shape of X.
func foldOutOfRange(ctx *FoldingContext, ref *FunctionRef) Expr {
	operand := argExpr(ref.Args, 0)
	mold := argExpr(ref.Args, 1)
	if operand == nil || mold == nil {
		return ref
	}
	restore := ctx.Messages().DiscardMessages()
	defer restore()
	folded := Fold(ctx, operand)
	x, ok := folded.(*Constant)
	if !ok {
		return ref
	}
	kind := ref.Result.Kind
	moldType := mold.Type()
	switch {
	case moldType.Category == TypeReal && x.Type().Category == TypeInteger:
		return mapOrDecline(ref, x, func(v Scalar) (Scalar, bool) {
			_, overflow := RealFromInteger(v.(Integer), moldType.Kind)
			return NewLogical(overflow, kind), true
		})
	case moldType.Category == TypeReal && x.Type().Category == TypeReal:
		// A non-finite source is never out of range for a real target.
		return mapOrDecline(ref, x, func(v Scalar) (Scalar, bool) {
			r := v.(Real)
			_, overflow := r.Convert(moldType.Kind)
			return NewLogical(r.IsFinite() && overflow, kind), true
		})
	case moldType.Category == TypeInteger && x.Type().Category == TypeInteger:
		return mapOrDecline(ref, x, func(v Scalar) (Scalar, bool) {
			_, overflow := v.(Integer).ConvertSigned(moldType.Kind)
			return NewLogical(overflow, kind), true
		})
	case moldType.Category == TypeInteger && x.Type().Category == TypeReal:
		mode, ok := outOfRangeRounding(ref.Args)
		if !ok {
			return ref
		}
		// OUT_OF_RANGE(Inf/NaN) is true for a real->integer conversion.
		return mapOrDecline(ref, x, func(v Scalar) (Scalar, bool) {
			r := v.(Real)
			_, overflow := r.ToInteger(mode, moldType.Kind)
			return NewLogical(!r.IsFinite() || overflow, kind), true
		})
	default:
		return ref
	}
}

// outOfRangeRounding reads the optional ROUND argument. ROUND must itself
// be constant for the fold to proceed: a statically-true ROUND selects
// rounding ties away from zero (NINT semantics), otherwise conversion
// truncates toward zero.
func outOfRangeRounding(args []*ActualArgument) (RoundingMode, bool) {
	round := argExpr(args, 2)
	if round == nil {
		return RoundToZero, true
	}
	if !IsActuallyConstant(round) {
		return RoundToZero, false
	}
	if v, ok := GetScalarConstantValue(round); ok {
		if l, ok := v.(Logical); ok && l.IsTrue() {
			return RoundTiesAwayFromZero, true
		}
	}
	return RoundToZero, true
}

func mapOrDecline(ref *FunctionRef, x *Constant, f func(Scalar) (Scalar, bool)) Expr {
	result, ok := mapConstant(x, ref.Result, f)
	if !ok {
		return ref
	}
	return result
}

// ====== Relational and logical operator folding ======

// foldRelational folds a comparison node: elementwise broadcast first,
// then scalar folding per category. A node whose operands are not both
// constant is returned unevaluated, never partially folded.
func foldRelational(ctx *FoldingContext, rel *Relational) Expr {
	left := Fold(ctx, rel.Left)
	right := Fold(ctx, rel.Right)
	lc, okL := left.(*Constant)
	rc, okR := right.(*Constant)
	if okL && okR {
		compare := func(x, y Scalar) (Scalar, bool) {
			return NewLogical(compareScalars(rel.Op, x, y), rel.Result.Kind), true
		}
		if array, ok := applyElementwise(lc, rc, rel.Result, compare); ok {
			return array
		}
		lv, okLV := lc.ScalarValue()
		rv, okRV := rc.ScalarValue()
		if okLV && okRV {
			return NewScalarConstant(NewLogical(compareScalars(rel.Op, lv, rv), rel.Result.Kind))
		}
	}
	if left == rel.Left && right == rel.Right {
		return rel
	}
	return &Relational{Op: rel.Op, Left: left, Right: right, Result: rel.Result}
}

// compareScalars applies the category's comparison semantics: signed for
// integers, ordered for reals (unordered satisfies nothing), equality only
// for complex, lexicographic for characters.
func compareScalars(op RelationalOperator, x, y Scalar) bool {
	switch a := x.(type) {
	case Integer:
		return Satisfies(op, a.CompareSigned(y.(Integer)))
	case Real:
		return Satisfies(op, a.Compare(y.(Real)))
	case Complex:
		if op != OpEQ && op != OpNE {
			// Rejected by expression analysis; reaching here is a bug in
			// the caller, not a user error.
			panic(fmt.Sprintf("relational operator %s on complex operands", op))
		}
		return (op == OpEQ) == a.Equals(y.(Complex))
	case Character:
		return Satisfies(op, a.Compare(y.(Character)))
	default:
		panic(fmt.Sprintf("relational operator %s on %s operands", op, x.Category()))
	}
}

// foldNot folds logical negation.
func foldNot(ctx *FoldingContext, n *Not) Expr {
	operand := Fold(ctx, n.Operand)
	if c, ok := operand.(*Constant); ok && c.Type().Category == TypeLogical {
		if result, ok := mapConstant(c, n.Result, func(v Scalar) (Scalar, bool) {
			return v.(Logical).Not().Convert(n.Result.Kind), true
		}); ok {
			return result
		}
	}
	if operand == n.Operand {
		return n
	}
	return &Not{Operand: operand, Result: n.Result}
}

// foldLogicalOperation folds AND, OR, EQV, and NEQV with two-valued
// boolean algebra; NEQV is exclusive or, EQV its complement.
func foldLogicalOperation(ctx *FoldingContext, operation *LogicalOperation) Expr {
	left := Fold(ctx, operation.Left)
	right := Fold(ctx, operation.Right)
	lc, okL := left.(*Constant)
	rc, okR := right.(*Constant)
	if okL && okR && lc.Type().Category == TypeLogical && rc.Type().Category == TypeLogical {
		combine := func(x, y Scalar) (Scalar, bool) {
			return combineLogicals(operation.Op, x.(Logical), y.(Logical)).Convert(operation.Result.Kind), true
		}
		if array, ok := applyElementwise(lc, rc, operation.Result, combine); ok {
			return array
		}
		lv, okLV := lc.ScalarValue()
		rv, okRV := rc.ScalarValue()
		if okLV && okRV {
			value := combineLogicals(operation.Op, lv.(Logical), rv.(Logical))
			return NewScalarConstant(value.Convert(operation.Result.Kind))
		}
	}
	if left == operation.Left && right == operation.Right {
		return operation
	}
	return &LogicalOperation{Op: operation.Op, Left: left, Right: right, Result: operation.Result}
}

func combineLogicals(op LogicalOperator, x, y Logical) Logical {
	switch op {
	case OpAnd:
		return x.And(y)
	case OpOr:
		return x.Or(y)
	case OpEqv:
		return x.Eqv(y)
	case OpNeqv:
		return x.Neqv(y)
	default:
		panic(fmt.Sprintf("%s is not a binary logical operator", op))
	}
}

// foldConvert folds the value-preserving conversions the logical folder
// produces: logical kind changes and character reinterpretation as ASCII.
func foldConvert(ctx *FoldingContext, conv *Convert) Expr {
	operand := Fold(ctx, conv.Operand)
	if c, ok := operand.(*Constant); ok {
		switch conv.Result.Category {
		case TypeLogical:
			if c.Type().Category == TypeLogical {
				if result, ok := mapConstant(c, conv.Result, func(v Scalar) (Scalar, bool) {
					return v.(Logical).Convert(conv.Result.Kind), true
				}); ok {
					return result
				}
			}
		case TypeCharacter:
			if c.Type().Category == TypeCharacter {
				if result, ok := mapConstant(c, conv.Result, func(v Scalar) (Scalar, bool) {
					return v.(Character).ToASCII(), true
				}); ok {
					return result
				}
			}
		}
	}
	if operand == conv.Operand {
		return conv
	}
	return &Convert{Operand: operand, Result: conv.Result}
}

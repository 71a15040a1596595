package evaluate

import (
	"fmt"
	"math"
	"strings"
)

// Scalar is an immutable compile-time value of one of the five categories.
// Folding produces new scalars; it never mutates one in place.
type Scalar interface {
	Category() Category
	Kind() int
	String() string
}

// Ordering is the result of a scalar comparison. Unordered arises only from
// real comparisons involving a NaN.
type Ordering int

const (
	Less Ordering = iota
	Equal
	Greater
	Unordered
)

// RelationalOperator identifies a relational comparison.
type RelationalOperator int

const (
	OpLT RelationalOperator = iota
	OpLE
	OpEQ
	OpNE
	OpGT
	OpGE
)

func (op RelationalOperator) String() string {
	switch op {
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpEQ:
		return "=="
	case OpNE:
		return "/="
	case OpGT:
		return ">"
	case OpGE:
		return ">="
	default:
		return "?"
	}
}

// Satisfies reports whether an ordering satisfies a relational operator.
// Unordered satisfies no operator, including equality and inequality.
func Satisfies(op RelationalOperator, o Ordering) bool {
	switch o {
	case Less:
		return op == OpLT || op == OpLE || op == OpNE
	case Equal:
		return op == OpEQ || op == OpLE || op == OpGE
	case Greater:
		return op == OpGT || op == OpGE || op == OpNE
	default:
		return false
	}
}

// LogicalOperator identifies a logical operation.
type LogicalOperator int

const (
	OpNot LogicalOperator = iota
	OpAnd
	OpOr
	OpEqv
	OpNeqv
)

func (op LogicalOperator) String() string {
	switch op {
	case OpNot:
		return ".not."
	case OpAnd:
		return ".and."
	case OpOr:
		return ".or."
	case OpEqv:
		return ".eqv."
	case OpNeqv:
		return ".neqv."
	default:
		return "?"
	}
}

// RoundingMode selects how a real value is converted to an integer.
type RoundingMode int

const (
	RoundToZero RoundingMode = iota
	RoundTiesAwayFromZero
)

// ====== Integer ======

// Integer is a signed integer value carried as its raw bit pattern, so
// unsigned comparison and zero extension preserve exact bit-level
// semantics. The low 8*kind bits are significant.
type Integer struct {
	pattern uint64
	kind    int
}

// NewInteger builds an integer scalar of the given kind, truncating the
// value to the kind's width.
func NewInteger(v int64, kind int) Integer {
	return Integer{pattern: uint64(v) & kindMask(kind), kind: kind}
}

// IntegerFromPattern builds an integer scalar directly from a bit pattern,
// as needed for BOZ literals.
func IntegerFromPattern(pattern uint64, kind int) Integer {
	return Integer{pattern: pattern & kindMask(kind), kind: kind}
}

func kindMask(kind int) uint64 {
	if kind*8 >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << (kind * 8)) - 1
}

func (i Integer) Category() Category { return TypeInteger }
func (i Integer) Kind() int          { return i.kind }

// Bits is the width of the value in bits.
func (i Integer) Bits() int { return i.kind * 8 }

// ToInt64 sign-extends the bit pattern to a native signed value.
func (i Integer) ToInt64() int64 {
	shift := 64 - i.Bits()
	return int64(i.pattern<<shift) >> shift
}

// ToUint64 returns the zero-extended bit pattern.
func (i Integer) ToUint64() uint64 { return i.pattern }

func (i Integer) String() string { return fmt.Sprintf("%d", i.ToInt64()) }

// CompareSigned compares two integers of the same kind as signed values.
func (i Integer) CompareSigned(o Integer) Ordering {
	a, b := i.ToInt64(), o.ToInt64()
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

// CompareUnsigned compares the zero-extended bit patterns.
func (i Integer) CompareUnsigned(o Integer) Ordering {
	switch {
	case i.pattern < o.pattern:
		return Less
	case i.pattern > o.pattern:
		return Greater
	default:
		return Equal
	}
}

// BTest reports whether bit pos is set. Out-of-range positions test false;
// range diagnostics are the caller's concern.
func (i Integer) BTest(pos int64) bool {
	if pos < 0 || pos >= int64(i.Bits()) {
		return false
	}
	return i.pattern>>uint(pos)&1 != 0
}

// ConvertSigned converts to another integer kind. The overflow flag is set
// when the value does not survive the round trip.
func (i Integer) ConvertSigned(kind int) (Integer, bool) {
	v := i.ToInt64()
	result := NewInteger(v, kind)
	return result, result.ToInt64() != v
}

// ZeroExtend widens the bit pattern to the largest supported integer kind
// without sign extension.
func (i Integer) ZeroExtend() Integer {
	return Integer{pattern: i.pattern, kind: LargestIntegerKind}
}

// ====== Real ======

// Real carries its value in double precision; kind selects the storage
// format the value notionally occupies (2, 4, or 8 bytes). Conversions
// model the range of the target format, which is what folding observes.
type Real struct {
	value float64
	kind  int
}

// NewReal builds a real scalar of the given kind.
func NewReal(v float64, kind int) Real {
	if kind == 4 && !math.IsNaN(v) {
		v = float64(float32(v))
	}
	return Real{value: v, kind: kind}
}

func (r Real) Category() Category { return TypeReal }
func (r Real) Kind() int          { return r.kind }
func (r Real) Value() float64     { return r.value }

func (r Real) String() string {
	s := fmt.Sprintf("%g", r.value)
	if r.IsFinite() && !strings.ContainsAny(s, ".eE") {
		s += "."
	}
	return s
}

func (r Real) IsNotANumber() bool { return math.IsNaN(r.value) }
func (r Real) IsNegative() bool   { return math.Signbit(r.value) }
func (r Real) IsFinite() bool     { return !math.IsInf(r.value, 0) && !math.IsNaN(r.value) }

// IsNormal reports whether the value is a normal number of its kind:
// finite, nonzero, and at least the kind's smallest normal magnitude.
func (r Real) IsNormal() bool {
	if !r.IsFinite() || r.value == 0 {
		return false
	}
	return math.Abs(r.value) >= smallestNormal(r.kind)
}

func maxFinite(kind int) float64 {
	switch kind {
	case 2:
		return 65504
	case 4:
		return math.MaxFloat32
	default:
		return math.MaxFloat64
	}
}

func smallestNormal(kind int) float64 {
	switch kind {
	case 2:
		return 0x1p-14
	case 4:
		return 0x1p-126
	default:
		return 0x1p-1022
	}
}

// Compare is the ordered comparison; NaN operands compare Unordered.
func (r Real) Compare(o Real) Ordering {
	switch {
	case math.IsNaN(r.value) || math.IsNaN(o.value):
		return Unordered
	case r.value < o.value:
		return Less
	case r.value > o.value:
		return Greater
	default:
		return Equal
	}
}

// Convert narrows or widens to another real kind. The overflow flag is set
// when a finite value exceeds the target kind's finite range; the result is
// then the appropriately signed infinity.
func (r Real) Convert(kind int) (Real, bool) {
	if !r.IsFinite() {
		return Real{value: r.value, kind: kind}, false
	}
	if math.Abs(r.value) > maxFinite(kind) {
		return Real{value: math.Inf(sign(r.value)), kind: kind}, true
	}
	return NewReal(r.value, kind), false
}

func sign(v float64) int {
	if math.Signbit(v) {
		return -1
	}
	return 1
}

// RealFromInteger converts an integer to a real kind, reporting overflow of
// the target kind's finite range.
func RealFromInteger(i Integer, kind int) (Real, bool) {
	v := float64(i.ToInt64())
	if math.Abs(v) > maxFinite(kind) {
		return Real{value: math.Inf(sign(v)), kind: kind}, true
	}
	return NewReal(v, kind), false
}

// ToInteger converts to an integer kind under the given rounding mode. The
// overflow flag is set for non-finite sources and for results outside the
// target kind's signed range.
func (r Real) ToInteger(mode RoundingMode, kind int) (Integer, bool) {
	if !r.IsFinite() {
		return NewInteger(0, kind), true
	}
	var rounded float64
	switch mode {
	case RoundTiesAwayFromZero:
		rounded = math.Round(r.value)
	default:
		rounded = math.Trunc(r.value)
	}
	limit := math.Ldexp(1, r.intBits(kind)-1)
	if rounded >= limit || rounded < -limit {
		return NewInteger(0, kind), true
	}
	return NewInteger(int64(rounded), kind), false
}

func (r Real) intBits(kind int) int { return kind * 8 }

// ====== Complex ======

// Complex is a pair of reals of the same kind. Only equality is defined;
// ordering a complex value is meaningless.
type Complex struct {
	re, im Real
	kind   int
}

// NewComplex builds a complex scalar from its parts.
func NewComplex(re, im float64, kind int) Complex {
	return Complex{re: NewReal(re, kind), im: NewReal(im, kind), kind: kind}
}

func (z Complex) Category() Category { return TypeComplex }
func (z Complex) Kind() int          { return z.kind }
func (z Complex) Real() Real         { return z.re }
func (z Complex) Imag() Real         { return z.im }

func (z Complex) String() string {
	return fmt.Sprintf("(%s, %s)", z.re, z.im)
}

// Equals is component-wise equality. NaN components compare unequal.
func (z Complex) Equals(o Complex) bool {
	return z.re.Compare(o.re) == Equal && z.im.Compare(o.im) == Equal
}

// ====== Character ======

// Character is a character string of some kind.
type Character struct {
	contents string
	kind     int
}

// NewCharacter builds a character scalar of the given kind.
func NewCharacter(s string, kind int) Character {
	return Character{contents: s, kind: kind}
}

func (c Character) Category() Category { return TypeCharacter }
func (c Character) Kind() int          { return c.kind }
func (c Character) Contents() string   { return c.contents }
func (c Character) String() string     { return fmt.Sprintf("%q", c.contents) }

// Compare is lexicographic; the shorter operand is treated as if padded
// with blanks.
func (c Character) Compare(o Character) Ordering {
	a, b := c.contents, o.contents
	for len(a) < len(b) {
		a += " "
	}
	for len(b) < len(a) {
		b += " "
	}
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

// ToASCII reinterprets the value as default-kind (ASCII) character data.
// Comparison order is unaffected by the declared kind.
func (c Character) ToASCII() Character {
	return Character{contents: c.contents, kind: DefaultCharacterKind}
}

// ====== Logical ======

// Logical is a truth value of some kind.
type Logical struct {
	value bool
	kind  int
}

// NewLogical builds a logical scalar of the given kind.
func NewLogical(v bool, kind int) Logical {
	return Logical{value: v, kind: kind}
}

func (l Logical) Category() Category { return TypeLogical }
func (l Logical) Kind() int          { return l.kind }
func (l Logical) IsTrue() bool       { return l.value }

func (l Logical) String() string {
	if l.value {
		return ".true."
	}
	return ".false."
}

// The binary operations keep the receiver's kind, matching the result kind
// seeding done by reductions.

func (l Logical) And(o Logical) Logical  { return Logical{value: l.value && o.value, kind: l.kind} }
func (l Logical) Or(o Logical) Logical   { return Logical{value: l.value || o.value, kind: l.kind} }
func (l Logical) Eqv(o Logical) Logical  { return Logical{value: l.value == o.value, kind: l.kind} }
func (l Logical) Neqv(o Logical) Logical { return Logical{value: l.value != o.value, kind: l.kind} }
func (l Logical) Not() Logical           { return Logical{value: !l.value, kind: l.kind} }

// Convert is the value-preserving conversion to another logical kind.
func (l Logical) Convert(kind int) Logical {
	return Logical{value: l.value, kind: kind}
}

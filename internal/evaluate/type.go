// Package evaluate implements compile-time expression evaluation for the
// Lumina semantic analyzer. The package owns the constant-folding engine for
// logical-valued expressions and relational comparisons: given an expression
// tree it decides, node by node, whether the node's value is knowable at
// compile time, and if so replaces the node with a fully evaluated constant.
// Nodes whose value cannot be determined are returned unchanged for later
// compilation stages.
package evaluate

import "fmt"

// Category is the top-level value classification of a typed entity.
type Category int

const (
	TypeInteger Category = iota
	TypeReal
	TypeComplex
	TypeCharacter
	TypeLogical
	TypeDerived
)

func (c Category) String() string {
	switch c {
	case TypeInteger:
		return "integer"
	case TypeReal:
		return "real"
	case TypeComplex:
		return "complex"
	case TypeCharacter:
		return "character"
	case TypeLogical:
		return "logical"
	case TypeDerived:
		return "type"
	default:
		return "unknown"
	}
}

// Default and limit kinds. A kind selects the bit width of numeric
// categories (in bytes) or the character representation.
const (
	DefaultIntegerKind   = 4
	DefaultRealKind      = 4
	DefaultLogicalKind   = 4
	DefaultCharacterKind = 1

	// LargestIntegerKind is the widest supported integer kind. Raw bit
	// comparison (BGE family, BOZ literals) is performed at this width.
	LargestIntegerKind = 8
)

// TypeSpec identifies the type of an expression: a category plus its kind.
type TypeSpec struct {
	Category Category
	Kind     int
}

func (t TypeSpec) String() string {
	return fmt.Sprintf("%s(%d)", t.Category, t.Kind)
}

// LogicalType returns the logical TypeSpec of the given kind.
func LogicalType(kind int) TypeSpec {
	return TypeSpec{Category: TypeLogical, Kind: kind}
}

// IntegerType returns the integer TypeSpec of the given kind.
func IntegerType(kind int) TypeSpec {
	return TypeSpec{Category: TypeInteger, Kind: kind}
}

// RealType returns the real TypeSpec of the given kind.
func RealType(kind int) TypeSpec {
	return TypeSpec{Category: TypeReal, Kind: kind}
}

// CharacterType returns the character TypeSpec of the given kind.
func CharacterType(kind int) TypeSpec {
	return TypeSpec{Category: TypeCharacter, Kind: kind}
}

// DerivedTypeSpec describes a user-defined derived type as a name plus its
// parent chain. Type parameters are not represented; EXTENDS_TYPE_OF and
// SAME_TYPE_AS ignore them.
type DerivedTypeSpec struct {
	Name   string
	Parent *DerivedTypeSpec
}

// Extends reports whether d is base or an extension of base.
func (d *DerivedTypeSpec) Extends(base *DerivedTypeSpec) bool {
	for p := d; p != nil; p = p.Parent {
		if p.Name == base.Name {
			return true
		}
	}
	return false
}

// Same reports whether d and o name the same derived type.
func (d *DerivedTypeSpec) Same(o *DerivedTypeSpec) bool {
	return d.Name == o.Name
}

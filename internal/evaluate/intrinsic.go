package evaluate

import "strings"

// IntrinsicOp identifies a recognized logical-result intrinsic. Intrinsic
// names are resolved to an op once, when the call is bound; the folding
// dispatcher matches over the op so exhaustiveness stays checkable and no
// string comparison happens per fold.
type IntrinsicOp int

const (
	IntrinsicNone IntrinsicOp = iota
	IntrinsicAll
	IntrinsicAny
	IntrinsicParity
	IntrinsicAssociated
	IntrinsicBGE
	IntrinsicBGT
	IntrinsicBLE
	IntrinsicBLT
	IntrinsicBTest
	IntrinsicDotProduct
	IntrinsicExtendsTypeOf
	IntrinsicSameTypeAs
	IntrinsicIsNaN
	IntrinsicIsNegative
	IntrinsicIsNormal
	IntrinsicIsContiguous
	IntrinsicIsIostatEnd
	IntrinsicIsIostatEor
	IntrinsicLGE
	IntrinsicLGT
	IntrinsicLLE
	IntrinsicLLT
	IntrinsicLogical
	IntrinsicOutOfRange
	IntrinsicIEEESupport
)

var intrinsicOps = map[string]IntrinsicOp{
	"all":             IntrinsicAll,
	"any":             IntrinsicAny,
	"parity":          IntrinsicParity,
	"associated":      IntrinsicAssociated,
	"bge":             IntrinsicBGE,
	"bgt":             IntrinsicBGT,
	"ble":             IntrinsicBLE,
	"blt":             IntrinsicBLT,
	"btest":           IntrinsicBTest,
	"dot_product":     IntrinsicDotProduct,
	"extends_type_of": IntrinsicExtendsTypeOf,
	"same_type_as":    IntrinsicSameTypeAs,
	"isnan":           IntrinsicIsNaN,
	"is_contiguous":   IntrinsicIsContiguous,
	"is_iostat_end":   IntrinsicIsIostatEnd,
	"is_iostat_eor":   IntrinsicIsIostatEor,
	"lge":             IntrinsicLGE,
	"lgt":             IntrinsicLGT,
	"lle":             IntrinsicLLE,
	"llt":             IntrinsicLLT,
	"logical":         IntrinsicLogical,
	"out_of_range":    IntrinsicOutOfRange,

	"__builtin_ieee_is_nan":      IntrinsicIsNaN,
	"__builtin_ieee_is_negative": IntrinsicIsNegative,
	"__builtin_ieee_is_normal":   IntrinsicIsNormal,

	"__builtin_ieee_support_datatype":          IntrinsicIEEESupport,
	"__builtin_ieee_support_denormal":          IntrinsicIEEESupport,
	"__builtin_ieee_support_divide":            IntrinsicIEEESupport,
	"__builtin_ieee_support_inf":               IntrinsicIEEESupport,
	"__builtin_ieee_support_io":                IntrinsicIEEESupport,
	"__builtin_ieee_support_nan":               IntrinsicIEEESupport,
	"__builtin_ieee_support_sqrt":              IntrinsicIEEESupport,
	"__builtin_ieee_support_standard":          IntrinsicIEEESupport,
	"__builtin_ieee_support_subnormal":         IntrinsicIEEESupport,
	"__builtin_ieee_support_underflow_control": IntrinsicIEEESupport,
}

// intrinsicParams maps each op to its dummy argument keywords, in
// positional order. Used when binding keyword arguments to slots.
var intrinsicParams = map[IntrinsicOp][]string{
	IntrinsicAll:           {"mask", "dim"},
	IntrinsicAny:           {"mask", "dim"},
	IntrinsicParity:        {"mask", "dim"},
	IntrinsicAssociated:    {"pointer", "target"},
	IntrinsicBGE:           {"i", "j"},
	IntrinsicBGT:           {"i", "j"},
	IntrinsicBLE:           {"i", "j"},
	IntrinsicBLT:           {"i", "j"},
	IntrinsicBTest:         {"i", "pos"},
	IntrinsicDotProduct:    {"vector_a", "vector_b"},
	IntrinsicExtendsTypeOf: {"a", "mold"},
	IntrinsicSameTypeAs:    {"a", "b"},
	IntrinsicIsNaN:         {"x"},
	IntrinsicIsNegative:    {"x"},
	IntrinsicIsNormal:      {"x"},
	IntrinsicIsContiguous:  {"array"},
	IntrinsicIsIostatEnd:   {"i"},
	IntrinsicIsIostatEor:   {"i"},
	IntrinsicLGE:           {"string_a", "string_b"},
	IntrinsicLGT:           {"string_a", "string_b"},
	IntrinsicLLE:           {"string_a", "string_b"},
	IntrinsicLLT:           {"string_a", "string_b"},
	IntrinsicLogical:       {"l", "kind"},
	IntrinsicOutOfRange:    {"x", "mold", "round"},
}

// BindIntrinsic resolves a normalized intrinsic name to its op.
// Unrecognized names bind to IntrinsicNone; the dispatcher leaves such
// calls unevaluated.
func BindIntrinsic(name string) IntrinsicOp {
	return intrinsicOps[strings.ToLower(name)]
}

// IntrinsicParamIndex returns the positional slot of a dummy argument
// keyword for an intrinsic, or -1 when the keyword is not recognized.
func IntrinsicParamIndex(op IntrinsicOp, keyword string) int {
	for i, name := range intrinsicParams[op] {
		if name == strings.ToLower(keyword) {
			return i
		}
	}
	return -1
}

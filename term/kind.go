package term

import "fmt"

// Kind enumerates every term shape the collector's visitor must know
// about. The ordering has no semantic significance.
type Kind uint8

const (
	BoolConst Kind = iota
	ArithConst
	BvConst
	Uninterpreted
	Variable
	ArithEq0
	ArithGe0
	Ite
	App
	Update
	Tuple
	Eq
	Distinct
	Forall
	Lambda
	Or
	Xor
	ArithBinEq
	BvArray
	BvDiv
	BvRem
	BvSDiv
	BvSRem
	BvSMod
	BvShl
	BvLShr
	BvAShr
	BvEq
	BvGe
	BvSGe
	Select
	Bit
	PowerProduct
	ArithPoly
	BvPoly64
	BvPoly

	numKinds
)

var kindNames = [numKinds]string{
	BoolConst:     "BoolConst",
	ArithConst:    "ArithConst",
	BvConst:       "BvConst",
	Uninterpreted: "Uninterpreted",
	Variable:      "Variable",
	ArithEq0:      "ArithEq0",
	ArithGe0:      "ArithGe0",
	Ite:           "Ite",
	App:           "App",
	Update:        "Update",
	Tuple:         "Tuple",
	Eq:            "Eq",
	Distinct:      "Distinct",
	Forall:        "Forall",
	Lambda:        "Lambda",
	Or:            "Or",
	Xor:           "Xor",
	ArithBinEq:    "ArithBinEq",
	BvArray:       "BvArray",
	BvDiv:         "BvDiv",
	BvRem:         "BvRem",
	BvSDiv:        "BvSDiv",
	BvSRem:        "BvSRem",
	BvSMod:        "BvSMod",
	BvShl:         "BvShl",
	BvLShr:        "BvLShr",
	BvAShr:        "BvAShr",
	BvEq:          "BvEq",
	BvGe:          "BvGe",
	BvSGe:         "BvSGe",
	Select:        "Select",
	Bit:           "Bit",
	PowerProduct:  "PowerProduct",
	ArithPoly:     "ArithPoly",
	BvPoly64:      "BvPoly64",
	BvPoly:        "BvPoly",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsReserved reports whether k is outside the recognized range, i.e. a
// kind the visitor must reject with InternalError.
func (k Kind) IsReserved() bool { return k >= numKinds }

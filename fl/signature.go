package fl

import (
	"fmt"
	"strings"

	"github.com/damedic/formula-toolbox-go/datatype"
)

// Signature declares the parameters of a function: either a fixed list of
// parameter datatypes or a single element datatype for a variable number of
// arguments.
type Signature struct {
	params  []datatype.Datatype
	varArgs datatype.Datatype
	minArgs int
}

// FixedSignature declares a function with exactly the given parameters.
func FixedSignature(params ...datatype.Datatype) Signature {
	return Signature{params: params}
}

// VariadicSignature declares a function taking at least minArgs (at least 1)
// arguments of type elem.
func VariadicSignature(elem datatype.Datatype, minArgs int) Signature {
	return Signature{varArgs: elem, minArgs: max(minArgs, 1)}
}

func (s Signature) IsVariadic() bool {
	return s.varArgs != nil
}

// Params returns the declared parameter datatypes of a fixed signature.
func (s Signature) Params() []datatype.Datatype {
	return s.params
}

// VarArgsType returns the element datatype of a variadic signature.
func (s Signature) VarArgsType() datatype.Datatype {
	return s.varArgs
}

// MinArgs returns the smallest accepted number of arguments.
func (s Signature) MinArgs() int {
	if s.IsVariadic() {
		return s.minArgs
	}
	return len(s.params)
}

// ParamType returns the declared datatype at position i.
func (s Signature) ParamType(i int) datatype.Datatype {
	if s.IsVariadic() {
		return s.varArgs
	}
	return s.params[i]
}

// AcceptsArity reports whether n arguments can be passed.
func (s Signature) AcceptsArity(n int) bool {
	if s.IsVariadic() {
		return n >= s.minArgs
	}
	return n == len(s.params)
}

// Match costs per argument position; lower is a better fit.
const (
	costExact    = 0
	costCoerced  = 1
	costWildcard = 2
)

// match checks whether arguments of the given datatypes can be passed and
// returns the cost of the fit: 0 per equal position, costCoerced per position
// only compatible as primitive and wrapper, costWildcard per position declared
// as datatype.Any.
func (s Signature) match(argTypes []datatype.Datatype) (cost int, ok bool) {
	if !s.AcceptsArity(len(argTypes)) {
		return 0, false
	}
	for i, actual := range argTypes {
		declared := s.ParamType(i)
		switch {
		case declared == actual:
			cost += costExact
		case declared == datatype.Any:
			cost += costWildcard
		case datatype.Compatible(declared, actual):
			cost += costCoerced
		default:
			return 0, false
		}
	}
	return cost, true
}

// Equal reports whether s and o declare the same parameters.
func (s Signature) Equal(o Signature) bool {
	if s.varArgs != o.varArgs || s.minArgs != o.minArgs || len(s.params) != len(o.params) {
		return false
	}
	for i := range s.params {
		if s.params[i] != o.params[i] {
			return false
		}
	}
	return true
}

func (s Signature) String() string {
	if s.IsVariadic() {
		return fmt.Sprintf("%s...", s.varArgs.Name())
	}
	return strings.Join(datatype.Names(s.params), ", ")
}

package fl

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/damedic/formula-toolbox-go/datatype"
)

// Registry holds the function overloads available to formulas, keyed by name.
//
// A registry is populated once during setup. Afterward it is only read and
// may be shared by concurrent compilations.
type Registry struct {
	functions map[string][]Function
	logger    *slog.Logger
}

// NewRegistry returns a registry holding fns. Registrations are logged to
// slog.Default().
func NewRegistry(fns ...Function) (*Registry, error) {
	return newRegistry(slog.Default(), fns...)
}

func newRegistry(logger *slog.Logger, fns ...Function) (*Registry, error) {
	r := &Registry{functions: map[string][]Function{}, logger: logger}
	if err := r.Register(fns...); err != nil {
		return nil, err
	}
	return r, nil
}

// DefaultRegistry returns a registry holding DefaultFunctions.
func DefaultRegistry() *Registry {
	return defaultRegistry(slog.Default())
}

func defaultRegistry(logger *slog.Logger) *Registry {
	r, err := newRegistry(logger, DefaultFunctions()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds overloads. Two overloads of one name with the same signature
// can not be told apart and are rejected.
func (r *Registry) Register(fns ...Function) error {
	var errs []error
	for _, fn := range fns {
		if fn.body == nil {
			errs = append(errs, fmt.Errorf("function %s has no implementation", fn))
			continue
		}
		if slices.ContainsFunc(r.functions[fn.name], func(o Function) bool {
			return o.signature.Equal(fn.signature)
		}) {
			errs = append(errs, fmt.Errorf("function %s already registered", fn))
			continue
		}
		r.functions[fn.name] = append(r.functions[fn.name], fn)
		r.logger.Debug("registered function", "function", fn.String())
	}
	return errors.Join(errs...)
}

// Overloads returns the functions registered under name.
func (r *Registry) Overloads(name string) []Function {
	return slices.Clone(r.functions[name])
}

// Names returns the sorted names of all registered functions.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ResolutionError reports that no single overload matches a call.
type ResolutionError struct {
	Message Message
}

func (e ResolutionError) Error() string {
	return e.Message.Text(nil)
}

// Resolve selects the overload of name matching the argument datatypes.
//
// Among all matching overloads the one with the lowest match cost wins:
// equal types cost nothing, primitive/wrapper coercions cost more and
// datatype.Any wildcards cost most. If several overloads share the lowest
// cost the call is ambiguous. All failures are returned as ResolutionError.
func (r *Registry) Resolve(name string, argTypes []datatype.Datatype) (Function, error) {
	args := strings.Join(datatype.Names(argTypes), ", ")

	candidates, ok := r.functions[name]
	if !ok {
		return Function{}, ResolutionError{NewError(UndefinedFunction, name, args)}
	}

	var (
		best     []Function
		bestCost int
	)
	for _, fn := range candidates {
		cost, ok := fn.signature.match(argTypes)
		if !ok {
			continue
		}
		switch {
		case len(best) == 0 || cost < bestCost:
			best, bestCost = []Function{fn}, cost
		case cost == bestCost:
			best = append(best, fn)
		}
	}

	switch len(best) {
	case 0:
		return Function{}, ResolutionError{NewError(WrongArgumentTypes, name, args)}
	case 1:
		return best[0], nil
	default:
		overloads := make([]string, 0, len(best))
		for _, fn := range best {
			overloads = append(overloads, fn.String())
		}
		return Function{}, ResolutionError{NewError(AmbiguousFunctionCall, name, args, strings.Join(overloads, "; "))}
	}
}

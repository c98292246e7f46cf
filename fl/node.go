package fl

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/damedic/formula-toolbox-go/datatype"
)

// Node is a node of a parsed formula: a function call, a literal or an
// identifier.
type Node interface {
	fmt.Stringer
	isNode()
}

// Call is a call of a named function.
type Call struct {
	Name string
	Args []Node
}

// Literal is a constant of a datatype, given in its textual form:
// "true", "42", "1.5", "10.00 EUR" or, for strings, the text itself.
type Literal struct {
	Datatype datatype.Datatype
	Value    string
}

// Identifier references a value of the formula's context. If Datatype is nil
// the identifier is resolved by the compiler's IdentifierResolver.
type Identifier struct {
	Name     string
	Datatype datatype.Datatype
}

func (Call) isNode()       {}
func (Literal) isNode()    {}
func (Identifier) isNode() {}

func (c Call) String() string {
	args := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, a.String())
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

func (l Literal) String() string {
	if l.Datatype == datatype.String {
		return fmt.Sprintf("%q", l.Value)
	}
	return l.Value
}

func (i Identifier) String() string {
	return i.Name
}

type jsonNode struct {
	Function   string            `json:"function,omitempty"`
	Args       []json.RawMessage `json:"args,omitempty"`
	Literal    *string           `json:"literal,omitempty"`
	Identifier string            `json:"identifier,omitempty"`
	Type       string            `json:"type,omitempty"`
}

// ParseNode decodes a call tree from JSON. Calls are objects with "function"
// and "args", literals have "literal" and "type", identifiers "identifier"
// and an optional "type":
//
//	{"function": "MAX", "args": [
//	    {"identifier": "premium", "type": "Decimal"},
//	    {"literal": "10", "type": "Decimal"}
//	]}
func ParseNode(data []byte) (Node, error) {
	var n jsonNode
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("invalid node: %w", err)
	}

	var dt datatype.Datatype
	if n.Type != "" {
		var err error
		dt, err = datatype.Parse(n.Type)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case n.Function != "":
		call := Call{Name: n.Function}
		var errs []error
		for i, raw := range n.Args {
			arg, err := ParseNode(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s argument %d: %w", n.Function, i+1, err))
				continue
			}
			call.Args = append(call.Args, arg)
		}
		if len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
		return call, nil
	case n.Literal != nil:
		if dt == nil {
			return nil, fmt.Errorf("literal %q without type", *n.Literal)
		}
		return Literal{Datatype: dt, Value: *n.Literal}, nil
	case n.Identifier != "":
		return Identifier{Name: n.Identifier, Datatype: dt}, nil
	default:
		return nil, fmt.Errorf("node is neither function, literal nor identifier: %s", data)
	}
}

package fl

import (
	"fmt"

	"github.com/damedic/formula-toolbox-go/datatype"
	"github.com/dave/jennifer/jen"
)

// Result is the outcome of compiling one expression node: the generated code,
// the resulting datatype and the accumulated messages.
//
// A result has failed as soon as it holds an error message. The code of a
// failed result is never handed out, so it can not end up in a parent's code.
type Result struct {
	code     *jen.Statement
	datatype datatype.Datatype
	messages Messages
}

// NewResult returns a successful result for code of type dt.
func NewResult(code jen.Code, dt datatype.Datatype) *Result {
	return &Result{code: jen.Add(code), datatype: dt}
}

// NewFailedResult returns a result holding a single error message.
func NewFailedResult(msg Message) *Result {
	return &Result{messages: Messages{msg}}
}

// Code returns the generated code, nil if the result has failed.
func (r *Result) Code() *jen.Statement {
	if r.Failed() || r.code == nil {
		return nil
	}
	return r.code.Clone()
}

// Datatype returns the resulting datatype. For failed results it is only set
// if SetDatatype was called explicitly.
func (r *Result) Datatype() datatype.Datatype {
	return r.datatype
}

// SetDatatype sets the datatype, e.g. to keep type information of a failed
// result for further checks.
func (r *Result) SetDatatype(dt datatype.Datatype) {
	r.datatype = dt
}

func (r *Result) Messages() Messages {
	return r.messages
}

// Failed reports whether any message has error severity.
func (r *Result) Failed() bool {
	return r.messages.HasErrors()
}

// Add appends msg.
func (r *Result) Add(msg Message) {
	r.messages = append(r.messages, msg)
}

// Merge appends the messages of other, code and datatype stay untouched.
func (r *Result) Merge(other *Result) {
	r.messages = append(r.messages, other.messages...)
}

// WithCode returns a new result with the given code and datatype keeping the
// accumulated messages.
func (r *Result) WithCode(code jen.Code, dt datatype.Datatype) *Result {
	return &Result{
		code:     jen.Add(code),
		datatype: dt,
		messages: append(Messages(nil), r.messages...),
	}
}

// String renders the generated code, or the messages for failed results.
func (r *Result) String() string {
	if r.Failed() {
		return r.messages.String()
	}
	if r.code == nil {
		return ""
	}
	return fmt.Sprintf("%#v", r.code)
}

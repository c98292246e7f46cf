package fl

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix is the namespace of all message codes reported by the compiler.
const Prefix = "FLC-"

const (
	UndefinedFunction     = Prefix + "UndefinedFunction"
	WrongArgumentTypes    = Prefix + "WrongArgumentTypes"
	AmbiguousFunctionCall = Prefix + "AmbiguousFunctionCall"
	UndefinedIdentifier   = Prefix + "UndefinedIdentifier"
	InvalidLiteral        = Prefix + "InvalidLiteral"
)

// Severity captures how impactful a message is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Message is a structured diagnostic. The text is rendered by the
// presentation layer from a template looked up by Code.
type Message struct {
	Code     string
	Severity Severity
	Params   []string
}

// NewError returns an error message with the given code and parameters.
func NewError(code string, params ...string) Message {
	return Message{Code: code, Severity: SeverityError, Params: params}
}

// NewWarning returns a warning message with the given code and parameters.
func NewWarning(code string, params ...string) Message {
	return Message{Code: code, Severity: SeverityWarning, Params: params}
}

func (m Message) IsError() bool {
	return m.Severity == SeverityError
}

// Text renders the message using the template registered for its code in
// templates. Placeholders {0}, {1}, ... are replaced by the parameters.
// Codes without template fall back to DefaultTemplates, then to the function
// argument template for function specific codes.
func (m Message) Text(templates map[string]string) string {
	tmpl, ok := templates[m.Code]
	if !ok {
		tmpl, ok = DefaultTemplates[m.Code]
	}
	if !ok {
		if fn, isFn := strings.CutPrefix(m.Code, Prefix); isFn && len(m.Params) == 3 {
			tmpl = fn + ": argument {1} must be convertible to {0}, but is {2}."
		} else {
			return fmt.Sprintf("%s %v", m.Code, m.Params)
		}
	}

	pairs := make([]string, 0, 2*len(m.Params))
	for i, p := range m.Params {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", p)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func (m Message) String() string {
	return fmt.Sprintf("%s %s: %s", m.Severity, m.Code, m.Text(nil))
}

// DefaultTemplates holds the english message templates.
var DefaultTemplates = map[string]string{
	UndefinedFunction:       "The function {0} is undefined (argument types [{1}]).",
	WrongArgumentTypes:      "No matching function for name {0} with argument types [{1}].",
	AmbiguousFunctionCall:   "The call {0}({1}) is ambiguous, candidates: {2}.",
	UndefinedIdentifier:     "The identifier {0} is undefined.",
	InvalidLiteral:          "The literal {0} is not a valid {1}.",
	Prefix + "IF":           "IF: the branches of type {0} and {1} can not be converted to a common type.",
	Prefix + "IF.Condition": "IF: the condition must be convertible to {0}, but is {2}.",
	Prefix + "COUNT":        "COUNT expects a list, but the argument is {0}.",
	Prefix + "SUM":          "SUM expects a list or array of int, long, double, Decimal or Money, but the argument is {0}.",
}

// Messages is an ordered list of messages.
type Messages []Message

func (ms Messages) HasErrors() bool {
	for _, m := range ms {
		if m.IsError() {
			return true
		}
	}
	return false
}

// Errors returns the messages with error severity.
func (ms Messages) Errors() Messages {
	var errs Messages
	for _, m := range ms {
		if m.IsError() {
			errs = append(errs, m)
		}
	}
	return errs
}

// Codes returns the codes of all messages in order.
func (ms Messages) Codes() []string {
	codes := make([]string, 0, len(ms))
	for _, m := range ms {
		codes = append(codes, m.Code)
	}
	return codes
}

func (ms Messages) String() string {
	lines := make([]string, 0, len(ms))
	for _, m := range ms {
		lines = append(lines, m.String())
	}
	return strings.Join(lines, "\n")
}

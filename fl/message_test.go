package fl

import (
	"testing"

	"github.com/damedic/formula-toolbox-go/datatype"
	"github.com/dave/jennifer/jen"
	"github.com/google/go-cmp/cmp"
)

func TestMessageText(t *testing.T) {
	tests := []struct {
		name      string
		message   Message
		templates map[string]string
		want      string
	}{
		{
			name:    "default template",
			message: NewError(UndefinedFunction, "FOO", "int, Decimal"),
			want:    "The function FOO is undefined (argument types [int, Decimal]).",
		},
		{
			name:    "function argument template",
			message: NewError(Prefix+"MIN", "int", "1", "String"),
			want:    "MIN: argument 1 must be convertible to int, but is String.",
		},
		{
			name:    "if branches",
			message: NewError(Prefix+"IF", "String", "Decimal"),
			want:    "IF: the branches of type String and Decimal can not be converted to a common type.",
		},
		{
			name:      "custom template",
			message:   NewError(UndefinedIdentifier, "premium"),
			templates: map[string]string{UndefinedIdentifier: "Unbekannter Bezeichner {0}."},
			want:      "Unbekannter Bezeichner premium.",
		},
		{
			name:    "unknown code",
			message: NewWarning("X-Unknown", "a"),
			want:    "X-Unknown [a]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.message.Text(tt.templates); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMessages(t *testing.T) {
	ms := Messages{
		NewWarning(Prefix + "Deprecated"),
		NewError(UndefinedIdentifier, "a"),
	}
	if !ms.HasErrors() {
		t.Error("expected errors")
	}
	if diff := cmp.Diff(Messages{NewError(UndefinedIdentifier, "a")}, ms.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{Prefix + "Deprecated", UndefinedIdentifier}, ms.Codes()); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}
	if ms[:1].HasErrors() {
		t.Error("warnings are no errors")
	}
}

func TestResultWithWarningsDoesNotFail(t *testing.T) {
	r := NewResult(jen.Id("a"), datatype.Decimal)
	r.Add(NewWarning(Prefix + "Deprecated"))
	if r.Failed() {
		t.Error("warnings must not fail a result")
	}
}

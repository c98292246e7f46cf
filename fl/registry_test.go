package fl

import (
	"errors"
	"testing"

	"github.com/damedic/formula-toolbox-go/datatype"
	"github.com/google/go-cmp/cmp"
)

func testFunction(name string, sig Signature) Function {
	return newFunction(name, "", sig, datatype.PrimitiveBoolean, methodFunction{method: "Test"})
}

func TestRegisterRejectsDuplicateSignature(t *testing.T) {
	r, err := NewRegistry(testFunction("F", FixedSignature(datatype.PrimitiveInt)))
	if err != nil {
		t.Fatal(err)
	}

	err = r.Register(
		testFunction("F", FixedSignature(datatype.PrimitiveInt)),
		testFunction("F", FixedSignature(datatype.Integer)),
	)
	if err == nil {
		t.Fatal("expected error for duplicate signature")
	}
	if got := len(r.Overloads("F")); got != 2 {
		t.Errorf("expected 2 overloads, got %d", got)
	}
}

func TestRegisterRejectsMissingImplementation(t *testing.T) {
	_, err := NewRegistry(Function{name: "F", signature: FixedSignature()})
	if err == nil {
		t.Fatal("expected error for function without implementation")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	want := []string{
		"ABS", "AND", "CONCAT", "COUNT", "EXISTS", "IF", "ISEMPTY", "LIST", "MAX", "MIN",
		"NOT", "OR", "POWER", "ROUND", "ROUNDDOWN", "ROUNDUP", "SUM", "WHOLENUMBER",
	}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if got := len(r.Overloads("MIN")); got != 5 {
		t.Errorf("expected 5 MIN overloads, got %d", got)
	}
}

func TestResolve(t *testing.T) {
	r, err := NewRegistry(
		testFunction("F", FixedSignature(datatype.PrimitiveInt)),
		testFunction("F", FixedSignature(datatype.Integer)),
		testFunction("G", FixedSignature(datatype.Any)),
		testFunction("G", FixedSignature(datatype.Decimal)),
		testFunction("H", FixedSignature(datatype.PrimitiveInt, datatype.Integer)),
		testFunction("H", FixedSignature(datatype.Integer, datatype.PrimitiveInt)),
		testFunction("V", VariadicSignature(datatype.String, 2)),
	)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		fn   string
		args []datatype.Datatype
		want string
		code string
	}{
		{"exact primitive", "F", []datatype.Datatype{datatype.PrimitiveInt}, "F(int)", ""},
		{"exact wrapper", "F", []datatype.Datatype{datatype.Integer}, "F(Integer)", ""},
		{"exact beats wildcard", "G", []datatype.Datatype{datatype.Decimal}, "G(Decimal)", ""},
		{"wildcard", "G", []datatype.Datatype{datatype.String}, "G(any)", ""},
		{"coerced positions tie", "H", []datatype.Datatype{datatype.PrimitiveInt, datatype.PrimitiveInt}, "", AmbiguousFunctionCall},
		{"exact positions", "H", []datatype.Datatype{datatype.Integer, datatype.PrimitiveInt}, "H(Integer, int)", ""},
		{"variadic", "V", []datatype.Datatype{datatype.String, datatype.String, datatype.String}, "V(String...)", ""},
		{"variadic below minimum", "V", []datatype.Datatype{datatype.String}, "", WrongArgumentTypes},
		{"unknown", "X", nil, "", UndefinedFunction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := r.Resolve(tt.fn, tt.args)
			if tt.code != "" {
				var resErr ResolutionError
				if !errors.As(err, &resErr) {
					t.Fatalf("expected ResolutionError, got %v", err)
				}
				if resErr.Message.Code != tt.code {
					t.Errorf("expected code %s, got %s", tt.code, resErr.Message.Code)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if fn.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, fn)
			}
			if !fn.Signature().AcceptsArity(len(tt.args)) {
				t.Errorf("resolved %s does not accept %d arguments", fn, len(tt.args))
			}
		})
	}
}

func TestResolveAmbiguousListsCandidates(t *testing.T) {
	r, err := NewRegistry(
		testFunction("H", FixedSignature(datatype.PrimitiveInt, datatype.Integer)),
		testFunction("H", FixedSignature(datatype.Integer, datatype.PrimitiveInt)),
	)
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.Resolve("H", []datatype.Datatype{datatype.PrimitiveInt, datatype.PrimitiveInt})
	var resErr ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected ResolutionError, got %v", err)
	}
	want := NewError(AmbiguousFunctionCall, "H", "int, int", "H(int, Integer); H(Integer, int)")
	if diff := cmp.Diff(want, resErr.Message); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}

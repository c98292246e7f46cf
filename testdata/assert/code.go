package assert

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/google/go-cmp/cmp"
)

// CodeEqual compares the gofmt rendering of actual with expected.
func CodeEqual(t *testing.T, expected string, actual jen.Code) {
	t.Helper()
	if actual == nil {
		t.Errorf("expected code %q, got none", expected)
		return
	}
	got := fmt.Sprintf("%#v", actual)
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("code mismatch (-want +got):\n%s", diff)
	}
}

// CodeContains checks that the gofmt rendering of actual contains all parts.
func CodeContains(t *testing.T, actual jen.Code, parts ...string) {
	t.Helper()
	if actual == nil {
		t.Errorf("expected code containing %q, got none", parts)
		return
	}
	got := fmt.Sprintf("%#v", actual)
	for _, p := range parts {
		if !strings.Contains(got, p) {
			t.Errorf("expected code to contain %q, got:\n%s", p, got)
		}
	}
}

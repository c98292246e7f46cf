package assert

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// JSONEqual compares two JSON documents ignoring formatting.
func JSONEqual(t *testing.T, expected, actual string) {
	t.Helper()
	if diff := cmp.Diff(jsonValue(t, expected), jsonValue(t, actual)); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
}

func jsonValue(t *testing.T, input string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(input), &v); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return v
}

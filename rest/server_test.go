package rest_test

import (
	"encoding/json"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/damedic/formula-toolbox-go/fl"
	"github.com/damedic/formula-toolbox-go/rest"
	"github.com/damedic/formula-toolbox-go/testdata"
	"github.com/damedic/formula-toolbox-go/testdata/assert"
	"github.com/google/go-cmp/cmp"
)

// testCase represents a common structure for HTTP handler tests
type testCase struct {
	name           string
	method         string
	path           string
	requestBody    string
	server         *rest.Server
	expectedStatus int
	expectedBody   string
}

// runTest executes a common test pattern for HTTP handlers
func runTest(t *testing.T, tc testCase) *httptest.ResponseRecorder {
	server := tc.server
	if server == nil {
		server = &rest.Server{}
	}

	var req *http.Request
	if tc.requestBody != "" {
		req = httptest.NewRequest(tc.method, "http://example.com"+tc.path, strings.NewReader(tc.requestBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(tc.method, "http://example.com"+tc.path, nil)
	}

	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	if rr.Code != tc.expectedStatus {
		t.Errorf("Expected status code %d, got %d", tc.expectedStatus, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", ct)
	}
	if tc.expectedBody != "" {
		assert.JSONEqual(t, tc.expectedBody, rr.Body.String())
	}
	return rr
}

func TestHandleCompile(t *testing.T) {
	tests := []testCase{
		{
			name:           "valid call",
			requestBody:    `{"function": "AND", "args": [{"literal": "true", "type": "boolean"}, {"identifier": "x", "type": "boolean"}]}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"code": "(true && x)", "datatype": "boolean"}`,
		},
		{
			name:           "decimal literal",
			requestBody:    `{"literal": "1.50", "type": "Decimal"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"code": "values.MustParseDecimal(\"1.50\")", "datatype": "Decimal"}`,
		},
		{
			name:           "function error",
			requestBody:    `{"function": "COUNT", "args": [{"identifier": "d", "type": "Decimal"}]}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody: `{"issues": [{
				"severity": "error",
				"code": "FLC-COUNT",
				"params": ["Decimal"],
				"text": "COUNT expects a list, but the argument is Decimal."
			}]}`,
		},
		{
			name:           "invalid literal",
			requestBody:    `{"literal": "abc", "type": "int"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody: `{"issues": [{
				"severity": "error",
				"code": "FLC-InvalidLiteral",
				"params": ["abc", "int"],
				"text": "The literal abc is not a valid int."
			}]}`,
		},
		{
			name:           "custom templates",
			requestBody:    `{"identifier": "premium"}`,
			server:         &rest.Server{Templates: map[string]string{fl.UndefinedIdentifier: "Unbekannter Bezeichner {0}."}},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody: `{"issues": [{
				"severity": "error",
				"code": "FLC-UndefinedIdentifier",
				"params": ["premium"],
				"text": "Unbekannter Bezeichner premium."
			}]}`,
		},
		{
			name:           "malformed call tree",
			requestBody:    `{"function": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "body too large",
			requestBody:    `{"literal": "1", "type": "int"}`,
			server:         &rest.Server{MaxBodySize: 8},
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.method = http.MethodPost
			tc.path = "/compile"
			runTest(t, tc)
		})
	}
}

func TestHandleFunctions(t *testing.T) {
	rr := runTest(t, testCase{
		method:         http.MethodGet,
		path:           "/functions",
		expectedStatus: http.StatusOK,
	})

	var infos []rest.FunctionInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &infos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != len(fl.DefaultFunctions()) {
		t.Errorf("expected %d functions, got %d", len(fl.DefaultFunctions()), len(infos))
	}
	i := slices.IndexFunc(infos, func(info rest.FunctionInfo) bool { return info.Name == "ABS" })
	if i < 0 {
		t.Fatal("ABS not listed")
	}
	want := rest.FunctionInfo{Name: "ABS", Signature: "Decimal", Result: "Decimal", Description: "Absolute value."}
	if diff := cmp.Diff(want, infos[i]); diff != "" {
		t.Errorf("ABS mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleGenerate(t *testing.T) {
	files := testdata.GetFormulaFiles()

	rr := runTest(t, testCase{
		method:         http.MethodPost,
		path:           "/generate?package=rates",
		requestBody:    string(files["tariff"]),
		expectedStatus: http.StatusOK,
	})

	var resp rest.GenerateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Package != "rates" {
		t.Errorf("expected package rates, got %s", resp.Package)
	}
	src, ok := resp.Files["monthly_premium.go"]
	if !ok {
		t.Fatalf("monthly_premium.go missing, got %v", slices.Sorted(maps.Keys(resp.Files)))
	}
	for _, part := range []string{"package rates", "func MonthlyPremium("} {
		if !strings.Contains(src, part) {
			t.Errorf("expected source to contain %q, got:\n%s", part, src)
		}
	}
}

func TestHandleGenerateCompileErrors(t *testing.T) {
	rr := runTest(t, testCase{
		method:         http.MethodPost,
		path:           "/generate",
		requestBody:    string(testdata.GetFormulaFiles()["invalid"]),
		expectedStatus: http.StatusUnprocessableEntity,
	})

	var oo rest.Outcome
	if err := json.Unmarshal(rr.Body.Bytes(), &oo); err != nil {
		t.Fatal(err)
	}
	var formulas []string
	for _, is := range oo.Issues {
		formulas = append(formulas, is.Formula)
	}
	slices.Sort(formulas)
	if diff := cmp.Diff([]string{"undeclared", "unknown function", "wrong arguments"}, formulas); diff != "" {
		t.Errorf("formulas mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleGenerateInvalidDefinitions(t *testing.T) {
	runTest(t, testCase{
		method:         http.MethodPost,
		path:           "/generate",
		requestBody:    `{"package": "p", "formulas": [{"name": "a"}]}`,
		expectedStatus: http.StatusBadRequest,
	})
	runTest(t, testCase{
		method:         http.MethodPost,
		path:           "/generate",
		requestBody:    `{"formulas": []}`,
		expectedStatus: http.StatusBadRequest,
	})
}

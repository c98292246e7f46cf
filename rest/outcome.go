package rest

import (
	"net/http"
	"slices"
	"strings"

	"github.com/damedic/formula-toolbox-go/fl"
)

// Issue codes of failures outside of compilation.
const (
	CodeInvalid   = "invalid"
	CodeException = "exception"
	CodeTooLarge  = "too-long"
)

// Issue is a diagnostic in a response.
type Issue struct {
	Severity string   `json:"severity"`
	Code     string   `json:"code"`
	Params   []string `json:"params,omitempty"`
	Text     string   `json:"text"`
	// Formula names the definition the issue belongs to, if any.
	Formula string `json:"formula,omitempty"`
}

// Outcome is the body of error responses. It is returned as error by the
// Client.
type Outcome struct {
	Status int     `json:"-"`
	Issues []Issue `json:"issues"`
}

func (o *Outcome) Error() string {
	texts := make([]string, 0, len(o.Issues))
	for _, is := range o.Issues {
		t := is.Text
		if is.Formula != "" {
			t = is.Formula + ": " + t
		}
		texts = append(texts, t)
	}
	return strings.Join(texts, "; ")
}

type FunctionInfo struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	// Result is empty if the result type depends on the arguments.
	Result      string `json:"result,omitempty"`
	Description string `json:"description,omitempty"`
}

type CompileResponse struct {
	Code     string  `json:"code,omitempty"`
	Datatype string  `json:"datatype,omitempty"`
	Issues   []Issue `json:"issues,omitempty"`
}

// GenerateResponse holds the generated source files keyed by file name.
type GenerateResponse struct {
	Package string            `json:"package"`
	Files   map[string]string `json:"files"`
}

func toIssues(ms fl.Messages, templates map[string]string) []Issue {
	issues := make([]Issue, 0, len(ms))
	for _, m := range ms {
		issues = append(issues, Issue{
			Severity: string(m.Severity),
			Code:     m.Code,
			Params:   m.Params,
			Text:     m.Text(templates),
		})
	}
	return issues
}

var messageCodeToHTTPStatus = map[string]int{
	// the request itself is malformed
	fl.InvalidLiteral: http.StatusBadRequest,
}

// toHTTPErrorStatus derives the status from the messages with the highest
// severity. Compilation failures default to 422.
func toHTTPErrorStatus(ms fl.Messages) int {
	severityRank := map[fl.Severity]int{
		fl.SeverityError:   2,
		fl.SeverityWarning: 1,
		fl.SeverityInfo:    0,
	}

	highestSeverity := -1
	highestStatusCodes := []int{http.StatusUnprocessableEntity}

	for _, m := range ms {
		severityValue, ok := severityRank[m.Severity]
		if !ok {
			continue
		}
		statusCode, ok := messageCodeToHTTPStatus[m.Code]
		if !ok {
			statusCode = http.StatusUnprocessableEntity
		}

		if severityValue > highestSeverity {
			highestSeverity = severityValue
			highestStatusCodes = []int{statusCode}
		} else if severityValue == highestSeverity {
			highestStatusCodes = append(highestStatusCodes, statusCode)
		}
	}

	if len(highestStatusCodes) == 1 {
		return highestStatusCodes[0]
	}
	if slices.Min(highestStatusCodes) == slices.Max(highestStatusCodes) {
		return highestStatusCodes[0]
	}
	return (slices.Max(highestStatusCodes) / 100) * 100
}

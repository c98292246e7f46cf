// Package rest provides an HTTP API for compiling formulas.
//
// Currently, installed patterns are:
//   - functions: "GET /functions"
//   - compile:   "POST /compile"
//   - generate:  "POST /generate"
//
// "/compile" accepts a call tree as decoded by fl.ParseNode and responds with
// the generated Go expression and its datatype. "/generate" accepts a formula
// definition file and responds with the generated Go source files. Requests
// and responses are JSON. Diagnostics are returned as issues, failed
// compilations answer with status 422.
//
// If you do not want the handlers installed at the root, use something like
//
//	mux.Handle("/formulas/", http.StripPrefix("/formulas", server))
package rest

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"sync"

	"github.com/damedic/formula-toolbox-go/fl"
	"github.com/damedic/formula-toolbox-go/internal/generate"
	"github.com/damedic/formula-toolbox-go/internal/generate/ir"
	"github.com/damedic/formula-toolbox-go/internal/generate/model"
)

const contentTypeJSON = "application/json"

var defaultMaxBodySize int64 = 1 << 20

// Server serves the formula compiler over HTTP.
type Server struct {
	// Options configure the compiler, e.g. fl.WithRegistry for custom
	// functions.
	Options []fl.Option
	// Templates override the message texts of issues.
	Templates map[string]string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// MaxBodySize limits request bodies, defaults to 1 MiB.
	MaxBodySize int64

	// internal fields
	muxMu    sync.Mutex
	mux      *http.ServeMux
	compiler *fl.Compiler
}

func (s *Server) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if s.mux == nil {
		s.registerRoutes()
	}
	s.mux.ServeHTTP(writer, request)
}

func (s *Server) registerRoutes() {
	s.muxMu.Lock()
	defer s.muxMu.Unlock()

	// double check, mux might have been set in the background while waiting
	if s.mux != nil {
		return
	}

	s.compiler = fl.NewCompiler(append(slices.Clone(s.Options), fl.WithLogger(s.logger()))...)

	mux := http.NewServeMux()
	mux.Handle("GET /functions", http.HandlerFunc(s.handleFunctions))
	mux.Handle("POST /compile", http.HandlerFunc(s.handleCompile))
	mux.Handle("POST /generate", http.HandlerFunc(s.handleGenerate))
	s.mux = mux
}

func (s *Server) logger() *slog.Logger {
	return cmp.Or(s.Logger, slog.Default())
}

func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	registry := s.compiler.Registry()

	var infos []FunctionInfo
	for _, name := range registry.Names() {
		for _, fn := range registry.Overloads(name) {
			info := FunctionInfo{
				Name:        fn.Name(),
				Signature:   fn.Signature().String(),
				Description: fn.Description(),
			}
			if rt := fn.ResultType(); rt != nil {
				info.Result = rt.Name()
			}
			infos = append(infos, info)
		}
	}

	returnResult(w, infos, http.StatusOK)
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.logger().Error("error reading request", "err", err)
		returnErr(w, err)
		return
	}

	node, err := fl.ParseNode(body)
	if err != nil {
		s.logger().Error("error parsing call tree", "err", err)
		returnErr(w, invalidRequestError(err))
		return
	}

	res := s.compiler.Compile(node)
	resp := CompileResponse{Issues: toIssues(res.Messages(), s.Templates)}
	if res.Failed() {
		returnResult(w, resp, toHTTPErrorStatus(res.Messages()))
		return
	}
	resp.Code = res.String()
	resp.Datatype = res.Datatype().Name()
	returnResult(w, resp, http.StatusOK)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.logger().Error("error reading request", "err", err)
		returnErr(w, err)
		return
	}

	var bundle model.Bundle
	if err := json.Unmarshal(body, &bundle); err != nil {
		returnErr(w, invalidRequestError(err))
		return
	}
	pkg := cmp.Or(r.URL.Query().Get("package"), bundle.Package)
	if pkg == "" {
		returnErr(w, invalidRequestError(fmt.Errorf("no package name given")))
		return
	}

	formulas, err := ir.Parse(bundle)
	if err != nil {
		s.logger().Error("error parsing definitions", "err", err)
		returnErr(w, invalidRequestError(err))
		return
	}

	compiled, err := generate.Compile(formulas, append(slices.Clone(s.Options), fl.WithLogger(s.logger()))...)
	if err != nil {
		s.logger().Error("error compiling definitions", "err", err)
		returnErr(w, s.compileErrorOutcome(err))
		return
	}

	files := generate.Generate(pkg, compiled, generate.DefaultGenerators()...)
	resp := GenerateResponse{Package: pkg, Files: map[string]string{}}
	for _, name := range slices.Sorted(maps.Keys(files)) {
		var buf bytes.Buffer
		if err := files[name].Render(&buf); err != nil {
			s.logger().Error("error rendering file", "file", name, "err", err)
			returnErr(w, err)
			return
		}
		resp.Files[name+".go"] = buf.String()
	}
	returnResult(w, resp, http.StatusOK)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	limit := cmp.Or(s.MaxBodySize, defaultMaxBodySize)
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &Outcome{
				Status: http.StatusRequestEntityTooLarge,
				Issues: []Issue{{Severity: string(fl.SeverityError), Code: CodeTooLarge, Text: err.Error()}},
			}
		}
		return nil, err
	}
	return body, nil
}

// compileErrorOutcome collects the messages of all formulas that failed.
func (s *Server) compileErrorOutcome(err error) *Outcome {
	var (
		ms     fl.Messages
		issues []Issue
	)
	for _, e := range unwrapAll(err) {
		var ce generate.CompileError
		if !errors.As(e, &ce) {
			issues = append(issues, Issue{Severity: string(fl.SeverityError), Code: CodeInvalid, Text: e.Error()})
			continue
		}
		for _, is := range toIssues(ce.Messages, s.Templates) {
			is.Formula = ce.Formula
			issues = append(issues, is)
		}
		ms = append(ms, ce.Messages...)
	}
	status := http.StatusBadRequest
	if len(ms) > 0 {
		status = toHTTPErrorStatus(ms)
	}
	return &Outcome{Status: status, Issues: issues}
}

func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func returnErr(w http.ResponseWriter, err error) {
	var oo *Outcome
	if !errors.As(err, &oo) {
		oo = &Outcome{
			Status: http.StatusInternalServerError,
			Issues: []Issue{{Severity: string(fl.SeverityError), Code: CodeException, Text: err.Error()}},
		}
	}
	returnResult(w, oo, oo.Status)
}

func returnResult[T any](w http.ResponseWriter, r T, status int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(r)
	if err != nil {
		// we were not able to return an application level error (Outcome)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func invalidRequestError(err error) *Outcome {
	return &Outcome{
		Status: http.StatusBadRequest,
		Issues: []Issue{{Severity: string(fl.SeverityError), Code: CodeInvalid, Text: err.Error()}},
	}
}

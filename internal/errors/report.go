package errors

import (
	"errors"
	"fmt"
)

// Pos is a source location, shared by every diagnostic.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Report is the canonical structured diagnostic for the Avalon
// front-end. Every error builder across lex/parse/import/check returns
// a *Report so the driver can accumulate and render them uniformly.
type Report struct {
	Code    string         // e.g. "TYP003"
	Phase   string         // "lex", "parse", "import", "type", "function", "statement", "variable"
	Message string         // human-readable message
	Pos     Pos            // source location
	Fatal   bool           // true if this aborts the current stage
	Data    map[string]any // structured context (resolution trace, candidate list, ...)
}

// reportError wraps a Report as a Go error, preserving structure
// through errors.As.
type reportError struct {
	rep *Report
}

func (e *reportError) Error() string {
	if e.rep == nil {
		return "unknown error"
	}
	return fmt.Sprintf("%s: %s: %s", e.rep.Pos.String(), e.rep.Code, e.rep.Message)
}

// Wrap wraps a *Report as an error value.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &reportError{rep: r}
}

// AsReport extracts a *Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *reportError
	if errors.As(err, &re) {
		return re.rep, true
	}
	return nil, false
}

// New builds a Report for the given code/phase/message/position. Pass
// IsFatalPhase(phase) as a default, or override for recoverable errors
// within a normally-fatal phase.
func New(code, phase, message string, pos Pos, fatal bool) *Report {
	return &Report{
		Code:    code,
		Phase:   phase,
		Message: message,
		Pos:     pos,
		Fatal:   fatal,
	}
}

// WithData attaches structured context to a Report and returns it, for
// chaining at the construction site.
func (r *Report) WithData(key string, value any) *Report {
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	r.Data[key] = value
	return r
}

// String renders the diagnostic in the "<path>:<line>:<col>: <msg>"
// format the error stream and warnings share.
func (r *Report) String() string {
	return fmt.Sprintf("%s: %s\n", r.Pos.String(), r.Message)
}

// Sink accumulates diagnostics across a compile. Non-fatal errors and
// warnings both land here; a fatal error additionally short-circuits
// the stage that produced it.
type Sink struct {
	Errors   []*Report
	Warnings []*Report
}

// NewSink creates an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Error records a diagnostic. Returns the report for convenient chaining.
func (s *Sink) Error(r *Report) *Report {
	s.Errors = append(s.Errors, r)
	return r
}

// Warn records a warning. Warnings never set Failed().
func (s *Sink) Warn(r *Report) *Report {
	s.Warnings = append(s.Warnings, r)
	return r
}

// Failed reports whether any recorded diagnostic marks the compile as
// failed (every entry in Errors counts, fatal or not — only warnings
// are excluded).
func (s *Sink) Failed() bool {
	return len(s.Errors) > 0
}

// HasFatal reports whether a fatal error was recorded, meaning the
// stage that produced it was aborted.
func (s *Sink) HasFatal() bool {
	for _, e := range s.Errors {
		if e.Fatal {
			return true
		}
	}
	return false
}

// Render writes every error and warning in "<path>:<line>:<col>: <msg>"
// form, errors first, to the given writer-like function (kept generic
// so cmd/avalon can route it through color.Fprintf).
func (s *Sink) Render(write func(isError bool, line string)) {
	for _, e := range s.Errors {
		write(true, e.String())
	}
	for _, w := range s.Warnings {
		write(false, w.String())
	}
}

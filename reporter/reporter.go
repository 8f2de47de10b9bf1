package reporter

import (
	"sync"
)

// ErrorReporter is responsible for reporting the given fault. If the
// reporter returns a non-nil error, compilation aborts with that error. If
// it returns nil, compilation continues, allowing the compiler to report as
// many faults as it can find.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning: a
// diagnostic that does not fail the compilation but should not be ignored.
type WarningReporter func(ErrorWithPos)

// Reporter receives faults and warnings as they are raised.
type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

// NewReporter builds a Reporter from callbacks; either may be nil.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler aggregates faults for one compilation. It is safe for use from
// the concurrent per-function pipelines: the first reporter decision to
// abort sticks, and later reports return the same error.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler creates a handler around rep. A nil rep aborts on the first
// fault and ignores warnings.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleError reports a fault. If the reporter decides to abort, the
// returned error is non-nil and the same error is returned from all
// subsequent calls.
func (h *Handler) HandleError(err ErrorWithPos) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	h.errsReported = true
	h.err = h.reporter.Error(err)
	return h.err
}

// HandleWarning reports a warning, unless the handler already aborted.
func (h *Handler) HandleWarning(err ErrorWithPos) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return
	}
	h.reporter.Warning(err)
}

// Err returns the error compilation must abort with: the reporter's abort
// decision, or [ErrInvalidSource] if faults were reported but swallowed.
func (h *Handler) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if h.errsReported {
		return ErrInvalidSource
	}
	return nil
}

// ReportedErrors returns whether any fault was reported.
func (h *Handler) ReportedErrors() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errsReported
}

package main

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which of the four fatal error categories a failure
// belongs to. Every phase of the pipeline raises one of these, wrapped
// with github.com/pkg/errors so the command layer can recover the kind
// and print a remediation hint regardless of how deep it was raised.
type Kind int

const (
	// KindInvalidInput means the dataset violates a structural invariant:
	// a course without a teacher, a duplicate identity, a malformed slot
	// label.
	KindInvalidInput Kind = iota
	// KindInfeasible means the problem provably has no solution: a
	// capacity shortfall, teacher overload, or solver-declared infeasible.
	KindInfeasible
	// KindSolverTimeout means the solver exceeded its wall-clock budget
	// without concluding.
	KindSolverTimeout
	// KindSolverBug means a produced assignment violates a hard invariant,
	// which indicates a modeling defect rather than an input problem.
	KindSolverBug
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindInfeasible:
		return "Infeasible"
	case KindSolverTimeout:
		return "SolverTimeout"
	case KindSolverBug:
		return "SolverBug"
	default:
		return "Unknown"
	}
}

// PipelineError is the single error type that ever leaves a pipeline
// phase. Remediation is only populated for capacity-class failures.
type PipelineError struct {
	Kind        Kind
	Message     string
	Remediation string
}

func (e *PipelineError) Error() string {
	if e.Remediation == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Remediation)
}

func newPipelineError(kind Kind, remediation string, format string, args ...interface{}) error {
	return errors.WithStack(&PipelineError{
		Kind:        kind,
		Message:     fmt.Sprintf(format, args...),
		Remediation: remediation,
	})
}

func invalidInput(format string, args ...interface{}) error {
	return newPipelineError(KindInvalidInput, "", format, args...)
}

func infeasible(remediation string, format string, args ...interface{}) error {
	return newPipelineError(KindInfeasible, remediation, format, args...)
}

func solverTimeout(format string, args ...interface{}) error {
	return newPipelineError(KindSolverTimeout, "", format, args...)
}

func solverBug(format string, args ...interface{}) error {
	return newPipelineError(KindSolverBug, "", format, args...)
}

// kindOf recovers the PipelineError underneath any wrapping applied by
// errors.Wrap/errors.WithStack, defaulting to KindSolverBug for errors
// that never went through this package (should not happen in practice,
// but keeps the CLI's exit-code switch total).
func kindOf(err error) Kind {
	var pe *PipelineError
	if casted, ok := errors.Cause(err).(*PipelineError); ok {
		pe = casted
	}
	if pe == nil {
		return KindSolverBug
	}
	return pe.Kind
}

// Package errors is the single error import of the storefront. Matching goes
// through the standard library; wrapping records a pkg/errors stack so that
// Origin can name where a failure was first annotated.
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// New returns an error that formats as the given text.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// AsType returns the first error in err's tree of type T.
func AsType[T error](err error) (T, bool) {
	var target T
	ok := stderrors.As(err, &target)

	return target, ok
}

// Wrap annotates err with message and a stack trace. A nil err stays nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// WithStack annotates err with a stack trace at the point WithStack was called.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Errorf formats according to a format specifier and returns the string as a
// value that satisfies error with stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

const selfPackage = "storefront/internal/errors."

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// callerFrame returns the first frame outside this package.
func callerFrame(frames pkgerrors.StackTrace) (pkgerrors.Frame, bool) {
	for _, f := range frames {
		fn := runtime.FuncForPC(uintptr(f) - 1)
		if fn != nil && strings.HasPrefix(fn.Name(), selfPackage) {
			continue
		}

		return f, true
	}

	return 0, false
}

// Origin returns "file.go:line" of the innermost recorded stack in err's
// tree, following joined and multi-cause errors. It is "" when no error in
// the tree carries a stack.
func Origin(err error) string {
	origin := ""
	walk(err, func(e error) {
		if st, ok := e.(stackTracer); ok {
			if frame, ok := callerFrame(st.StackTrace()); ok {
				origin = fmt.Sprintf("%v", frame)
			}
		}
	})

	return origin
}

// walk visits err and its tree depth first, parents before children.
func walk(err error, visit func(error)) {
	if err == nil {
		return
	}
	visit(err)

	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, child := range e.Unwrap() {
			walk(child, visit)
		}
	case interface{ Unwrap() error }:
		walk(e.Unwrap(), visit)
	}
}

package errors

import (
	"bytes"
	"fmt"
)

// maxListed bounds how many errors Error() spells out; batch jobs can fail on
// thousands of records with the same cause.
const maxListed = 10

// Errors is a non-empty list of errors. A nil Errors means no error occurred,
// so callers can compare against nil directly.
type Errors interface {
	error
	// Slice returns a copy of the underlying (non-nil) errors.
	Slice() []error
	// Len is always > 0.
	Len() int

	sliceNoCopy() []error
	append(e error) Errors
}

type errorSlice []error

func (m errorSlice) append(e error) Errors {
	return errorSlice(append(m, e))
}

func (m errorSlice) sliceNoCopy() []error {
	return []error(m)
}

func (m errorSlice) Slice() []error {
	return append([]error(nil), m...)
}

func (m errorSlice) Len() int {
	return len(m)
}

func (m errorSlice) Error() string {
	var b bytes.Buffer
	for i, err := range m {
		if i == maxListed {
			fmt.Fprintf(&b, "\n... and %d more", len(m)-maxListed)
			break
		}
		if i > 0 {
			fmt.Fprint(&b, "\n")
		}
		fmt.Fprint(&b, err)
	}
	return b.String()
}

// Append appends the given (possibly nil) error to the given (possibly nil) Errors.
// Nested Errors are flattened.
func Append(errs Errors, err error) Errors {
	if err == nil {
		return errs
	}
	if errs == nil {
		errs = errorSlice(nil)
	}
	if multi, ok := err.(Errors); ok && multi != nil {
		for _, e := range multi.sliceNoCopy() {
			errs = errs.append(e)
		}
		return errs
	}
	return errs.append(err)
}

// Combine combines errors e & f into a single error, returning nil only if both are nil.
func Combine(e, f error) error {
	switch e := e.(type) {
	case nil:
		return f
	case Errors:
		// copy e so the caller's backing array is left alone
		return Append(errorSlice(e.Slice()), f)
	default:
		if f == nil {
			return e
		}
		return Append(errorSlice{e}, f)
	}
}

// Defer folds the error returned by f into *err; use it for deferred Close calls.
func Defer(err *error, f func() error) {
	*err = Combine(*err, f())
}

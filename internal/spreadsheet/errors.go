package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// FieldError is a single problem with one field of a submission. Field is
// the path as it appears in the payload, for example "accuracy.manual".
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationError reports every problem found in a submission, not just the
// first, so the person filling in the form can fix them all in one go.
type ValidationError struct {
	Errs *multierror.Error
}

func (e *ValidationError) Error() string {
	if e.Errs == nil || len(e.Errs.Errors) == 0 {
		return "invalid submission"
	}

	msgs := make([]string, 0, len(e.Errs.Errors))
	for _, err := range e.Errs.Errors {
		msgs = append(msgs, err.Error())
	}
	return "invalid submission: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Errs
}

// Errors returns each problem found.
func (e *ValidationError) Errors() []error {
	if e.Errs == nil {
		return nil
	}
	return e.Errs.Errors
}

// Fields returns the path of every field that had a problem, in the order
// they were found.
func (e *ValidationError) Fields() []string {
	var fields []string
	for _, err := range e.Errors() {
		if fe, ok := err.(*FieldError); ok {
			fields = append(fields, fe.Field)
		}
	}
	return fields
}

// InvalidDateError is returned when the submission date can't be read as
// a calendar date while building the record key.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date '%s'", e.Value)
}

// DuplicateRecordError is returned when a record with the same key already
// exists. The engine never renames a submission to get around this.
type DuplicateRecordError struct {
	Key string
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("a submission with this date, serial number, and facility already exists: '%s'", e.Key)
}

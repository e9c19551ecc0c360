package fault

import (
	"errors"
	"fmt"
)

// Code identifies one entry of the closed fault taxonomy shared by the form
// engine, the submission client, the normalizer and the template registry.
type Code string

const (
	// Validation faults. Recoverable locally: the engine surfaces them per
	// field without discarding the rest of the form state.
	InvalidField    Code = "invalid_field"
	TooManyFiles    Code = "too_many_files"
	TypeMismatch    Code = "type_mismatch"
	MissingRequired Code = "missing_required"
	Validation      Code = "validation"

	// Upload and submission lifecycle faults.
	UploadFailed       Code = "upload_failed"
	UploadsPending     Code = "uploads_pending"
	SubmissionInFlight Code = "submission_in_flight"

	// Lookup and transport faults. Propagate to the caller unmodified; no
	// automatic retry happens below the caller.
	UnknownTemplate Code = "unknown_template"
	NotFound        Code = "not_found"
	Network         Code = "network"
	Conflict        Code = "conflict"
)

// Fault is an error carrying a taxonomy code and, when field-scoped, the name
// of the offending field. Transport causes are wrapped and reachable through
// errors.Unwrap.
type Fault struct {
	Code  Code
	Field string
	Msg   string
	Err   error
}

func (f *Fault) Error() string {
	switch {
	case f.Field != "" && f.Msg != "":
		return fmt.Sprintf("%s: field %q: %s", f.Code, f.Field, f.Msg)
	case f.Field != "":
		return fmt.Sprintf("%s: field %q", f.Code, f.Field)
	case f.Msg != "" && f.Err != nil:
		return fmt.Sprintf("%s: %s: %v", f.Code, f.Msg, f.Err)
	case f.Msg != "":
		return fmt.Sprintf("%s: %s", f.Code, f.Msg)
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", f.Code, f.Err)
	default:
		return string(f.Code)
	}
}

func (f *Fault) Unwrap() error { return f.Err }

// Is matches faults by code so callers can test taxonomy membership with
// errors.Is(err, &Fault{Code: fault.NotFound}). A target with a field name
// additionally requires the field to match.
func (f *Fault) Is(target error) bool {
	t, ok := target.(*Fault)
	if !ok {
		return false
	}
	if t.Code != f.Code {
		return false
	}
	return t.Field == "" || t.Field == f.Field
}

// New constructs a fault with a free-form message.
func New(code Code, msg string) *Fault {
	return &Fault{Code: code, Msg: msg}
}

// Newf constructs a fault with a formatted message.
func Newf(code Code, format string, args ...any) *Fault {
	return &Fault{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// ForField constructs a field-scoped fault.
func ForField(code Code, field, msg string) *Fault {
	return &Fault{Code: code, Field: field, Msg: msg}
}

// Wrap constructs a fault around an underlying cause, typically a transport
// error.
func Wrap(code Code, err error, msg string) *Fault {
	return &Fault{Code: code, Msg: msg, Err: err}
}

// CodeOf extracts the taxonomy code from err, unwrapping as needed. The
// second return is false when err carries no fault.
func CodeOf(err error) (Code, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f.Code, true
	}
	return "", false
}

// IsCode reports whether err carries the given taxonomy code.
func IsCode(err error, code Code) bool {
	got, ok := CodeOf(err)
	return ok && got == code
}

// FieldOf extracts the field name from a field-scoped fault, or "".
func FieldOf(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return f.Field
	}
	return ""
}

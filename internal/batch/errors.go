package batch

import (
	"errors"
	"strconv"
)

// Sentinel errors for manifest loading and validation.
var (
	// ErrNoRecords indicates the manifest declares no [[birth]] records.
	ErrNoRecords = errors.New("manifest has no birth records")
	// ErrMissingField indicates a required record field is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrDuplicateID indicates two records share an ID.
	ErrDuplicateID = errors.New("duplicate record ID")
	// ErrInvalidManifest wraps every validation failure of a manifest.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// ValidationError records a validation problem with record context.
type ValidationError struct {
	// Record is the record ID, or "#n" (1-based) when the ID is missing.
	// It is empty for problems in [defaults].
	Record string
	Field  string
	Err    error
}

// Error returns a human-readable string including record and field context.
func (e *ValidationError) Error() string {
	prefix := "defaults"
	if e.Record != "" {
		prefix = "birth " + e.Record
	}
	if e.Field != "" {
		prefix += "." + e.Field
	}
	return prefix + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func recordLabel(id string, index int) string {
	if id != "" {
		return id
	}
	return "#" + strconv.Itoa(index+1)
}

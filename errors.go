package bundle

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	// ErrMissingField is returned by Builder.Build when a required field is unset.
	ErrMissingField = errors.New("bundle: missing required field")

	// ErrContent is returned when an entry's content cannot be opened or read.
	ErrContent = errors.New("bundle: content unavailable")

	// ErrInvalidPath is returned when a path cannot name a module entry.
	ErrInvalidPath = errors.New("bundle: invalid path")

	// ErrDuplicatePath is returned when two entries share a path.
	ErrDuplicatePath = errors.New("bundle: duplicate path")

	// ErrTooManyEntries is returned when an archive holds more entries than allowed.
	ErrTooManyEntries = errors.New("bundle: too many entries")
)

// MissingFieldError names the required fields that were unset at build time.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("bundle: missing required field(s): %s", strings.Join(e.Fields, ", "))
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// ContentError records a failure to open or read an entry's content.
type ContentError struct {
	Path Path
	Op   string
	Err  error
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("bundle: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrContent.
func (e *ContentError) Is(target error) bool {
	return target == ErrContent
}

// PathError describes why a path failed validation.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("bundle: invalid path %q: %s", e.Path, e.Reason)
}

// Is reports whether target is ErrInvalidPath.
func (e *PathError) Is(target error) bool {
	return target == ErrInvalidPath
}

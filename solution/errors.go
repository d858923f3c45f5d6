package solution

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat indicates the file extension is not a known
	// solution descriptor format
	ErrUnsupportedFormat = errors.New("unsupported solution format")

	// ErrDuplicateProject indicates two entries declared the same identifier
	ErrDuplicateProject = errors.New("duplicate project identifier")

	// ErrUnresolvedParent indicates a nesting entry references a parent
	// that does not exist or is not a folder
	ErrUnresolvedParent = errors.New("unresolved parent identifier")

	// ErrCyclicNesting indicates the parent chain contains a cycle
	ErrCyclicNesting = errors.New("cyclic project nesting")
)

// ParseError is a structural grammar error. It is fatal and carries the
// position and offending token for diagnostics.
type ParseError struct {
	// FilePath is the descriptor being parsed
	FilePath string

	// Line is the 1-based line number where the error occurred
	Line int

	// Token is the offending token, if one was isolated
	Token string

	// Message describes what went wrong
	Message string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	msg := e.Message
	if e.Token != "" {
		msg = fmt.Sprintf("%s (near %q)", msg, e.Token)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, msg)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, msg)
}

// modelError wraps a model-assembly sentinel with the identifier that
// triggered it.
func modelError(sentinel error, guid string) error {
	return fmt.Errorf("%w: %s", sentinel, guid)
}

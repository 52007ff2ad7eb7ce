package source

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	attributeParseCode = "ATTRIBUTE_PARSE_FAILED"
	fileAccessCode     = "FILE_ACCESS_FAILED"
)

// ErrAttributeParse flags a malformed sidecar or frontmatter document. The
// run does not substitute empty attributes; the error aborts ingestion.
var ErrAttributeParse = errors.New("source: attribute document invalid")

// ErrFileAccess flags a filesystem failure other than the tolerated missing
// optional roots and skippable include entries.
var ErrFileAccess = errors.New("source: filesystem access failed")

// AttributeParseError identifies the file whose metadata document failed to
// parse or validate.
type AttributeParseError struct {
	Path string
	Err  error
}

func (e *AttributeParseError) Error() string {
	if e == nil {
		return ErrAttributeParse.Error()
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrAttributeParse.Error(), e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", ErrAttributeParse.Error(), e.Path, e.Err)
}

func (e *AttributeParseError) Unwrap() error {
	return ErrAttributeParse
}

func newAttributeParseError(path string, cause error) error {
	return goerrors.Wrap(&AttributeParseError{Path: path, Err: cause}, goerrors.CategoryValidation,
		"attribute document parse failed").WithTextCode(attributeParseCode)
}

// FileAccessError captures a fatal filesystem failure during ingestion.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	if e == nil {
		return ErrFileAccess.Error()
	}
	return fmt.Sprintf("%s: %s %s: %v", ErrFileAccess.Error(), e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return ErrFileAccess
}

func newFileAccessError(op, path string, cause error) error {
	return goerrors.Wrap(&FileAccessError{Op: op, Path: path, Err: cause}, goerrors.CategoryOperation,
		"filesystem access failed").WithTextCode(fileAccessCode)
}

// IsAttributeParseError reports whether err came from metadata parsing.
func IsAttributeParseError(err error) bool {
	return errors.Is(err, ErrAttributeParse)
}

// IsFileAccessError reports whether err came from a fatal filesystem failure.
func IsFileAccessError(err error) bool {
	return errors.Is(err, ErrFileAccess)
}

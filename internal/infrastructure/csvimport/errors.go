package csvimport

import (
	"errors"
	"fmt"
)

// Row-level error codes reported back to the caller
const (
	CodeParse         = "CSV_PARSE"
	CodeMissingColumn = "CSV_MISSING_COLUMN"
	CodeRequired      = "CSV_REQUIRED_FIELD"
	CodeInvalidType   = "CSV_INVALID_TYPE"
	CodeOutOfRange    = "CSV_OUT_OF_RANGE"
	CodeTooLong       = "CSV_TOO_LONG"
	CodeDuplicate     = "CSV_DUPLICATE"
)

// File-level errors
var (
	ErrEmptyFile     = errors.New("import file is empty")
	ErrNotUTF8       = errors.New("import file is not valid UTF-8")
	ErrMissingHeader = errors.New("import file has no header row")
)

// RowError locates a validation failure in the file
type RowError struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d, column %q: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Package csvimport reads and validates CSV files for bulk catalog
// imports. Files must be UTF-8 with a header row; rows are surfaced as
// header-keyed maps so callers stay independent of column order.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Reader wraps encoding/csv with header mapping and encoding checks
type Reader struct {
	csv     *csv.Reader
	headers []string
	index   map[string]int
	line    int
}

// ReaderOption is a functional option for Reader
type ReaderOption func(*csv.Reader)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ReaderOption {
	return func(r *csv.Reader) {
		r.Comma = d
	}
}

// NewReader creates a Reader over r, strips a UTF-8 BOM if present,
// rejects non-UTF-8 input and parses the header row.
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
		head = head[3:]
	}
	if !utf8.Valid(trimPartialRune(head)) {
		return nil, ErrNotUTF8
	}

	cr := csv.NewReader(buf)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	for _, opt := range opts {
		opt(cr)
	}

	reader := &Reader{csv: cr, index: make(map[string]int)}
	if err := reader.parseHeader(); err != nil {
		return nil, err
	}
	return reader, nil
}

// trimPartialRune drops a multibyte rune split by the peek boundary.
// Only an incomplete prefix of a valid rune is trimmed; bytes that can
// never complete a rune are kept so the validity check rejects them.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			break
		}
	}
	return b
}

func (r *Reader) parseHeader() error {
	record, err := r.csv.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header row: %w", err)
	}

	r.headers = make([]string, len(record))
	for i, h := range record {
		name := strings.TrimSpace(h)
		r.headers[i] = name
		r.index[name] = i
	}
	r.line = 1
	return nil
}

// Headers returns the parsed column names in file order
func (r *Reader) Headers() []string {
	return r.headers
}

// MissingColumns reports which of the required columns are absent
func (r *Reader) MissingColumns(required ...string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := r.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Row is a single data row keyed by header name
type Row struct {
	Line   int
	fields map[string]string
}

// Get returns the trimmed value of the named column, or "" if absent
func (row *Row) Get(column string) string {
	return row.fields[column]
}

// IsEmpty reports whether every field in the row is blank
func (row *Row) IsEmpty() bool {
	for _, v := range row.fields {
		if v != "" {
			return false
		}
	}
	return true
}

// Next returns the next data row. io.EOF signals the end of the file;
// any other error carries the file line number.
func (r *Reader) Next() (*Row, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	r.line++
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", r.line, err)
	}

	row := &Row{Line: r.line, fields: make(map[string]string, len(r.headers))}
	for i, name := range r.headers {
		if i < len(record) {
			row.fields[name] = strings.TrimSpace(record[i])
		} else {
			row.fields[name] = ""
		}
	}
	return row, nil
}

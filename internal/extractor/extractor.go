package extractor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for extensions other than .docx and .pdf
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrExtraction matches every *ExtractionError
	ErrExtraction = errors.New("text extraction failed")
)

// ExtractionError reports a file the parser could not open or read
type ExtractionError struct {
	Path   string
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s text from %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrExtraction) match any ExtractionError
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}

type extractFunc func(path string) (string, error)

// Extractor turns a stored résumé into plain text
type Extractor struct {
	formats map[string]extractFunc
}

// New creates an extractor for .docx and .pdf files
func New() *Extractor {
	return &Extractor{
		formats: map[string]extractFunc{
			".docx": extractDocx,
			".pdf":  extractPDF,
		},
	}
}

// Supports reports whether ext (with leading dot, any case) can be extracted
func (e *Extractor) Supports(ext string) bool {
	_, ok := e.formats[strings.ToLower(ext)]
	return ok
}

// Extract reads the text of the file at path, choosing the parser by ext
func (e *Extractor) Extract(path, ext string) (string, error) {
	format := strings.ToLower(ext)
	extract, ok := e.formats[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	text, err := extract(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Format: strings.TrimPrefix(format, "."), Err: err}
	}
	return text, nil
}

package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
)

// Options controls decoding.
type Options struct {
	// Delimiter for delimited text. If 0, detected from the header line.
	Delimiter rune
	// Sheet selects a workbook sheet by name. Empty means the first sheet.
	Sheet string
}

// Decoder turns an uploaded file into rows keyed by its header.
type Decoder interface {
	CanDecode(filename string) bool
	Format() string
	Decode(r io.Reader, opt Options) (dataset.Dataset, error)
}

var registry []Decoder

// Register adds a decoder implementation to the registry.
func Register(d Decoder) {
	registry = append(registry, d)
}

// Lookup returns the decoder for filename.
func Lookup(filename string) (Decoder, bool) {
	for _, d := range registry {
		if d.CanDecode(filename) {
			return d, true
		}
	}
	return nil, false
}

// DecodeFile opens path and decodes it with the decoder matching its extension.
func DecodeFile(path string, opt Options) (dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Name: filepath.Base(path), Err: fmt.Errorf("open: %w", err)}
	}
	defer f.Close()
	return Decode(f, filepath.Base(path), opt)
}

// Decode reads r as the format implied by filename. On failure it returns a
// *DecodeError and no rows.
func Decode(r io.Reader, filename string, opt Options) (dataset.Dataset, error) {
	d, ok := Lookup(filename)
	if !ok {
		return nil, &DecodeError{Name: filename, Err: ErrUnsupported}
	}
	if opt.Delimiter == 0 && isTSV(filename) {
		opt.Delimiter = '\t'
	}
	rows, err := d.Decode(r, opt)
	if err != nil {
		return nil, &DecodeError{Name: filename, Format: d.Format(), Err: err}
	}
	return rows, nil
}

func init() {
	Register(csvDecoder{})
	Register(xlsxDecoder{})
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported file format")

// DecodeError reports a file that could not be turned into rows.
type DecodeError struct {
	Name   string
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("decode %s (%s): %v", e.Name, e.Format, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

package parser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
)

type csvDecoder struct{}

func (csvDecoder) CanDecode(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (csvDecoder) Format() string { return "csv" }

// Decode reads delimited text with a header line. Empty fields become null;
// rows shorter than the header omit the missing keys and extra fields are
// dropped.
func (csvDecoder) Decode(in io.Reader, opt Options) (dataset.Dataset, error) {
	br := bufio.NewReaderSize(in, 64<<10)
	if b, err := br.Peek(3); err == nil && string(b) == "\xef\xbb\xbf" {
		_, _ = br.Discard(3)
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(br)
	}
	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return dataset.Dataset{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := dataset.Dataset{}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		row := dataset.NewRow()
		for j, name := range header {
			if j >= len(rec) {
				break
			}
			row.Set(name, textCell(rec[j]))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func textCell(s string) dataset.Cell {
	if s == "" {
		return dataset.Null()
	}
	return dataset.String(s)
}

// sniffDelimiter picks the most frequent of ',', ';' and tab in the first
// line without consuming it. Defaults to ','.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(64 << 10)
	line := string(peek)
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	best, bestN := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

func isTSV(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".tsv")
}

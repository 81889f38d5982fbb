// Package csvcodec writes datasets as comma-separated text that the parser
// package reads back.
package csvcodec

import (
	"bufio"
	"io"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
)

// Encode renders rows as CSV. Columns follow the first row's keys; the header
// is written unquoted; null cells become empty fields; fields containing a
// comma, a double quote or a line break are quoted with inner quotes doubled.
// Lines are joined by "\n" with no trailing newline. Empty input yields "".
func Encode(rows dataset.Dataset) string {
	var b strings.Builder
	_ = EncodeTo(&b, rows)
	return b.String()
}

// EncodeTo streams the same output as Encode to w.
func EncodeTo(w io.Writer, rows dataset.Dataset) error {
	if len(rows) == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)
	cols := rows.Columns()
	if _, err := bw.WriteString(strings.Join(cols, ",")); err != nil {
		return err
	}
	for _, row := range rows {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		for i, col := range cols {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(Field(row.Get(col))); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Field returns the escaped CSV form of a single cell.
func Field(c dataset.Cell) string {
	if c.IsNull() {
		return ""
	}
	s := c.Text()
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

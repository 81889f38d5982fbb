package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies what a Cell holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "null"
	}
}

// Cell is a single field value: null, a string, or a number.
// Cells are comparable; two cells are equal only if both kind and value match,
// so the number 1 and the string "1" are different values.
type Cell struct {
	kind Kind
	str  string
	num  float64
}

// Null returns the null cell.
func Null() Cell { return Cell{} }

// String returns a string cell.
func String(s string) Cell { return Cell{kind: KindString, str: s} }

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{kind: KindNumber, num: f} }

func (c Cell) Kind() Kind   { return c.kind }
func (c Cell) IsNull() bool { return c.kind == KindNull }

// IsEmpty reports whether the cell is null or a blank string.
func (c Cell) IsEmpty() bool {
	switch c.kind {
	case KindNull:
		return true
	case KindString:
		return strings.TrimSpace(c.str) == ""
	default:
		return false
	}
}

// Text returns the plain string form of the cell. Null renders as "".
func (c Cell) Text() string {
	switch c.kind {
	case KindString:
		return c.str
	case KindNumber:
		return formatNumber(c.num)
	default:
		return ""
	}
}

func (c Cell) String() string { return c.Text() }

func formatNumber(f float64) string {
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalJSON encodes null, string and number cells as their JSON counterparts.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindString:
		return json.Marshal(c.str)
	case KindNumber:
		if math.IsNaN(c.num) || math.IsInf(c.num, 0) {
			return nil, fmt.Errorf("cell: non-finite number %v", c.num)
		}
		return json.Marshal(c.num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, strings, numbers and booleans (kept as strings).
func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("cell: empty json value")
	}
	switch b[0] {
	case 'n':
		*c = Null()
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("cell: %w", err)
		}
		*c = String(s)
		return nil
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("cell: %w", err)
		}
		*c = String(strconv.FormatBool(v))
		return nil
	case '{', '[':
		return fmt.Errorf("cell: nested values are not supported")
	default:
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return fmt.Errorf("cell: invalid number %s: %w", b, err)
		}
		*c = Number(f)
		return nil
	}
}

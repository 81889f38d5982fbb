package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
)

type xlsxDecoder struct{}

func (xlsxDecoder) CanDecode(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm")
}

func (xlsxDecoder) Format() string { return "xlsx" }

// Decode reads one sheet: the named one, or the first. The first row is the
// header. Blank rows are skipped and blank cells become null.
func (xlsxDecoder) Decode(in io.Reader, opt Options) (dataset.Dataset, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataset.Dataset{}, nil
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found.\nAvailable sheets: %s", opt.Sheet, strings.Join(sheets, ", "))
		}
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(raw) == 0 {
		return dataset.Dataset{}, nil
	}
	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = strings.TrimSpace(h)
	}
	dates := newDateCells(f, sheet)
	rows := dataset.Dataset{}
	for i, rec := range raw[1:] {
		if blank(rec) {
			continue
		}
		row := dataset.NewRow()
		for j, name := range header {
			v := ""
			if j < len(rec) {
				v = rec[j]
				if v != "" {
					v = dates.convert(j+1, i+2, v)
				}
			}
			row.Set(name, textCell(v))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// dateCells rewrites serial numbers stored in date-formatted cells as ISO
// dates. Raw values are read so that display formats never reach the core;
// date cells are the one case where the raw serial is not the value.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	byStyle  map[int]bool
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	d := &dateCells{f: f, sheet: sheet, byStyle: map[int]bool{}}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateCells) convert(col, row int, v string) string {
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return v
	}
	idx, err := d.f.GetCellStyle(d.sheet, ref)
	if err != nil || !d.isDateStyle(idx) {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return v
	}
	t = t.Round(time.Second)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02T15:04:05")
}

func (d *dateCells) isDateStyle(idx int) bool {
	if idx == 0 {
		return false
	}
	if v, ok := d.byStyle[idx]; ok {
		return v
	}
	is := false
	if st, err := d.f.GetStyle(idx); err == nil && st != nil {
		if st.CustomNumFmt != nil {
			is = isDateFormat(*st.CustomNumFmt)
		} else {
			is = isBuiltinDateFmt(st.NumFmt)
		}
	}
	d.byStyle[idx] = is
	return is
}

// isBuiltinDateFmt covers the built-in date and time number formats.
func isBuiltinDateFmt(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormat reports whether a custom format code contains date or time
// tokens outside quoted literals and bracketed sections.
func isDateFormat(code string) bool {
	inQuote, inBracket, escaped := false, false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case strings.ContainsRune("ymdhs", r):
			return true
		}
	}
	return false
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

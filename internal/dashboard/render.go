package dashboard

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/analysis"
	"github.com/KaramelBytes/tabloom-cli/internal/utils"
)

// RendererFor maps an output format name to a renderer.
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "md", "markdown":
		return MarkdownRenderer{}, nil
	case "json":
		return JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use markdown|json)", format)
	}
}

// JSONRenderer writes the state as indented JSON.
type JSONRenderer struct{}

func (JSONRenderer) Render(w io.Writer, st *State) error {
	b, err := utils.PrettyJSON(st)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// MarkdownRenderer writes a compact text report.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Render(w io.Writer, st *State) error {
	_, err := io.WriteString(w, Markdown(st))
	return err
}

// Markdown renders a state as sections suitable for a terminal or a doc.
func Markdown(st *State) string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if st.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", st.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", st.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(st.Columns)))

	b.WriteString("[SCHEMA]\n")
	if len(st.Columns) == 0 {
		b.WriteString("(no columns)\n")
	}
	for _, c := range st.Columns {
		b.WriteString(fmt.Sprintf("- %s: %s%s\n", safeName(c.Name), c.Kind, roleTag(st.Selected, c.Name)))
	}

	b.WriteString("\n[KPI]\n")
	b.WriteString(fmt.Sprintf("- Rows: %d\n", st.KPI.Count))
	label := "Sum"
	if st.Selected.Value != "" {
		label = fmt.Sprintf("Sum of %s", st.Selected.Value)
	}
	b.WriteString(fmt.Sprintf("- %s: %s\n", label, analysis.FormatSum(st.KPI.Sum)))
	b.WriteString(fmt.Sprintf("- Average: %s\n", analysis.FormatAverage(st.KPI.Average)))

	switch st.TimeMode {
	case ModeMonthly:
		b.WriteString(fmt.Sprintf("\n[MONTHLY %s BY %s]\n", titleValue(st.Selected.Value), st.Selected.Date))
	case ModeRowIndex:
		b.WriteString(fmt.Sprintf("\n[%s BY ROW]\n", titleValue(st.Selected.Value)))
	default:
		b.WriteString("\n[TIME SERIES]\n")
	}
	writeSeries(&b, st.TimeSeries, "Period", "Value")

	title := "[TOP CATEGORIES]"
	if st.Selected.Category != "" {
		title = fmt.Sprintf("[TOP %s]", strings.ToUpper(st.Selected.Category))
	}
	b.WriteString("\n" + title + "\n")
	writeSeries(&b, st.Categories, "Category", "Rows")
	return b.String()
}

func writeSeries(b *strings.Builder, s analysis.Series, labelHead, valueHead string) {
	if s.Len() == 0 {
		b.WriteString("(no data)\n")
		return
	}
	b.WriteString(fmt.Sprintf("| %s | %s |\n| --- | --- |\n", labelHead, valueHead))
	for i := range s.Labels {
		b.WriteString(fmt.Sprintf("| %s | %s |\n", safeVal(s.Labels[i]), strconv.FormatFloat(s.Values[i], 'f', -1, 64)))
	}
}

func roleTag(sel Columns, name string) string {
	var roles []string
	if sel.Date == name {
		roles = append(roles, "date axis")
	}
	if sel.Value == name {
		roles = append(roles, "value")
	}
	if sel.Category == name {
		roles = append(roles, "category")
	}
	if len(roles) == 0 {
		return ""
	}
	return " (" + strings.Join(roles, ", ") + ")"
}

func titleValue(v string) string {
	if v == "" {
		return "VALUE"
	}
	return strings.ToUpper(v)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

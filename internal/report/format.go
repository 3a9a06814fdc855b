package report

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// Column layout shared by the text exports. Fixed: downstream spreadsheets
// key on these headers.
var columns = []string{
	"id", "name", "role", "key", "value", "attr",
	"visible", "z", "x", "y", "width", "height",
}

func (r Row) fields() []string {
	return []string{
		r.ID,
		r.Name,
		string(r.Role),
		r.ValueKey,
		r.Value,
		r.Attr,
		fmt.Sprintf("%t", r.Visible),
		fmt.Sprintf("%d", r.ZIndex),
		fmtFloat(r.X),
		fmtFloat(r.Y),
		fmtFloat(r.Width),
		fmtFloat(r.Height),
	}
}

func fmtFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// CSV renders the summary rows in document z-order.
func (s *Summary) CSV() string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(columns) // strings.Builder writes cannot fail
	for _, r := range s.Rows {
		_ = w.Write(r.fields())
	}
	w.Flush()
	return b.String()
}

// Markdown renders a table per bucket plus the aggregate counts.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("# Template layers\n\n")
	fmt.Fprintf(&b, "%d objects: %d color, %d text, %d logo, %d static (%d visible, %d hidden)\n",
		s.Counts.Total, s.Counts.Colors, s.Counts.Texts, s.Counts.Logos,
		s.Counts.Static, s.Counts.Visible, s.Counts.Hidden)
	writeBucket := func(title string, rows []Row) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		b.WriteString("| " + strings.Join(columns, " | ") + " |\n")
		b.WriteString("|" + strings.Repeat(" --- |", len(columns)) + "\n")
		for _, r := range rows {
			b.WriteString("| " + strings.Join(r.fields(), " | ") + " |\n")
		}
	}
	writeBucket("Colors", s.Colors)
	writeBucket("Text", s.Texts)
	writeBucket("Logos", s.Logos)
	writeBucket("Static", s.Static)
	return b.String()
}

// Text renders a plain one-line-per-object listing, z-order.
func (s *Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d objects (%d visible)\n", s.Counts.Total, s.Counts.Visible)
	for _, r := range s.Rows {
		label := r.Name
		if label == "" {
			label = string(r.Kind)
		}
		fmt.Fprintf(&b, "  [%d] %s", r.ZIndex, label)
		if r.Role != "" {
			fmt.Fprintf(&b, " role=%s", r.Role)
		}
		if r.ValueKey != "" {
			fmt.Fprintf(&b, " key=%q", r.ValueKey)
		}
		if r.Value != "" {
			fmt.Fprintf(&b, " %s=%q", r.Attr, r.Value)
		}
		if !r.Visible {
			b.WriteString(" hidden")
		}
		b.WriteString("\n")
	}
	return b.String()
}

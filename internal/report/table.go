package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/handiism/student-records/internal/model"
)

// Column headers shared by every rendering.
const (
	HeaderID      = "ID"
	HeaderName    = "Name"
	HeaderMarks   = "Marks"
	HeaderAverage = "Average"
)

// Borders lists the accepted border names.
var Borders = []string{"normal", "rounded", "thick", "double", "ascii", "markdown"}

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// TableRenderer renders students as a four-column table.
//
// Each student occupies one row; the Marks cell lists "subject: mark"
// entries one per line.
//
// Example output with the normal border:
//
//	┌────┬──────┬──────────┬─────────┐
//	│ ID │ Name │ Marks    │ Average │
//	├────┼──────┼──────────┼─────────┤
//	│ S1 │ Ann  │ Math: 80 │ 85.00   │
//	│    │      │ Eng: 90  │         │
//	└────┴──────┴──────────┴─────────┘
type TableRenderer struct {
	border   lipgloss.Border
	markdown bool
}

// NewTableRenderer creates a renderer for the named border.
// An empty name selects "normal".
func NewTableRenderer(border string) (*TableRenderer, error) {
	r := &TableRenderer{}
	switch strings.ToLower(border) {
	case "", "normal":
		r.border = lipgloss.NormalBorder()
	case "rounded":
		r.border = lipgloss.RoundedBorder()
	case "thick":
		r.border = lipgloss.ThickBorder()
	case "double":
		r.border = lipgloss.DoubleBorder()
	case "ascii":
		r.border = lipgloss.ASCIIBorder()
	case "markdown":
		r.border = lipgloss.MarkdownBorder()
		r.markdown = true
	default:
		return nil, fmt.Errorf("unknown table border %q (want one of %s)", border, strings.Join(Borders, ", "))
	}
	return r, nil
}

// Render returns the table for students, in the given order.
func (r *TableRenderer) Render(students []*model.Student) string {
	t := table.New().
		Border(r.border).
		Headers(HeaderID, HeaderName, HeaderMarks, HeaderAverage).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		})

	// Markdown rows must stay on one line.
	sep := "\n"
	if r.markdown {
		sep = "<br>"
		t = t.BorderTop(false).BorderBottom(false)
	} else {
		t = t.BorderRow(true)
	}

	for _, s := range students {
		t = t.Row(s.ID, s.Name, strings.Join(s.MarkLines(), sep), s.FormatAverage())
	}
	return t.String()
}

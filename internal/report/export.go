package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	ioutils "github.com/handiism/student-records/internal/io"
	"github.com/handiism/student-records/internal/model"
)

// SheetName is the worksheet written by XLSX exports.
const SheetName = "Students"

// ErrUnsupportedFormat is returned for export targets with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents supported export file formats.
type Format int

const (
	// FormatText writes the terminal table to a .txt file.
	FormatText Format = iota

	// FormatMarkdown writes a Markdown table (.md).
	FormatMarkdown

	// FormatCSV writes the wide layout as comma separated values (.csv).
	FormatCSV

	// FormatXLSX writes the wide layout to an Excel workbook (.xlsx).
	FormatXLSX
)

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatMarkdown:
		return ".md"
	case FormatCSV:
		return ".csv"
	case FormatXLSX:
		return ".xlsx"
	default:
		return ""
	}
}

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatMarkdown:
		return "markdown"
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format matching the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return FormatText, nil
	case ".md":
		return FormatMarkdown, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Export writes students to every path, in the format its extension names.
//
// All paths are checked before anything is written. Files are written
// concurrently, at most limit at a time (limit < 1 means no limit), and
// parent directories are created as needed. The first failure cancels the
// remaining writes and is returned.
func Export(ctx context.Context, students []*model.Student, paths []string, limit int) error {
	formats := make([]Format, len(paths))
	for i, path := range paths {
		f, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		formats[i] = f
	}

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, path := range paths {
		format := formats[i]
		g.Go(func() error {
			if err := exportFile(ctx, students, path, format); err != nil {
				return fmt.Errorf("export %s as %s: %w", path, format, err)
			}
			return nil
		})
	}

	return g.Wait()
}

func exportFile(ctx context.Context, students []*model.Student, path string, format Format) error {
	data, err := Encode(students, format)
	if err != nil {
		return err
	}
	if err := ioutils.EnsureParentDir(path); err != nil {
		return err
	}
	return ioutils.WriteFile(ctx, path, data)
}

// Encode renders students in format.
func Encode(students []*model.Student, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return renderTable(students, "normal")
	case FormatMarkdown:
		return renderTable(students, "markdown")
	case FormatCSV:
		return encodeCSV(students)
	case FormatXLSX:
		return encodeXLSX(students)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func renderTable(students []*model.Student, border string) ([]byte, error) {
	r, err := NewTableRenderer(border)
	if err != nil {
		return nil, err
	}
	return []byte(r.Render(students) + "\n"), nil
}

// subjectColumns returns the union of mark subjects in first-seen order.
func subjectColumns(students []*model.Student) []string {
	seen := make(map[string]bool)
	var subjects []string
	for _, s := range students {
		for _, subject := range s.Marks.Subjects() {
			if !seen[subject] {
				seen[subject] = true
				subjects = append(subjects, subject)
			}
		}
	}
	return subjects
}

func wideHeader(subjects []string) []string {
	header := make([]string, 0, len(subjects)+3)
	header = append(header, HeaderID, HeaderName)
	header = append(header, subjects...)
	return append(header, HeaderAverage)
}

func encodeCSV(students []*model.Student) ([]byte, error) {
	subjects := subjectColumns(students)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(wideHeader(subjects)); err != nil {
		return nil, err
	}

	for _, s := range students {
		record := []string{s.ID, s.Name}
		for _, subject := range subjects {
			if mark, ok := s.Marks.Get(subject); ok {
				record = append(record, strconv.Itoa(mark))
			} else {
				record = append(record, "")
			}
		}
		record = append(record, s.FormatAverage())
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXLSX(students []*model.Student) ([]byte, error) {
	subjects := subjectColumns(students)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	header := make([]interface{}, 0, len(subjects)+3)
	for _, h := range wideHeader(subjects) {
		header = append(header, h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, s := range students {
		row := make([]interface{}, 0, len(header))
		row = append(row, s.ID, s.Name)
		for _, subject := range subjects {
			if mark, ok := s.Marks.Get(subject); ok {
				row = append(row, mark)
			} else {
				row = append(row, nil)
			}
		}
		if avg, ok := s.Average(); ok {
			row = append(row, avg)
		} else {
			row = append(row, nil)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

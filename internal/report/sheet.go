package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/handiism/student-records/internal/model"
)

// ErrBadWorkbook is returned when a workbook does not have the expected layout.
var ErrBadWorkbook = errors.New("bad workbook")

// ReadWorkbook reads students from the first sheet of an XLSX workbook.
//
// The first row is the header: ID, Name, then one column per subject. A
// last column headed "Average" is ignored. Rows without
// an ID or a name are skipped. Blank mark cells mean the student does not
// take that subject; any other value must be a valid mark.
func ReadWorkbook(r io.Reader) ([]*model.Student, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: no sheets", ErrBadWorkbook)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrBadWorkbook, sheet)
	}

	subjects, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	students := make([]*model.Student, 0, len(rows)-1)
	for i, row := range rows[1:] {
		id, name := cell(row, 0), cell(row, 1)
		if id == "" || name == "" {
			continue
		}

		var (
			taken []string
			marks model.Marks
		)
		for j, subject := range subjects {
			value := cell(row, j+2)
			if value == "" {
				continue
			}
			mark, err := model.ParseMark(value)
			if err != nil {
				// rows are 1-based and the header is row 1
				return nil, fmt.Errorf("row %d, %s: %w", i+2, subject, err)
			}
			taken = append(taken, subject)
			marks.Set(subject, mark)
		}

		students = append(students, model.NewStudent(id, name, taken, marks))
	}
	return students, nil
}

// parseHeader returns the subject columns of header. Only the last column
// may be the Average column, so subjects named "" or "Average" survive.
func parseHeader(header []string) ([]string, error) {
	if len(header) < 2 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), HeaderID) ||
		!strings.EqualFold(strings.TrimSpace(header[1]), HeaderName) {
		return nil, fmt.Errorf("%w: header must start with %s, %s", ErrBadWorkbook, HeaderID, HeaderName)
	}

	columns := header[2:]
	if n := len(columns); n > 0 && strings.EqualFold(strings.TrimSpace(columns[n-1]), HeaderAverage) {
		columns = columns[:n-1]
	}

	subjects := make([]string, len(columns))
	for i, h := range columns {
		subjects[i] = strings.TrimSpace(h)
	}
	return subjects, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

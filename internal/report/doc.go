// Package report renders student records for people and for other programs.
//
// This package handles:
//   - Terminal tables (lipgloss/table) with a configurable border
//   - File exports: text table, Markdown, CSV and XLSX
//   - Reading student records back from an XLSX workbook
//
// # Tables
//
//	r, err := report.NewTableRenderer("rounded")
//	fmt.Println(r.Render(students))
//
// # Exports
//
// The output format follows the file extension. Targets are written
// concurrently, at most limit at a time:
//
//	err := report.Export(ctx, students, []string{"out/class.csv", "out/class.xlsx"}, 4)
//
// CSV and XLSX use a wide layout with one column per subject:
//
//	ID | Name | Math | Eng | Average
//
// # Workbooks
//
// ReadWorkbook accepts the same layout, so an exported workbook can be
// imported again:
//
//	students, err := report.ReadWorkbook(f)
package report

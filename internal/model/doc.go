// Package model defines the core data structures used throughout
// the student-records application.
//
// # Student
//
// Student is one record: identity, the subjects as entered and the marks
// per subject:
//
//	subjects := model.SplitSubjects("Math, Eng")
//	marks := model.Marks{}
//	marks.Set("Math", 80)
//	marks.Set("Eng", 90)
//	s := model.NewStudent("S1", "Ann", subjects, marks)
//	avg, ok := s.Average() // 85, true
//
// # Marks
//
// Marks is an ordered subject -> mark mapping. Order of insertion is kept in
// memory, on screen and in the JSON object written to disk:
//
//	data, _ := json.Marshal(marks) // {"Math":80,"Eng":90}
//
// # Parsing Input
//
// ParseMark turns operator input into a mark in [0,100]:
//
//	mark, err := model.ParseMark(" 85 ")
//	if errors.Is(err, model.ErrMarkTooHigh) {
//	    // ask again
//	}
package model

package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mark bounds, inclusive.
const (
	MinMark = 0
	MaxMark = 100
)

var (
	// ErrMarkNotInteger is returned by ParseMark when the input is not a whole number.
	ErrMarkNotInteger = errors.New("marks must be a whole number")

	// ErrNegativeMark is returned for marks below MinMark.
	ErrNegativeMark = errors.New("marks cannot be negative")

	// ErrMarkTooHigh is returned for marks above MaxMark.
	ErrMarkTooHigh = errors.New("marks cannot be greater than 100")
)

// Student represents one student record.
//
// Subjects keeps the tokens exactly as they were split from the operator's
// input, so they may carry surrounding whitespace. Marks is keyed by the
// trimmed subject name. The two are not forced to agree.
//
// Example:
//
//	s := NewStudent("S1", "Ann", []string{"Math", " Eng"}, marks)
//	// s.Subjects = ["Math", " Eng"]
//	// s.Marks keys = ["Math", "Eng"]
type Student struct {
	// ID identifies the student. It is unique within a store and never changes.
	ID string `json:"student_id"`

	// Name is free text.
	Name string `json:"name"`

	// Subjects holds the raw comma-split tokens in input order.
	Subjects []string `json:"subjects"`

	// Marks maps trimmed subject names to marks in [0,100].
	Marks Marks `json:"marks"`
}

// NewStudent creates a new Student.
//
// The subjects slice and marks are copied so the caller can reuse its buffers.
func NewStudent(id, name string, subjects []string, marks Marks) *Student {
	subj := make([]string, len(subjects))
	copy(subj, subjects)

	return &Student{
		ID:       id,
		Name:     name,
		Subjects: subj,
		Marks:    marks.Clone(),
	}
}

// Average returns the mean of all marks rounded to two decimal places.
// Halves round to even, so 85.125 becomes 85.12.
//
// The second return value is false when the student has no marks, in which
// case the average is undefined and 0 is returned.
func (s *Student) Average() (float64, bool) {
	if len(s.Marks) == 0 {
		return 0, false
	}
	mean := float64(s.Marks.Sum()) / float64(len(s.Marks))
	return math.RoundToEven(mean*100) / 100, true
}

// MarkLines returns one "subject: mark" line per mark, in insertion order.
func (s *Student) MarkLines() []string {
	lines := make([]string, 0, len(s.Marks))
	for _, m := range s.Marks {
		lines = append(lines, fmt.Sprintf("%s: %d", m.Subject, m.Value))
	}
	return lines
}

// FormatAverage renders the average with two decimals, or "n/a" when the
// student has no marks.
func (s *Student) FormatAverage() string {
	avg, ok := s.Average()
	if !ok {
		return "n/a"
	}
	return strconv.FormatFloat(avg, 'f', 2, 64)
}

// SplitSubjects splits comma-separated subject input into tokens.
//
// Tokens are not trimmed. An empty input yields a single empty token, the
// same as splitting any other string without a comma.
//
// Example:
//
//	SplitSubjects("Math, Eng") // ["Math", " Eng"]
func SplitSubjects(input string) []string {
	return strings.Split(input, ",")
}

// ParseMark parses operator input into a mark.
//
// Surrounding whitespace is ignored. Non-numeric input returns
// ErrMarkNotInteger; numbers outside [0,100] are reported by ValidateMark.
func ParseMark(input string) (int, error) {
	raw := strings.TrimSpace(input)
	mark, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMarkNotInteger, raw)
	}
	if err := ValidateMark(mark); err != nil {
		return 0, err
	}
	return mark, nil
}

// ValidateMark reports whether mark is inside [MinMark, MaxMark].
func ValidateMark(mark int) error {
	switch {
	case mark < MinMark:
		return ErrNegativeMark
	case mark > MaxMark:
		return ErrMarkTooHigh
	}
	return nil
}

package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/handiism/student-records/internal/model"
)

// jsonRecord is one element of the persisted array.
//
// Fields are pointers so that a missing key can be told apart from an empty
// value. A key present with a null value counts as missing.
type jsonRecord struct {
	StudentID *string      `json:"student_id"`
	Name      *string      `json:"name"`
	Subjects  *[]string    `json:"subjects"`
	Marks     *model.Marks `json:"marks"`
}

// toStudent converts the record, reporting the first missing key.
func (r *jsonRecord) toStudent(index int) (*model.Student, error) {
	switch {
	case r.StudentID == nil:
		return nil, missingKey(index, "student_id")
	case r.Name == nil:
		return nil, missingKey(index, "name")
	case r.Subjects == nil:
		return nil, missingKey(index, "subjects")
	case r.Marks == nil:
		return nil, missingKey(index, "marks")
	}
	return model.NewStudent(*r.StudentID, *r.Name, *r.Subjects, *r.Marks), nil
}

func missingKey(index int, key string) error {
	return fmt.Errorf("%w: record %d: missing key %q", ErrMalformedRecord, index+1, key)
}

// encodeRecords renders students as a JSON array with 4-space indentation.
func encodeRecords(students []*model.Student) ([]byte, error) {
	if students == nil {
		students = []*model.Student{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(students); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeRecords parses a JSON array of records into new students.
//
// Nothing is returned unless every record converts.
func decodeRecords(data []byte) ([]*model.Student, error) {
	var raw []jsonRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected an array of records", ErrMalformedRecord)
	}

	students := make([]*model.Student, 0, len(raw))
	for i := range raw {
		s, err := raw[i].toStudent(i)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, nil
}

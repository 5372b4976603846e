package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Mark is a single subject mark.
type Mark struct {
	Subject string
	Value   int
}

// Marks is an ordered mapping from subject name to mark.
//
// Marks serializes as a JSON object whose keys appear in insertion order.
// Setting a subject that is already present replaces its value in place.
type Marks []Mark

// Set stores the mark for subject.
func (m *Marks) Set(subject string, value int) {
	for i := range *m {
		if (*m)[i].Subject == subject {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, Mark{Subject: subject, Value: value})
}

// Get returns the mark for subject.
func (m Marks) Get(subject string) (int, bool) {
	for _, mark := range m {
		if mark.Subject == subject {
			return mark.Value, true
		}
	}
	return 0, false
}

// Subjects returns the subject names in insertion order.
func (m Marks) Subjects() []string {
	names := make([]string, len(m))
	for i, mark := range m {
		names[i] = mark.Subject
	}
	return names
}

// Sum returns the sum of all marks.
func (m Marks) Sum() int {
	total := 0
	for _, mark := range m {
		total += mark.Value
	}
	return total
}

// Clone returns an independent copy. The copy of a nil Marks is empty, not nil.
func (m Marks) Clone() Marks {
	out := make(Marks, len(m))
	copy(out, m)
	return out
}

// MarshalJSON writes the marks as a JSON object in insertion order.
func (m Marks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, mark := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(mark.Subject)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", mark.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of subject -> integer mark, keeping the
// key order of the document. A repeated key keeps its first position and the
// last value.
func (m *Marks) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("marks: expected object, got %v", tok)
	}

	out := Marks{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		subject, ok := tok.(string)
		if !ok {
			return fmt.Errorf("marks: unexpected key %v", tok)
		}

		var value int
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("marks: subject %q: %w", subject, err)
		}
		out.Set(subject, value)
	}

	// Closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}

package model

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marksOf(pairs ...any) Marks {
	m := Marks{}
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(int))
	}
	return m
}

// numbered gives each value its own subject: s1, s2, ...
func numbered(values ...int) Marks {
	m := Marks{}
	for i, v := range values {
		m.Set(fmt.Sprintf("s%d", i+1), v)
	}
	return m
}

func TestStudent_Average(t *testing.T) {
	tests := []struct {
		name  string
		marks Marks
		want  float64
		ok    bool
	}{
		{"two subjects", marksOf("Math", 80, "Eng", 90), 85, true},
		{"single subject", marksOf("Math", 85), 85, true},
		{"repeating decimal", marksOf("a", 100, "b", 100, "c", 50), 83.33, true},
		{"rounds up", marksOf("a", 1, "b", 2, "c", 2), 1.67, true},
		{"half rounds down to even", numbered(85, 85, 85, 85, 85, 85, 85, 86), 85.12, true},
		{"half rounds up to even", numbered(85, 85, 85, 85, 85, 85, 85, 88), 85.38, true},
		{"all zero", marksOf("a", 0, "b", 0), 0, true},
		{"no marks", Marks{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStudent("S1", "Ann", tt.marks.Subjects(), tt.marks)
			got, ok := s.Average()
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStudent_FormatAverage(t *testing.T) {
	s := NewStudent("S1", "Ann", nil, marksOf("Math", 80, "Eng", 91))
	assert.Equal(t, "85.50", s.FormatAverage())

	half := NewStudent("S2", "Bo", nil, numbered(85, 85, 85, 85, 85, 85, 85, 86))
	assert.Equal(t, "85.12", half.FormatAverage())

	empty := NewStudent("S3", "Cy", nil, nil)
	assert.Equal(t, "n/a", empty.FormatAverage())
}

func TestStudent_MarkLines(t *testing.T) {
	s := NewStudent("S1", "Ann", []string{"Math", " Eng"}, marksOf("Math", 80, "Eng", 90))

	assert.Equal(t, []string{"Math: 80", "Eng: 90"}, s.MarkLines())
}

func TestNewStudent_CopiesInput(t *testing.T) {
	subjects := []string{"Math"}
	marks := marksOf("Math", 80)

	s := NewStudent("S1", "Ann", subjects, marks)
	subjects[0] = "Changed"
	marks.Set("Math", 1)

	assert.Equal(t, []string{"Math"}, s.Subjects, "Subjects shares caller storage")
	v, _ := s.Marks.Get("Math")
	assert.Equal(t, 80, v, "Marks shares caller storage")
}

func TestSplitSubjects(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Math,Eng", []string{"Math", "Eng"}},
		{"Math, Eng ", []string{"Math", " Eng "}},
		{"Math", []string{"Math"}},
		{"", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSubjects(tt.input))
		})
	}
}

func TestParseMark(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr error
	}{
		{"0", 0, nil},
		{"100", 100, nil},
		{" 85 ", 85, nil},
		{"-1", 0, ErrNegativeMark},
		{"101", 0, ErrMarkTooHigh},
		{"abc", 0, ErrMarkNotInteger},
		{"", 0, ErrMarkNotInteger},
		{"85.5", 0, ErrMarkNotInteger},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMark(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarks_SetReplacesInPlace(t *testing.T) {
	m := marksOf("Math", 80, "Eng", 90)
	m.Set("Math", 70)

	assert.Equal(t, Marks{{"Math", 70}, {"Eng", 90}}, m)
}

func TestMarks_JSONKeepsOrder(t *testing.T) {
	m := marksOf("Zoology", 50, "Art", 60, "Math", 70)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"Zoology":50,"Art":60,"Math":70}`, string(data))

	var back Marks
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m, back)
}

func TestMarks_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"array", `[1,2]`},
		{"string value", `{"Math":"high"}`},
		{"fractional value", `{"Math":85.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Marks
			assert.Error(t, json.Unmarshal([]byte(tt.data), &m))
		})
	}
}

func TestMarks_EmptyMarshalsAsObject(t *testing.T) {
	var m Marks
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

package store

import (
	"context"
	"strings"

	"go.uber.org/zap"

	ioutils "github.com/handiism/student-records/internal/io"
	"github.com/handiism/student-records/internal/model"
)

// RecordFileExt is the extension Save and Load require.
const RecordFileExt = ".json"

// Store owns an ordered collection of students.
//
// Store is not safe for concurrent use; it is driven by one interactive
// front-end at a time.
type Store struct {
	records []*model.Student
	logger  *zap.Logger
}

// New creates an empty Store. A nil logger disables logging.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		records: make([]*model.Student, 0),
		logger:  logger.Named("store"),
	}
}

// Len returns the number of stored students.
func (s *Store) Len() int {
	return len(s.records)
}

// Exists reports whether a student with id is stored.
func (s *Store) Exists(id string) bool {
	return s.find(id) != nil
}

// Add creates a student after collecting a valid mark for every subject.
//
// subjects are the raw tokens from model.SplitSubjects; they are stored as
// given while the marks are keyed by the trimmed token. For each subject the
// prompter is asked until it returns a value ParseMark accepts; rejected
// values are passed back through RejectMark. An error from PromptMark aborts
// the add and nothing is stored.
//
// The returned student is a copy. Returns ErrDuplicateID, wrapped in an
// *OpError, if id is already stored.
func (s *Store) Add(id, name string, subjects []string, prompter MarkPrompter) (*model.Student, error) {
	if s.Exists(id) {
		s.logger.Debug("rejected duplicate id", zap.String("student_id", id))
		return nil, &OpError{Op: "add", Err: ErrDuplicateID}
	}

	marks := model.Marks{}
	for _, token := range subjects {
		subject := strings.TrimSpace(token)
		for {
			input, err := prompter.PromptMark(subject)
			if err != nil {
				return nil, &OpError{Op: "add", Err: err}
			}

			mark, err := model.ParseMark(input)
			if err != nil {
				prompter.RejectMark(subject, err)
				continue
			}
			marks.Set(subject, mark)
			break
		}
	}

	student := model.NewStudent(id, name, subjects, marks)
	s.records = append(s.records, student)

	s.logger.Info("student added",
		zap.String("student_id", id),
		zap.Int("subjects", len(marks)),
		zap.Int("records", len(s.records)))

	return clone(student), nil
}

// Import appends students that are not already stored, in order.
//
// It returns how many were added and the IDs that were skipped because they
// were already present (including duplicates within students).
func (s *Store) Import(students []*model.Student) (added int, skipped []string) {
	for _, st := range students {
		if s.Exists(st.ID) {
			skipped = append(skipped, st.ID)
			continue
		}
		s.records = append(s.records, model.NewStudent(st.ID, st.Name, st.Subjects, st.Marks))
		added++
	}

	s.logger.Info("students imported",
		zap.Int("added", added),
		zap.Strings("skipped", skipped),
		zap.Int("records", len(s.records)))

	return added, skipped
}

// All returns copies of the stored students in insertion order.
//
// Returns ErrNoRecords if the store is empty.
func (s *Store) All() ([]*model.Student, error) {
	if len(s.records) == 0 {
		return nil, &OpError{Op: "list", Err: ErrNoRecords}
	}
	out := make([]*model.Student, len(s.records))
	for i, st := range s.records {
		out[i] = clone(st)
	}
	return out, nil
}

// FindByID returns a copy of the first student with id.
//
// Returns ErrNotFound if no student matches, including on an empty store.
func (s *Store) FindByID(id string) (*model.Student, error) {
	if st := s.find(id); st != nil {
		return clone(st), nil
	}
	return nil, &OpError{Op: "find", Err: ErrNotFound}
}

// TopPerformers returns every student whose average equals the highest
// average, in insertion order, together with that average.
//
// Students without marks have no average and never qualify. Returns
// ErrNoRecords if the store is empty.
func (s *Store) TopPerformers() ([]*model.Student, float64, error) {
	if len(s.records) == 0 {
		return nil, 0, &OpError{Op: "top", Err: ErrNoRecords}
	}

	var (
		best  float64
		found bool
	)
	for _, st := range s.records {
		avg, ok := st.Average()
		if !ok {
			continue
		}
		if !found || avg > best {
			best, found = avg, true
		}
	}

	top := make([]*model.Student, 0)
	if !found {
		return top, 0, nil
	}
	for _, st := range s.records {
		if avg, ok := st.Average(); ok && avg == best {
			top = append(top, clone(st))
		}
	}
	return top, best, nil
}

// Save writes every student to path as a JSON array, overwriting the file.
//
// Returns ErrInvalidFileName without touching the file system if path does
// not end with RecordFileExt.
func (s *Store) Save(ctx context.Context, path string) error {
	if err := ValidateFileName(path); err != nil {
		return &OpError{Op: "save", Path: path, Err: err}
	}

	data, err := encodeRecords(s.records)
	if err != nil {
		return &OpError{Op: "save", Path: path, Err: err}
	}

	if err := ioutils.WriteFile(ctx, path, data); err != nil {
		s.logger.Warn("save failed", zap.String("path", path), zap.Stringer("kind", KindOf(err)), zap.Error(err))
		return &OpError{Op: "save", Path: path, Err: err}
	}

	s.logger.Info("records saved", zap.String("path", path), zap.Int("records", len(s.records)))
	return nil
}

// Load replaces the stored students with the records in the JSON file at path.
//
// The file is fully decoded before the collection is replaced; on any error
// the current students are kept. IDs are not checked for uniqueness.
func (s *Store) Load(ctx context.Context, path string) error {
	if err := ValidateFileName(path); err != nil {
		return &OpError{Op: "load", Path: path, Err: err}
	}

	data, err := ioutils.ReadFile(ctx, path)
	if err != nil {
		s.logger.Warn("load failed", zap.String("path", path), zap.Stringer("kind", KindOf(err)), zap.Error(err))
		return &OpError{Op: "load", Path: path, Err: err}
	}

	records, err := decodeRecords(data)
	if err != nil {
		s.logger.Warn("load failed", zap.String("path", path), zap.Stringer("kind", KindOf(err)), zap.Error(err))
		return &OpError{Op: "load", Path: path, Err: err}
	}

	s.records = records
	s.logger.Info("records loaded", zap.String("path", path), zap.Int("records", len(records)))
	return nil
}

// ValidateFileName checks the name rule shared by Save and Load.
func ValidateFileName(path string) error {
	if !ioutils.HasExtension(path, RecordFileExt) {
		return ErrInvalidFileName
	}
	return nil
}

// clone detaches a stored student from the collection.
func clone(st *model.Student) *model.Student {
	return model.NewStudent(st.ID, st.Name, st.Subjects, st.Marks)
}

func (s *Store) find(id string) *model.Student {
	for _, st := range s.records {
		if st.ID == id {
			return st
		}
	}
	return nil
}

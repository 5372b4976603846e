package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/handiism/student-records/internal/config"
	"github.com/handiism/student-records/internal/report"
	"github.com/handiism/student-records/internal/store"
)

// ErrBatchFailed is returned by RunBatch when at least one step failed.
var ErrBatchFailed = errors.New("one or more steps failed")

// Batch lists the file steps run before (or instead of) the menu.
// Steps run in field order; empty fields are skipped.
type Batch struct {
	Load   string   // records file replacing the collection
	Import string   // XLSX workbook appended to the collection
	Export []string // report targets, format by extension
	Save   string   // records file written last
}

// ParseTargets splits a comma-separated list of export targets,
// dropping blanks.
func ParseTargets(list string) []string {
	var targets []string
	for _, t := range strings.Split(list, ",") {
		if t = strings.TrimSpace(t); t != "" {
			targets = append(targets, t)
		}
	}
	return targets
}

// Empty reports whether the batch has no steps.
func (b Batch) Empty() bool {
	return b.Load == "" && b.Import == "" && len(b.Export) == 0 && b.Save == ""
}

// AutoLoad returns the batch with Load set to the configured data file when
// auto_load is on and no file was named explicitly.
func (b Batch) AutoLoad(settings *config.Settings) Batch {
	if b.Load == "" && settings.AutoLoad {
		b.Load = settings.DataFile
	}
	return b
}

// RunBatch runs every step of b against st, reporting each outcome through
// progress. A failed step is reported and the remaining steps still run.
// Returns ErrBatchFailed if any step failed.
func RunBatch(ctx context.Context, st *store.Store, settings *config.Settings, b Batch, progress func(Event)) error {
	failed := false
	fail := func(e Event) {
		failed = true
		progress(e)
	}

	if b.Load != "" {
		if err := st.Load(ctx, b.Load); err != nil {
			fail(Failure(OpLoad, err))
		} else {
			progress(Loaded(b.Load))
		}
	}

	if b.Import != "" {
		if err := importWorkbook(st, b.Import, progress); err != nil {
			fail(Event{Message: fmt.Sprintf("Error importing %s: %v", b.Import, err), Level: LevelError})
		}
	}

	if len(b.Export) > 0 {
		if err := exportRecords(ctx, st, settings, b.Export); err != nil {
			fail(Failure(OpView, err))
		} else {
			progress(Event{Message: "Records exported to " + strings.Join(b.Export, ", ") + ".", Level: LevelSuccess})
		}
	}

	if b.Save != "" {
		if err := st.Save(ctx, b.Save); err != nil {
			fail(Failure(OpSave, err))
		} else {
			progress(Saved(b.Save))
		}
	}

	if failed {
		return ErrBatchFailed
	}
	return nil
}

func importWorkbook(st *store.Store, path string, progress func(Event)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	students, err := report.ReadWorkbook(f)
	if err != nil {
		return err
	}

	added, skipped := st.Import(students)
	progress(Event{Message: fmt.Sprintf("Imported %d student(s) from %s.", added, path), Level: LevelSuccess})
	if len(skipped) > 0 {
		progress(Event{Message: "Skipped existing ID(s): " + strings.Join(skipped, ", "), Level: LevelWarning})
	}
	return nil
}

func exportRecords(ctx context.Context, st *store.Store, settings *config.Settings, targets []string) error {
	students, err := st.All()
	if err != nil {
		return err
	}
	return report.Export(ctx, students, targets, settings.ExportConcurrency)
}

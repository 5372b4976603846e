// Package store holds the in-memory student records and their JSON
// persistence.
//
// # Store
//
// The Store keeps students in insertion order and scans them linearly:
//
//	st := store.New(logger)
//
//	_, err := st.Add("S1", "Ann", model.SplitSubjects("Math,Eng"), prompter)
//	if errors.Is(err, store.ErrDuplicateID) {
//	    // report and carry on
//	}
//
//	top, avg, err := st.TopPerformers()
//
// # Persistence
//
// Save writes the whole collection as a JSON array; Load replaces it:
//
//	err := st.Save(ctx, "students.json")
//	err = st.Load(ctx, "students.json")
//
// Load parses every record before touching the live collection, so a
// malformed file leaves the previous records in place.
//
// # Errors
//
// Every failure is returned as an *OpError wrapping one of the package
// sentinels or an underlying I/O error. KindOf classifies them for display:
//
//	switch store.KindOf(err) {
//	case store.KindValidation, store.KindNotFound:
//	    // operator mistake
//	case store.KindIO:
//	    // file problem
//	}
package store

package domain

// PartFailure records one part whose artifact could not be compiled.
type PartFailure struct {
	Name string
	Err  error
}

// BuildReport summarizes one artifact build invocation. Failures are
// collected here instead of aborting the run: a broken part leaves its
// previous artifact untouched while the rest of the project builds.
type BuildReport struct {
	Compiled []string
	UpToDate []string
	Failed   []PartFailure
}

// HasFailures returns true if any part failed to compile.
func (r *BuildReport) HasFailures() bool {
	return len(r.Failed) > 0
}

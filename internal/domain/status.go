package domain

// Status is a read-only snapshot of the current export run, exposed to
// status displays after every step.
type Status struct {
	// Generating is true while an export run is active. A new export
	// request is refused while it is set.
	Generating bool

	// Progress is a percentage in [0,100], monotonically non-decreasing
	// within one export run.
	Progress int

	// Message describes the current step in human-readable form.
	Message string
}

// Idle reports whether no export is running and no status is displayed.
func (s Status) Idle() bool {
	return !s.Generating && s.Progress == 0 && s.Message == ""
}

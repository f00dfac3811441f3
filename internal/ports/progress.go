package ports

// ProgressFunc receives progress updates during an export run.
// percent is in [0,100] and non-decreasing within one run; message
// describes the current step. Updates arrive in frame-index order
// because frames are processed sequentially.
type ProgressFunc func(percent int, message string)

package ffmpeg

// RetryAction identifies which fix was applied (or none).
type RetryAction int

const (
	RetryNone        RetryAction = iota
	RetryForceFormat             // Force the input format with -f.
)

const maxAttempts = 2

// RetryState tracks the fallback applied across ffmpeg attempts for one job.
type RetryState struct {
	Attempt     int
	MaxAttempts int

	// Fallback is the input format forced when detection fails. Empty
	// disables the retry.
	Fallback string
}

// NewRetryState returns a RetryState that may force fallback once.
func NewRetryState(fallback string) *RetryState {
	return &RetryState{MaxAttempts: maxAttempts, Fallback: fallback}
}

// Advance inspects stderr from a failed run, applies the first applicable
// fix to job, and returns the action taken. Returns RetryNone when no fix
// applies or the attempt limit is reached.
func (s *RetryState) Advance(job *Job, stderr string) RetryAction {
	s.Attempt++
	if s.Attempt >= s.MaxAttempts {
		return RetryNone
	}
	if s.Fallback != "" && job.InputFormat == "" && MatchUndetectedInput(stderr) {
		job.InputFormat = s.Fallback
		return RetryForceFormat
	}
	return RetryNone
}

package pipeline

import "errors"

// Fatal setup errors. Run returns them before any file is processed.
var (
	ErrInputRoot  = errors.New("input root unusable")
	ErrOutputRoot = errors.New("cannot create output root")
	ErrAMRHeader  = errors.New("cannot load AMR header")
)

// ErrUnreadable marks an input that could not be read for classification.
// Such files are skipped, never fatal.
var ErrUnreadable = errors.New("unreadable input")

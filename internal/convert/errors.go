package convert

import (
	"fmt"
	"path/filepath"

	"github.com/backmassage/audconvert/internal/naming"
)

// StageError reports which artifact a pipeline was producing when it failed.
type StageError struct {
	Stage naming.Stage
	Input string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: producing %s: %v", filepath.Base(e.Input), e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage naming.Stage, input string, err error) error {
	return &StageError{Stage: stage, Input: input, Err: err}
}

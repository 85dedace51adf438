// Package pipeline is the batch orchestrator: it creates the timestamped
// output root, discovers input files, classifies each one exactly once,
// dispatches it to the matching conversion pipeline, and reports a summary.
//
// Fatal setup problems (missing input root, output root not creatable) are
// returned from [Run] before any file is touched. Everything that goes
// wrong with a single file is recorded in [RunStats] and never stops the
// batch.
package pipeline

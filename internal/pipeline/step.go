package pipeline

import (
	"context"
	"fmt"
	"time"
)

// StepName identifies a build step.
type StepName string

// Build steps in execution order.
const (
	StepClean     StepName = "clean"
	StepBundle    StepName = "bundle"
	StepConfigure StepName = "configure"
	StepMigrate   StepName = "migrate"
	StepSpecs     StepName = "specs"
	StepCache     StepName = "cache"
	StepAssets    StepName = "assets"
	StepArchive   StepName = "archive"
)

// step is one entry of the build plan.
type step struct {
	name    StepName
	enabled bool
	run     func(ctx context.Context, outcome *Outcome) error
}

// StepRecord describes how a step went.
type StepRecord struct {
	Name     StepName
	Skipped  bool
	Duration time.Duration
	Err      error
}

// StepError reports the step that stopped the build.
type StepError struct {
	Step StepName
	Err  error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

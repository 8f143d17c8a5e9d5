package pipeline

import (
	"log/slog"

	"github.com/nao1215/ilmt-transform/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence and all read the same loaded export.
type Step interface {
	// Do executes the pipeline step.
	// The export is shared by all steps and must not be modified.
	Do(export *model.LicenseExport) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline runs the output steps of one transformation in order.
// It stops at the first failing step; files written by earlier steps stay
// on disk.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// completed holds the names of the steps that succeeded in the last run.
	completed []string

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// Execute runs all pipeline steps in sequence and returns the first error.
func (p *Pipeline) Execute(export *model.LicenseExport) error {
	p.completed = p.completed[:0]

	for _, step := range p.steps {
		p.logger.Debug("executing step", "step", step.Name())

		if err := step.Do(export); err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"error", err,
			)
			return err
		}

		p.logger.Debug("step completed", "step", step.Name())
		p.completed = append(p.completed, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Completed returns the names of the steps that succeeded in the last Execute.
func (p *Pipeline) Completed() []string {
	return append([]string(nil), p.completed...)
}

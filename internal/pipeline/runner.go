package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"sermonpipe/internal/logging"
	"sermonpipe/internal/pipelineconfig"
	"sermonpipe/internal/services"
)

// RunOptions selects the kind and configuration for one run.
type RunOptions struct {
	Kind       Kind
	ConfigPath string
	SchemaPath string
	// Date, when set, bypasses upload date lookup.
	Date string
	// Retrim discards trimmed files left by earlier runs.
	Retrim bool
}

// Runner loads configuration, assembles a plan and executes it.
type Runner struct {
	Assembler *Assembler
	Dates     DateSource
	Observer  Observer
	Logger    *slog.Logger
	Now       func() time.Time
}

// Prepare loads and validates the configuration, resolves the date and
// assembles the plan without running it.
func (r *Runner) Prepare(ctx context.Context, opts RunOptions) (Plan, error) {
	configPath := opts.ConfigPath
	if strings.TrimSpace(configPath) == "" {
		configPath = pipelineconfig.DefaultConfigPath
	}
	cfg, err := pipelineconfig.Load(configPath, opts.SchemaPath)
	if err != nil {
		return Plan{}, err
	}
	if err := cfg.ValidateFor(string(opts.Kind)); err != nil {
		return Plan{}, err
	}

	date := strings.TrimSpace(opts.Date)
	if date == "" {
		date = ResolveDate(ctx, r.Dates, cfg, r.Now, r.Logger)
	}
	plan, err := r.Assembler.Build(opts.Kind, cfg, date)
	if err != nil {
		return Plan{}, err
	}
	if opts.Retrim {
		plan.forceRetrim()
	}
	return plan, nil
}

// Run prepares and executes the plan for opts.Kind.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (Plan, *Record, error) {
	plan, err := r.Prepare(ctx, opts)
	if err != nil {
		return Plan{}, nil, err
	}
	rec, err := r.Execute(ctx, plan)
	return plan, rec, err
}

// Execute runs every step of plan against a fresh record. The first step
// error is returned as-is together with the partial record.
func (r *Runner) Execute(ctx context.Context, plan Plan) (*Record, error) {
	ctx = services.WithKind(ctx, string(plan.Kind))
	logger := logging.NewComponentLogger(r.Logger, "runner")
	rec := NewRecord()
	start := time.Now()

	logging.WithContext(ctx, logger).Info("pipeline started",
		logging.String("stream_id", plan.StreamID),
		logging.String("date", plan.Date),
		logging.Int("steps", len(plan.Steps)),
	)

	for i, desc := range plan.Steps {
		stepCtx := services.WithStep(ctx, desc.Label)
		stepLogger := logging.WithContext(stepCtx, logger)
		if r.Observer != nil {
			r.Observer.StepStarted(desc, i)
		}
		stepLogger.Info("step started", logging.Int("index", i+1))
		stepStart := time.Now()
		err := desc.Step.Run(stepCtx, rec)
		elapsed := time.Since(stepStart)
		if r.Observer != nil {
			r.Observer.StepFinished(desc, i, elapsed, err)
		}
		if err != nil {
			return rec, err
		}
		stepLogger.Info("step completed", logging.Duration("duration", elapsed))
	}

	logging.WithContext(ctx, logger).Info("pipeline completed",
		logging.String("output", rec.FinalOutput),
		logging.Duration("total", time.Since(start)),
	)
	return rec, nil
}

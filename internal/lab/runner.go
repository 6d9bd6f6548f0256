package lab

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vvka-141/imdblab/internal/chart"
	"github.com/vvka-141/imdblab/internal/db/manager"
	"github.com/vvka-141/imdblab/internal/frame"
	"github.com/vvka-141/imdblab/internal/loader"
	"github.com/vvka-141/imdblab/internal/query"
	"github.com/vvka-141/imdblab/internal/tui"
	"github.com/vvka-141/imdblab/pkg/imdblab"
)

// StepResult records the outcome of one executed step.
type StepResult struct {
	Step     Step
	Load     *loader.Report
	Result   *imdblab.ResultSet
	Duration time.Duration
}

// Report describes a lab run.
type Report struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Duration  time.Duration
	Steps     []StepResult
	Loads     []*loader.Report
	Frame     *frame.Frame
	Scatter   chart.Scatter
}

// Final returns the result of the last query step, or nil if none ran.
func (r *Report) Final() *imdblab.ResultSet {
	for i := len(r.Steps) - 1; i >= 0; i-- {
		if r.Steps[i].Result != nil {
			return r.Steps[i].Result
		}
	}
	return nil
}

// Runner executes the lab plan against one database file.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type Runner struct {
	config    imdblab.LabConfig
	connector imdblab.Connector
	logger    imdblab.Logger
	manager   *manager.Manager
	loader    *loader.Loader
	executor  *query.Executor
	printer   *Printer
	tracker   tui.Tracker
	renderer  chart.Renderer
	plan      []Step
}

// Option customizes a Runner.
type Option func(*Runner)

// WithOutput sends the transcript to w instead of stdout.
func WithOutput(w io.Writer, styled bool) Option {
	return func(r *Runner) {
		r.printer = NewPrinter(w, styled)
	}
}

// WithTracker overrides how load progress is reported.
func WithTracker(t tui.Tracker) Option {
	return func(r *Runner) {
		r.tracker = t
	}
}

// WithRenderer overrides the chart collaborator.
func WithRenderer(renderer chart.Renderer) Option {
	return func(r *Runner) {
		r.renderer = renderer
	}
}

// WithPlan replaces the built-in plan. The last step must be a query whose
// result has the FrameColumns shape.
func WithPlan(plan []Step) Option {
	return func(r *Runner) {
		r.plan = plan
	}
}

// New creates a Runner. Panics if connector or logger is nil.
//
// Unless overridden, the transcript goes to stdout, load progress uses a
// plain tracker and the chart is drawn as text when config.Chart is set.
func New(config imdblab.LabConfig, connector imdblab.Connector, logger imdblab.Logger, opts ...Option) *Runner {
	if connector == nil {
		panic("connector cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	r := &Runner{
		config:    config,
		connector: connector,
		logger:    logger,
		manager:   manager.New(connector, logger),
		loader:    loader.New(connector, logger),
		executor:  query.New(connector, logger),
		plan:      Plan(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.printer == nil {
		r.printer = NewPrinter(os.Stdout, false)
	}
	if r.tracker == nil {
		r.tracker = tui.NewPlainTracker(r.printer.out)
	}
	if r.renderer == nil {
		if config.Chart {
			r.renderer = chart.NewTextRenderer(r.printer.out,
				chart.WithSize(config.ChartWidth, config.ChartHeight),
				chart.WithStyle(r.printer.styled))
		} else {
			r.renderer = chart.NopRenderer{}
		}
	}
	return r
}

// Run executes every step in order and hands the final result to the chart
// collaborator. It stops at the first failing step; the returned Report
// then holds the steps completed so far.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	runID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}
	report := &Report{RunID: runID, StartedAt: time.Now()}
	defer func() { report.Duration = time.Since(report.StartedAt) }()

	r.logger.Verbose("Starting lab run %s", runID)
	if err := r.createDatabase(ctx); err != nil {
		return report, err
	}

	for i, step := range r.plan {
		r.printer.Step(i+1, len(r.plan), step)
		started := time.Now()

		result, err := r.execute(ctx, step)
		if err != nil {
			return report, fmt.Errorf("step %d (%s) failed: %w", i+1, step.Name, err)
		}
		result.Duration = time.Since(started)
		report.Steps = append(report.Steps, result)
		if result.Load != nil {
			report.Loads = append(report.Loads, result.Load)
		}
		r.logger.Verbose("Step %d (%s) completed in %s", i+1, step.Name, result.Duration)
	}

	if err := r.present(report); err != nil {
		return report, err
	}

	report.Duration = time.Since(report.StartedAt)
	r.printer.Summary(report)
	return report, nil
}

// createDatabase opens the database file once so it exists before any step.
func (r *Runner) createDatabase(ctx context.Context) error {
	handle, err := r.connector.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if err := handle.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	r.logger.Info("Created database: %s", r.config.DatabasePath)
	return nil
}

func (r *Runner) execute(ctx context.Context, step Step) (StepResult, error) {
	result := StepResult{Step: step}

	switch step.Kind {
	case StepSchema:
		r.printer.Statement(step.SQL, nil)
		err := r.tracker.Track(ctx, "Executing "+step.Name, func() (string, error) {
			if err := r.manager.Exec(ctx, step.SQL); err != nil {
				return "", err
			}
			return "Committed " + step.Name, nil
		})
		if err != nil {
			return result, err
		}

	case StepLoad:
		path := r.sourcePath(step.Dataset)
		message := fmt.Sprintf("Loading %s into %s", path, step.Dataset.Table())
		err := r.tracker.Track(ctx, message, func() (string, error) {
			load, err := r.loader.Load(ctx, step.Dataset, path)
			if err != nil {
				return "", err
			}
			result.Load = load
			return fmt.Sprintf("Loaded %d of %d row(s) into %s", load.Inserted, load.Read, load.Dataset.Table()), nil
		})
		if err != nil {
			return result, err
		}
		r.printer.Load(result.Load)

	case StepQuery:
		r.printer.Statement(step.SQL, step.Params)
		err := r.tracker.Track(ctx, "Running "+step.Name, func() (string, error) {
			rs, err := r.executor.Query(ctx, step.SQL, step.Params...)
			if err != nil {
				return "", err
			}
			result.Result = rs
			return fmt.Sprintf("%s returned %d row(s)", step.Name, rs.Len()), nil
		})
		if err != nil {
			return result, err
		}
		if err := r.printer.Result(result.Result); err != nil {
			return result, err
		}

	default:
		return result, fmt.Errorf("unsupported step kind %v", step.Kind)
	}

	return result, nil
}

func (r *Runner) sourcePath(d loader.Dataset) string {
	switch d {
	case loader.DatasetRatings:
		return r.config.RatingsCSV
	case loader.DatasetMovies:
		return r.config.MoviesCSV
	default:
		return d.FileName()
	}
}

// present turns the final result into a frame, prints its head and hands
// the scatter plot to the renderer.
func (r *Runner) present(report *Report) error {
	final := report.Final()
	if final == nil {
		return fmt.Errorf("lab plan produced no query result")
	}

	f, err := frame.New(FrameColumns, final.Rows)
	if err != nil {
		return fmt.Errorf("failed to build frame from final result: %w", err)
	}
	report.Frame = f

	if err := r.printer.Frame(f, r.config.PreviewRows); err != nil {
		return err
	}

	scatter, err := BuildScatter(f)
	if err != nil {
		return err
	}
	report.Scatter = scatter

	fmt.Fprintln(r.printer.out)
	if err := r.renderer.Render(scatter); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// BuildScatter plots average rating against total ratings, one point per
// frame row, labelled by title.
func BuildScatter(f *frame.Frame) (chart.Scatter, error) {
	xs, err := f.Floats("total_ratings")
	if err != nil {
		return chart.Scatter{}, err
	}
	ys, err := f.Floats("avg_rating")
	if err != nil {
		return chart.Scatter{}, err
	}
	titles, err := f.Strings("title")
	if err != nil {
		return chart.Scatter{}, err
	}

	points := make([]chart.Point, f.Len())
	for i := range points {
		points[i] = chart.Point{X: xs[i], Y: ys[i], Label: titles[i]}
	}
	return chart.Scatter{
		Title:  ChartTitle,
		XLabel: ChartXLabel,
		YLabel: ChartYLabel,
		Points: points,
	}, nil
}

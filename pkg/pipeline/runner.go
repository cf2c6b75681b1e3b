package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	recordio "github.com/fortrabbit/craft-plugin-list/pkg/io"
	"github.com/fortrabbit/craft-plugin-list/pkg/observability"
	"github.com/fortrabbit/craft-plugin-list/pkg/plugins"
	"github.com/fortrabbit/craft-plugin-list/pkg/render"
)

// Registry lists packages and fetches their details.
type Registry interface {
	ListPackageNames(ctx context.Context, packageType string) ([]string, error)
	plugins.Registry
}

// Runner executes the pipeline against one registry.
//
// The Runner keeps no state between runs; multiple goroutines can use the
// same Runner with different options.
type Runner struct {
	Registry Registry
	Logger   *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(reg Registry, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Registry: reg, Logger: logger}
}

// Execute runs the list, build and sort stages.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{}

	// Stage 1: List
	names, err := r.List(ctx, opts.PackageType)
	if err != nil {
		return nil, err
	}
	result.Stats.Listed = len(names)

	// Stage 2: Build
	buildStart := time.Now()
	records, considered, err := r.Build(ctx, names, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Considered = considered
	result.Stats.Accepted = len(records)

	r.Logger.Info("built records",
		"accepted", len(records),
		"considered", considered,
		"duration", result.Stats.BuildTime.Round(time.Millisecond))

	// Stage 3: Sort
	sortStart := time.Now()
	sorted, err := plugins.Sort(records, opts.OrderBy, opts.Order, opts.Compare)
	if err != nil {
		return nil, fmt.Errorf("sort: %w", err)
	}
	result.Records = sorted
	result.Stats.SortTime = time.Since(sortStart)

	r.Logger.Debug("sorted records", "by", opts.OrderBy, "order", opts.Order)

	return result, nil
}

// List fetches the candidate names for packageType.
func (r *Runner) List(ctx context.Context, packageType string) ([]string, error) {
	hooks := observability.Pipeline()
	hooks.OnListStart(ctx, packageType)

	start := time.Now()
	names, err := r.Registry.ListPackageNames(ctx, packageType)
	duration := time.Since(start)
	hooks.OnListComplete(ctx, packageType, len(names), duration, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("listed packages",
		"type", packageType,
		"count", len(names),
		"duration", duration.Round(time.Millisecond))
	return names, nil
}

// Build turns names into records and returns them with the number of
// candidates considered.
func (r *Runner) Build(ctx context.Context, names []string, opts Options) ([]plugins.PackageRecord, int, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Limit)

	considered := 0
	b := &plugins.Builder{
		Registry:    r.Registry,
		Limit:       opts.Limit,
		Concurrency: opts.Concurrency,
		Observer: func(e plugins.Event) {
			considered = e.Considered
			if e.Reason != plugins.Accepted {
				r.Logger.Debug("skipped package", "name", e.Name, "reason", e.Reason)
			}
			if opts.Observer != nil {
				opts.Observer(e)
			}
		},
	}

	start := time.Now()
	records, err := b.Build(ctx, names)
	hooks.OnBuildComplete(ctx, considered, len(records), time.Since(start), err)
	if err != nil {
		return nil, considered, err
	}
	return records, considered, nil
}

// Render writes records to the JSON file at output, or draws them as a
// table on w when output is empty.
func (r *Runner) Render(ctx context.Context, records []plugins.PackageRecord, output string, w io.Writer) error {
	mode := ModeTable
	if output != "" {
		mode = ModeFile
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, mode)

	start := time.Now()
	var err error
	if mode == ModeFile {
		err = recordio.ExportJSON(records, output)
	} else {
		err = render.WriteTable(w, records)
	}
	hooks.OnRenderComplete(ctx, mode, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("render %s: %w", mode, err)
	}

	r.Logger.Debug("rendered records", "mode", mode, "count", len(records))
	return nil
}

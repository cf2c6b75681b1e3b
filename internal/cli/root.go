package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fortrabbit/craft-plugin-list/pkg/buildinfo"
	pkgerrors "github.com/fortrabbit/craft-plugin-list/pkg/errors"
	"github.com/fortrabbit/craft-plugin-list/pkg/pipeline"
	"github.com/fortrabbit/craft-plugin-list/pkg/plugins"
)

// msgFailure is printed for every failure that is not an input mistake.
const msgFailure = "Something went wrong"

// ReportedError wraps an error whose message was already shown to the user.
// main exits with status 1 without printing it again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r *ReportedError
	return errors.As(err, &r)
}

// report prints the user-facing line for err. Validation failures print
// their own message; anything else prints msgFailure and logs the cause.
// Cancellation is passed through untouched.
func (c *CLI) report(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if pkgerrors.IsValidation(err) {
		printFailure(c.Stdout, pkgerrors.UserMessage(err))
	} else {
		loggerFromContext(ctx).Debug("run failed", "err", err)
		printFailure(c.Stdout, msgFailure)
	}
	return &ReportedError{Err: err}
}

// runList validates the options, runs the pipeline and shows the result.
func (c *CLI) runList(ctx context.Context, f *listFlags) error {
	opts, err := plugins.Resolve(f.rawOptions())
	if err != nil {
		return c.report(ctx, err)
	}
	if err := validateFlags(f); err != nil {
		return c.report(ctx, err)
	}

	ctx, logger := c.withRun(ctx)
	logger.Debug("starting", "version", buildinfo.Version, "commit", buildinfo.Commit)
	logger.Debug("resolved options",
		"limit", opts.Limit,
		"orderBy", opts.OrderBy,
		"order", opts.Order,
		"output", opts.Output,
		"registry", f.baseURL)

	runner, store, err := c.newRunner(ctx, f, logger)
	if err != nil {
		return c.report(ctx, pkgerrors.Wrap(pkgerrors.ErrCodeTransport, err, "open cache"))
	}
	defer store.Close()

	popts := pipeline.FromResolved(opts)
	popts.PackageType = f.packageType
	popts.Compare = f.compare()
	popts.Concurrency = f.concurrency

	bar := newProgressBar(ctx, c.Stderr, opts.Limit)
	popts.Observer = bar.Observe

	p := newProgress(logger)
	bar.Start()
	result, err := runner.Execute(ctx, popts)
	bar.Finish()
	if err != nil {
		return c.report(ctx, err)
	}
	p.done(fmt.Sprintf("Listed %d plugins", len(result.Records)))

	if opts.Output == "" && f.interactive {
		if err := c.Browse(ctx, result.Records); err != nil {
			return c.report(ctx, err)
		}
		return nil
	}

	if err := runner.Render(ctx, result.Records, opts.Output, c.Stdout); err != nil {
		return c.report(ctx, err)
	}
	if opts.Output != "" {
		printMessage(c.Stdout, "Data saved to "+opts.Output)
	}
	return nil
}

// validateFlags checks the flags beyond the four listing options.
func validateFlags(f *listFlags) error {
	if f.concurrency < 1 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "Invalid concurrency option")
	}
	if f.retries < 1 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "Invalid retries option")
	}
	if f.packageType == "" {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "Invalid type option")
	}
	if err := pkgerrors.ValidateURL(f.baseURL); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "Invalid base-url option")
	}
	if f.redisURL != "" && f.cacheTTL <= 0 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "Invalid redis-url option. Caching needs --cache-ttl")
	}
	return nil
}

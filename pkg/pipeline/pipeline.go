// Package pipeline runs the plugin listing end to end.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. List: Fetch the candidate names of one package type from the registry
//  2. Build: Fetch details candidate by candidate until the limit is reached
//  3. Sort: Order the records by the requested field and direction
//  4. Render: Write a JSON file or draw a table
//
// List and Build talk to the registry; any failure there aborts the run
// without partial output. Stages report to [observability.Pipeline] hooks.
//
// # Usage
//
//	runner := pipeline.NewRunner(packagist.NewClient(packagist.Options{}), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Limit:   10,
//	    OrderBy: plugins.OrderByFavers,
//	    Order:   plugins.OrderDesc,
//	})
//	if err != nil {
//	    return err
//	}
//	err = runner.Render(ctx, result.Records, "", os.Stdout)
package pipeline

import (
	"time"

	"github.com/fortrabbit/craft-plugin-list/pkg/errors"
	"github.com/fortrabbit/craft-plugin-list/pkg/plugins"
)

// Render modes reported to hooks.
const (
	ModeFile  = "file"
	ModeTable = "table"
)

// Options configures one pipeline run.
type Options struct {
	// PackageType is the registry type to list (default plugins.PackageType).
	PackageType string

	Limit   int
	OrderBy plugins.OrderBy
	Order   plugins.Order
	Compare plugins.Compare

	// Concurrency is the detail prefetch window (default 1).
	Concurrency int

	// Observer receives one event per candidate considered.
	Observer plugins.Observer
}

// FromResolved fills the sort and limit fields from validated options.
func FromResolved(o plugins.Options) Options {
	return Options{
		Limit:   o.Limit,
		OrderBy: o.OrderBy,
		Order:   o.Order,
	}
}

// ValidateAndSetDefaults fills zero values with defaults and rejects values
// the stages cannot run with.
func (o *Options) ValidateAndSetDefaults() error {
	if o.PackageType == "" {
		o.PackageType = plugins.PackageType
	}
	if o.Limit == 0 {
		o.Limit = plugins.DefaultLimit
	}
	if o.OrderBy == "" {
		o.OrderBy = plugins.DefaultOrderBy
	}
	if o.Order == "" {
		o.Order = plugins.DefaultOrder
	}
	if o.Concurrency < 1 {
		o.Concurrency = 1
	}

	if o.Limit < 1 {
		return errors.New(errors.ErrCodeInvalidLimit, plugins.MsgInvalidLimit)
	}
	if _, ok := plugins.ParseOrderBy(string(o.OrderBy)); !ok {
		return errors.New(errors.ErrCodeInvalidOrderBy, plugins.MsgInvalidOrderBy)
	}
	if _, ok := plugins.ParseOrder(string(o.Order)); !ok {
		return errors.New(errors.ErrCodeInvalidOrder, plugins.MsgInvalidOrder)
	}
	o.Order, _ = plugins.ParseOrder(string(o.Order))
	return nil
}

// Result is the outcome of [Runner.Execute].
type Result struct {
	Records []plugins.PackageRecord
	Stats   Stats
}

// Stats describes a run.
type Stats struct {
	Listed     int // candidate names returned by the registry
	Considered int // candidates whose details were inspected
	Accepted   int // records built

	ListTime  time.Duration
	BuildTime time.Duration
	SortTime  time.Duration
}

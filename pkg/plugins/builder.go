package plugins

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fortrabbit/craft-plugin-list/pkg/integrations/packagist"
)

// PackageType is the Packagist type of Craft CMS plugins.
const PackageType = "craft-plugin"

// TestFrameworks lists known PHP testing libraries in priority order.
var TestFrameworks = []string{
	"phpunit/phpunit",
	"atoum/atoum",
	"behat/behat",
	"codeception/codeception",
	"kahlan/kahlan",
	"laravel/dusk",
	"lens/lens",
	"phpspec/phpspec",
	"peridot-php/peridot",
	"simpletest/simpletest",
	"datasift/storyplayer",
}

// Registry fetches package details.
type Registry interface {
	FetchPackage(ctx context.Context, name string) (*packagist.Package, error)
}

// SkipReason tells why a candidate did not become a record.
type SkipReason int

const (
	Accepted SkipReason = iota
	SkipAbandoned
	SkipNoHandle
)

func (r SkipReason) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case SkipAbandoned:
		return "abandoned"
	case SkipNoHandle:
		return "no handle"
	}
	return "unknown"
}

// Event is emitted once for every candidate considered.
type Event struct {
	Name       string
	Reason     SkipReason
	Considered int // candidates considered so far, including this one
	Accepted   int // records accepted so far
	Limit      int
}

// Observer receives build progress. It is called from the goroutine that
// called [Builder.Build].
type Observer func(Event)

// Builder turns candidate names into records.
type Builder struct {
	Registry Registry
	Limit    int

	// Concurrency is the number of details fetched ahead in parallel.
	// Values below 2 fetch strictly one at a time. Records are accepted in
	// listing order either way.
	Concurrency int

	Observer Observer
}

// Build walks names in order until Limit records were accepted or names run
// out. The first fetch error aborts the build and no records are returned.
func (b *Builder) Build(ctx context.Context, names []string) ([]PackageRecord, error) {
	limit := max(b.Limit, 1)
	window := max(b.Concurrency, 1)

	records := make([]PackageRecord, 0, min(limit, len(names)))
	considered := 0

	for start := 0; start < len(names) && len(records) < limit; start += window {
		batch := names[start:min(start+window, len(names))]
		details, errs := b.fetch(ctx, batch)

		for i, name := range batch {
			if len(records) >= limit {
				break
			}
			if errs[i] != nil {
				return nil, errs[i]
			}
			considered++

			rec, reason := NewRecordFromPackage(details[i])
			if reason == Accepted {
				records = append(records, rec)
			}
			if b.Observer != nil {
				b.Observer(Event{
					Name:       name,
					Reason:     reason,
					Considered: considered,
					Accepted:   len(records),
					Limit:      limit,
				})
			}
		}
	}
	return records, nil
}

// fetch loads every name of batch. Errors are kept per name so that a
// failure after the limit was reached never aborts the build.
func (b *Builder) fetch(ctx context.Context, batch []string) ([]*packagist.Package, []error) {
	details := make([]*packagist.Package, len(batch))
	errs := make([]error, len(batch))

	if len(batch) == 1 {
		details[0], errs[0] = b.Registry.FetchPackage(ctx, batch[0])
		return details, errs
	}

	var g errgroup.Group
	g.SetLimit(len(batch))
	for i, name := range batch {
		i, name := i, name
		g.Go(func() error {
			details[i], errs[i] = b.Registry.FetchPackage(ctx, name)
			return nil
		})
	}
	_ = g.Wait()
	return details, errs
}

// NewRecordFromPackage applies the eligibility rules to pkg and builds its
// record. The record is only meaningful when the reason is Accepted.
func NewRecordFromPackage(pkg *packagist.Package) (PackageRecord, SkipReason) {
	latest, published, ok := LatestVersion(pkg.Versions)

	if pkg.Abandoned {
		return PackageRecord{}, SkipAbandoned
	}
	if !ok || latest.Handle == nil {
		return PackageRecord{}, SkipNoHandle
	}

	var testFramework *string
	if tf, ok := TestFramework(latest.RequireDev); ok {
		testFramework = &tf
	}

	return NewRecord(RecordFields{
		Name:             pkg.Name,
		Description:      pkg.Description,
		Handle:           *latest.Handle,
		RepositoryURL:    pkg.Repository,
		TestFramework:    testFramework,
		Version:          latest.Version,
		MonthlyDownloads: pkg.MonthlyDownloads,
		DependentsCount:  pkg.Dependents,
		FaversCount:      pkg.Favers,
		UpdatedAt:        published,
	}), Accepted
}

// LatestVersion returns the version with the greatest publish time and that
// time. The first version wins ties. Versions whose time cannot be parsed
// count as the zero time. ok is false when versions is empty.
func LatestVersion(versions []packagist.Version) (latest packagist.Version, published time.Time, ok bool) {
	for i, v := range versions {
		t := ParseTime(v.Time)
		if i == 0 || t.After(published) {
			latest, published = v, t
		}
	}
	return latest, published, len(versions) > 0
}

// TestFramework returns the first require-dev entry that is one of
// [TestFrameworks].
func TestFramework(requireDev []string) (string, bool) {
	for _, dep := range requireDev {
		if slices.Contains(TestFrameworks, dep) {
			return dep, true
		}
	}
	return "", false
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a registry publish time. It returns the zero time for
// empty or unknown formats.
func ParseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

package plugins

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Compare selects how the counter fields are compared.
type Compare int

const (
	// CompareLexical compares the decimal string of every counter, so 3000
	// sorts before 500. This is the default.
	CompareLexical Compare = iota

	// CompareNumeric compares downloads, dependents and favers as numbers.
	CompareNumeric
)

type accessor struct {
	text   func(PackageRecord) string
	number func(PackageRecord) int64 // nil for text-only fields
}

func counter(f func(PackageRecord) int) accessor {
	return accessor{
		text:   func(r PackageRecord) string { return strconv.Itoa(f(r)) },
		number: func(r PackageRecord) int64 { return int64(f(r)) },
	}
}

var accessors = map[OrderBy]accessor{
	OrderByDownloads:  counter(PackageRecord.MonthlyDownloads),
	OrderByFavers:     counter(PackageRecord.FaversCount),
	OrderByDependents: counter(PackageRecord.DependentsCount),
	OrderByTestLibrary: {
		text: func(r PackageRecord) string {
			tf, _ := r.TestFramework()
			return tf
		},
	},
	OrderByUpdated: {
		text:   func(r PackageRecord) string { return strconv.FormatInt(r.updatedAt.Unix(), 10) },
		number: func(r PackageRecord) int64 { return r.updatedAt.Unix() },
	},
}

// Comparator returns the comparison function for by and order.
func Comparator(by OrderBy, order Order, mode Compare) (func(a, b PackageRecord) int, error) {
	acc, ok := accessors[by]
	if !ok {
		return nil, fmt.Errorf("unknown order by %q", by)
	}

	numeric := acc.number != nil && (by == OrderByUpdated || mode == CompareNumeric)
	base := func(a, b PackageRecord) int {
		if numeric {
			return cmp.Compare(acc.number(a), acc.number(b))
		}
		return strings.Compare(acc.text(a), acc.text(b))
	}

	switch order {
	case OrderAsc:
		return base, nil
	case OrderDesc:
		return func(a, b PackageRecord) int { return -base(a, b) }, nil
	}
	return nil, fmt.Errorf("unknown order %q", order)
}

// Sort returns a sorted copy of records. Equal records keep their relative
// order.
func Sort(records []PackageRecord, by OrderBy, order Order, mode Compare) ([]PackageRecord, error) {
	compare, err := Comparator(by, order, mode)
	if err != nil {
		return nil, err
	}
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, compare)
	return sorted, nil
}

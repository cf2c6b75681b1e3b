package plugins

import (
	"math"
	"strconv"
	"strings"

	"github.com/fortrabbit/craft-plugin-list/pkg/errors"
)

// OrderBy names the field records are sorted by.
type OrderBy string

// Sort keys accepted by --orderBy.
const (
	OrderByDownloads   OrderBy = "downloads"
	OrderByFavers      OrderBy = "favers"
	OrderByDependents  OrderBy = "dependents"
	OrderByTestLibrary OrderBy = "testLibrary"
	OrderByUpdated     OrderBy = "updated"
)

// OrderByValues lists every valid OrderBy in documentation order.
var OrderByValues = []OrderBy{
	OrderByDownloads,
	OrderByFavers,
	OrderByDependents,
	OrderByTestLibrary,
	OrderByUpdated,
}

// Order is the sort direction.
type Order string

// Sort directions accepted by --order.
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Defaults used when an option is not given.
const (
	DefaultLimit   = 2
	DefaultOrderBy = OrderByDownloads
	DefaultOrder   = OrderDesc
)

// User-facing validation messages.
const (
	MsgInvalidLimit   = "Invalid limit option"
	MsgInvalidOrderBy = "Invalid orderBy option"
	MsgInvalidOrder   = "Invalid order option"
	MsgInvalidOutput  = "Invalid output option. Valid output ends with .json"
)

// maxLimit caps absurd limits so that capacity hints stay sane.
const maxLimit = math.MaxInt32

// RawOptions are the option values as typed by the user.
type RawOptions struct {
	Limit   string
	OrderBy string
	Order   string
	Output  string
}

// DefaultRawOptions returns the raw form of the documented defaults.
func DefaultRawOptions() RawOptions {
	return RawOptions{
		Limit:   strconv.Itoa(DefaultLimit),
		OrderBy: string(DefaultOrderBy),
		Order:   string(DefaultOrder),
	}
}

// Options are validated options.
type Options struct {
	Limit   int
	OrderBy OrderBy
	Order   Order
	Output  string // empty for table output
}

// Resolve validates raw in a fixed order and stops at the first failure.
// The returned error's user message is the exact text to print.
//
// A fractional limit is rounded up: the run stops once the number of
// accepted records reaches the limit, so 2.5 behaves like 3.
func Resolve(raw RawOptions) (Options, error) {
	var opts Options

	limit, ok := parseLimit(raw.Limit)
	if !ok {
		return Options{}, errors.New(errors.ErrCodeInvalidLimit, MsgInvalidLimit)
	}
	opts.Limit = limit

	orderBy, ok := ParseOrderBy(raw.OrderBy)
	if !ok {
		return Options{}, errors.New(errors.ErrCodeInvalidOrderBy, MsgInvalidOrderBy)
	}
	opts.OrderBy = orderBy

	order, ok := ParseOrder(raw.Order)
	if !ok {
		return Options{}, errors.New(errors.ErrCodeInvalidOrder, MsgInvalidOrder)
	}
	opts.Order = order

	if raw.Output != "" && !strings.HasSuffix(raw.Output, ".json") {
		return Options{}, errors.New(errors.ErrCodeInvalidOutput, MsgInvalidOutput)
	}
	opts.Output = raw.Output

	return opts, nil
}

// ParseOrderBy matches s against OrderByValues. The match is case sensitive.
func ParseOrderBy(s string) (OrderBy, bool) {
	for _, v := range OrderByValues {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

// ParseOrder matches s case-insensitively against asc and desc.
func ParseOrder(s string) (Order, bool) {
	switch o := Order(strings.ToLower(s)); o {
	case OrderAsc, OrderDesc:
		return o, true
	}
	return "", false
}

// parseLimit accepts decimal numbers, including fractions and exponents.
// Hexadecimal forms that strconv understands are rejected.
func parseLimit(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 1 {
		return 0, false
	}
	if f > maxLimit {
		return maxLimit, true
	}
	return int(math.Ceil(f)), true
}

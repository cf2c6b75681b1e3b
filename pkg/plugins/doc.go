// Package plugins turns Packagist package details into Craft plugin records.
//
// # Overview
//
// The package holds the domain logic of craft-plugin-list:
//
//   - [Resolve]: validates the four user options (limit, orderBy, order, output)
//   - [Builder]: walks candidate package names in listing order, fetches each
//     detail through a [Registry], and keeps the eligible ones until the limit
//     is reached
//   - [Sort]: orders records by one [OrderBy] key
//
// # Eligibility
//
// A package becomes a [PackageRecord] only when it is not abandoned and its
// latest version (maximum publish time, not semver) carries extra.handle.
//
// # Sorting
//
// Every key except "updated" compares the string form of the field, so
// downloads 500, 20 and 3000 sort ascending as "20", "3000", "500". Pass
// [CompareNumeric] to compare the counters as numbers instead.
package plugins

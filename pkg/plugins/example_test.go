package plugins_test

import (
	"fmt"

	"github.com/fortrabbit/craft-plugin-list/pkg/errors"
	"github.com/fortrabbit/craft-plugin-list/pkg/plugins"
)

func ExampleResolve() {
	opts, err := plugins.Resolve(plugins.RawOptions{
		Limit:   "10",
		OrderBy: "favers",
		Order:   "ASC",
		Output:  "plugins.json",
	})
	if err != nil {
		fmt.Println(errors.UserMessage(err))
		return
	}
	fmt.Println(opts.Limit, opts.OrderBy, opts.Order, opts.Output)

	_, err = plugins.Resolve(plugins.RawOptions{Limit: "10", OrderBy: "stars", Order: "asc"})
	fmt.Println(errors.UserMessage(err))
	// Output:
	// 10 favers asc plugins.json
	// Invalid orderBy option
}

func ExampleSort() {
	records := []plugins.PackageRecord{
		plugins.NewRecord(plugins.RecordFields{Name: "vendor/a", MonthlyDownloads: 500}),
		plugins.NewRecord(plugins.RecordFields{Name: "vendor/b", MonthlyDownloads: 20}),
		plugins.NewRecord(plugins.RecordFields{Name: "vendor/c", MonthlyDownloads: 3000}),
	}

	lexical, _ := plugins.Sort(records, plugins.OrderByDownloads, plugins.OrderAsc, plugins.CompareLexical)
	numeric, _ := plugins.Sort(records, plugins.OrderByDownloads, plugins.OrderAsc, plugins.CompareNumeric)

	for i := range records {
		fmt.Println(lexical[i].MonthlyDownloads(), numeric[i].MonthlyDownloads())
	}
	// Output:
	// 20 20
	// 3000 500
	// 500 3000
}

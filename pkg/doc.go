// Package pkg provides the libraries behind craft-plugin-list.
//
// # Overview
//
// craft-plugin-list reads the Packagist catalogue of Craft CMS plugins and
// reduces it to a sorted list. The pkg directory is organized into:
//
//  1. [plugins] - Domain logic (options, eligibility, records, sorting)
//  2. [integrations] - Registry clients ([integrations/packagist])
//  3. [pipeline] - Orchestration (list → build → sort → render)
//  4. [io] and [render] - JSON files and terminal tables
//  5. [cache], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The data flow of one run:
//
//	Packagist list.json?type=craft-plugin
//	         ↓
//	    [plugins.Builder] (fetch details until the limit is reached)
//	         ↓
//	    [plugins.Sort] (order by one field)
//	         ↓
//	    table on stdout or JSON file
//
// # Quick Start
//
//	client := packagist.NewClient(packagist.Options{})
//	runner := pipeline.NewRunner(client, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{Limit: 10})
//	if err != nil {
//	    return err
//	}
//	return runner.Render(ctx, result.Records, "", os.Stdout)
package pkg

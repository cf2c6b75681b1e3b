// Package packagist provides an HTTP client for the Packagist package API.
//
// # Overview
//
// Two endpoints are used:
//
//   - GET {base}/list.json?type=<type> lists package names of one type
//   - GET {base}/<vendor>/<name>.json returns one package with all versions
//
// # Usage
//
//	client := packagist.NewClient(packagist.Options{})
//
//	names, err := client.ListPackageNames(ctx, "craft-plugin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pkg, err := client.FetchPackage(ctx, names[0])
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(pkg.Name, len(pkg.Versions))
//
// # Ordering
//
// Packagist serves versions and require-dev as JSON objects. The client keeps
// their document order so that callers can break ties by first occurrence.
//
// # Abandoned Packages
//
// The abandoned field is either a boolean or the name of a replacement
// package. A non-empty replacement name counts as abandoned.
package packagist

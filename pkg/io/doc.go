// Package io provides JSON import and export for plugin records.
//
// # JSON Format
//
// A record list is a JSON array of objects, one per plugin, in output order:
//
//	[
//	    {
//	        "name": "verbb/super-table",
//	        "description": "Super-charge your content builders",
//	        "handle": "super-table",
//	        "repository": "https://github.com/verbb/super-table",
//	        "testLibrary": null,
//	        "version": "3.0.0",
//	        "downloads": 51234,
//	        "dependents": 17,
//	        "favers": 123,
//	        "updated": "2022-06-01 12:00:00"
//	    }
//	]
//
// description and testLibrary are null when the registry provides no value.
// updated is UTC with second precision. An empty result is written as [].
//
// # Export
//
// Use [ExportJSON] to write records to a file, or [WriteJSON] to write to any
// io.Writer. Output is indented with four spaces and does not escape slashes
// or HTML characters, so repository URLs stay readable.
//
// # Import
//
// Use [ImportJSON] or [ReadJSON] to load a previously exported file. Records
// read back compare equal field by field to the records that were written.
package io

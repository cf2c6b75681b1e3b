package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fortrabbit/craft-plugin-list/pkg/plugins"
)

// indent is the four-space pretty print used by the export file format.
const indent = "    "

// WriteJSON encodes records as a JSON array and writes it to w.
// A nil or empty slice is written as [].
func WriteJSON(records []plugins.PackageRecord, w io.Writer) error {
	if records == nil {
		records = []plugins.PackageRecord{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes records to a JSON file at path, replacing any existing
// file.
func ExportJSON(records []plugins.PackageRecord, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return WriteJSON(records, f)
}

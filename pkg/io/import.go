package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fortrabbit/craft-plugin-list/pkg/plugins"
)

// ReadJSON decodes a JSON record array from r.
//
// ReadJSON returns an error if the input is not an array of record objects
// or if an updated value does not use the YYYY-MM-DD HH:MM:SS layout.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]plugins.PackageRecord, error) {
	var records []plugins.PackageRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if records == nil {
		records = []plugins.PackageRecord{}
	}
	return records, nil
}

// ImportJSON reads records from a JSON file at path.
func ImportJSON(path string) ([]plugins.PackageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

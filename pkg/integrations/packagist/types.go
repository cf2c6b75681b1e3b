package packagist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// errNotObject marks a member whose JSON type is not an object. Such members
// are treated as empty.
var errNotObject = errors.New("not a JSON object")

// Package is the detail record of one Packagist package.
//
// Versions and each version's RequireDev keep the order in which the
// registry listed them.
type Package struct {
	Name             string    `json:"name"`
	Description      *string   `json:"description"`
	Repository       string    `json:"repository"`
	MonthlyDownloads int       `json:"monthly_downloads"`
	Dependents       int       `json:"dependents"`
	Favers           int       `json:"favers"`
	Abandoned        bool      `json:"abandoned"`
	Versions         []Version `json:"versions"`
}

// Version is one released (or branch) version of a package.
type Version struct {
	Version    string   `json:"version"`
	Time       string   `json:"time"`
	Handle     *string  `json:"handle"`      // extra.handle, nil when missing
	RequireDev []string `json:"require_dev"` // require-dev package names in document order
}

type listResponse struct {
	PackageNames *[]string `json:"packageNames"`
}

type packageResponse struct {
	Package *wirePackage `json:"package"`
}

type wirePackage struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Repository  string          `json:"repository"`
	Dependents  int             `json:"dependents"`
	Favers      int             `json:"favers"`
	Abandoned   json.RawMessage `json:"abandoned"`
	Versions    json.RawMessage `json:"versions"`
	Downloads   struct {
		Monthly int `json:"monthly"`
	} `json:"downloads"`
}

type wireVersion struct {
	Version    string          `json:"version"`
	Time       string          `json:"time"`
	Extra      json.RawMessage `json:"extra"`
	RequireDev json.RawMessage `json:"require-dev"`
}

func (w *wirePackage) toPackage() (Package, error) {
	pkg := Package{
		Name:             w.Name,
		Description:      w.Description,
		Repository:       w.Repository,
		MonthlyDownloads: w.Downloads.Monthly,
		Dependents:       w.Dependents,
		Favers:           w.Favers,
		Abandoned:        isAbandoned(w.Abandoned),
	}

	raws, err := orderedValues(w.Versions)
	if err != nil {
		return Package{}, fmt.Errorf("versions: %w", err)
	}
	pkg.Versions = make([]Version, 0, len(raws))
	for _, raw := range raws {
		var wv wireVersion
		if err := json.Unmarshal(raw, &wv); err != nil {
			return Package{}, fmt.Errorf("version: %w", err)
		}
		v, err := wv.toVersion()
		if err != nil {
			return Package{}, err
		}
		pkg.Versions = append(pkg.Versions, v)
	}
	return pkg, nil
}

func (w *wireVersion) toVersion() (Version, error) {
	v := Version{Version: w.Version, Time: w.Time}

	handle, err := extraHandle(w.Extra)
	if err != nil {
		return Version{}, fmt.Errorf("version %s extra: %w", w.Version, err)
	}
	v.Handle = handle

	keys, err := orderedKeys(w.RequireDev)
	if err != nil {
		return Version{}, fmt.Errorf("version %s require-dev: %w", w.Version, err)
	}
	v.RequireDev = keys
	return v, nil
}

// isAbandoned interprets the abandoned field, which is either a boolean or
// the name of a suggested replacement package.
func isAbandoned(raw json.RawMessage) bool {
	if isNull(raw) {
		return false
	}
	var b bool
	if json.Unmarshal(raw, &b) == nil {
		return b
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s != "" && s != "0"
	}
	return false
}

// extraHandle returns extra.handle. Scalars that are not strings are kept
// in their JSON text form; null and a missing key both mean no handle.
func extraHandle(raw json.RawMessage) (*string, error) {
	var handle *string
	err := decodeObject(raw, func(key string, value json.RawMessage) error {
		if key != "handle" || isNull(value) {
			return nil
		}
		var s string
		if json.Unmarshal(value, &s) != nil {
			s = string(bytes.TrimSpace(value))
		}
		handle = &s
		return nil
	})
	if errors.Is(err, errNotObject) {
		return nil, nil
	}
	return handle, err
}

func orderedKeys(raw json.RawMessage) ([]string, error) {
	var keys []string
	err := decodeObject(raw, func(key string, _ json.RawMessage) error {
		keys = append(keys, key)
		return nil
	})
	if errors.Is(err, errNotObject) {
		return nil, nil
	}
	return keys, err
}

// orderedValues decodes either a JSON array or a JSON object into its
// element values in document order.
func orderedValues(raw json.RawMessage) ([]json.RawMessage, error) {
	if isNull(raw) {
		return nil, nil
	}
	if raw := bytes.TrimSpace(raw); len(raw) > 0 && raw[0] == '[' {
		var values []json.RawMessage
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, err
		}
		return values, nil
	}
	var values []json.RawMessage
	err := decodeObject(raw, func(_ string, value json.RawMessage) error {
		values = append(values, value)
		return nil
	})
	if errors.Is(err, errNotObject) {
		return nil, nil
	}
	return values, err
}

// decodeObject walks a JSON object calling fn for every member in document
// order. Null and empty arrays (PHP's encoding of an empty map) are treated
// as empty objects.
func decodeObject(raw json.RawMessage, fn func(key string, value json.RawMessage) error) error {
	if isNull(raw) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch tok {
	case json.Delim('{'):
	case json.Delim('['):
		if dec.More() {
			return errNotObject
		}
		return nil
	default:
		return errNotObject
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		if err := fn(key, value); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

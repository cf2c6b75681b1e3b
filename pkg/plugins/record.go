package plugins

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the format of the updated field in every output.
const DateLayout = "2006-01-02 15:04:05"

// RecordFields carries the values of a [PackageRecord] at construction time.
type RecordFields struct {
	Name             string
	Description      *string
	Handle           string
	RepositoryURL    string
	TestFramework    *string
	Version          string
	MonthlyDownloads int
	DependentsCount  int
	FaversCount      int
	UpdatedAt        time.Time
}

// PackageRecord is the normalized view of one eligible Craft plugin.
// It is immutable: all fields are read through accessor methods.
type PackageRecord struct {
	name             string
	description      *string
	handle           string
	repositoryURL    string
	testFramework    *string
	version          string
	monthlyDownloads int
	dependentsCount  int
	faversCount      int
	updatedAt        time.Time
}

// NewRecord builds a record from f. Optional strings are copied and negative
// counters are clamped to zero. UpdatedAt is stored in UTC at second
// precision, the resolution of the output format.
func NewRecord(f RecordFields) PackageRecord {
	return PackageRecord{
		name:             f.Name,
		description:      cloneString(f.Description),
		handle:           f.Handle,
		repositoryURL:    f.RepositoryURL,
		testFramework:    cloneString(f.TestFramework),
		version:          f.Version,
		monthlyDownloads: max(f.MonthlyDownloads, 0),
		dependentsCount:  max(f.DependentsCount, 0),
		faversCount:      max(f.FaversCount, 0),
		updatedAt:        f.UpdatedAt.UTC().Truncate(time.Second),
	}
}

func (r PackageRecord) Name() string          { return r.name }
func (r PackageRecord) Handle() string        { return r.handle }
func (r PackageRecord) RepositoryURL() string { return r.repositoryURL }
func (r PackageRecord) Version() string       { return r.version }
func (r PackageRecord) MonthlyDownloads() int { return r.monthlyDownloads }
func (r PackageRecord) DependentsCount() int  { return r.dependentsCount }
func (r PackageRecord) FaversCount() int      { return r.faversCount }
func (r PackageRecord) UpdatedAt() time.Time  { return r.updatedAt }

// Description returns the package description and whether one was set.
func (r PackageRecord) Description() (string, bool) {
	if r.description == nil {
		return "", false
	}
	return *r.description, true
}

// TestFramework returns the detected testing library and whether one matched.
func (r PackageRecord) TestFramework() (string, bool) {
	if r.testFramework == nil {
		return "", false
	}
	return *r.testFramework, true
}

// Updated returns UpdatedAt formatted with [DateLayout].
func (r PackageRecord) Updated() string {
	return r.updatedAt.Format(DateLayout)
}

// Fields returns a copy of the record's values.
func (r PackageRecord) Fields() RecordFields {
	return RecordFields{
		Name:             r.name,
		Description:      cloneString(r.description),
		Handle:           r.handle,
		RepositoryURL:    r.repositoryURL,
		TestFramework:    cloneString(r.testFramework),
		Version:          r.version,
		MonthlyDownloads: r.monthlyDownloads,
		DependentsCount:  r.dependentsCount,
		FaversCount:      r.faversCount,
		UpdatedAt:        r.updatedAt,
	}
}

// recordJSON is the wire form. Key names and order are part of the output
// file format.
type recordJSON struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Handle      string  `json:"handle"`
	Repository  string  `json:"repository"`
	TestLibrary *string `json:"testLibrary"`
	Version     string  `json:"version"`
	Downloads   int     `json:"downloads"`
	Dependents  int     `json:"dependents"`
	Favers      int     `json:"favers"`
	Updated     string  `json:"updated"`
}

// MarshalJSON implements json.Marshaler. HTML characters are written as is.
func (r PackageRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(recordJSON{
		Name:        r.name,
		Description: r.description,
		Handle:      r.handle,
		Repository:  r.repositoryURL,
		TestLibrary: r.testFramework,
		Version:     r.version,
		Downloads:   r.monthlyDownloads,
		Dependents:  r.dependentsCount,
		Favers:      r.faversCount,
		Updated:     r.Updated(),
	})
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON implements json.Unmarshaler for records previously written
// with MarshalJSON. The updated field is read as UTC.
func (r *PackageRecord) UnmarshalJSON(data []byte) error {
	var w recordJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	updated, err := time.ParseInLocation(DateLayout, w.Updated, time.UTC)
	if err != nil {
		return fmt.Errorf("updated: %w", err)
	}
	*r = NewRecord(RecordFields{
		Name:             w.Name,
		Description:      w.Description,
		Handle:           w.Handle,
		RepositoryURL:    w.Repository,
		TestFramework:    w.TestLibrary,
		Version:          w.Version,
		MonthlyDownloads: w.Downloads,
		DependentsCount:  w.Dependents,
		FaversCount:      w.Favers,
		UpdatedAt:        updated,
	})
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

package plugins

import (
	"encoding/json"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func sampleRecord() PackageRecord {
	return NewRecord(RecordFields{
		Name:             "nystudio107/craft-seomatic",
		Description:      strPtr("Turnkey SEO implementation for Craft CMS"),
		Handle:           "seomatic",
		RepositoryURL:    "https://github.com/nystudio107/craft-seomatic",
		TestFramework:    strPtr("codeception/codeception"),
		Version:          "4.0.9",
		MonthlyDownloads: 31337,
		DependentsCount:  12,
		FaversCount:      160,
		UpdatedAt:        time.Date(2022, 6, 1, 14, 5, 9, 123, time.FixedZone("CEST", 2*3600)),
	})
}

func TestRecordAccessors(t *testing.T) {
	r := sampleRecord()

	if r.Name() != "nystudio107/craft-seomatic" {
		t.Errorf("Name() = %q", r.Name())
	}
	if d, ok := r.Description(); !ok || d == "" {
		t.Error("Description() should be set")
	}
	if tf, ok := r.TestFramework(); !ok || tf != "codeception/codeception" {
		t.Errorf("TestFramework() = %q, %v", tf, ok)
	}
	if r.Updated() != "2022-06-01 12:05:09" {
		t.Errorf("Updated() = %q, want UTC second precision", r.Updated())
	}
}

func TestRecordIsImmutable(t *testing.T) {
	desc := "original"
	r := NewRecord(RecordFields{Name: "a/b", Description: &desc})
	desc = "changed"

	if got, _ := r.Description(); got != "original" {
		t.Errorf("record should copy description, got %q", got)
	}

	f := r.Fields()
	*f.Description = "mutated"
	if got, _ := r.Description(); got != "original" {
		t.Errorf("Fields() should return copies, got %q", got)
	}
}

func TestRecordClampsCounters(t *testing.T) {
	r := NewRecord(RecordFields{MonthlyDownloads: -1, DependentsCount: -2, FaversCount: -3})
	if r.MonthlyDownloads() != 0 || r.DependentsCount() != 0 || r.FaversCount() != 0 {
		t.Errorf("counters should clamp to zero: %d %d %d", r.MonthlyDownloads(), r.DependentsCount(), r.FaversCount())
	}
}

func TestRecordJSONKeys(t *testing.T) {
	data, err := json.Marshal(NewRecord(RecordFields{Name: "a/b", Handle: "b"}))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	want := `{"name":"a/b","description":null,"handle":"b","repository":"","testLibrary":null,` +
		`"version":"","downloads":0,"dependents":0,"favers":0,"updated":"0001-01-01 00:00:00"}`
	if string(data) != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", data, want)
	}
}

func TestRecordJSONRoundTrip(t *testing.T) {
	records := []PackageRecord{
		sampleRecord(),
		NewRecord(RecordFields{
			Name:      "verbb/super-table",
			Handle:    "super-table",
			Version:   "3.0.0",
			UpdatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		}),
	}

	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var decoded []PackageRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(decoded) != len(records) {
		t.Fatalf("got %d records, want %d", len(decoded), len(records))
	}
	for i := range records {
		want, got := records[i].Fields(), decoded[i].Fields()
		if got.Name != want.Name || got.Handle != want.Handle || got.RepositoryURL != want.RepositoryURL ||
			got.Version != want.Version || got.MonthlyDownloads != want.MonthlyDownloads ||
			got.DependentsCount != want.DependentsCount || got.FaversCount != want.FaversCount ||
			!got.UpdatedAt.Equal(want.UpdatedAt) {
			t.Errorf("record %d: got %+v, want %+v", i, got, want)
		}
		if decoded[i].Updated() != records[i].Updated() {
			t.Errorf("record %d: updated = %q, want %q", i, decoded[i].Updated(), records[i].Updated())
		}
		wd, wok := records[i].Description()
		gd, gok := decoded[i].Description()
		if wd != gd || wok != gok {
			t.Errorf("record %d: description = %q/%v, want %q/%v", i, gd, gok, wd, wok)
		}
		wt, wok := records[i].TestFramework()
		gt, gok := decoded[i].TestFramework()
		if wt != gt || wok != gok {
			t.Errorf("record %d: testLibrary = %q/%v, want %q/%v", i, gt, gok, wt, wok)
		}
	}
}

func TestRecordUnmarshalBadDate(t *testing.T) {
	var r PackageRecord
	err := json.Unmarshal([]byte(`{"name":"a/b","updated":"yesterday"}`), &r)
	if err == nil {
		t.Error("expected error for malformed updated field")
	}
}

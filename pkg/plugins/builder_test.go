package plugins

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/fortrabbit/craft-plugin-list/pkg/integrations/packagist"
)

type fakeRegistry struct {
	mu       sync.Mutex
	packages map[string]*packagist.Package
	failures map[string]error
	fetched  []string
}

func (f *fakeRegistry) FetchPackage(_ context.Context, name string) (*packagist.Package, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, name)
	if err := f.failures[name]; err != nil {
		return nil, err
	}
	pkg, ok := f.packages[name]
	if !ok {
		return nil, fmt.Errorf("no package %s", name)
	}
	return pkg, nil
}

func plugin(name, handle string) *packagist.Package {
	h := handle
	return &packagist.Package{
		Name:             name,
		Repository:       "https://github.com/" + name,
		MonthlyDownloads: 100,
		Versions: []packagist.Version{
			{Version: "1.0.0", Time: "2021-03-04T05:06:07+00:00", Handle: &h},
		},
	}
}

func newFakeRegistry(pkgs ...*packagist.Package) *fakeRegistry {
	f := &fakeRegistry{
		packages: make(map[string]*packagist.Package),
		failures: make(map[string]error),
	}
	for _, p := range pkgs {
		f.packages[p.Name] = p
	}
	return f
}

func names(records []PackageRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name()
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildLimit(t *testing.T) {
	reg := newFakeRegistry(plugin("a/one", "one"), plugin("a/two", "two"), plugin("a/three", "three"))
	all := []string{"a/one", "a/two", "a/three"}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"limit below count", 2, []string{"a/one", "a/two"}},
		{"limit equals count", 3, []string{"a/one", "a/two", "a/three"}},
		{"limit above count", 10, []string{"a/one", "a/two", "a/three"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Builder{Registry: reg, Limit: tt.limit}
			records, err := b.Build(context.Background(), all)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if got := names(records); !equal(got, tt.want) {
				t.Errorf("Build() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildStopsFetchingAtLimit(t *testing.T) {
	reg := newFakeRegistry(plugin("a/one", "one"), plugin("a/two", "two"))
	reg.failures["a/broken"] = errors.New("boom")

	b := &Builder{Registry: reg, Limit: 2}
	records, err := b.Build(context.Background(), []string{"a/one", "a/two", "a/broken"})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}
	if len(reg.fetched) != 2 {
		t.Errorf("fetched %v, want only the first two", reg.fetched)
	}
}

func TestBuildSkipsIneligible(t *testing.T) {
	abandoned := plugin("a/abandoned", "abandoned")
	abandoned.Abandoned = true
	noHandle := plugin("a/nohandle", "")
	noHandle.Versions[0].Handle = nil
	noVersions := &packagist.Package{Name: "a/empty"}

	reg := newFakeRegistry(abandoned, noHandle, noVersions, plugin("a/good", "good"))

	var events []Event
	b := &Builder{Registry: reg, Limit: 5, Observer: func(e Event) { events = append(events, e) }}
	records, err := b.Build(context.Background(), []string{"a/abandoned", "a/nohandle", "a/empty", "a/good"})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := names(records); !equal(got, []string{"a/good"}) {
		t.Errorf("Build() = %v, want [a/good]", got)
	}

	wantReasons := []SkipReason{SkipAbandoned, SkipNoHandle, SkipNoHandle, Accepted}
	if len(events) != len(wantReasons) {
		t.Fatalf("got %d events, want %d", len(events), len(wantReasons))
	}
	for i, e := range events {
		if e.Reason != wantReasons[i] {
			t.Errorf("event %d reason = %v, want %v", i, e.Reason, wantReasons[i])
		}
		if e.Considered != i+1 {
			t.Errorf("event %d considered = %d, want %d", i, e.Considered, i+1)
		}
	}
	if last := events[len(events)-1]; last.Accepted != 1 || last.Limit != 5 {
		t.Errorf("last event = %+v", last)
	}
}

func TestBuildEmptyHandleIsKept(t *testing.T) {
	reg := newFakeRegistry(plugin("a/blank", ""))

	b := &Builder{Registry: reg, Limit: 1}
	records, err := b.Build(context.Background(), []string{"a/blank"})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(records) != 1 || records[0].Handle() != "" {
		t.Errorf("an empty handle is still a handle, got %v", names(records))
	}
}

func TestBuildAbortsOnError(t *testing.T) {
	reg := newFakeRegistry(plugin("a/one", "one"))
	reg.failures["a/two"] = errors.New("connection refused")

	for _, concurrency := range []int{1, 4} {
		t.Run(fmt.Sprintf("concurrency %d", concurrency), func(t *testing.T) {
			b := &Builder{Registry: reg, Limit: 3, Concurrency: concurrency}
			records, err := b.Build(context.Background(), []string{"a/one", "a/two"})
			if err == nil {
				t.Fatal("Build() should fail")
			}
			if records != nil {
				t.Errorf("no partial results expected, got %v", names(records))
			}
		})
	}
}

func TestBuildConcurrencyKeepsOrder(t *testing.T) {
	var pkgs []*packagist.Package
	var all []string
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("vendor/plugin-%02d", i)
		p := plugin(name, fmt.Sprintf("plugin-%02d", i))
		if i%3 == 0 {
			p.Abandoned = true
		}
		pkgs = append(pkgs, p)
		all = append(all, name)
	}

	sequential := &Builder{Registry: newFakeRegistry(pkgs...), Limit: 9}
	want, err := sequential.Build(context.Background(), all)
	if err != nil {
		t.Fatalf("sequential Build() error: %v", err)
	}

	var considered int
	parallel := &Builder{
		Registry:    newFakeRegistry(pkgs...),
		Limit:       9,
		Concurrency: 4,
		Observer:    func(Event) { considered++ },
	}
	got, err := parallel.Build(context.Background(), all)
	if err != nil {
		t.Fatalf("parallel Build() error: %v", err)
	}

	if !equal(names(got), names(want)) {
		t.Errorf("parallel = %v, sequential = %v", names(got), names(want))
	}
	// 9 accepted among 0..13 with every third abandoned.
	if considered != 14 {
		t.Errorf("considered = %d, want 14", considered)
	}
}

func TestNewRecordFromPackage(t *testing.T) {
	desc := "Adds a table field"
	handle := "super-table"
	pkg := &packagist.Package{
		Name:             "verbb/super-table",
		Description:      &desc,
		Repository:       "https://github.com/verbb/super-table",
		MonthlyDownloads: 500,
		Dependents:       7,
		Favers:           42,
		Versions: []packagist.Version{
			{Version: "2.0.0", Time: "2020-01-01T00:00:00+00:00", Handle: &handle},
			{Version: "3.0.0", Time: "2022-06-01T00:00:00+00:00", Handle: &handle,
				RequireDev: []string{"mockery/mockery", "codeception/codeception", "phpunit/phpunit"}},
			{Version: "2.5.0", Time: "2021-01-01T00:00:00+00:00"},
		},
	}

	rec, reason := NewRecordFromPackage(pkg)
	if reason != Accepted {
		t.Fatalf("reason = %v, want accepted", reason)
	}
	if rec.Version() != "3.0.0" {
		t.Errorf("Version() = %q, want 3.0.0", rec.Version())
	}
	if rec.Updated() != "2022-06-01 00:00:00" {
		t.Errorf("Updated() = %q", rec.Updated())
	}
	if tf, ok := rec.TestFramework(); !ok || tf != "codeception/codeception" {
		t.Errorf("TestFramework() = %q, %v; want codeception/codeception", tf, ok)
	}
	if rec.MonthlyDownloads() != 500 || rec.DependentsCount() != 7 || rec.FaversCount() != 42 {
		t.Errorf("counters = %d/%d/%d", rec.MonthlyDownloads(), rec.DependentsCount(), rec.FaversCount())
	}
}

func TestLatestVersion(t *testing.T) {
	tests := []struct {
		name     string
		versions []packagist.Version
		want     string
		ok       bool
	}{
		{"empty", nil, "", false},
		{
			"greatest time wins",
			[]packagist.Version{
				{Version: "a", Time: "2020-01-01T00:00:00+00:00"},
				{Version: "b", Time: "2022-06-01T00:00:00+00:00"},
				{Version: "c", Time: "2021-01-01T00:00:00+00:00"},
			},
			"b", true,
		},
		{
			"first wins ties",
			[]packagist.Version{
				{Version: "dev-main", Time: "2022-06-01T00:00:00+00:00"},
				{Version: "1.0.0", Time: "2022-06-01T00:00:00+00:00"},
			},
			"dev-main", true,
		},
		{
			"offsets are normalized",
			[]packagist.Version{
				{Version: "utc", Time: "2022-06-01T10:00:00+00:00"},
				{Version: "berlin", Time: "2022-06-01T11:30:00+02:00"},
			},
			"utc", true,
		},
		{
			"unparseable time loses",
			[]packagist.Version{
				{Version: "broken", Time: "soon"},
				{Version: "1.0.0", Time: "2019-01-01T00:00:00+00:00"},
			},
			"1.0.0", true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := LatestVersion(tt.versions)
			if ok != tt.ok || got.Version != tt.want {
				t.Errorf("LatestVersion() = %q, %v; want %q, %v", got.Version, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTestFramework(t *testing.T) {
	tests := []struct {
		name       string
		requireDev []string
		want       string
		ok         bool
	}{
		{"none", nil, "", false},
		{"unknown only", []string{"mockery/mockery", "vimeo/psalm"}, "", false},
		{"document order wins", []string{"behat/behat", "phpunit/phpunit"}, "behat/behat", true},
		{"last in list", []string{"craftcms/rector", "datasift/storyplayer"}, "datasift/storyplayer", true},
		{"exact match only", []string{"phpunit/phpunit-mock-objects"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TestFramework(tt.requireDev)
			if got != tt.want || ok != tt.ok {
				t.Errorf("TestFramework() = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2022-06-01T12:00:00+00:00", "2022-06-01 12:00:00"},
		{"2022-06-01T12:00:00+0200", "2022-06-01 10:00:00"},
		{"2022-06-01 12:00:00", "2022-06-01 12:00:00"},
		{"", "0001-01-01 00:00:00"},
		{"not a date", "0001-01-01 00:00:00"},
	}

	for _, tt := range tests {
		if got := ParseTime(tt.in).Format(DateLayout); got != tt.want {
			t.Errorf("ParseTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

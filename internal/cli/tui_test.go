package cli

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fortrabbit/craft-plugin-list/pkg/plugins"
)

func browseRecords(n int) []plugins.PackageRecord {
	records := make([]plugins.PackageRecord, n)
	for i := range records {
		records[i] = plugins.NewRecord(plugins.RecordFields{
			Name:             fmt.Sprintf("acme/plugin-%02d", i),
			Handle:           fmt.Sprintf("plugin-%02d", i),
			RepositoryURL:    fmt.Sprintf("https://github.com/acme/plugin-%02d", i),
			Version:          "1.0.0",
			MonthlyDownloads: 100 * i,
			UpdatedAt:        time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return records
}

func press(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next
}

func TestRecordListNavigation(t *testing.T) {
	var m tea.Model = NewRecordListModel(browseRecords(3))

	m = press(m, "up")
	if got := m.(RecordListModel).Cursor; got != 0 {
		t.Errorf("cursor = %d after up at top, want 0", got)
	}

	for i := 0; i < 5; i++ {
		m = press(m, "down")
	}
	if got := m.(RecordListModel).Cursor; got != 2 {
		t.Errorf("cursor = %d after moving past the end, want 2", got)
	}

	m = press(m, "k")
	if got := m.(RecordListModel).Cursor; got != 1 {
		t.Errorf("cursor = %d after k, want 1", got)
	}
}

func TestRecordListScrolls(t *testing.T) {
	var m tea.Model = NewRecordListModel(browseRecords(30))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 13})
	if got := m.(RecordListModel).Height; got != 5 {
		t.Fatalf("height = %d, want 5", got)
	}

	for i := 0; i < 7; i++ {
		m = press(m, "j")
	}
	model := m.(RecordListModel)
	if model.Cursor != 7 || model.Offset != 3 {
		t.Errorf("cursor/offset = %d/%d, want 7/3", model.Cursor, model.Offset)
	}

	view := model.View()
	if !strings.Contains(view, "acme/plugin-07") || strings.Contains(view, "acme/plugin-02") {
		t.Errorf("view should show the scrolled window:\n%s", view)
	}
	if !strings.Contains(view, "[8/30]") {
		t.Errorf("view should show the position:\n%s", view)
	}
}

func TestRecordListDetail(t *testing.T) {
	var m tea.Model = NewRecordListModel(browseRecords(2))
	m = press(m, "down")
	m = press(m, "enter")

	model := m.(RecordListModel)
	if !model.Detail {
		t.Fatal("enter should open the detail view")
	}
	view := model.View()
	for _, want := range []string{"acme/plugin-01", "plugin-01", "Test Library", "none", "2022-06-01 00:00:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q:\n%s", want, view)
		}
	}

	m = press(m, "esc")
	if m.(RecordListModel).Detail {
		t.Error("esc should close the detail view")
	}
}

func TestRecordListQuit(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m := NewRecordListModel(browseRecords(1))
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		if key == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("%s should quit", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s should return tea.Quit", key)
		}
	}
}

func TestRecordListEmpty(t *testing.T) {
	var m tea.Model = NewRecordListModel(nil)
	m = press(m, "enter")
	if m.(RecordListModel).Detail {
		t.Error("detail view needs a record")
	}
	if !strings.Contains(m.View(), "No plugins matched") {
		t.Errorf("unexpected view:\n%s", m.View())
	}
}

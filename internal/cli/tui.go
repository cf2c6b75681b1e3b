package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fortrabbit/craft-plugin-list/pkg/plugins"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(18)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// RecordListModel - Interactive plugin browser
// =============================================================================

// RecordListModel is the bubbletea model for browsing listed plugins.
// Enter toggles a detail view of the plugin under the cursor.
type RecordListModel struct {
	Records []plugins.PackageRecord
	Cursor  int
	Height  int
	Offset  int
	Detail  bool
}

// NewRecordListModel creates a new record list model.
func NewRecordListModel(records []plugins.PackageRecord) RecordListModel {
	return RecordListModel{
		Records: records,
		Height:  15,
	}
}

func (m RecordListModel) Init() tea.Cmd {
	return nil
}

func (m RecordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Records)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Records) > 0 {
				m.Detail = !m.Detail
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m RecordListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Craft Plugins"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Records) == 0 {
		b.WriteString(listDimStyle.Render("  No plugins matched."))
		b.WriteString("\n")
		return b.String()
	}

	if m.Detail {
		b.WriteString(m.detailView(m.Records[m.Cursor]))
	} else {
		b.WriteString(m.tableView())
	}
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Records))))

	return b.String()
}

func (m RecordListModel) tableView() string {
	end := min(m.Offset+m.Height, len(m.Records))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Records[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			r.Name(),
			r.Version(),
			strconv.Itoa(r.MonthlyDownloads()),
			strconv.Itoa(r.FaversCount()),
			r.Updated()[:10],
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Plugin", "Version", "Downloads", "Favers", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorDim)
			}
			if m.Offset+row == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	return t.Render()
}

func (m RecordListModel) detailView(r plugins.PackageRecord) string {
	description, _ := r.Description()
	testFramework, ok := r.TestFramework()
	if !ok {
		testFramework = "none"
	}

	fields := []struct{ label, value string }{
		{"Name", StyleValue.Render(r.Name())},
		{"Description", description},
		{"Handle", r.Handle()},
		{"Repository", StyleLink.Render(r.RepositoryURL())},
		{"Test Library", testFramework},
		{"Version", r.Version()},
		{"Monthly Downloads", StyleNumber.Render(strconv.Itoa(r.MonthlyDownloads()))},
		{"Dependents", StyleNumber.Render(strconv.Itoa(r.DependentsCount()))},
		{"Favers", StyleNumber.Render(strconv.Itoa(r.FaversCount()))},
		{"Updated", r.Updated()},
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString("  " + listLabelStyle.Render(f.label) + " " + f.value + "\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("  esc back"))
	return b.String()
}

// browse runs the interactive browser until the user quits.
func (c *CLI) browse(ctx context.Context, records []plugins.PackageRecord) error {
	p := tea.NewProgram(NewRecordListModel(records), tea.WithContext(ctx), tea.WithOutput(c.Stdout))
	_, err := p.Run()
	return err
}

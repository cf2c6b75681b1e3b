package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fortrabbit/craft-plugin-list/pkg/plugins"
)

// Headers are the table column titles in display order.
var Headers = []string{
	"Name",
	"Description",
	"Handle",
	"Repository",
	"Test Library",
	"Version",
	"Monthly Downloads",
	"Dependents",
	"Favers",
	"Updated",
}

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Row returns the cells of r in [Headers] order.
func Row(r plugins.PackageRecord) []string {
	description, _ := r.Description()
	testFramework, _ := r.TestFramework()
	return []string{
		r.Name(),
		description,
		r.Handle(),
		r.RepositoryURL(),
		testFramework,
		r.Version(),
		strconv.Itoa(r.MonthlyDownloads()),
		strconv.Itoa(r.DependentsCount()),
		strconv.Itoa(r.FaversCount()),
		r.Updated(),
	}
}

// Table renders records in their given order.
func Table(records []plugins.PackageRecord) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = Row(r)
	}

	t := table.New().
		Border(lipgloss.ASCIIBorder()).
		Headers(Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		})
	return t.Render()
}

// WriteTable writes the rendered table followed by a newline to w.
func WriteTable(w io.Writer, records []plugins.PackageRecord) error {
	_, err := fmt.Fprintln(w, Table(records))
	return err
}

// Package render draws plugin records for the terminal.
//
// [Table] lays the records out as an ASCII table with one row per record and
// the columns Name, Description, Handle, Repository, Test Library, Version,
// Monthly Downloads, Dependents, Favers and Updated. Optional values that are
// absent render as empty cells. The table is built with lipgloss/table and
// uses plain ASCII borders so it survives copy and paste into issues and
// terminals without box-drawing glyphs.
//
//	fmt.Print(render.Table(records))
package render

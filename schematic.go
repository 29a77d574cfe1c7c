package norm

import (
	"fmt"
	"io"
	"net/url"
	"sort"

	"github.com/jedib0t/go-pretty/table"
)

// Schematic prints the engine's clause rules, field templates and
// connection parameters. Passwords are masked.
func (e *Engine) Schematic(w io.Writer) {
	fmt.Fprintf(w, "SQL Engine: %s (driver %s)\n", e.Name(), e.DriverName())

	rules := table.NewWriter()
	rules.AppendHeader(table.Row{"Clause", "Rule"})
	for _, c := range e.Accepts() {
		rules.AppendRow(table.Row{c, e.commands[c].String()})
	}
	fmt.Fprintln(w, rules.Render())

	types := make([]string, 0, len(e.Fields()))
	for t := range e.Fields() {
		types = append(types, t)
	}
	sort.Strings(types)
	fields := table.NewWriter()
	fields.AppendHeader(table.Row{"Field Type", "Template"})
	for _, t := range types {
		fields.AppendRow(table.Row{t, e.Fields()[t]})
	}
	fmt.Fprintln(w, fields.Render())

	params := table.NewWriter()
	params.AppendHeader(table.Row{"Param", "Value"})
	for _, k := range e.sortedParams() {
		params.AppendRow(table.Row{k, maskParam(k, e.params[k])})
	}
	fmt.Fprintln(w, params.Render())
}

var secretParams = map[string]bool{"passwd": true, "password": true, "pwd": true}

// maskParam hides secrets in a parameter value. A url keeps everything
// but its password; one that does not parse is hidden entirely.
func maskParam(key, value string) string {
	switch {
	case secretParams[key]:
		return "****"
	case key == "url":
		u, err := url.Parse(value)
		if err != nil {
			return "****"
		}
		return u.Redacted()
	default:
		return value
	}
}

// Describe prints how each field of table expands for d's engine.
func (d *Database) Describe(w io.Writer, name string, fields ...any) error {
	ft := d.engine.Fields()
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Field", "Definition", "Constraint"})
	for _, v := range fields {
		f, err := toField(v)
		if err != nil {
			return err
		}
		def, err := ft.Expand(f)
		if err != nil {
			return err
		}
		ref, err := ft.Reference(f)
		if err != nil {
			return err
		}
		tw.AppendRow(table.Row{f.String(), def, ref})
	}
	fmt.Fprintf(w, "Table: %s (%s)\n", name, d.engine.Name())
	fmt.Fprintln(w, tw.Render())
	return nil
}

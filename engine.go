package norm

import (
	"sort"
	"strconv"
	"strings"
)

type ruleKind int

const (
	ruleTemplate ruleKind = iota
	ruleComputed
)

// Rule turns a fragment's arguments into SQL. It is either a fixed
// template with positional {N} placeholders or a function of the arguments.
type Rule struct {
	kind     ruleKind
	template string
	compute  func(e *Engine, args []string) string
}

func Template(t string) Rule {
	return Rule{kind: ruleTemplate, template: t}
}

func Computed(fn func(e *Engine, args []string) string) Rule {
	return Rule{kind: ruleComputed, compute: fn}
}

func (r Rule) String() string {
	if r.kind == ruleComputed {
		return "<computed>"
	}
	return r.template
}

func (r Rule) render(e *Engine, args []string) string {
	switch r.kind {
	case ruleComputed:
		return r.compute(e, args)
	default:
		return substitute(r.template, args)
	}
}

// substitute replaces {N} with args[N]; a missing argument becomes "".
func substitute(tmpl string, args []string) string {
	var sb strings.Builder
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] == '{' {
			end := strings.IndexByte(tmpl[i:], '}')
			if end > 1 {
				if n, err := strconv.Atoi(tmpl[i+1 : i+end]); err == nil {
					if n >= 0 && n < len(args) {
						sb.WriteString(args[n])
					}
					i += end
					continue
				}
			}
		}
		sb.WriteByte(tmpl[i])
	}
	return sb.String()
}

// listing renders keyword followed by args joined with ", ", each one
// passed through the engine's identifier wrapping.
func listing(keyword string) func(e *Engine, args []string) string {
	return func(e *Engine, args []string) string {
		wrapped := make([]string, len(args))
		for i, a := range args {
			wrapped[i] = e.WrapIdentifier(a)
		}
		return keyword + " " + strings.Join(wrapped, ", ")
	}
}

// Params are the backend connection parameters given to an engine.
type Params map[string]string

// Engine renders fragments for one backend. It is read-only after
// construction and safe to share between builders.
type Engine struct {
	dialect  *Dialect
	params   Params
	commands map[Clause]Rule
}

func (e *Engine) Name() string {
	return e.dialect.Name
}

func (e *Engine) DriverName() string {
	return e.dialect.DriverName
}

func (e *Engine) Fields() FieldTypes {
	return e.dialect.Fields
}

// Param returns a connection parameter.
func (e *Engine) Param(key string) string {
	return e.params[key]
}

// DSN formats the driver connection string for this engine's parameters.
func (e *Engine) DSN() (string, error) {
	if e.dialect.DSN == nil {
		return "", &ConfigurationError{Engine: e.dialect.Name, Reason: "no connection string format"}
	}
	return e.dialect.DSN(e.params)
}

// Accepts lists the clause kinds this engine has rules for.
func (e *Engine) Accepts() []Clause {
	out := make([]Clause, 0, len(e.commands))
	for _, c := range clauses {
		if _, ok := e.commands[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Rule returns the render rule registered for c.
func (e *Engine) Rule(c Clause) (Rule, bool) {
	r, ok := e.commands[c]
	return r, ok
}

// WrapIdentifier quotes id with the dialect's wrapping, if any. The
// wildcard is never wrapped.
func (e *Engine) WrapIdentifier(id string) string {
	if id == "*" || e.dialect.Wrap == nil {
		return id
	}
	return e.dialect.Wrap(id)
}

// Render turns fragments into one statement, clauses separated by a
// single space in fragment order.
func (e *Engine) Render(fragments []Fragment) (string, error) {
	sections := make([]string, 0, len(fragments))
	for _, f := range fragments {
		rule, ok := e.commands[f.Kind]
		if !ok {
			return "", &UnknownClauseError{Engine: e.dialect.Name, Kind: f.Kind}
		}
		sections = append(sections, rule.render(e, f.Args))
	}
	return strings.Join(sections, " "), nil
}

func (e *Engine) sortedParams() []string {
	keys := make([]string, 0, len(e.params))
	for k := range e.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

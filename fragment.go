package norm

import (
	"fmt"
	"strings"
)

// Clause identifies the kind of a Fragment.
type Clause string

const (
	ClauseSelect      Clause = "SELECT"
	ClauseFrom        Clause = "FROM"
	ClauseInsert      Clause = "INSERT"
	ClauseValues      Clause = "VALUES"
	ClauseUpdate      Clause = "UPDATE"
	ClauseSet         Clause = "SET"
	ClauseDelete      Clause = "DELETE"
	ClauseWhere       Clause = "WHERE"
	ClauseOrderBy     Clause = "ORDERBY"
	ClauseJoin        Clause = "JOIN"
	ClauseOn          Clause = "ON"
	ClauseGroupBy     Clause = "GROUPBY"
	ClauseHaving      Clause = "HAVING"
	ClauseCreateTable Clause = "CREATETABLE"
	ClauseDropTable   Clause = "DROPTABLE"
)

var clauses = []Clause{
	ClauseSelect,
	ClauseFrom,
	ClauseInsert,
	ClauseValues,
	ClauseUpdate,
	ClauseSet,
	ClauseDelete,
	ClauseWhere,
	ClauseOrderBy,
	ClauseJoin,
	ClauseOn,
	ClauseGroupBy,
	ClauseHaving,
	ClauseCreateTable,
	ClauseDropTable,
}

// Clauses returns every clause kind the package knows about.
func Clauses() []Clause {
	out := make([]Clause, len(clauses))
	copy(out, clauses)
	return out
}

// Valid reports whether c belongs to the closed set of clause kinds.
func (c Clause) Valid() bool {
	for _, known := range clauses {
		if c == known {
			return true
		}
	}
	return false
}

// Fragment is one clause waiting to be rendered: a kind and its string arguments.
type Fragment struct {
	Kind Clause
	Args []string
}

// NewFragment copies args so later changes by the caller do not leak in.
func NewFragment(kind Clause, args ...string) Fragment {
	own := make([]string, len(args))
	copy(own, args)
	return Fragment{Kind: kind, Args: own}
}

// Equal compares kind and arguments by value.
func (f Fragment) Equal(o Fragment) bool {
	if f.Kind != o.Kind || len(f.Args) != len(o.Args) {
		return false
	}
	for i := range f.Args {
		if f.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

func (f Fragment) String() string {
	return fmt.Sprintf("(%s)", strings.Join(append([]string{string(f.Kind)}, f.Args...), ", "))
}

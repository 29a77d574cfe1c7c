package norm

// Parts is the ordered buffer of fragments for one statement in progress.
// It is owned by a single builder and must not be shared.
type Parts struct {
	accepts   map[Clause]struct{}
	fragments []Fragment
}

// NewParts returns an empty buffer accepting the given clause kinds, or
// every known kind when none are given.
func NewParts(accepts ...Clause) *Parts {
	if len(accepts) == 0 {
		accepts = clauses
	}
	p := &Parts{accepts: make(map[Clause]struct{}, len(accepts))}
	for _, c := range accepts {
		p.accepts[c] = struct{}{}
	}
	return p
}

// Append validates the raw tuple (kind, args...) and adds it to the end.
func (p *Parts) Append(parts ...string) error {
	if len(parts) == 0 {
		return ErrInvalidFragment
	}
	return p.push(NewFragment(Clause(parts[0]), parts[1:]...))
}

// Push validates a copy of f and adds it to the end. On error the
// buffer is unchanged.
func (p *Parts) Push(f Fragment) error {
	if f.Kind == "" && len(f.Args) == 0 {
		return ErrInvalidFragment
	}
	return p.push(NewFragment(f.Kind, f.Args...))
}

func (p *Parts) push(f Fragment) error {
	if _, ok := p.accepts[f.Kind]; !ok {
		return &InvalidClauseKindError{Kind: string(f.Kind)}
	}
	p.fragments = append(p.fragments, f)
	return nil
}

// Flush returns the buffered fragments in append order and empties the
// buffer. Flushing an empty buffer returns nil.
func (p *Parts) Flush() []Fragment {
	out := p.fragments
	p.fragments = nil
	return out
}

func (p *Parts) Len() int {
	return len(p.fragments)
}

func (p *Parts) Empty() bool {
	return len(p.fragments) == 0
}

package grammar

import (
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Spells reports whether text is a complete spelling of the lexical
// production named terminal.
func (g *Grammar) Spells(terminal, text string) bool {
	if text == "" || !g.lexical[terminal] {
		return false
	}
	s := &speller{
		grammar:  g.source,
		input:    text,
		memo:     make(map[spellKey][]int),
		visiting: make(map[spellKey]bool),
	}
	for _, end := range s.matchName(terminal, 0) {
		if end == len(text) {
			return true
		}
	}
	return false
}

type spellKey struct {
	name   string
	offset int
}

// speller matches lexical productions against a string, tracking every
// offset a production can end at.
type speller struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[spellKey][]int
	visiting map[spellKey]bool
}

func (s *speller) match(expr ebnf.Expression, offset int) []int {
	switch e := expr.(type) {
	case nil:
		return []int{offset}
	case *ebnf.Token:
		if strings.HasPrefix(s.input[offset:], e.String) {
			return []int{offset + len(e.String)}
		}
		return nil
	case *ebnf.Range:
		if offset >= len(s.input) || len(e.Begin.String) != 1 || len(e.End.String) != 1 {
			return nil
		}
		if ch := s.input[offset]; ch >= e.Begin.String[0] && ch <= e.End.String[0] {
			return []int{offset + 1}
		}
		return nil
	case ebnf.Sequence:
		ends := []int{offset}
		for _, item := range e {
			var next []int
			for _, pos := range ends {
				next = append(next, s.match(item, pos)...)
			}
			ends = dedup(next)
			if len(ends) == 0 {
				return nil
			}
		}
		return ends
	case ebnf.Alternative:
		var ends []int
		for _, alt := range e {
			ends = append(ends, s.match(alt, offset)...)
		}
		return dedup(ends)
	case *ebnf.Option:
		return dedup(append([]int{offset}, s.match(e.Body, offset)...))
	case *ebnf.Repetition:
		ends := []int{offset}
		frontier := []int{offset}
		for len(frontier) > 0 {
			var next []int
			for _, pos := range frontier {
				for _, end := range s.match(e.Body, pos) {
					if end > pos {
						next = append(next, end)
					}
				}
			}
			frontier = dedup(next)
			ends = dedup(append(ends, frontier...))
		}
		return ends
	case *ebnf.Group:
		return s.match(e.Body, offset)
	case *ebnf.Name:
		return s.matchName(e.String, offset)
	}
	return nil
}

func (s *speller) matchName(name string, offset int) []int {
	key := spellKey{name: name, offset: offset}
	if ends, ok := s.memo[key]; ok {
		return ends
	}
	// left recursion
	if s.visiting[key] {
		return nil
	}
	prod, ok := s.grammar[name]
	if !ok {
		return nil
	}

	s.visiting[key] = true
	ends := s.match(prod.Expr, offset)
	delete(s.visiting, key)

	s.memo[key] = ends
	return ends
}

func dedup(xs []int) []int {
	if len(xs) < 2 {
		return xs
	}
	sort.Ints(xs)
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

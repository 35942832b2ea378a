package parser

// LeftAssociative lists the rules whose right-recursive productions must be
// regrouped to associate to the left.
var LeftAssociative = []string{"Sub", "Div"}

// FixAssociativity rewrites chains of the given rules, which the grammar
// matches right-recursively, into left-nested triples. The tree is first
// flattened bottom-up and then rebuilt bottom-up; m is not modified.
func FixAssociativity(m *Match, rules ...string) *Match {
	fix := make(map[string]bool, len(rules))
	for _, r := range rules {
		fix[r] = true
	}
	return buildLeft(flatten(m, fix), fix)
}

// flatten splices a trailing same-rule child into its parent, turning
// (a op (b op (c))) into a single chain (a op b op c).
func flatten(m *Match, fix map[string]bool) *Match {
	if m.IsTerminal() {
		return m
	}
	children := make([]*Match, 0, len(m.Children))
	for _, child := range m.Children {
		children = append(children, flatten(child, fix))
	}
	if fix[m.Rule] && len(children) == 3 {
		if last := children[2]; !last.IsTerminal() && last.Rule == m.Rule {
			children = append(children[:2], last.Children...)
		}
	}
	return &Match{Rule: m.Rule, Children: children}
}

// buildLeft regroups a flat chain longer than one triple as ((a op b) op c)...
func buildLeft(m *Match, fix map[string]bool) *Match {
	if m.IsTerminal() {
		return m
	}
	children := make([]*Match, 0, len(m.Children))
	for _, child := range m.Children {
		children = append(children, buildLeft(child, fix))
	}
	if fix[m.Rule] {
		for len(children) > 3 {
			head := &Match{Rule: m.Rule, Children: append([]*Match(nil), children[:3]...)}
			children = append([]*Match{head}, children[3:]...)
		}
	}
	return &Match{Rule: m.Rule, Children: children}
}

package stats

import "strings"

// Global is the union of all partition tables. Its keys are owned copies,
// so it stays valid after the input buffer is released. Aggregates are
// updated in place; assigning to an existing string key would replace the
// stored key with the borrowed one.
type Global map[string]*Aggregate

// Merge folds the partition tables into a new Global. The result does not
// depend on the order of parts.
func Merge(parts ...*Table) Global {
	g := make(Global, initialSize)
	for _, t := range parts {
		g.Fold(t)
	}
	return g
}

// Fold merges one partition table into g.
func (g Global) Fold(t *Table) {
	t.Each(func(key string, a Aggregate) {
		if cur, ok := g[key]; ok {
			cur.Merge(a)
			return
		}
		g[strings.Clone(key)] = &a
	})
}

// Combine merges another Global into g. o is left untouched.
func (g Global) Combine(o Global) {
	for key, a := range o {
		if cur, ok := g[key]; ok {
			cur.Merge(*a)
			continue
		}
		c := *a
		g[key] = &c
	}
}

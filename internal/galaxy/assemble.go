package galaxy

import "sort"

// Assemble orders bodies into the canonical galaxy layout: by system name,
// then body name. The sort is stable, so among duplicate (system, name) pairs
// the input order is preserved.
func Assemble(bodies []Body) Galaxy {
	g := make(Galaxy, len(bodies))
	copy(g, bodies)
	sort.SliceStable(g, func(i, j int) bool {
		if g[i].System != g[j].System {
			return g[i].System < g[j].System
		}
		return g[i].Name < g[j].Name
	})
	return g
}

// SystemCounts returns the number of bodies recorded for each system.
func (g Galaxy) SystemCounts() map[string]int {
	counts := make(map[string]int)
	for _, b := range g {
		counts[b.System]++
	}
	return counts
}

// Systems returns the distinct system names in sorted order.
func (g Galaxy) Systems() []string {
	seen := make(map[string]bool)
	var names []string
	for _, b := range g {
		if !seen[b.System] {
			seen[b.System] = true
			names = append(names, b.System)
		}
	}
	sort.Strings(names)
	return names
}

// Package dom models the form controls discovered on a live page.
package dom

// Radio describes one radio input discovered on the current page.
type Radio struct {
	Name  string // group name shared by mutually exclusive options
	Value string // value submitted when this option is selected
	ID    string // DOM id, used to locate the associated label
}

// Group is one mutually exclusive set of options sharing a name.
type Group struct {
	Name   string
	Values []string // distinct values in discovery order
}

// Option pairs an option's value with the DOM id of its input.
// Two options may share a value; the id is what distinguishes them.
type Option struct {
	Value string
	ID    string
}

// OptionGroup is a radio group whose options are addressed by id,
// for pages where the label element must be clicked instead of the input.
type OptionGroup struct {
	Name    string
	Options []Option // distinct by id, in discovery order
}

// Groups buckets radios by group name, collecting each group's distinct
// values in discovery order. Radios missing a name or value are skipped.
func Groups(radios []Radio) []Group {
	var groups []Group
	index := make(map[string]int)
	seen := make(map[string]map[string]bool)

	for _, r := range radios {
		if r.Name == "" || r.Value == "" {
			continue
		}
		i, ok := index[r.Name]
		if !ok {
			i = len(groups)
			index[r.Name] = i
			groups = append(groups, Group{Name: r.Name})
			seen[r.Name] = make(map[string]bool)
		}
		if seen[r.Name][r.Value] {
			continue
		}
		seen[r.Name][r.Value] = true
		groups[i].Values = append(groups[i].Values, r.Value)
	}

	return groups
}

// GroupOptions buckets radios by group name, keeping (value, id) tuples.
// Radios missing a name, value, or id are skipped. Tuples are distinct
// by id, not value: two options sharing a value stay separate choices.
func GroupOptions(radios []Radio) []OptionGroup {
	var groups []OptionGroup
	index := make(map[string]int)
	seen := make(map[string]map[string]bool)

	for _, r := range radios {
		if r.Name == "" || r.Value == "" || r.ID == "" {
			continue
		}
		i, ok := index[r.Name]
		if !ok {
			i = len(groups)
			index[r.Name] = i
			groups = append(groups, OptionGroup{Name: r.Name})
			seen[r.Name] = make(map[string]bool)
		}
		if seen[r.Name][r.ID] {
			continue
		}
		seen[r.Name][r.ID] = true
		groups[i].Options = append(groups[i].Options, Option{Value: r.Value, ID: r.ID})
	}

	return groups
}

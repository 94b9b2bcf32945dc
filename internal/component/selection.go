package component

import (
	"slices"
	"strings"
)

// Selection is the set of component ids chosen for one run. It is built once
// and never mutated; accessors return copies.
type Selection struct {
	ids map[Kind][]string
}

// NewSelection builds a Selection from per-kind id lists. Ids are trimmed,
// deduplicated, and sorted; empty ids are dropped.
func NewSelection(ids map[Kind][]string) Selection {
	sel := Selection{ids: make(map[Kind][]string, len(ids))}
	for kind, list := range ids {
		clean := make([]string, 0, len(list))
		for _, id := range list {
			id = strings.TrimSpace(id)
			if id != "" {
				clean = append(clean, id)
			}
		}
		slices.Sort(clean)
		clean = slices.Compact(clean)
		if len(clean) > 0 {
			sel.ids[kind] = clean
		}
	}
	return sel
}

// IDs returns the selected ids for kind in sorted order.
func (s Selection) IDs(kind Kind) []string {
	return slices.Clone(s.ids[kind])
}

// Has reports whether id is selected for kind.
func (s Selection) Has(kind Kind, id string) bool {
	_, found := slices.BinarySearch(s.ids[kind], id)
	return found
}

// Len returns the total number of selected ids across kinds.
func (s Selection) Len() int {
	n := 0
	for _, list := range s.ids {
		n += len(list)
	}
	return n
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool { return s.Len() == 0 }

// Builder accumulates choices (e.g., across interactive menus) before
// freezing them into a Selection.
type Builder struct {
	ids map[Kind][]string
}

// Set replaces the ids chosen for kind.
func (b *Builder) Set(kind Kind, ids []string) *Builder {
	if b.ids == nil {
		b.ids = make(map[Kind][]string)
	}
	b.ids[kind] = slices.Clone(ids)
	return b
}

// Add appends ids for kind.
func (b *Builder) Add(kind Kind, ids ...string) *Builder {
	if b.ids == nil {
		b.ids = make(map[Kind][]string)
	}
	b.ids[kind] = append(b.ids[kind], ids...)
	return b
}

// Build returns the immutable Selection.
func (b *Builder) Build() Selection {
	return NewSelection(b.ids)
}

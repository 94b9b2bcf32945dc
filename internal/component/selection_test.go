package component

import (
	"slices"
	"testing"
)

func TestNewSelectionNormalizes(t *testing.T) {
	sel := NewSelection(map[Kind][]string{
		KindSkill: {"b", "a", "b", " ", " c "},
		KindHook:  {},
	})

	if got, want := sel.IDs(KindSkill), []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("IDs(skill) = %v, want %v", got, want)
	}
	if got := sel.IDs(KindHook); len(got) != 0 {
		t.Errorf("IDs(hook) = %v, want empty", got)
	}
	if sel.Len() != 3 {
		t.Errorf("Len() = %d, want 3", sel.Len())
	}
	if !sel.Has(KindSkill, "c") || sel.Has(KindAgent, "c") {
		t.Error("Has reported wrong membership")
	}
}

func TestSelectionIsImmutable(t *testing.T) {
	input := map[Kind][]string{KindAgent: {"reviewer"}}
	sel := NewSelection(input)
	input[KindAgent][0] = "changed"

	ids := sel.IDs(KindAgent)
	ids[0] = "mutated"

	if got := sel.IDs(KindAgent); got[0] != "reviewer" {
		t.Errorf("selection changed after construction: %v", got)
	}
}

func TestBuilder(t *testing.T) {
	var b Builder
	b.Set(KindSkill, []string{"x"}).Add(KindSkill, "y").Add(KindMCP, "github")
	sel := b.Build()

	if got, want := sel.IDs(KindSkill), []string{"x", "y"}; !slices.Equal(got, want) {
		t.Errorf("IDs(skill) = %v, want %v", got, want)
	}
	if !sel.Has(KindMCP, "github") {
		t.Error("missing mcp selection")
	}

	b.Set(KindSkill, nil)
	if !sel.Has(KindSkill, "x") {
		t.Error("built selection changed after builder mutation")
	}
	if (Selection{}).IsEmpty() != true {
		t.Error("zero Selection should be empty")
	}
}

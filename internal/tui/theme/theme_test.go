package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("no-such-theme").Name; got != FlexokiDark.Name {
		t.Errorf("unknown theme = %q, want %q", got, FlexokiDark.Name)
	}
}

func TestNextCycles(t *testing.T) {
	name := All[0].Name
	seen := map[string]bool{}
	for range All {
		seen[name] = true
		name = Next(name)
	}
	if name != All[0].Name {
		t.Errorf("after a full cycle got %q, want %q", name, All[0].Name)
	}
	if len(seen) != len(All) {
		t.Errorf("visited %d themes, want %d", len(seen), len(All))
	}
	if Next("bogus") != All[0].Name {
		t.Error("unknown name should restart the cycle")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(All) || names[0] != "flexoki-dark" {
		t.Errorf("Names() = %v", names)
	}
}

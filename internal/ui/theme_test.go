package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Gruvbox" || names[2] != "Paper" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Gruvbox Paper]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Gruvbox" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Gruvbox", got)
	}
	if got := NextTheme("Paper"); got != "Nightfox" {
		t.Fatalf("NextTheme(Paper) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%s).Name = %q, want %q", name, got, name)
		}
	}

	unknown := GetTheme("Unknown")
	if unknown.Name != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", unknown.Name)
	}
}

func TestThemesDefineChartColors(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		if th.ReadBar == "" || th.UnreadBar == "" || th.Star == "" {
			t.Fatalf("theme %s is missing chart colors: %+v", name, th)
		}
		if th.ReadBar == th.UnreadBar {
			t.Fatalf("theme %s uses the same color for read and unread", name)
		}
	}
}

package learning

import "testing"

func TestClassifyTide(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "unknown"},
		{"Incoming", "incoming"},
		{"rising fast", "incoming"},
		{"Outgoing", "outgoing"},
		{"falling", "outgoing"},
		{"slack high", "slack"},
		{"high tide", "slack"},
		{"low tide", "slack"},
		{"sideways", "unknown"},
	}
	for _, tt := range tests {
		if got := ClassifyTide(tt.in); got != tt.want {
			t.Errorf("ClassifyTide(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassifyClarity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "clean"},
		{"Muddy", "muddy"},
		{"dirty water", "muddy"},
		{"stained", "stained"},
		{"a bit off", "stained"},
		{"clear", "clean"},
	}
	for _, tt := range tests {
		if got := ClassifyClarity(tt.in); got != tt.want {
			t.Errorf("ClassifyClarity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassifyWind_EmptyIsNeutral(t *testing.T) {
	if got := ClassifyWind("", "speckled_trout"); got != "neutral" {
		t.Errorf("expected empty direction to be neutral, got %q", got)
	}
}

func TestClassifyWind_UnknownSpeciesIsNeutral(t *testing.T) {
	if got := ClassifyWind("NW", "totally_unknown_species"); got != "neutral" {
		t.Errorf("expected unknown species with no wind profile to be neutral, got %q", got)
	}
}

func TestClassifyWind_FavorableAndUnfavorable(t *testing.T) {
	if got := ClassifyWind("SE", "speckled_trout"); got != "favorable" {
		t.Errorf("expected SE to be favorable for speckled_trout, got %q", got)
	}
	if got := ClassifyWind("NW", "speckled_trout"); got != "unfavorable" {
		t.Errorf("expected NW to be unfavorable for speckled_trout, got %q", got)
	}
	if got := ClassifyWind("W", "speckled_trout"); got != "neutral" {
		t.Errorf("expected W (neither listed) to be neutral for speckled_trout, got %q", got)
	}
}

func TestClassifyCurrent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "low"},
		{0.2, "low"},
		{0.3, "medium"},
		{0.59, "medium"},
		{0.6, "high"},
		{2, "high"},
	}
	for _, tt := range tests {
		if got := ClassifyCurrent(tt.in); got != tt.want {
			t.Errorf("ClassifyCurrent(%f) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package rules

import "testing"

func f(v float64) *float64 { return &v }

func TestIsNorthWind(t *testing.T) {
	for _, d := range []string{"N", "nne", "NE", "NW"} {
		if !IsNorthWind(d) {
			t.Errorf("expected %q to be a north wind", d)
		}
	}
	for _, d := range []string{"S", "SE", "E", "W", ""} {
		if IsNorthWind(d) {
			t.Errorf("expected %q not to be a north wind", d)
		}
	}
}

func TestHasStrongNorthWindPenalty(t *testing.T) {
	if !HasStrongNorthWindPenalty("N", 12, f(55), f(58)) {
		t.Error("expected strong penalty for north wind, 12mph, cold temps")
	}
	if HasStrongNorthWindPenalty("N", 5, f(55), f(58)) {
		t.Error("expected no strong penalty below 10mph")
	}
	if HasStrongNorthWindPenalty("N", 12, f(70), f(72)) {
		t.Error("expected no strong penalty when temps aren't cold")
	}
	if HasStrongNorthWindPenalty("S", 12, f(55), f(58)) {
		t.Error("expected no strong penalty on a south wind")
	}
}

func TestHasModerateNorthWindPenalty(t *testing.T) {
	if !HasModerateNorthWindPenalty("NW") {
		t.Error("expected moderate penalty for any north wind given the dock's shallow depth")
	}
	if HasModerateNorthWindPenalty("SW") {
		t.Error("expected no moderate penalty for a non-north wind")
	}
}

func TestDepthShiftFt(t *testing.T) {
	if got := DepthShiftFt("speckled_trout", "N", 12, f(55), f(58)); got != 3 {
		t.Errorf("expected strong penalty shift of 3 for speckled_trout, got %d", got)
	}
	if got := DepthShiftFt("white_trout", "N", 12, f(55), f(58)); got != 2 {
		t.Errorf("expected strong penalty shift of 2 for white_trout, got %d", got)
	}
	if got := DepthShiftFt("sheepshead", "N", 12, f(55), f(58)); got != 1 {
		t.Errorf("expected strong penalty shift of 1 for default species, got %d", got)
	}
	if got := DepthShiftFt("redfish", "N", 5, f(70), f(72)); got != 1 {
		t.Errorf("expected moderate penalty shift of 1 for redfish, got %d", got)
	}
	if got := DepthShiftFt("sheepshead", "N", 5, f(70), f(72)); got != 0 {
		t.Errorf("expected no moderate shift for sheepshead, got %d", got)
	}
	if got := DepthShiftFt("redfish", "S", 20, f(40), f(40)); got != 0 {
		t.Errorf("expected no shift without a north wind, got %d", got)
	}
}

func TestApplyDepthShift(t *testing.T) {
	min, max := ApplyDepthShift(5, 6, 3)
	if min != 7 || max != 7 {
		t.Errorf("expected both bounds capped at 7, got (%d, %d)", min, max)
	}
	min, max = ApplyDepthShift(2, 4, 1)
	if min != 3 || max != 5 {
		t.Errorf("expected (3, 5), got (%d, %d)", min, max)
	}
}

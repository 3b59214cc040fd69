package cache

import "testing"

func TestSmoothingWeight_DecreasesAsCatchesGrow(t *testing.T) {
	low := SmoothingWeight(2)
	mid := SmoothingWeight(30)
	high := SmoothingWeight(200)
	if !(low > mid && mid > high) {
		t.Errorf("expected smoothing weight to decrease with more catches, got low=%f mid=%f high=%f", low, mid, high)
	}
}

func TestSmoothingWeight_CapsAboveOneHundredCatches(t *testing.T) {
	at100 := SmoothingWeight(100)
	at500 := SmoothingWeight(500)
	if at100 != at500 {
		t.Errorf("expected weight to cap at 100 catches, got at100=%f at500=%f", at100, at500)
	}
}

func TestSmooth_NoPreviousReturnsRawClamped(t *testing.T) {
	if got := Smooth(0, 150, false, 5); got != 100 {
		t.Errorf("expected raw score clamped to 100 when no previous score, got %f", got)
	}
	if got := Smooth(0, -10, false, 5); got != 0 {
		t.Errorf("expected raw score clamped to 0, got %f", got)
	}
}

func TestSmooth_BlendsTowardRawByWeight(t *testing.T) {
	got := Smooth(50, 90, true, 2)
	if got <= 50 || got >= 90 {
		t.Errorf("expected smoothed score strictly between old and raw, got %f", got)
	}
}

func TestSmooth_ManyCatchesMovesLessTowardRaw(t *testing.T) {
	movedFew := Smooth(50, 90, true, 2) - 50
	movedMany := Smooth(50, 90, true, 200) - 50
	if movedMany >= movedFew {
		t.Errorf("expected fewer catches to move the score more: few=%f many=%f", movedFew, movedMany)
	}
}

package engine

import (
	"math"
	"testing"

	"SignalDesk/internal/domain/models"
)

func window(closes ...float64) []models.PricePoint {
	out := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		out[i] = models.PricePoint{TS: int64(1700000000 + i*86400), Close: c}
	}
	return out
}

func TestDetectDrawdownCrisis(t *testing.T) {
	// -10% over 5 trading days
	res := DetectDrawdown(window(100, 99, 97, 95, 92, 90))
	if res.Mode != models.DrawdownCrisis {
		t.Fatalf("expected CRISIS, got %v", res.Mode)
	}
	if math.Abs(res.PctChange-(-10)) > 1e-9 {
		t.Fatalf("expected -10 pct, got %f", res.PctChange)
	}
	if res.WindowDays != 5 {
		t.Fatalf("expected 5 window days, got %d", res.WindowDays)
	}
}

func TestDetectDrawdownBigDropLongWindowIsNormal(t *testing.T) {
	// -12% but spread over 9 trading days: not a crisis
	res := DetectDrawdown(window(100, 99, 98, 97, 96, 95, 93, 91, 89, 88))
	if res.Mode != models.DrawdownNormal {
		t.Fatalf("expected NORMAL for slow decline, got %v", res.Mode)
	}
}

func TestDetectDrawdownSmallDropIsNormal(t *testing.T) {
	res := DetectDrawdown(window(100, 98, 97, 96))
	if res.Mode != models.DrawdownNormal {
		t.Fatalf("expected NORMAL, got %v", res.Mode)
	}
	if math.Abs(res.PctChange-(-4)) > 1e-9 {
		t.Fatalf("expected -4 pct, got %f", res.PctChange)
	}
}

func TestDetectDrawdownBoundary(t *testing.T) {
	// exactly -8 over exactly 7 trading days still counts
	res := DetectDrawdown(window(100, 99, 98, 97, 96, 95, 94, 92))
	if res.WindowDays != 7 {
		t.Fatalf("expected 7 window days, got %d", res.WindowDays)
	}
	if res.Mode != models.DrawdownCrisis {
		t.Fatalf("expected CRISIS at the -8/7d boundary, got %v", res.Mode)
	}
}

func TestDetectDrawdownInsufficientWindow(t *testing.T) {
	for _, w := range [][]models.PricePoint{nil, window(100)} {
		res := DetectDrawdown(w)
		if res.Mode != models.DrawdownNormal || res.PctChange != 0 {
			t.Fatalf("expected NORMAL with zero change, got %+v", res)
		}
	}
}

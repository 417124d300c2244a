package svg

import (
	"strings"
	"testing"
)

func TestBarsRendersOneRectPerSeriesEntry(t *testing.T) {
	out, err := Bars(720, 240,
		[]float64{2400000, 2700000},
		[]float64{1900000, 2050000},
		[]string{"Jan", "Feb"},
		BarOpts{Title: "Revenue vs Expenses", SeriesALabel: "Revenue", SeriesBLabel: "Expenses"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(out)
	// 2 labels x 2 series + 2 legend swatches
	if got := strings.Count(body, "<rect"); got != 6 {
		t.Fatalf("expected 6 rects got %d", got)
	}
	if !strings.Contains(body, "Revenue Jan") {
		t.Fatalf("missing aria label for first bar: %s", body)
	}
}

func TestBarsRejectsMismatchedSeries(t *testing.T) {
	if _, err := Bars(0, 0, []float64{1}, []float64{1, 2}, []string{"Jan"}, BarOpts{}); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if _, err := Bars(0, 0, nil, nil, nil, BarOpts{}); err == nil {
		t.Fatal("expected labels required error")
	}
}

func TestBarsRejectsNegativeValues(t *testing.T) {
	if _, err := Bars(0, 0, []float64{-1}, []float64{1}, []string{"Jan"}, BarOpts{}); err == nil {
		t.Fatal("expected negative value error")
	}
}

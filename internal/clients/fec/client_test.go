package fec

import (
	"testing"
)

func TestBuildBreakdown_OrdersByAmountDesc(t *testing.T) {
	sums := map[string]float64{
		"Acme Corp":   500,
		"Big PAC":     2500,
		"Tiny Donors": 100,
		"Medium Fund": 1200,
	}
	entries := BuildBreakdown(sums, 10)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	want := []string{"Big PAC", "Medium Fund", "Acme Corp", "Tiny Donors"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, entries[i].Name)
		}
	}
}

func TestBuildBreakdown_TruncatesToTopN(t *testing.T) {
	sums := map[string]float64{}
	for i := 0; i < 25; i++ {
		sums[string(rune('A'+i))] = float64(i)
	}
	entries := BuildBreakdown(sums, 10)
	if len(entries) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(entries))
	}
	if entries[0].Amount != 24 {
		t.Fatalf("expected largest amount first, got %f", entries[0].Amount)
	}
}

func TestBuildBreakdown_TiesBreakOnName(t *testing.T) {
	sums := map[string]float64{
		"Zeta":  100,
		"Alpha": 100,
		"Mid":   100,
	}
	entries := BuildBreakdown(sums, 10)
	want := []string{"Alpha", "Mid", "Zeta"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, entries[i].Name)
		}
	}
}

func TestBuildBreakdown_Empty(t *testing.T) {
	entries := BuildBreakdown(map[string]float64{}, 10)
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

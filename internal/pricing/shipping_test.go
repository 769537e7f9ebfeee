package pricing

import "testing"

func TestCostFor_KnownWilayas(t *testing.T) {
	tests := []struct {
		wilaya string
		want   int64
	}{
		{"16 - الجزائر", 450},
		{"09 - البليدة", 600},
		{"32 - البيض", 1000},
		{"58 - المنيعة", 950},
	}

	for _, tt := range tests {
		if got := CostFor(tt.wilaya); got != tt.want {
			t.Errorf("CostFor(%q) = %d, want %d", tt.wilaya, got, tt.want)
		}
	}
}

func TestCostFor_EveryMappedWilaya(t *testing.T) {
	for _, w := range Wilayas() {
		if got := CostFor(w); got != shippingFees[w] {
			t.Errorf("CostFor(%q) = %d, want %d", w, got, shippingFees[w])
		}
	}
}

func TestCostFor_DefaultFallback(t *testing.T) {
	tests := []string{
		"",
		"unknown",
		"01 - أدرار",
		"16 - الجزائر ", // лишний пробел: нормализация не выполняется
	}

	for _, w := range tests {
		if got := CostFor(w); got != DefaultFee() {
			t.Errorf("CostFor(%q) = %d, want default %d", w, got, DefaultFee())
		}
	}
}

func TestDefaultFee(t *testing.T) {
	if DefaultFee() != 800 {
		t.Fatalf("DefaultFee() = %d, want 800", DefaultFee())
	}
}

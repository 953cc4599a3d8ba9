package zone

import (
	"testing"

	"github.com/shopspring/decimal"

	"porte-calc/internal/config"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func defaultSchedule(t *testing.T) *Schedule {
	t.Helper()
	s, err := FromConfig(config.Default().Zones)
	if err != nil {
		t.Fatalf("default schedule invalid: %v", err)
	}
	return s
}

func TestPriceBands(t *testing.T) {
	s := defaultSchedule(t)
	cases := []struct {
		distance string
		want     string
	}{
		{"1", "25"},
		{"3", "25"}, // band boundary is inclusive
		{"3.1", "35"},
		{"5", "35"},
		{"10", "50"},
		{"20", "70"},
	}
	for _, c := range cases {
		got := s.Price(d(c.distance))
		if !got.Equal(d(c.want)) {
			t.Errorf("distance %s: expected %s, got %s", c.distance, c.want, got)
		}
	}
}

func TestPriceBeyondLastBand(t *testing.T) {
	s := defaultSchedule(t)
	// Extra km counted from the second band boundary (5 km):
	// 25 km -> 70 + (25-5)*1 = 90
	got := s.Price(d("25"))
	if !got.Equal(d("90")) {
		t.Fatalf("expected 90, got %s", got)
	}
}

func TestPriceRounding(t *testing.T) {
	s := defaultSchedule(t)
	s.ExtraPerKM = d("1.005")
	// 70 + 20*1.005 = 90.10
	got := s.Price(d("25"))
	if !got.Equal(d("90.10")) {
		t.Fatalf("expected 90.10, got %s", got)
	}
}

func TestValidateRejectsUnorderedBands(t *testing.T) {
	_, err := FromConfig(config.ZonesConfig{
		Bands:      []config.ZoneBand{{LimitKM: 5, Price: 35}, {LimitKM: 3, Price: 25}},
		ExtraPerKM: 1,
	})
	if err == nil {
		t.Fatal("expected error for unordered bands")
	}
}

func TestValidateRejectsEmptySchedule(t *testing.T) {
	if _, err := FromConfig(config.ZonesConfig{}); err == nil {
		t.Fatal("expected error for empty schedule")
	}
}

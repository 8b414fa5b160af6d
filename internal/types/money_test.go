package types

import "testing"

func TestMoneySplit(t *testing.T) {
	cases := []struct {
		cents int64
		parts int
		want  int64
	}{
		{6000, 3, 2000},
		{5500, 2, 2750},
		{4100, 3, 1367}, // rounds half up
		{7000, 4, 1750},
		{5000, 1, 5000},
	}
	for _, tc := range cases {
		got := BRL(tc.cents).Split(tc.parts)
		if got.Amount != tc.want {
			t.Errorf("BRL(%d).Split(%d) = %d, want %d", tc.cents, tc.parts, got.Amount, tc.want)
		}
		if got.Currency != "BRL" {
			t.Errorf("currency = %q", got.Currency)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{6000, "R$ 60,00"},
		{4550, "R$ 45,50"},
		{1367, "R$ 13,67"},
		{5, "R$ 0,05"},
	}
	for _, tc := range cases {
		if got := BRL(tc.cents).String(); got != tc.want {
			t.Errorf("BRL(%d).String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

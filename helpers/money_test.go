package helpers

import "testing"

func TestDebtAmount(t *testing.T) {
	tests := []struct {
		amount int64
		ratio  int64
		want   string
	}{
		{1000, 1, "10.00"},
		{333, 1, "3.33"},
		{555, 3, "16.65"},
		{1, 1, "0.01"},
		{50, 1, "0.50"},
		{1, 50, "0.50"},
		{333, 2, "6.66"},
		{0, 1, "0.00"},
		{125, 1, "1.25"},
		{111, 7, "7.77"},
		{3, 25, "0.75"},
	}

	for _, tt := range tests {
		if got := DisplayAmount(tt.amount, tt.ratio); got != tt.want {
			t.Errorf("DisplayAmount(%d, %d) = %s, want %s", tt.amount, tt.ratio, got, tt.want)
		}
	}
}

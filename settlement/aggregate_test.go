package settlement

import (
	"errors"
	"reflect"
	"testing"
)

func ptr(v int64) *int64 { return &v }

func TestAggregateAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    map[int64]int64
	}{
		{
			name: "winners and losers",
			records: []Record{
				{UserID: 1, BuyIn: ptr(1000), BuyOut: ptr(3000)},
				{UserID: 2, BuyIn: ptr(2000), BuyOut: ptr(1000)},
				{UserID: 3, BuyIn: ptr(1000), BuyOut: ptr(0)},
			},
			want: map[int64]int64{1: 2000, 2: -1000, 3: -1000},
		},
		{
			name: "break-even player excluded",
			records: []Record{
				{UserID: 1, BuyIn: ptr(500), BuyOut: ptr(1000)},
				{UserID: 2, BuyIn: ptr(1000), BuyOut: ptr(1000)},
				{UserID: 3, BuyIn: ptr(1000), BuyOut: ptr(500)},
			},
			want: map[int64]int64{1: 500, 3: -500},
		},
		{
			name:    "no records",
			records: nil,
			want:    map[int64]int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AggregateAndValidate(tt.records)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregateAndValidateMismatch(t *testing.T) {
	records := []Record{
		{UserID: 1, BuyIn: ptr(1000), BuyOut: ptr(1100)},
		{UserID: 2, BuyIn: ptr(1000), BuyOut: ptr(800)},
	}
	_, err := AggregateAndValidate(records)

	var mismatch *BalanceMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want BalanceMismatchError", err)
	}
	if mismatch.Pot != 2000 {
		t.Errorf("pot = %d, want 2000", mismatch.Pot)
	}
	if mismatch.Delta != 100 {
		t.Errorf("delta = %d, want 100", mismatch.Delta)
	}
}

func TestAggregateAndValidateIncompletePlayers(t *testing.T) {
	records := []Record{
		{UserID: 5, BuyIn: ptr(1000), BuyOut: ptr(1000)},
		{UserID: 3, BuyIn: ptr(1000)},
		{UserID: 8, BuyIn: nil, BuyOut: nil},
	}
	_, err := AggregateAndValidate(records)

	var incomplete *IncompletePlayersError
	if !errors.As(err, &incomplete) {
		t.Fatalf("got %v, want IncompletePlayersError", err)
	}
	if want := []int64{3, 8}; !reflect.DeepEqual(incomplete.UserIDs, want) {
		t.Errorf("remaining players = %v, want %v", incomplete.UserIDs, want)
	}
}

func TestAggregateWithBank(t *testing.T) {
	// Player 3's record was removed from a balanced game; their net of -1000
	// lands on the host as the bank holder.
	records := []Record{
		{UserID: 1, BuyIn: ptr(1000), BuyOut: ptr(2000)},
		{UserID: 2, BuyIn: ptr(1000), BuyOut: ptr(1000)},
	}
	got := AggregateWithBank(records, 99)
	want := map[int64]int64{1: 1000, 99: -1000}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// Still solvable end to end.
	transfers := Equalize(got, 1)
	if len(transfers) != 1 || transfers[0].DebtorID != 99 || transfers[0].CreditorID != 1 {
		t.Fatalf("unexpected transfers %+v", transfers)
	}
}

func TestAggregateWithBankBalancedRoster(t *testing.T) {
	records := []Record{
		{UserID: 1, BuyIn: ptr(1000), BuyOut: ptr(1500)},
		{UserID: 2, BuyIn: ptr(1000), BuyOut: ptr(500)},
	}
	got := AggregateWithBank(records, 99)
	want := map[int64]int64{1: 500, 2: -500}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("bank should stay out of a balanced roster: got %v, want %v", got, want)
	}
}

func TestROI(t *testing.T) {
	tests := []struct {
		name   string
		buyIn  *int64
		buyOut *int64
		want   *float64
	}{
		{"doubled up", ptr(1000), ptr(2000), fptr(100)},
		{"busted", ptr(1000), ptr(0), fptr(-100)},
		{"third", ptr(3000), ptr(4000), fptr(33.33)},
		{"zero buy-in", ptr(0), ptr(500), nil},
		{"missing buy-in", nil, ptr(500), nil},
		{"missing buy-out", ptr(500), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ROI(tt.buyIn, tt.buyOut)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("got %v, want %v", *got, *tt.want)
			}
		})
	}
}

func fptr(v float64) *float64 { return &v }

package settlement

import (
	"reflect"
	"testing"
)

func TestEqualizeBalanceAndTransferCount(t *testing.T) {
	tests := []struct {
		name     string
		balances map[int64]int64
		want     int
	}{
		{"simple pair", map[int64]int64{1: 1000, 2: -1000}, 1},
		{"one creditor two debtors", map[int64]int64{1: 2000, 2: -1000, 3: -1000}, 2},
		{"two creditors one debtor", map[int64]int64{1: 1000, 2: 1000, 3: -2000}, 2},
		{"empty", map[int64]int64{}, 0},
		{"all zero", map[int64]int64{1: 0, 2: 0}, 0},
		{"uneven split", map[int64]int64{1: 500, 2: -200, 3: -300}, 2},
		{"two exact pairs", map[int64]int64{1: 1000, 2: 1000, 3: -1000, 4: -1000}, 2},
		{"partial match", map[int64]int64{1: 2500, 2: -1000, 3: -1500}, 2},
		{"four players", map[int64]int64{1: 2000, 2: 2000, 3: -1000, 4: -3000}, 3},
		{"one big loser", map[int64]int64{1: 1000, 2: 1000, 3: 1000, 4: -3000}, 3},
		{"five players", map[int64]int64{1: 1000, 2: 1000, 3: -500, 4: -500, 5: -1000}, 3},
		{"six players", map[int64]int64{1: 5300, 2: 700, 3: 1000, 4: -3000, 5: -1000, 6: -3000}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers := Equalize(tt.balances, 42)

			if len(transfers) != tt.want {
				t.Fatalf("got %d transfers, want %d: %+v", len(transfers), tt.want, transfers)
			}

			// Every transfer belongs to the requested game and moves money.
			net := make(map[int64]int64)
			for _, tr := range transfers {
				if tr.GameID != 42 {
					t.Errorf("transfer carries game %d, want 42", tr.GameID)
				}
				if tr.Amount <= 0 {
					t.Errorf("transfer %+v has non-positive amount", tr)
				}
				net[tr.CreditorID] += tr.Amount
				net[tr.DebtorID] -= tr.Amount
			}

			// Applying the transfers must restore every original balance.
			for user, balance := range tt.balances {
				if net[user] != balance {
					t.Errorf("user %d settles to %d, want %d", user, net[user], balance)
				}
			}
			for user := range net {
				if _, ok := tt.balances[user]; !ok {
					t.Errorf("transfer names user %d who had no balance", user)
				}
			}
		})
	}
}

func TestEqualizeLowerBound(t *testing.T) {
	// A settlement can never use fewer transfers than participants minus one.
	balances := map[int64]int64{1: 700, 2: 300, 3: -400, 4: -600}
	transfers := Equalize(balances, 7)
	if len(transfers) < len(balances)-1 {
		t.Fatalf("got %d transfers for %d balances, below spanning bound", len(transfers), len(balances))
	}
}

func TestEqualizeDeterministic(t *testing.T) {
	balances := map[int64]int64{10: 1500, 20: -500, 30: -500, 40: -500}
	first := Equalize(balances, 3)
	for i := 0; i < 20; i++ {
		again := Equalize(balances, 3)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}

func TestEqualizeSimplePairDirection(t *testing.T) {
	transfers := Equalize(map[int64]int64{1: 1000, 2: -1000}, 5)
	want := []Transfer{{GameID: 5, CreditorID: 1, DebtorID: 2, Amount: 1000}}
	if !reflect.DeepEqual(transfers, want) {
		t.Fatalf("got %+v, want %+v", transfers, want)
	}
}

func TestEqualizeSplitsBigLoserAcrossWinners(t *testing.T) {
	// The loser's balance exceeds every single winner, so it must be split
	// across both of them in exactly two transfers.
	transfers := Equalize(map[int64]int64{1: 1000, 2: 1000, 3: -2000}, 8)
	want := []Transfer{
		{GameID: 8, CreditorID: 1, DebtorID: 3, Amount: 1000},
		{GameID: 8, CreditorID: 2, DebtorID: 3, Amount: 1000},
	}
	if !reflect.DeepEqual(transfers, want) {
		t.Fatalf("got %+v, want %+v", transfers, want)
	}
}

func TestEqualizeThreeWayCreditsSingleWinner(t *testing.T) {
	transfers := Equalize(map[int64]int64{1: 2000, 2: -1000, 3: -1000}, 9)
	if len(transfers) != 2 {
		t.Fatalf("got %d transfers, want 2", len(transfers))
	}
	for _, tr := range transfers {
		if tr.CreditorID != 1 {
			t.Errorf("transfer %+v should credit player 1", tr)
		}
		if tr.Amount != 1000 {
			t.Errorf("transfer %+v should move 1000", tr)
		}
	}
}

func TestEqualizePanicsOnUnbalancedInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-zero-sum balances")
		}
	}()
	Equalize(map[int64]int64{1: 1000}, 1)
}

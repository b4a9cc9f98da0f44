package settlement

import (
	"fmt"
	"math"
	"sort"
)

// Record is one player's participation in a game, as seen by the aggregator.
// Nil buy-in or buy-out means the value was never entered.
type Record struct {
	UserID int64
	BuyIn  *int64
	BuyOut *int64
}

// BalanceMismatchError reports that the buy-ins and buy-outs of a game do not
// reconcile. Pot is the sum of buy-ins, Delta is buy-ins minus buy-outs.
type BalanceMismatchError struct {
	Pot   int64
	Delta int64
}

func (e *BalanceMismatchError) Error() string {
	if e.Delta > 0 {
		return fmt.Sprintf("pot %d does not reconcile: buy-outs short by %d", e.Pot, e.Delta)
	}
	return fmt.Sprintf("pot %d does not reconcile: buy-outs exceed buy-ins by %d", e.Pot, -e.Delta)
}

// IncompletePlayersError reports players whose record is missing a buy-in or
// buy-out at settlement time.
type IncompletePlayersError struct {
	UserIDs []int64
}

func (e *IncompletePlayersError) Error() string {
	return fmt.Sprintf("%d player(s) still without buy-out: %v", len(e.UserIDs), e.UserIDs)
}

// AggregateAndValidate derives each player's signed net balance from the
// game's records, excluding players whose net is exactly zero. It refuses with
// IncompletePlayersError when any record lacks a buy-in or buy-out, and with
// BalanceMismatchError when the buy-ins and buy-outs do not sum to the same
// pot. A map returned without error is guaranteed zero-sum and safe to feed
// into Equalize.
func AggregateAndValidate(records []Record) (map[int64]int64, error) {
	var missing []int64
	var buyIns, buyOuts int64
	for _, r := range records {
		if r.BuyIn == nil || r.BuyOut == nil {
			missing = append(missing, r.UserID)
			continue
		}
		buyIns += *r.BuyIn
		buyOuts += *r.BuyOut
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, &IncompletePlayersError{UserIDs: missing}
	}
	if delta := buyIns - buyOuts; delta != 0 {
		return nil, &BalanceMismatchError{Pot: buyIns, Delta: delta}
	}

	balances := make(map[int64]int64, len(records))
	for _, r := range records {
		balances[r.UserID] += *r.BuyOut - *r.BuyIn
	}
	for user, net := range balances {
		if net == 0 {
			delete(balances, user)
		}
	}
	return balances, nil
}

// AggregateWithBank derives net balances like AggregateAndValidate but without
// the pot check; any residual imbalance is assigned to the bank holder so the
// result stays zero-sum. Used when a finished game is rebuilt after a roster
// change: removing a player's record leaves the remaining balances off by that
// player's net, and the host, who holds the physical pot, absorbs it.
func AggregateWithBank(records []Record, bankID int64) map[int64]int64 {
	balances := make(map[int64]int64, len(records)+1)
	var sum int64
	for _, r := range records {
		if r.BuyIn == nil || r.BuyOut == nil {
			continue
		}
		net := *r.BuyOut - *r.BuyIn
		balances[r.UserID] += net
		sum += net
	}
	balances[bankID] -= sum
	for user, net := range balances {
		if net == 0 {
			delete(balances, user)
		}
	}
	return balances
}

// ROI is a player's return on investment for one game, in percent, rounded to
// two decimals. Nil when the buy-in is zero or absent.
func ROI(buyIn, buyOut *int64) *float64 {
	if buyIn == nil || buyOut == nil || *buyIn <= 0 {
		return nil
	}
	roi := float64(*buyOut-*buyIn) / float64(*buyIn) * 100
	rounded := math.Round(roi*100) / 100
	return &rounded
}

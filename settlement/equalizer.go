package settlement

import (
	"fmt"
	"sort"
)

// Transfer is one scheduled payment from a debtor to a creditor for a game.
type Transfer struct {
	GameID     uint
	CreditorID int64
	DebtorID   int64
	Amount     int64
}

// Equalize converts a balance map (creditors positive, debtors negative, minor
// currency units) into the smallest set of pairwise transfers that settles
// every balance exactly. Zero balances are ignored; an empty or all-zero map
// yields nil. The search is deterministic: balances are ordered ascending with
// player id as tie-break and the first minimal solution in that order wins.
//
// The balances must sum to zero. The pot check upstream guarantees that, so a
// violation here is a caller bug and panics.
func Equalize(balances map[int64]int64, gameID uint) []Transfer {
	var sum int64
	type entry struct {
		user    int64
		balance int64
	}
	entries := make([]entry, 0, len(balances))
	for user, balance := range balances {
		sum += balance
		if balance != 0 {
			entries = append(entries, entry{user, balance})
		}
	}
	if sum != 0 {
		panic(fmt.Sprintf("settlement: balances for game %d sum to %d, want 0", gameID, sum))
	}
	if len(entries) == 0 {
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].balance != entries[j].balance {
			return entries[i].balance < entries[j].balance
		}
		return entries[i].user < entries[j].user
	})

	users := make([]int64, len(entries))
	remaining := make([]int64, len(entries))
	for i, e := range entries {
		users[i] = e.user
		remaining[i] = e.balance
	}

	best, ok := solve(users, remaining, 0, gameID)
	if !ok {
		// Unreachable for zero-sum input: pairing the first unsettled balance
		// against opposite-sign partners always terminates.
		panic(fmt.Sprintf("settlement: no settlement found for game %d", gameID))
	}
	return best
}

// solve finds the shortest transfer sequence settling remaining[start:].
// It returns the best path and whether a complete settlement exists on this
// branch. The slice passed in is never mutated.
func solve(users []int64, remaining []int64, start int, gameID uint) ([]Transfer, bool) {
	for start < len(remaining) && remaining[start] == 0 {
		start++
	}
	if start == len(remaining) {
		return nil, true
	}

	var best []Transfer
	found := false
	for i := start + 1; i < len(remaining); i++ {
		if remaining[i] == 0 || (remaining[start] < 0) == (remaining[i] < 0) {
			continue
		}
		amount := min(abs(remaining[start]), abs(remaining[i]))

		next := make([]int64, len(remaining))
		copy(next, remaining)
		if remaining[start] < 0 {
			next[start] += amount
			next[i] -= amount
		} else {
			next[start] -= amount
			next[i] += amount
		}

		debtor, creditor := users[start], users[i]
		if remaining[start] > 0 {
			debtor, creditor = users[i], users[start]
		}

		// Recurse from start, not past it: a min() pairing may leave a
		// residue there that still needs further partners. The zero-skip
		// loop above advances once the position is fully settled.
		rest, ok := solve(users, next, start, gameID)
		if !ok {
			continue
		}
		candidate := make([]Transfer, 0, len(rest)+1)
		candidate = append(candidate, Transfer{
			GameID:     gameID,
			CreditorID: creditor,
			DebtorID:   debtor,
			Amount:     amount,
		})
		candidate = append(candidate, rest...)
		if !found || len(candidate) < len(best) {
			best = candidate
			found = true
		}
	}
	return best, found
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoActiveGame       = errors.New("no active game")
	ErrNoMvpFound         = errors.New("no MVP could be determined")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerInActiveGame = errors.New("player participates in the active game")
)

// PlayersRemainingError names the players still missing a buy-out when
// finalization is requested. The operator needs the names, not a count.
type PlayersRemainingError struct {
	Names []string
}

func (e *PlayersRemainingError) Error() string {
	return fmt.Sprintf("players remaining without buy-out: %s", strings.Join(e.Names, ", "))
}

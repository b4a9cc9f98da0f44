package models

import "gorm.io/gorm"

// Record is one player's participation in one game. Buy-in and buy-out stay
// nil until the corresponding amount is entered; the net result exists only
// once both are set.
type Record struct {
	gorm.Model

	GameID uint  `gorm:"index;uniqueIndex:idx_game_user" json:"game_id"`
	UserID int64 `gorm:"index;uniqueIndex:idx_game_user" json:"user_id"`

	BuyIn  *int64 `json:"buy_in,omitempty"`
	BuyOut *int64 `json:"buy_out,omitempty"`

	// Derived at settlement time and on roster rebuilds.
	NetProfit *int64   `json:"net_profit,omitempty"`
	ROI       *float64 `json:"roi,omitempty"`
}

// Net is buy-out minus buy-in, nil until both sides are entered.
func (r *Record) Net() *int64 {
	if r.BuyIn == nil || r.BuyOut == nil {
		return nil
	}
	net := *r.BuyOut - *r.BuyIn
	return &net
}

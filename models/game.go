package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GameStatus string

const (
	GameActive   GameStatus = "ACTIVE"
	GameFinished GameStatus = "FINISHED"
	GameAborted  GameStatus = "ABORTED"
)

// Game is the aggregation boundary for one settlement run. At most one game
// may be ACTIVE at any time.
type Game struct {
	gorm.Model

	Status  GameStatus `gorm:"size:16;default:ACTIVE;index" json:"status"`
	AdminID int64      `gorm:"index" json:"admin_id"`
	HostID  int64      `gorm:"index" json:"host_id"`

	// Ratio scales raw ledger units into displayed currency; see helpers.DebtAmount.
	Ratio    int64  `gorm:"default:1" json:"ratio"`
	TotalPot int64  `gorm:"default:0" json:"total_pot"`
	MvpID    *int64 `json:"mvp_id,omitempty"`

	// Duration in seconds, set at finalization.
	Duration *int64 `json:"duration,omitempty"`

	// Report is the immutable finalization snapshot (pot, MVP, per-player
	// results). Rewritten when a roster change forces a rebuild.
	Report datatypes.JSON `json:"report,omitempty"`

	Records []Record `gorm:"constraint:OnDelete:CASCADE" json:"records,omitempty"`
	Debts   []Debt   `gorm:"constraint:OnDelete:CASCADE" json:"debts,omitempty"`
}

package models

import "time"

// User is a chat member known to the ledger. The primary key is the external
// chat user id, so it is never auto-generated.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Fullname string  `gorm:"size:128" json:"fullname"`
	Username *string `gorm:"size:32" json:"username,omitempty"`
	IsAdmin  bool    `gorm:"default:false" json:"is_admin"`

	// Banking requisites shown to debtors, all optional.
	Bank        *string `gorm:"size:64" json:"bank,omitempty"`
	IBAN        *string `gorm:"size:64" json:"iban,omitempty"`
	NameSurname *string `gorm:"size:128" json:"name_surname,omitempty"`

	GamesPlayed int `gorm:"default:0" json:"games_played"`

	Records         []Record `gorm:"foreignKey:UserID" json:"-"`
	DebtsAsCreditor []Debt   `gorm:"foreignKey:CreditorID" json:"-"`
	DebtsAsDebtor   []Debt   `gorm:"foreignKey:DebtorID" json:"-"`
}

// Handle is the name used when addressing the user in a notification.
func (u *User) Handle() string {
	if u.Username != nil && *u.Username != "" {
		return "@" + *u.Username
	}
	return u.Fullname
}

// HasRequisites reports whether full banking details can be attached to a
// debt notice.
func (u *User) HasRequisites() bool {
	return u.Bank != nil && *u.Bank != "" &&
		u.IBAN != nil && *u.IBAN != "" &&
		u.NameSurname != nil && *u.NameSurname != ""
}

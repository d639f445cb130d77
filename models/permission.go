package models

// Permission flags gating the administrative routes. Each handler checks
// exactly one flag.
const (
	PermAddMenu          = "add_menu"
	PermChangeMenu       = "change_menu"
	PermViewOrder        = "view_order"
	PermAddMenuOption    = "add_menuoption"
	PermChangeMenuOption = "change_menuoption"
)

type Permission struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;index"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Name   string `gorm:"type:varchar(100);not null"`
}

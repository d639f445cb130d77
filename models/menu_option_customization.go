package models

import "time"

// MenuOptionCustomization is a named modifier attachable to one MenuOption.
type MenuOptionCustomization struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(250);not null" json:"name"`
	MenuOptionID uint       `gorm:"not null;index" json:"menu_option_id"`
	MenuOption   MenuOption `gorm:"foreignKey:MenuOptionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

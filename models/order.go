package models

import "time"

// Order is one user's selection for one menu. There is at most one per
// (user, menu) pair, enforced by the add-order handler rather than by a
// database constraint.
type Order struct {
	ID             uint                 `gorm:"primaryKey" json:"id"`
	UserID         *uint                `gorm:"index" json:"user_id,omitempty"`
	User           *User                `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	MenuOptionID   uint                 `gorm:"not null" json:"menu_option_id"`
	MenuOption     MenuOption           `gorm:"foreignKey:MenuOptionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"menu_option"`
	MenuID         uint                 `gorm:"not null;index" json:"menu_id"`
	Menu           Menu                 `gorm:"foreignKey:MenuID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PurchasedDate  time.Time            `gorm:"not null" json:"purchased_date"`
	Customizations []OrderCustomization `gorm:"foreignKey:OrderID" json:"customizations,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

package models

import "time"

// OrderCustomization links an order to one chosen modifier. The whole set is
// replaced on every submission; rows carry no history.
type OrderCustomization struct {
	ID                 uint                    `gorm:"primaryKey" json:"id"`
	OrderID            uint                    `gorm:"not null;index" json:"order_id"`
	Order              Order                   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuOptionCustomID uint                    `gorm:"not null" json:"menu_option_custom_id"`
	MenuOptionCustom   MenuOptionCustomization `gorm:"foreignKey:MenuOptionCustomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"menu_option_custom"`
	CreatedAt          time.Time               `json:"created_at"`
}

package models

import "time"

// MenuOption is a single selectable dish.
type MenuOption struct {
	ID             uint                      `gorm:"primaryKey" json:"id"`
	Name           string                    `gorm:"type:varchar(250);not null" json:"name"`
	Description    string                    `gorm:"type:text" json:"description"`
	Customizations []MenuOptionCustomization `gorm:"foreignKey:MenuOptionID" json:"customizations,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
}

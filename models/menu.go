package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Menu is the dated set of options published for one day. It is shared with
// employees through its UUID, never through its numeric primary key.
type Menu struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UUID        string       `gorm:"type:varchar(36);not null;index" json:"uuid"`
	UserID      *uint        `gorm:"index" json:"user_id,omitempty"`
	User        *User        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	MenuOptions []MenuOption `gorm:"many2many:menu_menu_options" json:"menu_options,omitempty"`
	PubDate     time.Time    `gorm:"not null" json:"pub_date"`
	SlackURL    string       `gorm:"type:varchar(300)" json:"slack_url"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == "" {
		m.UUID = uuid.NewString()
	}
	return nil
}

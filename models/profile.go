package models

import "time"

// Profile extends a User with meal-shop specific attributes. An empty
// SlackUser means the user has no reminder target.
type Profile struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	SlackUser string `gorm:"type:varchar(100)" json:"slack_user"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

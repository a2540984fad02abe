package models

// HelpMessage is a support request submitted from the "get help" page.
type HelpMessage struct {
	Base
	UserID  *string `gorm:"type:uuid" json:"user_id,omitempty"`
	Name    string  `gorm:"not null" json:"name"`
	Message string  `gorm:"type:text;not null" json:"message"`
}

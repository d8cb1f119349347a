package model

// swagger:model Notification
type Notification struct {
	BaseModel
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Title   string `gorm:"size:200;not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Type    string `gorm:"size:30;default:'info'" json:"type"`
	Read    bool   `gorm:"default:false" json:"read"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

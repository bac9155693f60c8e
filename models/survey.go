package models

import "time"

const (
	StatusActive   = "active"
	StatusArchived = "archived"
	StatusDeleted  = "deleted"
)

type Survey struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title         string    `gorm:"column:title;size:255;not null" json:"title"`
	Description   string    `gorm:"column:description;type:text" json:"description"`
	Status        string    `gorm:"column:status;size:20;default:'active'" json:"status"`
	Version       int       `gorm:"column:version;default:1" json:"version"`
	CreatedBy     string    `gorm:"column:created_by;size:64" json:"created_by"`
	EditTokenHash string    `gorm:"column:edit_token_hash;type:text" json:"-"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Quan hệ
	Questions []Question `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Survey) TableName() string {
	return "surveys"
}

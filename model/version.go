package model

type Version struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     uint   `gorm:"index;not null" json:"-"`
	VersionNumber string `gorm:"not null" json:"version_number"`
	VersionName   string `json:"version_name"`
	IsActive      bool   `gorm:"default:false" json:"is_active"`
}

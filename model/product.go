package model

import "time"

type Product struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null" json:"name"`

	// Derived from the name once at creation time. Deliberately left
	// untouched on later edits so existing links keep working
	Slug string `gorm:"index" json:"slug"`

	Description string  `json:"description"`
	PhotoRef    *string `json:"photo_ref,omitempty"`

	// Minor currency units
	Price int64 `gorm:"not null" json:"price"`

	CategoryID *uint     `json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Versions []Version `gorm:"foreignKey:ProductID" json:"versions,omitempty"`

	ViewsCount     int64      `gorm:"default:0" json:"views_count"`
	ManufacturedAt *time.Time `json:"manufactured_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

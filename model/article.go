package model

import "time"

type Article struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"not null" json:"title"`

	// Same rule as Product.Slug: set once from the title on create
	Slug string `gorm:"index" json:"slug"`

	Content  string  `json:"content"`
	PhotoRef *string `json:"photo_ref,omitempty"`

	// No column default on purpose: gorm drops zero values in favor of
	// column defaults on insert, which would make it impossible to
	// create an article as a draft
	IsPublished bool      `json:"is_published"`
	ViewsCount  int64     `gorm:"default:0" json:"views_count"`
	CreatedAt   time.Time `json:"created_at"`
}

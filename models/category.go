package models

// Category is deduplicated across platforms by normalized name
// (emoji-stripped, title-cased).
type Category struct {
	ID   string `gorm:"primary_key;size:36" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

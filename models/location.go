package models

// Location is one physical restaurant resolved across the three platforms.
// Created once per configured location and immutable for the rest of the run.
type Location struct {
	ID           string   `gorm:"primary_key;size:36" json:"id"`
	Name         string   `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Address      *Address `gorm:"embedded;embeddedPrefix:address_" json:"address,omitempty"`
	Phone        string   `gorm:"size:32" json:"phone,omitempty"`
	Timezone     string   `gorm:"size:64;not null" json:"timezone"`
	ToastGUID    *string  `gorm:"size:64;index" json:"toast_guid,omitempty"`
	DoorDashID   *string  `gorm:"size:64;index" json:"doordash_store_id,omitempty"`
	SquareID     *string  `gorm:"size:64;index" json:"square_location_id,omitempty"`
}

type Address struct {
	Line1      string `gorm:"size:255" json:"line1,omitempty"`
	Line2      string `gorm:"size:255" json:"line2,omitempty"`
	City       string `gorm:"size:100" json:"city,omitempty"`
	State      string `gorm:"size:50" json:"state,omitempty"`
	PostalCode string `gorm:"size:20" json:"postal_code,omitempty"`
	Country    string `gorm:"size:2" json:"country,omitempty"`
}

package models

// Item represents a stocked product in the catalog.
// It always belongs to exactly one category.
type Item struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"not null;index" json:"title,omitempty"`
	CategoryID    string    `gorm:"size:36;not null;index" json:"category_id,omitempty"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Description   string    `gorm:"not null" json:"description,omitempty"`
	Price         int64     `gorm:"not null" json:"price,omitempty"`
	NumberInStock int64     `gorm:"not null" json:"number_in_stock,omitempty"`
}

func (i *Item) TableName() string {
	return "items"
}

// URL returns the reference path of the item.
func (i *Item) URL() string {
	return "/catalog/item/" + i.ID
}

func (i *Item) GetID() string {
	return i.ID
}

func (i *Item) SetID(id string) {
	i.ID = id
}

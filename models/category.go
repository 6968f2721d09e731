package models

// Category groups items in the catalog.
// Its name is expected to be unique, but that is enforced by the service
// with a lookup before insert, not by the table.
type Category struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"not null;index" json:"name,omitempty"`
	Description string `gorm:"not null" json:"description,omitempty"`
}

func (c *Category) TableName() string {
	return "categories"
}

// URL returns the reference path of the category.
func (c *Category) URL() string {
	return "/catalog/category/" + c.ID
}

func (c *Category) GetID() string {
	return c.ID
}

func (c *Category) SetID(id string) {
	c.ID = id
}

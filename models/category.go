package models

// Category groups dishes on the menu. A category with at least one
// referencing dish cannot be deleted.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:nombre;uniqueIndex;not null" json:"nombre"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categorias_platillos"
}

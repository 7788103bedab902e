package models

// Dish represents a menu entry in the dish catalog
type Dish struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"column:nombre;not null" json:"nombre"`
	Description string   `gorm:"column:descripcion" json:"descripcion"`
	CategoryID  uint     `gorm:"column:categoria_id;not null;index" json:"categoria_id"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"-"`
	Price       float64  `gorm:"column:precio;not null" json:"precio"`
	ImageS3Key  *string  `gorm:"column:imagen" json:"imagen,omitempty"`       // nullable, S3 key for the uploaded image
	ImageURL    *string  `gorm:"-" json:"imagen_url,omitempty"`               // computed field, presigned URL for the image
}

// TableName specifies the table name for the Dish model
func (Dish) TableName() string {
	return "platillos"
}

package models

// OrderItem is one dish-quantity line within an order. Subtotal is the dish
// unit price at order time multiplied by the quantity, pre-computed by the
// collaborator that attaches items; lines are immutable once attached.
type OrderItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	OrderID  uint    `gorm:"column:orden_id;not null;index" json:"orden_id"`
	Order    Order   `gorm:"foreignKey:OrderID" json:"-"`
	DishID   uint    `gorm:"column:platillo_id;not null;index" json:"platillo_id"`
	Dish     Dish    `gorm:"foreignKey:DishID" json:"-"`
	Quantity int     `gorm:"column:cantidad;not null;check:cantidad > 0" json:"cantidad"`
	Subtotal float64 `gorm:"column:subtotal;not null" json:"subtotal"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "detalles_orden"
}

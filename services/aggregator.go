package services

import "time"

// OrderRow is one flat row from the orders / line-items / dishes join that
// backs every per-status listing and the daily cash register. WaiterName is
// only populated by queries that also join the users table.
type OrderRow struct {
	OrderID    uint      `gorm:"column:orden_id"`
	UserID     uint      `gorm:"column:id_usuario"`
	TableID    uint      `gorm:"column:mesa_id"`
	OrderedAt  time.Time `gorm:"column:fecha_orden"`
	Total      float64   `gorm:"column:total"`
	Status     string    `gorm:"column:estado"`
	WaiterName string    `gorm:"column:nombre_mesero"`
	ItemID     uint      `gorm:"column:detalle_id"`
	DishID     uint      `gorm:"column:platillo_id"`
	DishName   string    `gorm:"column:nombre_platillo"`
	Quantity   int       `gorm:"column:cantidad"`
	Subtotal   float64   `gorm:"column:subtotal"`
}

// OrderItemView is one dish line inside an aggregated order view
type OrderItemView struct {
	ItemID   uint    `json:"detalleId"`
	DishID   uint    `json:"platilloId"`
	DishName string  `json:"nombre"`
	Quantity int     `json:"cantidad"`
	Subtotal float64 `json:"subtotal"`
}

// OrderView is an order with its line items nested, as returned by the
// listing endpoints and the cash register report
type OrderView struct {
	OrderID    uint            `json:"ordenId"`
	UserID     uint            `json:"usuarioId"`
	TableID    uint            `json:"mesaId"`
	OrderedAt  time.Time       `json:"fechaOrden"`
	Total      float64         `json:"total"`
	Status     string          `json:"estado"`
	WaiterName string          `json:"nombreMesero,omitempty"`
	Items      []OrderItemView `json:"items"`
}

// AggregateOrderRows groups flat join rows into one OrderView per distinct
// order id, in order of first appearance. Grouping is explicit via an index
// map, so rows for the same order do not need to be contiguous. Order-level
// fields are taken from the first row seen for each id; later rows only
// contribute their item fields. An empty input yields an empty slice.
func AggregateOrderRows(rows []OrderRow) []OrderView {
	views := make([]OrderView, 0, len(rows))
	index := make(map[uint]int, len(rows))

	for _, row := range rows {
		i, seen := index[row.OrderID]
		if !seen {
			i = len(views)
			index[row.OrderID] = i
			views = append(views, OrderView{
				OrderID:    row.OrderID,
				UserID:     row.UserID,
				TableID:    row.TableID,
				OrderedAt:  row.OrderedAt,
				Total:      row.Total,
				Status:     row.Status,
				WaiterName: row.WaiterName,
				Items:      []OrderItemView{},
			})
		}

		views[i].Items = append(views[i].Items, OrderItemView{
			ItemID:   row.ItemID,
			DishID:   row.DishID,
			DishName: row.DishName,
			Quantity: row.Quantity,
			Subtotal: row.Subtotal,
		})
	}

	return views
}

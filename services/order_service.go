package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yky10/BACKEND-ML/models"
)

// ErrOrderNotFound is returned when an order id has no matching row
var ErrOrderNotFound = errors.New("order not found")

// InvalidTransitionError is returned when an order is not in the status a
// transition requires. It carries both sides for client diagnostics.
type InvalidTransitionError struct {
	OrderID   uint
	Current   string
	Requested string
	Required  string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order %d is in status %q; it must be in status %q to move to %q",
		e.OrderID, e.Current, e.Required, e.Requested)
}

// OrderService drives the order lifecycle against an injected store handle
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates an OrderService bound to the given database handle
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrder opens a new order for a table in status pendiente with total 0.
// The total is maintained by whatever inserts the line items later.
func (s *OrderService) CreateOrder(userID, tableID uint) (*models.Order, error) {
	order := models.Order{
		UserID:    userID,
		TableID:   tableID,
		OrderedAt: time.Now(),
		Total:     0,
		Status:    models.StatusPending,
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns every order row, unaggregated
func (s *OrderService) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Transition advances an order to target and returns the new status.
//
// The write is a single conditional UPDATE keyed on the required predecessor
// status, so two concurrent transitions on the same order cannot both win.
// When no row is updated, a follow-up read distinguishes ErrOrderNotFound
// from an InvalidTransitionError carrying the order's current status.
func (s *OrderService) Transition(orderID uint, target string) (string, error) {
	required, ok := models.RequiredPredecessor(target)
	if !ok {
		return "", fmt.Errorf("%q is not a reachable order status", target)
	}

	res := s.db.Model(&models.Order{}).
		Where("id = ? AND estado = ?", orderID, required).
		Update("estado", target)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected > 0 {
		return target, nil
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrOrderNotFound
		}
		return "", err
	}
	return "", &InvalidTransitionError{
		OrderID:   orderID,
		Current:   order.Status,
		Requested: target,
		Required:  required,
	}
}

// SendToKitchen moves an order from pendiente to preparando
func (s *OrderService) SendToKitchen(orderID uint) (string, error) {
	return s.Transition(orderID, models.StatusPreparing)
}

// MarkReady moves an order from preparando to listo
func (s *OrderService) MarkReady(orderID uint) (string, error) {
	return s.Transition(orderID, models.StatusReady)
}

// Deliver moves an order from listo to entregado
func (s *OrderService) Deliver(orderID uint) (string, error) {
	return s.Transition(orderID, models.StatusDelivered)
}

const ordersByStatusQuery = `
SELECT o.id AS orden_id, o.id_usuario, o.mesa_id, o.fecha_orden, o.total, o.estado,
       d.id AS detalle_id, d.platillo_id, d.cantidad, d.subtotal,
       p.nombre AS nombre_platillo
FROM ordenes o
JOIN detalles_orden d ON o.id = d.orden_id
JOIN platillos p ON d.platillo_id = p.id
WHERE o.estado = ?
ORDER BY o.id, d.id`

const deliveredOrdersQuery = `
SELECT o.id AS orden_id, o.id_usuario, o.mesa_id, o.fecha_orden, o.total, o.estado,
       d.id AS detalle_id, d.platillo_id, d.cantidad, d.subtotal,
       p.nombre AS nombre_platillo,
       u.nombre AS nombre_mesero
FROM ordenes o
JOIN detalles_orden d ON o.id = d.orden_id
JOIN platillos p ON d.platillo_id = p.id
JOIN usuarios u ON o.id_usuario = u.id
WHERE o.estado = 'entregado'
ORDER BY o.id, d.id`

const deliveredOrdersByUserQuery = `
SELECT o.id AS orden_id, o.id_usuario, o.mesa_id, o.fecha_orden, o.total, o.estado,
       d.id AS detalle_id, d.platillo_id, d.cantidad, d.subtotal,
       p.nombre AS nombre_platillo,
       u.nombre AS nombre_mesero
FROM ordenes o
JOIN detalles_orden d ON o.id = d.orden_id
JOIN platillos p ON d.platillo_id = p.id
JOIN usuarios u ON o.id_usuario = u.id
WHERE o.estado = 'entregado' AND o.id_usuario = ?
ORDER BY o.id, d.id`

// OrdersInStatus lists the orders currently in the given status with their
// line items nested
func (s *OrderService) OrdersInStatus(status string) ([]OrderView, error) {
	var rows []OrderRow
	if err := s.db.Raw(ordersByStatusQuery, status).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return AggregateOrderRows(rows), nil
}

// DeliveredOrders lists delivered orders with line items and the waiter's name
func (s *OrderService) DeliveredOrders() ([]OrderView, error) {
	var rows []OrderRow
	if err := s.db.Raw(deliveredOrdersQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return AggregateOrderRows(rows), nil
}

// DeliveredOrdersByUser lists delivered orders created by one staff member
func (s *OrderService) DeliveredOrdersByUser(userID uint) ([]OrderView, error) {
	var rows []OrderRow
	if err := s.db.Raw(deliveredOrdersByUserQuery, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return AggregateOrderRows(rows), nil
}

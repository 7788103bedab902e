package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yky10/BACKEND-ML/config"
	"github.com/yky10/BACKEND-ML/services"
)

// GetDailyCashRegister handles GET /arqueo-caja/:fecha - the end-of-day
// register summary of delivered orders for one date (YYYY-MM-DD)
func GetDailyCashRegister(c *gin.Context) {
	date := c.Param("fecha")

	svc := services.NewReportService(config.GetDB())
	summary, err := svc.DailyCashRegister(date)
	if err != nil {
		if errors.Is(err, services.ErrNoOrdersForDate) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "No delivered orders were found for the requested date",
			})
			return
		}

		log.Printf("Failed to compute cash register for %s: %v", date, err)
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
		"success":       true,
		"totalVentas":   summary.TotalSales,
		"totalOrdenes":  summary.TotalOrders,
		"fecha":         summary.Date,
		"ordenes":       summary.Orders,
	})
}

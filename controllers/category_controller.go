package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yky10/BACKEND-ML/config"
	"github.com/yky10/BACKEND-ML/models"
)

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name string `json:"nombre" binding:"required"`
}

// UpdateCategoryRequest represents the request body for renaming a category
type UpdateCategoryRequest struct {
	ID   uint   `json:"id" binding:"required"`
	Name string `json:"nombre" binding:"required"`
}

// CreateCategory handles POST /categoria/guardar - creates a dish category.
// Category names are unique; a duplicate is a 409, not a server error.
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
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

	db := config.GetDB()
	category := models.Category{Name: req.Name}
	if err := db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_CATEGORY",
					"message": "A category with that name already exists",
				},
			})
			return
		}

		log.Printf("Failed to create category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// ListCategories handles GET /categoria/listar - lists every category
func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.GetDB().Find(&categories).Error; err != nil {
		log.Printf("Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// UpdateCategory handles PUT /categoria/actualizar - renames a category
func UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
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

	db := config.GetDB()
	res := db.Model(&models.Category{}).Where("id = ?", req.ID).Update("nombre", req.Name)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_CATEGORY",
					"message": "A category with that name already exists",
				},
			})
			return
		}

		log.Printf("Failed to update category %d: %v", req.ID, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": res.Error.Error(),
			},
		})
		return
	}
	if res.RowsAffected == 0 {
		c.String(http.StatusNotFound, "Category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category updated successfully",
	})
}

// DeleteCategory handles DELETE /categoria/eliminar/:id - deletes a category
// unless any dish still references it
func DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Category id must be a number",
			},
		})
		return
	}

	db := config.GetDB()

	var dishCount int64
	if err := db.Model(&models.Dish{}).Where("categoria_id = ?", id).Count(&dishCount).Error; err != nil {
		log.Printf("Failed to check dishes for category %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	if dishCount > 0 {
		c.String(http.StatusBadRequest, "The category cannot be deleted because dishes still reference it")
		return
	}

	res := db.Delete(&models.Category{}, id)
	if res.Error != nil {
		log.Printf("Failed to delete category %d: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": res.Error.Error(),
			},
		})
		return
	}
	if res.RowsAffected == 0 {
		c.String(http.StatusNotFound, "Category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted successfully",
	})
}

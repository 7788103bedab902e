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
	"github.com/yky10/BACKEND-ML/services"
	"github.com/yky10/BACKEND-ML/utils"
)

// CreateDishRequest represents the multipart form for creating a dish
type CreateDishRequest struct {
	Name        string  `form:"nombre" binding:"required"`
	Description string  `form:"descripcion"`
	CategoryID  uint    `form:"categoria_id" binding:"required"`
	Price       float64 `form:"precio" binding:"required,gt=0"`
}

// UpdateDishRequest represents the multipart form for updating a dish
type UpdateDishRequest struct {
	ID          uint    `form:"id" binding:"required"`
	Name        string  `form:"nombre" binding:"required"`
	Description string  `form:"descripcion"`
	CategoryID  uint    `form:"categoria_id" binding:"required"`
	Price       float64 `form:"precio" binding:"required,gt=0"`
}

// uploadDishImage uploads the optional "imagen" form file and returns its
// storage key, or nil when no file was sent. Writes the error response itself
// on failure.
func uploadDishImage(c *gin.Context) (*string, bool) {
	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		// No image attached; dishes can be created without one
		return nil, true
	}

	key, err := services.GetImageService().UploadImage(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return nil, false
		}

		log.Printf("Failed to upload dish image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to store the dish image",
			},
		})
		return nil, false
	}

	return &key, true
}

// CreateDish handles POST /platillo/guardar - creates a dish with an optional
// photo stored in S3
func CreateDish(c *gin.Context) {
	var req CreateDishRequest
	if err := c.ShouldBind(&req); err != nil {
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

	imageKey, ok := uploadDishImage(c)
	if !ok {
		return
	}

	dish := models.Dish{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		ImageS3Key:  imageKey,
	}

	if err := config.GetDB().Create(&dish).Error; err != nil {
		log.Printf("Failed to create dish: %v", err)
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
		"data":    dish,
	})
}

// ListDishes handles GET /platillo/listar - lists the catalog with presigned
// image URLs resolved for dishes that have a photo
func ListDishes(c *gin.Context) {
	var dishes []models.Dish
	if err := config.GetDB().Find(&dishes).Error; err != nil {
		log.Printf("Failed to list dishes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	imageService := services.GetImageService()
	for i := range dishes {
		if dishes[i].ImageS3Key == nil {
			continue
		}
		url, err := imageService.GetImageURL(*dishes[i].ImageS3Key)
		if err != nil {
			// A missing image should not take down the whole listing
			log.Printf("Failed to resolve image URL for dish %d: %v", dishes[i].ID, err)
			continue
		}
		dishes[i].ImageURL = &url
	}

	c.JSON(http.StatusOK, dishes)
}

// UpdateDish handles PUT /platillo/actualizar - updates a dish; a new photo
// replaces the stored one
func UpdateDish(c *gin.Context) {
	var req UpdateDishRequest
	if err := c.ShouldBind(&req); err != nil {
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
	var dish models.Dish
	if err := db.First(&dish, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Dish not found")
			return
		}
		log.Printf("Failed to load dish %d: %v", req.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	imageKey, ok := uploadDishImage(c)
	if !ok {
		return
	}

	oldKey := dish.ImageS3Key
	dish.Name = req.Name
	dish.Description = req.Description
	dish.CategoryID = req.CategoryID
	dish.Price = req.Price
	if imageKey != nil {
		dish.ImageS3Key = imageKey
	}

	if err := db.Save(&dish).Error; err != nil {
		log.Printf("Failed to update dish %d: %v", req.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	// Best effort: drop the replaced photo from storage
	if imageKey != nil && oldKey != nil {
		if err := services.GetImageService().DeleteImage(*oldKey); err != nil {
			log.Printf("Failed to delete replaced image %s: %v", *oldKey, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dish,
	})
}

// DeleteDish handles DELETE /platillo/eliminar/:id - removes a dish and its
// stored photo
func DeleteDish(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Dish id must be a number",
			},
		})
		return
	}

	db := config.GetDB()
	var dish models.Dish
	if err := db.First(&dish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DISH_NOT_FOUND",
					"message": "Dish not found",
				},
			})
			return
		}
		log.Printf("Failed to load dish %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	if err := db.Delete(&dish).Error; err != nil {
		log.Printf("Failed to delete dish %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	// Best effort: the row is gone either way
	if dish.ImageS3Key != nil {
		if err := services.GetImageService().DeleteImage(*dish.ImageS3Key); err != nil {
			log.Printf("Failed to delete image %s: %v", *dish.ImageS3Key, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Dish deleted successfully",
	})
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autotradecenter/autotrade-api/config"
	"github.com/autotradecenter/autotrade-api/models"
	"github.com/autotradecenter/autotrade-api/services"
)

// CreateCarRequest represents the request body for adding a vehicle
type CreateCarRequest struct {
	Brand  string  `json:"brand" binding:"required"`
	Model  string  `json:"model" binding:"required"`
	Year   int     `json:"year" binding:"required,gt=0"`
	Color  string  `json:"color"`
	Price  float64 `json:"price" binding:"required,gt=0"`
	Status string  `json:"status"`
}

// UpdateCarRequest represents the request body for editing a vehicle
type UpdateCarRequest struct {
	Brand  string  `json:"brand" binding:"required"`
	Model  string  `json:"model" binding:"required"`
	Year   int     `json:"year" binding:"required,gt=0"`
	Color  string  `json:"color"`
	Price  float64 `json:"price" binding:"required,gt=0"`
	Status string  `json:"status" binding:"required"`
}

// attachPhotoURL fills the computed PhotoURL field from the photo service
func attachPhotoURL(car *models.Car) {
	if car.PhotoKey == nil || *car.PhotoKey == "" {
		return
	}
	photoService := services.GetPhotoService()
	if photoService == nil {
		return
	}
	url, err := photoService.GetPhotoURL(*car.PhotoKey)
	if err != nil || url == "" {
		return
	}
	car.PhotoURL = &url
}

// ListCars handles GET /api/v1/cars - returns the full inventory snapshot
func ListCars(c *gin.Context) {
	db, err := config.EnsureDB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var cars []models.Car
	if err := db.Order(`"CarID"`).Find(&cars).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch cars",
			},
		})
		return
	}

	for i := range cars {
		attachPhotoURL(&cars[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cars,
	})
}

// ListAvailableCars handles GET /api/v1/cars/available - returns in-stock
// vehicles, optionally matched by brand and model
func ListAvailableCars(c *gin.Context) {
	db, err := config.EnsureDB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	query := db.Where(`"Status" = ?`, models.CarStatusInStock)

	brand := c.Query("brand")
	model := c.Query("model")
	if brand != "" && model != "" {
		// Matching candidates for a purchase request, newest first
		query = query.Where(`"Brand" = ? AND "Model" = ?`, brand, model).Order(`"Year" DESC`)
	} else {
		query = query.Order(`"Brand", "Model"`)
	}

	var cars []models.Car
	if err := query.Find(&cars).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch available cars",
			},
		})
		return
	}

	for i := range cars {
		attachPhotoURL(&cars[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cars,
	})
}

// GetCar handles GET /api/v1/cars/:id - returns a single vehicle
func GetCar(c *gin.Context) {
	carID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Car ID must be a number",
			},
		})
		return
	}

	db, err := config.EnsureDB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var car models.Car
	if err := db.First(&car, uint(carID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CAR_NOT_FOUND",
					"message": "Car not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch car",
			},
		})
		return
	}

	attachPhotoURL(&car)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    car,
	})
}

// CreateCar handles POST /api/v1/cars - adds a vehicle to the inventory
func CreateCar(c *gin.Context) {
	var req CreateCarRequest
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

	status := req.Status
	if status == "" {
		status = models.CarStatusInStock
	}
	if !models.IsValidCarStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown car status",
			},
		})
		return
	}

	db, err := config.EnsureDB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	car := models.Car{
		Brand:  req.Brand,
		Model:  req.Model,
		Year:   req.Year,
		Color:  req.Color,
		Price:  req.Price,
		Status: status,
	}
	if err := db.Create(&car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to add car",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    car,
	})
}

// UpdateCar handles PUT /api/v1/cars/:id - edits a vehicle. Vehicles that
// are already sold cannot be edited.
func UpdateCar(c *gin.Context) {
	carID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Car ID must be a number",
			},
		})
		return
	}

	var req UpdateCarRequest
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

	if !models.IsValidCarStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown car status",
			},
		})
		return
	}

	db, err := config.EnsureDB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var car models.Car
	if err := db.First(&car, uint(carID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CAR_NOT_FOUND",
					"message": "Car not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch car",
			},
		})
		return
	}

	if car.Status == models.CarStatusSold {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CAR_SOLD",
				"message": "A sold car cannot be edited",
			},
		})
		return
	}

	updates := map[string]interface{}{
		"Brand":  req.Brand,
		"Model":  req.Model,
		"Year":   req.Year,
		"Color":  req.Color,
		"Price":  req.Price,
		"Status": req.Status,
	}
	if err := db.Model(&car).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update car",
			},
		})
		return
	}

	if err := db.First(&car, uint(carID)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch updated car",
			},
		})
		return
	}

	attachPhotoURL(&car)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    car,
	})
}

// DeleteCar handles DELETE /api/v1/cars/:id - removes a vehicle unless
// sales reference it
func DeleteCar(c *gin.Context) {
	carID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Car ID must be a number",
			},
		})
		return
	}

	db, err := config.EnsureDB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var car models.Car
	if err := db.First(&car, uint(carID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CAR_NOT_FOUND",
					"message": "Car not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch car",
			},
		})
		return
	}

	// Dependent sales block the delete
	var salesCount int64
	if err := db.Model(&models.Sale{}).Where(`"CarID" = ?`, uint(carID)).Count(&salesCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check dependent sales",
			},
		})
		return
	}
	if salesCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HAS_DEPENDENT_SALES",
				"message": "Cannot delete car: it has dependent sales",
			},
		})
		return
	}

	if err := db.Delete(&car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete car",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Car deleted",
	})
}

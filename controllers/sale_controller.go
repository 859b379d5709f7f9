package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autotradecenter/autotrade-api/config"
	"github.com/autotradecenter/autotrade-api/middleware"
	"github.com/autotradecenter/autotrade-api/models"
)

// CreateSaleRequest represents the request body for completing a sale
type CreateSaleRequest struct {
	CarID     uint    `json:"car_id" binding:"required"`
	ClientID  uint    `json:"client_id" binding:"required"`
	SalePrice float64 `json:"sale_price" binding:"required,gt=0"`
}

var (
	errSaleCarNotFound    = errors.New("car not found")
	errSaleCarUnavailable = errors.New("car is not available")
	errSaleClientNotFound = errors.New("client not found")
)

// ListSales handles GET /api/v1/sales - returns all sales with their car,
// client and seller
func ListSales(c *gin.Context) {
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

	var sales []models.Sale
	if err := db.Preload("Car").Preload("Client").Preload("Employee").
		Order(`"SaleID"`).Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch sales",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sales,
	})
}

// ListMySales handles GET /api/v1/sales/my - returns the logged-in client's
// purchase history, newest first
func ListMySales(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_SESSION",
				"message": "Could not retrieve session identity",
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

	var sales []models.Sale
	if err := db.Preload("Car").Preload("Employee").
		Where(`"ClientID" = ?`, identity.ID).
		Order(`"SaleDate" DESC`).Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch sales",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sales,
	})
}

// CreateSale handles POST /api/v1/sales - completes a sale. The logged-in
// employee is recorded as the seller. The sale row and the car's status flip
// to Sold commit in one transaction; a car that is not in stock rejects the
// sale with nothing written.
func CreateSale(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_SESSION",
				"message": "Could not retrieve session identity",
			},
		})
		return
	}

	var req CreateSaleRequest
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

	var sale models.Sale
	txErr := db.Transaction(func(tx *gorm.DB) error {
		var car models.Car
		if err := tx.First(&car, req.CarID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errSaleCarNotFound
			}
			return err
		}
		if car.Status != models.CarStatusInStock {
			return errSaleCarUnavailable
		}

		var client models.Client
		if err := tx.First(&client, req.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errSaleClientNotFound
			}
			return err
		}

		sale = models.Sale{
			CarID:      req.CarID,
			ClientID:   req.ClientID,
			EmployeeID: identity.ID,
			SalePrice:  req.SalePrice,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		return tx.Model(&car).Update("Status", models.CarStatusSold).Error
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, errSaleCarNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CAR_NOT_FOUND",
					"message": "Car not found",
				},
			})
		case errors.Is(txErr, errSaleCarUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CAR_NOT_AVAILABLE",
					"message": "Car is already sold or unavailable",
				},
			})
		case errors.Is(txErr, errSaleClientNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CLIENT_NOT_FOUND",
					"message": "Client not found",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to complete sale",
				},
			})
		}
		return
	}

	// Load relationships to return complete data
	if err := db.Preload("Car").Preload("Client").Preload("Employee").
		First(&sale, sale.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load sale details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    sale,
	})
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autotradecenter/autotrade-api/config"
	"github.com/autotradecenter/autotrade-api/middleware"
	"github.com/autotradecenter/autotrade-api/models"
)

// CreateRequestRequest represents the request body for a purchase request.
// Clients always file for themselves; staff pick the client. A max_price of
// zero or absent is stored as unspecified.
type CreateRequestRequest struct {
	ClientID uint    `json:"client_id"`
	CarID    *uint   `json:"car_id"`
	Brand    string  `json:"brand" binding:"required"`
	Model    string  `json:"model" binding:"required"`
	MaxPrice float64 `json:"max_price" binding:"omitempty,gte=0"`
}

// ListRequests handles GET /api/v1/requests - staff see every request,
// clients only their own
func ListRequests(c *gin.Context) {
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

	query := db.Preload("Client").Order(`"RequestID"`)
	if identity.IsClient() {
		query = query.Where(`"ClientID" = ?`, identity.ID)
	}

	var requests []models.PurchaseRequest
	if err := query.Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch purchase requests",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// GetRequest handles GET /api/v1/requests/:id - returns a single request;
// clients may only see their own
func GetRequest(c *gin.Context) {
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

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Request ID must be a number",
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

	var request models.PurchaseRequest
	if err := db.Preload("Client").First(&request, uint(requestID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "REQUEST_NOT_FOUND",
					"message": "Purchase request not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch purchase request",
			},
		})
		return
	}

	if identity.IsClient() && request.ClientID != identity.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient permissions to access this resource",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}

// CreateRequest handles POST /api/v1/requests - files a purchase request
func CreateRequest(c *gin.Context) {
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

	var req CreateRequestRequest
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

	// Clients file for themselves; staff must name the client
	clientID := req.ClientID
	if identity.IsClient() {
		clientID = identity.ID
	} else if clientID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "A client must be selected",
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

	var client models.Client
	if err := db.First(&client, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CLIENT_NOT_FOUND",
					"message": "Client not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch client",
			},
		})
		return
	}

	if req.CarID != nil {
		var car models.Car
		if err := db.First(&car, *req.CarID).Error; err != nil {
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
	}

	// Zero means the client left the cap unspecified, not a zero bid
	var maxPrice *float64
	if req.MaxPrice > 0 {
		maxPrice = &req.MaxPrice
	}

	request := models.PurchaseRequest{
		ClientID: clientID,
		CarID:    req.CarID,
		Brand:    req.Brand,
		Model:    req.Model,
		MaxPrice: maxPrice,
		Status:   models.RequestStatusUnderReview,
	}
	if err := db.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create purchase request",
			},
		})
		return
	}

	if err := db.Preload("Client").First(&request, request.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load purchase request details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    request,
	})
}

// DeleteRequest handles DELETE /api/v1/requests/:id - removes a request
func DeleteRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Request ID must be a number",
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

	var request models.PurchaseRequest
	if err := db.First(&request, uint(requestID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "REQUEST_NOT_FOUND",
					"message": "Purchase request not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch purchase request",
			},
		})
		return
	}

	if err := db.Delete(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete purchase request",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Purchase request deleted",
	})
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autotradecenter/autotrade-api/config"
	"github.com/autotradecenter/autotrade-api/models"
)

// ListClients handles GET /api/v1/clients - returns all client records
func ListClients(c *gin.Context) {
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

	var clients []models.Client
	if err := db.Order(`"ClientID"`).Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch clients",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    clients,
	})
}

// DeleteClient handles DELETE /api/v1/clients/:id - removes a client unless
// purchase requests or sales reference them
func DeleteClient(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Client ID must be a number",
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
	if err := db.First(&client, uint(clientID)).Error; err != nil {
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

	// Dependent purchase requests or sales block the delete
	var requestsCount int64
	if err := db.Model(&models.PurchaseRequest{}).Where(`"ClientID" = ?`, uint(clientID)).Count(&requestsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check dependent requests",
			},
		})
		return
	}

	var salesCount int64
	if err := db.Model(&models.Sale{}).Where(`"ClientID" = ?`, uint(clientID)).Count(&salesCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check dependent sales",
			},
		})
		return
	}

	if requestsCount > 0 || salesCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HAS_DEPENDENT_RECORDS",
				"message": "Cannot delete client: they have dependent purchase requests or sales",
			},
		})
		return
	}

	if err := db.Delete(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete client",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Client deleted",
	})
}

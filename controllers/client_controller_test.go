package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autotradecenter/autotrade-api/config"
	"github.com/autotradecenter/autotrade-api/middleware"
	"github.com/autotradecenter/autotrade-api/models"
)

func TestListClients(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	createTestClient(t, db, "ann")
	createTestClient(t, db, "bobclient")

	router := setupTestRouter()
	router.GET("/clients", mockSessionMiddleware(staffIdentity(models.RoleConsultant)), ListClients)

	req, _ := http.NewRequest(http.MethodGet, "/clients", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	clients := response["data"].([]interface{})
	assert.Len(t, clients, 2)

	// Password hashes never leave the gateway
	first := clients[0].(map[string]interface{})
	assert.NotContains(t, first, "PasswordHash")
	assert.NotContains(t, first, "password_hash")
}

func TestDeleteClient(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	blockedByRequest := createTestClient(t, db, "withrequest")
	db.Create(&models.PurchaseRequest{ClientID: blockedByRequest.ID, Brand: "Toyota", Model: "Camry", Status: models.RequestStatusUnderReview})

	blockedBySale := createTestClient(t, db, "withsale")
	employee := createTestEmployee(t, db, "seller", models.RoleManager)
	car := models.Car{Brand: "Honda", Model: "Civic", Year: 2021, Color: "Blue", Price: 19000, Status: models.CarStatusSold}
	db.Create(&car)
	db.Create(&models.Sale{CarID: car.ID, ClientID: blockedBySale.ID, EmployeeID: employee.ID, SalePrice: 18500})

	free := createTestClient(t, db, "free")

	router := setupTestRouter()
	router.DELETE("/clients/:id", mockSessionMiddleware(staffIdentity(models.RoleAdmin)), DeleteClient)

	tests := []struct {
		name           string
		clientID       uint
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Blocked by purchase request",
			clientID:       blockedByRequest.ID,
			expectedStatus: http.StatusConflict,
			expectedError:  "HAS_DEPENDENT_RECORDS",
		},
		{
			name:           "Blocked by sale",
			clientID:       blockedBySale.ID,
			expectedStatus: http.StatusConflict,
			expectedError:  "HAS_DEPENDENT_RECORDS",
		},
		{
			name:           "No dependents deletes cleanly",
			clientID:       free.ID,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown client",
			clientID:       9999,
			expectedStatus: http.StatusNotFound,
			expectedError:  "CLIENT_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/clients/%d", tt.clientID), nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var response map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, tt.expectedError, response["error"].(map[string]interface{})["code"])
			}
		})
	}

	// Blocked clients are still there, the free one is gone
	var count int64
	db.Model(&models.Client{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestDeleteClientIsAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	client := createTestClient(t, db, "ann")

	router := setupTestRouter()
	router.DELETE("/clients/:id", mockSessionMiddleware(staffIdentity(models.RoleManager)), middleware.RequireAction(middleware.ActionClientsDelete), DeleteClient)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/clients/%d", client.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code, "Managers cannot delete clients")

	var count int64
	db.Model(&models.Client{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

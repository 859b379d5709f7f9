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

func TestListEmployees(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	createTestEmployee(t, db, "seller", models.RoleConsultant)
	createTestEmployee(t, db, "books", models.RoleAccountant)

	router := setupTestRouter()
	router.GET("/employees", mockSessionMiddleware(staffIdentity(models.RoleAdmin)), ListEmployees)

	req, _ := http.NewRequest(http.MethodGet, "/employees", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	employees := response["data"].([]interface{})
	assert.Len(t, employees, 2)
	assert.Equal(t, "Consultant", employees[0].(map[string]interface{})["role"])
}

func TestDeleteEmployee(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	client := createTestClient(t, db, "buyer")
	seller := createTestEmployee(t, db, "seller", models.RoleConsultant)
	car := models.Car{Brand: "Honda", Model: "Civic", Year: 2021, Color: "Blue", Price: 19000, Status: models.CarStatusSold}
	db.Create(&car)
	db.Create(&models.Sale{CarID: car.ID, ClientID: client.ID, EmployeeID: seller.ID, SalePrice: 18500})

	free := createTestEmployee(t, db, "books", models.RoleAccountant)

	router := setupTestRouter()
	router.DELETE("/employees/:id", mockSessionMiddleware(staffIdentity(models.RoleAdmin)), DeleteEmployee)

	// A seller with recorded sales cannot be deleted
	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/employees/%d", seller.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "HAS_DEPENDENT_SALES", response["error"].(map[string]interface{})["code"])

	// An employee without sales deletes cleanly
	req, _ = http.NewRequest(http.MethodDelete, fmt.Sprintf("/employees/%d", free.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Employee{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteEmployeeIsAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	employee := createTestEmployee(t, db, "books", models.RoleAccountant)

	router := setupTestRouter()
	router.DELETE("/employees/:id", mockSessionMiddleware(staffIdentity(models.RoleManager)), middleware.RequireAction(middleware.ActionEmployeesDelete), DeleteEmployee)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/employees/%d", employee.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

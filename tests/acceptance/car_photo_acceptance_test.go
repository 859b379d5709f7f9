package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/autotradecenter/autotrade-api/config"
	"github.com/autotradecenter/autotrade-api/controllers"
	"github.com/autotradecenter/autotrade-api/middleware"
	"github.com/autotradecenter/autotrade-api/models"
	"github.com/autotradecenter/autotrade-api/services"
	"github.com/autotradecenter/autotrade-api/tests/testutil"
	"github.com/autotradecenter/autotrade-api/utils"
)

// CarPhotoAcceptanceTestSuite drives the vehicle photo feature end to end
// over a real HTTP listener with filesystem-backed storage
type CarPhotoAcceptanceTestSuite struct {
	suite.Suite
	server     *httptest.Server
	db         *gorm.DB
	uploadDir  string
	staffToken string
}

// SetupSuite runs once before all tests
func (suite *CarPhotoAcceptanceTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(&models.Client{}, &models.Employee{}, &models.Car{}, &models.Sale{}, &models.PurchaseRequest{})
	suite.NoError(err)

	config.SetDB(db)
	services.InitSessionService()

	suite.uploadDir = suite.T().TempDir()
	utils.UploadDir = suite.uploadDir
	services.InitLocalPhotoService(suite.uploadDir)

	suite.staffToken = testutil.LoginAs(suite.T(), services.Identity{
		ID: 1, FirstName: "Bob", LastName: "Jones", Role: models.RoleManager,
	})

	suite.server = httptest.NewServer(suite.createRouter())
}

// TearDownSuite runs once after all tests
func (suite *CarPhotoAcceptanceTestSuite) TearDownSuite() {
	suite.server.Close()
	if suite.db != nil {
		sqlDB, _ := suite.db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}
}

// SetupTest runs before each test
func (suite *CarPhotoAcceptanceTestSuite) SetupTest() {
	suite.db.Exec(`DELETE FROM "Cars"`)
}

// createRouter wires the car and photo routes exactly as the server does
func (suite *CarPhotoAcceptanceTestSuite) createRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/uploads/:filename", controllers.GetUploadedPhoto)

		cars := v1.Group("/cars", middleware.RequireSession())
		{
			cars.GET("/:id", middleware.RequireAction(middleware.ActionCarsViewAll), controllers.GetCar)
			cars.POST("", middleware.RequireAction(middleware.ActionCarsManage), controllers.CreateCar)
			cars.POST("/:id/photo", middleware.RequireAction(middleware.ActionPhotosManage), controllers.UploadCarPhoto)
		}
	}

	return router
}

// createPhotoRequest builds a multipart upload request for a car photo
func (suite *CarPhotoAcceptanceTestSuite) createPhotoRequest(url, filename string, content []byte) (*http.Request, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("photo", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.staffToken)
	return req, nil
}

// TestCompletePhotoWorkflow_Acceptance covers the happy path: record a
// vehicle, attach a photo, read the vehicle, fetch the photo bytes back
func (suite *CarPhotoAcceptanceTestSuite) TestCompletePhotoWorkflow_Acceptance() {
	t := suite.T()

	// Step 1: record a vehicle
	carJSON, _ := json.Marshal(map[string]interface{}{
		"brand": "Toyota", "model": "Camry", "year": 2022, "color": "Black", "price": 25000,
	})
	req, _ := http.NewRequest(http.MethodPost, suite.server.URL+"/api/v1/cars", bytes.NewBuffer(carJSON))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.staffToken)

	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var createResponse map[string]interface{}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NoError(t, json.Unmarshal(body, &createResponse))
	carID := uint(createResponse["data"].(map[string]interface{})["id"].(float64))

	// Step 2: attach a photo
	photoBytes := []byte("png-image-data")
	req, err = suite.createPhotoRequest(
		fmt.Sprintf("%s/api/v1/cars/%d/photo", suite.server.URL, carID), "camry.png", photoBytes)
	assert.NoError(t, err)

	resp, err = http.DefaultClient.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Step 3: the vehicle now carries its photo key and URL
	req, _ = http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/v1/cars/%d", suite.server.URL, carID), nil)
	req.Header.Set("Authorization", "Bearer "+suite.staffToken)

	resp, err = http.DefaultClient.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var carResponse map[string]interface{}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NoError(t, json.Unmarshal(body, &carResponse))

	carData := carResponse["data"].(map[string]interface{})
	photoKey := carData["photo_key"].(string)
	assert.NotEmpty(t, photoKey)
	photoURL := carData["photo_url"].(string)
	assert.Equal(t, "/api/v1/uploads/"+photoKey, photoURL)

	// Step 4: the photo bytes come back through the serving route
	resp, err = http.Get(suite.server.URL + photoURL)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	served, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, photoBytes, served, "Served photo should match the uploaded bytes")
}

// TestPhotoFormatRejected_Acceptance verifies non-PNG uploads never reach storage
func (suite *CarPhotoAcceptanceTestSuite) TestPhotoFormatRejected_Acceptance() {
	t := suite.T()

	car := models.Car{Brand: "Honda", Model: "Civic", Year: 2021, Color: "White", Price: 18000, Status: models.CarStatusInStock}
	suite.NoError(suite.db.Create(&car).Error)

	req, err := suite.createPhotoRequest(
		fmt.Sprintf("%s/api/v1/cars/%d/photo", suite.server.URL, car.ID), "civic.jpg", []byte("jpeg-data"))
	assert.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var response map[string]interface{}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NoError(t, json.Unmarshal(body, &response))
	errObj := response["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_FILE_FORMAT", errObj["code"])

	var untouched models.Car
	suite.db.First(&untouched, car.ID)
	assert.Nil(t, untouched.PhotoKey, "Rejected upload should leave the vehicle without a photo")
}

// TestCarPhotoAcceptanceTestSuite runs the test suite
func TestCarPhotoAcceptanceTestSuite(t *testing.T) {
	testutil.MustSetTestEnvironment(t)
	suite.Run(t, new(CarPhotoAcceptanceTestSuite))
}

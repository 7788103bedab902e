package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yky10/BACKEND-ML/config"
	"github.com/yky10/BACKEND-ML/models"
	"github.com/yky10/BACKEND-ML/services"
)

// setupMockImageService wires the in-memory S3 mock behind the image service
func setupMockImageService() *services.MockS3Service {
	mockS3 := services.NewMockS3Service()
	services.SetS3Service(mockS3)
	services.InitImageService(mockS3)
	return mockS3
}

// buildDishForm builds the multipart body the dish endpoints consume. An
// empty filename means no image part.
func buildDishForm(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("Failed to write form field %s: %v", key, err)
		}
	}

	if filename != "" {
		part, err := writer.CreateFormFile("imagen", filename)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func TestCreateDish(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)
	mockS3 := setupMockImageService()

	category := models.Category{Name: "Platos fuertes"}
	assert.NoError(t, db.Create(&category).Error)

	router := setupTestRouter()
	router.POST("/platillo/guardar", CreateDish)

	body, contentType := buildDishForm(t, map[string]string{
		"nombre":       "Tacos al pastor",
		"descripcion":  "Con pina",
		"categoria_id": fmt.Sprintf("%d", category.ID),
		"precio":       "10.50",
	}, "tacos.png", []byte("fake png bytes"))

	req, _ := http.NewRequest(http.MethodPost, "/platillo/guardar", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Tacos al pastor", data["nombre"])
	assert.Equal(t, 10.5, data["precio"])
	assert.Equal(t, "platillos/mock_tacos.png", data["imagen"])
	assert.True(t, mockS3.FileExists("platillos/mock_tacos.png"))
}

func TestCreateDish_WithoutImage(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)
	setupMockImageService()

	category := models.Category{Name: "Bebidas"}
	assert.NoError(t, db.Create(&category).Error)

	router := setupTestRouter()
	router.POST("/platillo/guardar", CreateDish)

	body, contentType := buildDishForm(t, map[string]string{
		"nombre":       "Agua de horchata",
		"categoria_id": fmt.Sprintf("%d", category.ID),
		"precio":       "3.00",
	}, "", nil)

	req, _ := http.NewRequest(http.MethodPost, "/platillo/guardar", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Nil(t, data["imagen"])
}

func TestCreateDish_InvalidImageFormat(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)
	setupMockImageService()

	category := models.Category{Name: "Postres"}
	assert.NoError(t, db.Create(&category).Error)

	router := setupTestRouter()
	router.POST("/platillo/guardar", CreateDish)

	body, contentType := buildDishForm(t, map[string]string{
		"nombre":       "Flan",
		"categoria_id": fmt.Sprintf("%d", category.ID),
		"precio":       "4.00",
	}, "flan.gif", []byte("gif bytes"))

	req, _ := http.NewRequest(http.MethodPost, "/platillo/guardar", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_FILE_FORMAT", errorData["code"])

	// Nothing may be persisted on a rejected upload
	var count int64
	assert.NoError(t, db.Model(&models.Dish{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListDishes_ResolvesImageURLs(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)
	mockS3 := setupMockImageService()

	category := models.Category{Name: "Platos fuertes"}
	assert.NoError(t, db.Create(&category).Error)

	// Upload through the mock so the presign lookup finds the key
	header := createDishImageHeader(t, "tacos.png", []byte("fake png bytes"))
	key, err := mockS3.UploadFile(header)
	assert.NoError(t, err)

	withImage := models.Dish{Name: "Tacos al pastor", CategoryID: category.ID, Price: 10.0, ImageS3Key: &key}
	assert.NoError(t, db.Create(&withImage).Error)
	withoutImage := models.Dish{Name: "Enchiladas", CategoryID: category.ID, Price: 22.5}
	assert.NoError(t, db.Create(&withoutImage).Error)

	router := setupTestRouter()
	router.GET("/platillo/listar", ListDishes)

	req, _ := http.NewRequest(http.MethodGet, "/platillo/listar", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 2)

	assert.Contains(t, response[0]["imagen_url"], key)
	assert.Nil(t, response[1]["imagen_url"])
}

// createDishImageHeader builds a multipart.FileHeader for direct service calls
func createDishImageHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	body, contentType := buildDishForm(t, nil, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("Failed to parse multipart form: %v", err)
	}
	return req.MultipartForm.File["imagen"][0]
}

func TestUpdateDish(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)
	setupMockImageService()

	category := models.Category{Name: "Platos fuertes"}
	assert.NoError(t, db.Create(&category).Error)
	dish := models.Dish{Name: "Tacos", CategoryID: category.ID, Price: 9.0}
	assert.NoError(t, db.Create(&dish).Error)

	router := setupTestRouter()
	router.PUT("/platillo/actualizar", UpdateDish)

	body, contentType := buildDishForm(t, map[string]string{
		"id":           fmt.Sprintf("%d", dish.ID),
		"nombre":       "Tacos al pastor",
		"categoria_id": fmt.Sprintf("%d", category.ID),
		"precio":       "10.50",
	}, "", nil)

	req, _ := http.NewRequest(http.MethodPut, "/platillo/actualizar", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Dish
	assert.NoError(t, db.First(&stored, dish.ID).Error)
	assert.Equal(t, "Tacos al pastor", stored.Name)
	assert.Equal(t, 10.5, stored.Price)
}

func TestUpdateDish_ReplacesImage(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)
	mockS3 := setupMockImageService()

	category := models.Category{Name: "Platos fuertes"}
	assert.NoError(t, db.Create(&category).Error)

	header := createDishImageHeader(t, "old.png", []byte("old bytes"))
	oldKey, err := mockS3.UploadFile(header)
	assert.NoError(t, err)

	dish := models.Dish{Name: "Tacos", CategoryID: category.ID, Price: 9.0, ImageS3Key: &oldKey}
	assert.NoError(t, db.Create(&dish).Error)

	router := setupTestRouter()
	router.PUT("/platillo/actualizar", UpdateDish)

	body, contentType := buildDishForm(t, map[string]string{
		"id":           fmt.Sprintf("%d", dish.ID),
		"nombre":       "Tacos",
		"categoria_id": fmt.Sprintf("%d", category.ID),
		"precio":       "9.00",
	}, "new.png", []byte("new bytes"))

	req, _ := http.NewRequest(http.MethodPut, "/platillo/actualizar", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Dish
	assert.NoError(t, db.First(&stored, dish.ID).Error)
	assert.Equal(t, "platillos/mock_new.png", *stored.ImageS3Key)

	// The replaced photo is gone from storage
	assert.False(t, mockS3.FileExists(oldKey))
	assert.True(t, mockS3.FileExists("platillos/mock_new.png"))
}

func TestUpdateDish_NotFound(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)
	setupMockImageService()

	router := setupTestRouter()
	router.PUT("/platillo/actualizar", UpdateDish)

	body, contentType := buildDishForm(t, map[string]string{
		"id":           "99999",
		"nombre":       "Tacos",
		"categoria_id": "1",
		"precio":       "10.00",
	}, "", nil)

	req, _ := http.NewRequest(http.MethodPut, "/platillo/actualizar", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteDish(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)
	mockS3 := setupMockImageService()

	category := models.Category{Name: "Platos fuertes"}
	assert.NoError(t, db.Create(&category).Error)

	header := createDishImageHeader(t, "tacos.png", []byte("fake png bytes"))
	key, err := mockS3.UploadFile(header)
	assert.NoError(t, err)

	dish := models.Dish{Name: "Tacos", CategoryID: category.ID, Price: 9.0, ImageS3Key: &key}
	assert.NoError(t, db.Create(&dish).Error)

	router := setupTestRouter()
	router.DELETE("/platillo/eliminar/:id", DeleteDish)

	url := fmt.Sprintf("/platillo/eliminar/%d", dish.ID)
	req, _ := http.NewRequest(http.MethodDelete, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	assert.NoError(t, db.Model(&models.Dish{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.False(t, mockS3.FileExists(key))
}

func TestDeleteDish_NotFound(t *testing.T) {
	db := setupControllerTestDB(t)
	config.SetDB(db)
	setupMockImageService()

	router := setupTestRouter()
	router.DELETE("/platillo/eliminar/:id", DeleteDish)

	req, _ := http.NewRequest(http.MethodDelete, "/platillo/eliminar/99999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

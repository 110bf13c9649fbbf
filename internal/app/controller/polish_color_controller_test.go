package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"github.com/woodnest/woodnest-backend/internal/app/service"
	"github.com/woodnest/woodnest-backend/internal/db"
)

func setupPolishColorControllerTest(t *testing.T) *gin.Engine {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	colorService := service.NewPolishColorService(repository.NewPolishColorRepository(testDB))
	colorController := NewPolishColorController(colorService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/polish-colors", colorController.GetPolishColors)
	router.POST("/admin/polish-colors", colorController.CreatePolishColor)
	router.PUT("/admin/polish-colors/:id", colorController.UpdatePolishColor)
	router.DELETE("/admin/polish-colors/:id", colorController.DeletePolishColor)

	return router
}

func postColor(t *testing.T, router *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/polish-colors", bytes.NewBuffer(encoded))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPolishColorController_Create_NormalizesHex(t *testing.T) {
	router := setupPolishColorControllerTest(t)

	w := postColor(t, router, map[string]interface{}{
		"name":     "Walnut",
		"hex_code": " 5d432c ",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		PolishColor struct {
			Name    string `json:"name"`
			HexCode string `json:"hex_code"`
		} `json:"polish_color"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Walnut", response.PolishColor.Name)
	assert.Equal(t, "#5D432C", response.PolishColor.HexCode)
}

func TestPolishColorController_Create_RejectsBadHex(t *testing.T) {
	router := setupPolishColorControllerTest(t)

	w := postColor(t, router, map[string]interface{}{
		"name":     "Walnut",
		"hex_code": "#5D43",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPolishColorController_Create_DuplicateName(t *testing.T) {
	router := setupPolishColorControllerTest(t)

	w := postColor(t, router, map[string]interface{}{"name": "Walnut", "hex_code": "#5D432C"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postColor(t, router, map[string]interface{}{"name": "Walnut", "hex_code": "#4A3522"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "RESOURCE_ALREADY_EXISTS")
}

func TestPolishColorController_UpdateAndDelete(t *testing.T) {
	router := setupPolishColorControllerTest(t)

	w := postColor(t, router, map[string]interface{}{"name": "Walnut", "hex_code": "#5D432C"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		PolishColor struct {
			ID uint `json:"id"`
		} `json:"polish_color"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	update := bytes.NewBufferString(`{"name": "Dark Walnut", "hex_code": "4A3522"}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/polish-colors/1", update)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/polish-colors", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "Dark Walnut")
	assert.Contains(t, w.Body.String(), "#4A3522")

	req = httptest.NewRequest(http.MethodDelete, "/admin/polish-colors/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/admin/polish-colors/9999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

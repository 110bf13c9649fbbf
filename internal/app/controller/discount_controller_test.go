package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"github.com/woodnest/woodnest-backend/internal/app/service"
	"github.com/woodnest/woodnest-backend/internal/db"
)

func setupDiscountControllerTest(t *testing.T) (*gin.Engine, service.DiscountService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	discountService := service.NewDiscountService(repository.NewDiscountRepository(testDB))
	discountController := NewDiscountController(discountService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/admin/discounts", discountController.GetDiscounts)
	router.GET("/admin/discounts/:id", discountController.GetDiscountByID)
	router.POST("/admin/discounts", discountController.CreateDiscount)
	router.PUT("/admin/discounts/:id", discountController.UpdateDiscount)
	router.DELETE("/admin/discounts/:id", discountController.DeleteDiscount)
	router.PATCH("/admin/discounts/:id/active", discountController.ToggleActive)
	router.POST("/coupons/redeem", discountController.RedeemCoupon)

	return router, discountService
}

func discountBody(t *testing.T, overrides map[string]interface{}) *bytes.Buffer {
	body := map[string]interface{}{
		"name":          "Spring Sale",
		"discount_type": "percent",
		"scope":         "all_items",
		"start_date":    time.Now().AddDate(0, 0, -1).Format(time.RFC3339),
		"end_date":      time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
		"is_active":     true,
		"value":         20,
	}
	for k, v := range overrides {
		body[k] = v
	}

	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewBuffer(encoded)
}

func TestDiscountController_CreateDiscount_Success(t *testing.T) {
	router, _ := setupDiscountControllerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/discounts", discountBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "active", response["status"])
}

func TestDiscountController_CreateDiscount_ValidationErrors(t *testing.T) {
	router, _ := setupDiscountControllerTest(t)

	tests := []struct {
		name      string
		overrides map[string]interface{}
	}{
		{
			name:      "Value over 100 percent",
			overrides: map[string]interface{}{"value": 150},
		},
		{
			name: "Dates inverted",
			overrides: map[string]interface{}{
				"start_date": time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
				"end_date":   time.Now().AddDate(0, 0, -1).Format(time.RFC3339),
			},
		},
		{
			name: "Categories scope without selection",
			overrides: map[string]interface{}{
				"scope":      "categories",
				"categories": []interface{}{},
			},
		},
		{
			name: "Coupon without code",
			overrides: map[string]interface{}{
				"discount_type": "coupon",
				"scope":         "coupon",
				"coupon":        map[string]interface{}{"type": "percent", "value": 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/discounts", discountBody(t, tt.overrides))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestDiscountController_CreateDiscount_DuplicateCouponCode(t *testing.T) {
	router, _ := setupDiscountControllerTest(t)

	post := func(name, code string) *httptest.ResponseRecorder {
		body := discountBody(t, map[string]interface{}{
			"name":          name,
			"discount_type": "coupon",
			"scope":         "coupon",
			"coupon":        map[string]interface{}{"code": code, "type": "percent", "value": 10},
		})
		req := httptest.NewRequest(http.MethodPost, "/admin/discounts", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusCreated, post("Welcome Coupon", "WELCOME10").Code)

	// Codes are uppercased before insert, so the lowercase spelling
	// collides with the existing coupon.
	w := post("Second Coupon", "welcome10")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "COUPON_CODE_EXISTS")
}

func TestDiscountController_CreateDiscount_FieldErrors(t *testing.T) {
	router, _ := setupDiscountControllerTest(t)

	body := bytes.NewBufferString(`{
		"discount_type": "bogus",
		"scope": "all_items",
		"start_date": "2026-01-01T00:00:00Z",
		"end_date": "2026-02-01T00:00:00Z"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/discounts", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "VALIDATION_INVALID_INPUT", response.Error)
	assert.Equal(t, "This field is required", response.Fields["Name"])
	assert.Contains(t, response.Fields["DiscountType"], "percent")
}

func TestDiscountController_UpdateDiscount_NotFound(t *testing.T) {
	router, _ := setupDiscountControllerTest(t)

	req := httptest.NewRequest(http.MethodPut, "/admin/discounts/9999", discountBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDiscountController_ToggleActive(t *testing.T) {
	router, discountService := setupDiscountControllerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/discounts", discountBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Discount struct {
			ID uint `json:"id"`
		} `json:"discount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	patch := bytes.NewBufferString(`{"is_active": false}`)
	req = httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/admin/discounts/%d/active", created.Discount.ID), patch)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	discount, err := discountService.GetDiscountByID(created.Discount.ID)
	require.NoError(t, err)
	assert.False(t, discount.IsActive)
}

func TestDiscountController_RedeemCoupon(t *testing.T) {
	router, discountService := setupDiscountControllerTest(t)

	limit := 1
	_, err := discountService.CreateDiscount(service.DiscountInput{
		Name:         "Welcome Coupon",
		DiscountType: "coupon",
		Scope:        "coupon",
		StartDate:    time.Now().AddDate(0, 0, -1),
		EndDate:      time.Now().AddDate(0, 0, 7),
		IsActive:     true,
		Coupon: &service.CouponInput{
			Code:       "WELCOME10",
			Type:       "percent",
			Value:      10,
			UsageLimit: &limit,
		},
	})
	require.NoError(t, err)

	redeem := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/coupons/redeem", bytes.NewBufferString(`{"code": "welcome10"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, redeem().Code)
	assert.Equal(t, http.StatusConflict, redeem().Code)

	req := httptest.NewRequest(http.MethodPost, "/coupons/redeem", bytes.NewBufferString(`{"code": "MISSING"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDiscountController_DeleteDiscount(t *testing.T) {
	router, discountService := setupDiscountControllerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/discounts", discountBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Discount struct {
			ID uint `json:"id"`
		} `json:"discount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/discounts/%d", created.Discount.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	_, err := discountService.GetDiscountByID(created.Discount.ID)
	assert.ErrorIs(t, err, service.ErrDiscountNotFound)
}

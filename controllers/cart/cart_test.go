package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/api"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/middleware"
	"github.com/elhenawymokhtar1/messenger-chat-system-sub000/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Company{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Category{},
		&models.CartItem{},
		&models.Coupon{},
		&models.ShippingMethod{},
	))
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	company := r.Group("/companies/:companyID", middleware.ResolveCompany(db, true))
	cart := company.Group("/cart/:sessionID")
	cart.GET("", GetCart(db))
	cart.POST("/items", AddCartItem(db))
	cart.PUT("/items/:itemID", UpdateCartItem(db))
	cart.DELETE("/items/:itemID", RemoveCartItem(db))
	cart.DELETE("", ClearCart(db))
	return r
}

func seedCompanyAndProduct(t *testing.T, db *gorm.DB, price float64, stock int) (models.Company, models.Product) {
	t.Helper()
	company := models.Company{Name: "Acme", Slug: "acme", IsActive: true}
	require.NoError(t, db.Create(&company).Error)
	product := models.Product{
		CompanyID: company.ID,
		Name:      "Widget",
		SKU:       "WID-1",
		Price:     price,
		Stock:     stock,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&product).Error)
	return company, product
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, api.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp api.Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func cartPath(companyID uint, sessionID, suffix string) string {
	return fmt.Sprintf("/companies/%d/cart/%s%s", companyID, sessionID, suffix)
}

func TestAddCartItem_MergesQuantities(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	company, product := seedCompanyAndProduct(t, db, 100.00, 10)

	body := gin.H{"product_id": product.ID, "quantity": 1}
	w, _ := doJSON(t, r, http.MethodPost, cartPath(company.ID, "sess_a", "/items"), body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, cartPath(company.ID, "sess_a", "/items"), body)
	assert.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Where("session_id = ?", "sess_a").Find(&items).Error)
	require.Len(t, items, 1, "same product+variant must merge, never a second row")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 200.00, items[0].LineTotal)
}

func TestAddCartItem_RejectsQuantityBeyondStock(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	company, product := seedCompanyAndProduct(t, db, 10.00, 3)

	w, resp := doJSON(t, r, http.MethodPost, cartPath(company.ID, "sess_a", "/items"),
		gin.H{"product_id": product.ID, "quantity": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, api.KindValidation, resp.Error.Kind)

	// merging over the stock line is rejected too
	w, _ = doJSON(t, r, http.MethodPost, cartPath(company.ID, "sess_a", "/items"),
		gin.H{"product_id": product.ID, "quantity": 2})
	assert.Equal(t, http.StatusCreated, w.Code)
	w, resp = doJSON(t, r, http.MethodPost, cartPath(company.ID, "sess_a", "/items"),
		gin.H{"product_id": product.ID, "quantity": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, api.KindValidation, resp.Error.Kind)
}

func TestAddCartItem_UnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	company, _ := seedCompanyAndProduct(t, db, 10.00, 3)

	w, resp := doJSON(t, r, http.MethodPost, cartPath(company.ID, "sess_a", "/items"),
		gin.H{"product_id": 9999, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, api.KindValidation, resp.Error.Kind)
}

func TestUpdateCartItem(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	company, product := seedCompanyAndProduct(t, db, 25.00, 4)

	_, resp := doJSON(t, r, http.MethodPost, cartPath(company.ID, "sess_a", "/items"),
		gin.H{"product_id": product.ID, "quantity": 1})
	var created models.CartItem
	data, _ := json.Marshal(resp.Data)
	require.NoError(t, json.Unmarshal(data, &created))

	w, _ := doJSON(t, r, http.MethodPut, cartPath(company.ID, "sess_a", fmt.Sprintf("/items/%d", created.ID)),
		gin.H{"quantity": 3})
	assert.Equal(t, http.StatusOK, w.Code)

	var item models.CartItem
	require.NoError(t, db.First(&item, created.ID).Error)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 75.00, item.LineTotal)

	// quantity above live stock
	w, resp = doJSON(t, r, http.MethodPut, cartPath(company.ID, "sess_a", fmt.Sprintf("/items/%d", created.ID)),
		gin.H{"quantity": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, api.KindValidation, resp.Error.Kind)

	// unknown item
	w, resp = doJSON(t, r, http.MethodPut, cartPath(company.ID, "sess_a", "/items/424242"),
		gin.H{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, api.KindNotFound, resp.Error.Kind)
}

func TestRemoveCartItem_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	company, product := seedCompanyAndProduct(t, db, 10.00, 5)

	_, resp := doJSON(t, r, http.MethodPost, cartPath(company.ID, "sess_a", "/items"),
		gin.H{"product_id": product.ID, "quantity": 1})
	var created models.CartItem
	data, _ := json.Marshal(resp.Data)
	require.NoError(t, json.Unmarshal(data, &created))

	path := cartPath(company.ID, "sess_a", fmt.Sprintf("/items/%d", created.ID))

	w, _ := doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// second delete is a no-op, not an error
	w, resp = doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("session_id = ?", "sess_a").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestClearCart(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	company, product := seedCompanyAndProduct(t, db, 10.00, 10)

	second := models.Product{CompanyID: company.ID, Name: "Gadget", Price: 5, Stock: 10, IsActive: true}
	require.NoError(t, db.Create(&second).Error)

	doJSON(t, r, http.MethodPost, cartPath(company.ID, "sess_a", "/items"), gin.H{"product_id": product.ID, "quantity": 1})
	doJSON(t, r, http.MethodPost, cartPath(company.ID, "sess_a", "/items"), gin.H{"product_id": second.ID, "quantity": 2})

	w, resp := doJSON(t, r, http.MethodDelete, cartPath(company.ID, "sess_a", ""), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data, _ := json.Marshal(resp.Data)
	assert.JSONEq(t, `{"removed_count": 2}`, string(data))

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("session_id = ?", "sess_a").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGetCart_SnapshotWithSummary(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	company, product := seedCompanyAndProduct(t, db, 100.00, 10)

	doJSON(t, r, http.MethodPost, cartPath(company.ID, "sess_a", "/items"), gin.H{"product_id": product.ID, "quantity": 2})

	w, resp := doJSON(t, r, http.MethodGet, cartPath(company.ID, "sess_a", ""), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Items   []models.CartItem `json:"items"`
		Summary struct {
			Subtotal       float64 `json:"subtotal"`
			DiscountAmount float64 `json:"discount_amount"`
			ShippingAmount float64 `json:"shipping_amount"`
			Total          float64 `json:"total"`
		} `json:"summary"`
	}
	data, _ := json.Marshal(resp.Data)
	require.NoError(t, json.Unmarshal(data, &payload))

	require.Len(t, payload.Items, 1)
	assert.Equal(t, 200.00, payload.Items[0].LineTotal)
	assert.Equal(t, 200.00, payload.Summary.Subtotal)
	assert.Equal(t, 0.0, payload.Summary.DiscountAmount)
	assert.Equal(t, 0.0, payload.Summary.ShippingAmount)
	assert.Equal(t, 200.00, payload.Summary.Total)
}

func TestGetCart_CouponPreviewSurfacesRejection(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	company, product := seedCompanyAndProduct(t, db, 100.00, 10)

	coupon := models.Coupon{
		CompanyID:     company.ID,
		Code:          "SAVE20",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 20,
		IsActive:      false,
	}
	require.NoError(t, db.Create(&coupon).Error)

	doJSON(t, r, http.MethodPost, cartPath(company.ID, "sess_a", "/items"), gin.H{"product_id": product.ID, "quantity": 1})

	w, resp := doJSON(t, r, http.MethodGet, cartPath(company.ID, "sess_a", "?coupon=save20"), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Summary struct {
			DiscountAmount       float64 `json:"discount_amount"`
			CouponRejectedReason string  `json:"coupon_rejected_reason"`
		} `json:"summary"`
	}
	data, _ := json.Marshal(resp.Data)
	require.NoError(t, json.Unmarshal(data, &payload))

	assert.Equal(t, 0.0, payload.Summary.DiscountAmount)
	assert.Equal(t, "inactive", payload.Summary.CouponRejectedReason)
}

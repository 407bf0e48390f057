package handler

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

	catalogapp "github.com/grocery/backend/internal/application/catalog"
	partnerapp "github.com/grocery/backend/internal/application/partner"
	reportapp "github.com/grocery/backend/internal/application/report"
	salesapp "github.com/grocery/backend/internal/application/sales"
	"github.com/grocery/backend/internal/infrastructure/persistence"
	"github.com/grocery/backend/internal/infrastructure/persistence/models"
)

// setupTestServer wires handlers over an in-memory database, mirroring
// the production wiring in cmd/server.
func setupTestServer(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ProductModel{},
		&models.SupplyOptionModel{},
		&models.CustomerModel{},
		&models.DistributorModel{},
		&models.SaleModel{},
		&models.SaleLineModel{},
	))

	productRepo := persistence.NewGormProductRepository(db)
	saleRepo := persistence.NewGormSaleRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	distributorRepo := persistence.NewGormDistributorRepository(db)

	settlementService := salesapp.NewSettlementService(persistence.NewGormSaleTransactionScope(db))
	historyService := salesapp.NewHistoryService(saleRepo, productRepo, customerRepo)
	analyticsService := reportapp.NewAnalyticsService(saleRepo, true)
	productService := catalogapp.NewProductService(productRepo, distributorRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewSaleHandler(settlementService, historyService, analyticsService).RegisterRoutes(api)
	NewProductHandler(productService).RegisterRoutes(api)
	NewCustomerHandler(customerService).RegisterRoutes(api)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createProduct(t *testing.T, engine *gin.Engine, name string, options string) string {
	w := doJSON(t, engine, http.MethodPost, "/api/v1/products", gin.H{
		"name":          name,
		"image":         "https://img.example.com/p.png",
		"sellingPrice":  "20",
		"supplyOptions": options,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ID
}

func TestSaleHandler_CreateConsumesStock(t *testing.T) {
	engine := setupTestServer(t)
	productID := createProduct(t, engine, "Rice 5kg",
		`[{"costPrice":"10","stock":"2"},{"costPrice":"15","stock":"2"}]`)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sales", gin.H{
		"products": []gin.H{{"product": productID, "qty": "3"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			TotalAmount string `json:"totalAmount"`
			Lines       []struct {
				CostPrice string `json:"costPrice"`
			} `json:"products"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "60", resp.Data.TotalAmount)

	// 2@10 + 1@15 over qty 3
	require.Len(t, resp.Data.Lines, 1)
	assert.Equal(t, "11.6666666666666667", resp.Data.Lines[0].CostPrice)

	// Remaining stock is visible on the product
	w = doJSON(t, engine, http.MethodGet, "/api/v1/products/"+productID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var productResp struct {
		Data struct {
			Qty string `json:"qty"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &productResp))
	assert.Equal(t, "1", productResp.Data.Qty)
}

func TestSaleHandler_CreateInsufficientStock(t *testing.T) {
	engine := setupTestServer(t)
	productID := createProduct(t, engine, "Milk 1L", `[{"costPrice":"5","stock":"2"}]`)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sales", gin.H{
		"products": []gin.H{{"product": productID, "qty": "5"}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)

	// Nothing was consumed
	w = doJSON(t, engine, http.MethodGet, "/api/v1/products/"+productID, nil)
	var productResp struct {
		Data struct {
			Qty string `json:"qty"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &productResp))
	assert.Equal(t, "2", productResp.Data.Qty)
}

func TestSaleHandler_CreateUnknownProduct(t *testing.T) {
	engine := setupTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sales", gin.H{
		"products": []gin.H{{"product": "a2ea35f5-9a26-4de0-94af-f1f0f6a1a2b3", "qty": "1"}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

func TestSaleHandler_CreateEmptyCart(t *testing.T) {
	engine := setupTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sales", gin.H{"products": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_LoyaltyAccrual(t *testing.T) {
	engine := setupTestServer(t)
	productID := createProduct(t, engine, "Oil 1L", `[{"costPrice":"100","stock":"10"}]`)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/customers", gin.H{
		"name":  "Asha",
		"phone": "9876543210",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var customerResp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customerResp))

	// A failed settlement must not accrue points
	w = doJSON(t, engine, http.MethodPost, "/api/v1/sales", gin.H{
		"products":   []gin.H{{"product": productID, "qty": "12"}},
		"customerId": customerResp.Data.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code) // only 10 in stock

	w = doJSON(t, engine, http.MethodPost, "/api/v1/sales", gin.H{
		"products":   []gin.H{{"product": productID, "qty": "10"}},
		"customerId": customerResp.Data.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodGet, "/api/v1/customers", nil)
	var listResp struct {
		Data []struct {
			LoyaltyPoints int `json:"loyaltyPoints"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(t, listResp.Data, 1)
	// 10 x 20 = 200 total earns 2 points
	assert.Equal(t, 2, listResp.Data[0].LoyaltyPoints)
}

func TestSaleHandler_HistoryAndTrashFlow(t *testing.T) {
	engine := setupTestServer(t)
	productID := createProduct(t, engine, "Bread", `[{"costPrice":"1","stock":"10"}]`)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sales", gin.H{
		"products": []gin.H{{"product": productID, "qty": "1"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var saleResp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saleResp))
	saleID := saleResp.Data.ID

	w = doJSON(t, engine, http.MethodGet, "/api/v1/sales/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var historyResp struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &historyResp))
	assert.Len(t, historyResp.Data, 1)

	// Trash it: disappears from the live view, appears in the trash view
	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/sales/%s/trash", saleID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, engine, http.MethodGet, "/api/v1/sales/history", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &historyResp))
	assert.Empty(t, historyResp.Data)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/sales/history?trash=true", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &historyResp))
	assert.Len(t, historyResp.Data, 1)

	// Hard delete from the trash
	w = doJSON(t, engine, http.MethodDelete, "/api/v1/sales/"+saleID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/sales/history?trash=true", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &historyResp))
	assert.Empty(t, historyResp.Data)
}

func TestSaleHandler_Analytics(t *testing.T) {
	engine := setupTestServer(t)
	productID := createProduct(t, engine, "Tea", `[{"costPrice":"10","stock":"10"}]`)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/sales", gin.H{
		"products": []gin.H{{"product": productID, "qty": "2"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/sales/analytics?range=week", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			TotalSalesAmount string `json:"totalSalesAmount"`
			TotalProfit      string `json:"totalProfit"`
			ChartData        []struct {
				Sales string `json:"sales"`
			} `json:"chartData"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "40", resp.Data.TotalSalesAmount)
	assert.Equal(t, "20", resp.Data.TotalProfit)
	require.Len(t, resp.Data.ChartData, 7)
	// Today's bucket is the last one
	assert.Equal(t, "40", resp.Data.ChartData[6].Sales)
}

func TestSaleHandler_InvalidIDs(t *testing.T) {
	engine := setupTestServer(t)

	w := doJSON(t, engine, http.MethodPut, "/api/v1/sales/not-a-uuid/trash", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, http.MethodDelete, "/api/v1/sales/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

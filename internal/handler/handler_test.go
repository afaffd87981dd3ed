package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"laundrybill/internal/notify"
	"laundrybill/internal/repository/memory"
	"laundrybill/internal/service"
	"laundrybill/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
	decimal.MarshalJSONWithoutQuotes = true
}

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

type testServer struct {
	router *gin.Engine
	store  *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	clock := service.FixedClock(testNow, time.UTC)

	shopService := service.NewShopService(store.Shop(), store.Audit(), store.TxManager(), decimal.RequireFromString("0.05"))
	billService := service.NewBillService(store.Bills(), store.Audit(), store.TxManager(), shopService, nil, clock, "")
	userService := service.NewUserService(store.Users(), store.Audit(), bcrypt.MinCost)
	_, err := userService.EnsureUser(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	archive, err := storage.NewArchive(t.TempDir(), "", time.UTC)
	require.NoError(t, err)

	r := gin.New()
	root := r.Group("")
	NewShopHandler(shopService).RegisterRoutes(root)
	NewItemHandler(service.NewItemService(store.Items(), store.Audit(), store.TxManager())).RegisterRoutes(root)
	NewBillHandler(billService).RegisterRoutes(root)
	NewReportHandler(service.NewReportService(store.Bills(), clock)).RegisterRoutes(root)
	NewUserHandler(userService, nil).RegisterRoutes(root)
	NewAuditHandler(service.NewAuditService(store.Audit())).RegisterRoutes(root)
	NewDocumentHandler(service.NewDocumentService(archive, notify.Nop{}, clock, time.Second)).RegisterRoutes(root)

	return &testServer{router: r, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func billPayload() map[string]interface{} {
	return map[string]interface{}{
		"customerName":  "Asha",
		"customerPhone": "9876543210",
		"customerTown":  "Pune",
		"returnDate":    "2026-10-10",
		"items": []map[string]interface{}{
			{"name": "Shirt", "qty": 2, "price": 10},
			{"name": "Saree", "qty": 1, "price": "50"},
		},
	}
}

func (s *testServer) createBill(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/bills", billPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode[map[string]string](t, w)
	require.NotEmpty(t, body["billId"])
	return body["billId"]
}

func TestBillLifecycle(t *testing.T) {
	s := newTestServer(t)
	id := s.createBill(t)

	w := s.do(t, http.MethodGet, "/api/bills/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	pending := decode[[]map[string]interface{}](t, w)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0]["BillID"])
	assert.Equal(t, "Pending", pending[0]["PaymentStatus"])
	assert.EqualValues(t, 70, pending[0]["SubTotal"])
	assert.EqualValues(t, 3.5, pending[0]["TaxAmount"])
	assert.EqualValues(t, 73.5, pending[0]["GrandTotal"])

	w = s.do(t, http.MethodGet, "/api/bills/"+id+"/items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]map[string]interface{}](t, w)
	require.Len(t, items, 2)
	assert.Equal(t, "Shirt", items[0]["ItemName"])
	assert.EqualValues(t, 2, items[0]["Quantity"])
	assert.EqualValues(t, 20, items[0]["TotalPrice"])

	update := billPayload()
	update["billId"] = id
	update["customerName"] = "Asha K"
	w = s.do(t, http.MethodPost, "/api/bills", update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, id, decode[map[string]string](t, w)["billId"])

	w = s.do(t, http.MethodPut, "/api/bills/"+id+"/pay", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bill marked as paid", decode[map[string]string](t, w)["message"])
	w = s.do(t, http.MethodPut, "/api/bills/"+id+"/pay", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/bills/pending", nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(t, http.MethodDelete, "/api/bills/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/bills/"+id+"/items", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveBillValidationErrors(t *testing.T) {
	s := newTestServer(t)

	for _, phone := range []string{"12345", "12345678901", "abcdefghij"} {
		payload := billPayload()
		payload["customerPhone"] = phone
		w := s.do(t, http.MethodPost, "/api/bills", payload)
		require.Equal(t, http.StatusBadRequest, w.Code, phone)

		body := decode[map[string]interface{}](t, w)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "customerPhone must be exactly 10 digits", body["message"])
	}

	payload := billPayload()
	payload["items"] = []interface{}{}
	w := s.do(t, http.MethodPost, "/api/bills", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/bills", `{"customerName":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request payload")
}

func TestBillNotFound(t *testing.T) {
	s := newTestServer(t)

	for _, id := range []string{uuid.NewString(), "missing"} {
		w := s.do(t, http.MethodPut, "/api/bills/"+id+"/pay", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Bill not found", decode[map[string]interface{}](t, w)["message"])

		w = s.do(t, http.MethodDelete, "/api/bills/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestShopEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/shop", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/shop", map[string]interface{}{
		"ShopName": "FreshWash", "Tagline": "We care", "Address": "MG Road", "Phone": "9876543210", "TaxRate": 5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/shop", nil)
	require.Equal(t, http.StatusOK, w.Code)
	shop := decode[map[string]interface{}](t, w)
	assert.Equal(t, "FreshWash", shop["ShopName"])
	assert.EqualValues(t, 0.05, shop["TaxRate"])
}

func TestItemEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/items", map[string]interface{}{"ItemName": "Shirt", "UnitPrice": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, _ := decode[map[string]interface{}](t, w)["ItemID"].(string)
	require.NotEmpty(t, id)

	w = s.do(t, http.MethodPut, "/api/items/"+id, map[string]interface{}{"ItemName": "Shirt", "UnitPrice": 12})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/items", nil)
	items := decode[[]map[string]interface{}](t, w)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0]["ItemID"])
	assert.EqualValues(t, 12, items[0]["UnitPrice"])

	w = s.do(t, http.MethodDelete, "/api/items/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/items", nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(t, http.MethodPut, "/api/items/"+uuid.NewString(), map[string]interface{}{"ItemName": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.createBill(t)

	w := s.do(t, http.MethodGet, "/api/reports/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[map[string]interface{}](t, w)
	today := dash["today"].(map[string]interface{})
	assert.EqualValues(t, 73.5, today["Revenue"])
	assert.EqualValues(t, 1, today["Orders"])
	assert.EqualValues(t, 1, dash["pendingDeliveries"])
	assert.Len(t, dash["topItems"], 2)

	// returnDate 2026-10-10 is before the fixed clock.
	for _, path := range []string{"/api/reports/financial", "/api/reports/overdue", "/api/reports/operational"} {
		w = s.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Len(t, decode[[]map[string]interface{}](t, w), 1, path)
	}

	w = s.do(t, http.MethodGet, "/api/reports/monthly-sales", nil)
	require.Equal(t, http.StatusOK, w.Code)
	months := decode[[]map[string]interface{}](t, w)
	require.Len(t, months, 1)
	assert.Equal(t, "October", months[0]["MonthName"])
	assert.EqualValues(t, 2026, months[0]["Year"])
	assert.EqualValues(t, 73.5, months[0]["TotalSales"])
}

func TestLoginEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "admin", body["username"])
	assert.NotEmpty(t, body["userId"])

	for _, creds := range []map[string]string{
		{"username": "admin", "password": "wrong"},
		{"username": "nobody", "password": "admin123"},
	} {
		w = s.do(t, http.MethodPost, "/api/login", creds)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decode[map[string]interface{}](t, w)["message"])
	}

	w = s.do(t, http.MethodPost, "/api/change-password", map[string]string{
		"username": "admin", "currentPassword": "admin123", "newPassword": "freshwash",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "freshwash"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadPDFEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/upload-pdf", map[string]interface{}{
		"pdfData":  "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
		"fileName": "Asha 2026-10-14.pdf",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]string](t, w)
	assert.Equal(t, "http://example.com/uploads/Asha%202026-10-14.pdf", body["url"])

	w = s.do(t, http.MethodPost, "/api/upload-pdf", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No PDF data provided", decode[map[string]interface{}](t, w)["message"])
}

func TestAuditLogsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.createBill(t)

	w := s.do(t, http.MethodGet, "/api/audit-logs?page=1&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.EqualValues(t, 1, body["total"])
	assert.EqualValues(t, 5, body["limit"])
	logs := body["logs"].([]interface{})
	require.Len(t, logs, 1)
	assert.True(t, strings.HasPrefix(logs[0].(map[string]interface{})["action"].(string), "CREATE_"))
}

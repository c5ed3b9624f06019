package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	catalogrepo "aguagas/internal/repository/catalog"
	"aguagas/internal/service/cart"
	"aguagas/internal/service/catalog"
	"aguagas/internal/service/chat"
	"aguagas/internal/service/dashboard"
	"aguagas/internal/service/order"
	"aguagas/internal/session"
	"github.com/gin-gonic/gin"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	repo, err := catalogrepo.NewMemory(catalogrepo.DefaultSuppliers())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	store := session.NewStore()
	catalogSvc := catalog.New(repo)
	return Deps{
		Sessions:  store,
		Catalog:   catalogSvc,
		Cart:      cart.New(store, catalogSvc, nil),
		Orders:    order.New(store, catalogSvc, nil),
		Chat:      chat.New(store, nil),
		Dashboard: dashboard.New(store, catalogSvc),
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(nil, nil, newTestDeps(t), nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func call(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: decode body %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, out
}

func createSession(t *testing.T, router http.Handler, role string) string {
	t.Helper()
	code, body := call(t, router, http.MethodPost, "/sessions", `{"role":"`+role+`"}`, nil)
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", code, body)
	}
	return body["id"].(string)
}

func TestHealthAndReady(t *testing.T) {
	router := newTestRouter(t)
	if code, _ := call(t, router, http.MethodGet, "/healthz", "", nil); code != http.StatusOK {
		t.Fatalf("healthz: %d", code)
	}
	code, body := call(t, router, http.MethodGet, "/readyz", "", nil)
	if code != http.StatusOK || body["catalog"] != "memory" {
		t.Fatalf("readyz: %d %v", code, body)
	}
}

func TestCreateSession_InvalidRole(t *testing.T) {
	router := newTestRouter(t)
	if code, _ := call(t, router, http.MethodPost, "/sessions", `{"role":"admin"}`, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if code, _ := call(t, router, http.MethodPost, "/sessions", `{}`, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestSetRole(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router, "customer")
	code, body := call(t, router, http.MethodPut, "/sessions/"+id+"/role", `{"role":"supplier"}`, nil)
	if code != http.StatusOK || body["role"] != "supplier" {
		t.Fatalf("set role: %d %v", code, body)
	}
}

func TestListSuppliers_Filters(t *testing.T) {
	router := newTestRouter(t)
	code, body := call(t, router, http.MethodGet, "/suppliers?category=gas", "", nil)
	if code != http.StatusOK || body["count"].(float64) != 2 {
		t.Fatalf("gas suppliers: %d %v", code, body)
	}
	_, body = call(t, router, http.MethodGet, "/suppliers?q=cristal", "", nil)
	if body["count"].(float64) != 1 {
		t.Fatalf("query filter: %v", body)
	}
	if code, _ := call(t, router, http.MethodGet, "/suppliers/99", "", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestOrderLifecycle(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router, "customer")
	base := "/sessions/" + id

	code, body := call(t, router, http.MethodPost, base+"/orders", "", nil)
	if code != http.StatusConflict {
		t.Fatalf("checkout on empty cart: expected 409, got %d %v", code, body)
	}

	code, body = call(t, router, http.MethodPost, base+"/cart",
		`{"actions":[{"action":"addLineItem","supplierId":"1","productId":"1","quantity":2}]}`, nil)
	if code != http.StatusOK {
		t.Fatalf("add item: %d %v", code, body)
	}
	if body["total"] != "25.80" || body["platformFee"] != "1.00" || body["stampsToNext"].(float64) != 10 {
		t.Fatalf("unexpected cart %v", body)
	}

	code, _ = call(t, router, http.MethodPost, base+"/cart",
		`{"actions":[{"action":"addLineItem","supplierId":"2","productId":"3"}]}`, nil)
	if code != http.StatusConflict {
		t.Fatalf("other supplier: expected 409, got %d", code)
	}

	code, body = call(t, router, http.MethodPost, base+"/orders", "", nil)
	if code != http.StatusCreated {
		t.Fatalf("checkout: %d %v", code, body)
	}
	orderID := body["id"].(string)
	if body["status"] != "pending" || body["canCancel"] != true || body["total"] != "25.80" {
		t.Fatalf("unexpected order %v", body)
	}

	_, body = call(t, router, http.MethodGet, base+"/cart", "", nil)
	if items := body["lineItems"].([]any); len(items) != 0 {
		t.Fatalf("expected empty cart after checkout, got %v", items)
	}

	orderPath := base + "/orders/" + orderID
	code, body = call(t, router, http.MethodGet, orderPath, "", nil)
	if code != http.StatusOK || body["countdown"] != "10:00" || body["canChat"] != true {
		t.Fatalf("get order: %d %v", code, body)
	}

	code, body = call(t, router, http.MethodPost, orderPath+"/messages", `{"message":"  hi  "}`, nil)
	if code != http.StatusCreated || body["message"] != "hi" || body["sender"] != "customer" {
		t.Fatalf("send message: %d %v", code, body)
	}
	if code, _ := call(t, router, http.MethodPost, orderPath+"/messages", `{"message":" "}`, nil); code != http.StatusBadRequest {
		t.Fatalf("empty message: expected 400, got %d", code)
	}

	code, body = call(t, router, http.MethodPost, orderPath+"/cancel", "", nil)
	if code != http.StatusOK || body["status"] != "cancelled" || body["canCancel"] != false {
		t.Fatalf("cancel: %d %v", code, body)
	}
	if code, _ := call(t, router, http.MethodPost, orderPath+"/cancel", "", nil); code != http.StatusConflict {
		t.Fatalf("second cancel: expected 409, got %d", code)
	}
	if code, _ := call(t, router, http.MethodPost, orderPath+"/messages", `{"message":"still there?"}`, nil); code != http.StatusConflict {
		t.Fatalf("chat after cancel: expected 409, got %d", code)
	}

	_, body = call(t, router, http.MethodGet, orderPath+"/messages", "", nil)
	if body["count"].(float64) != 1 {
		t.Fatalf("expected 1 message, got %v", body)
	}

	code, body = call(t, router, http.MethodGet, "/suppliers/1", "", map[string]string{sessionHeader: id})
	if code != http.StatusOK || body["stamps"].(float64) != 1 || body["stampsToNext"].(float64) != 9 {
		t.Fatalf("supplier stamps: %d %v", code, body)
	}

	code, body = call(t, router, http.MethodGet, base+"/dashboard/1", "", nil)
	if code != http.StatusOK || body["orders"].(float64) != 1 || body["cancelled"].(float64) != 1 || body["gross"] != "0.00" {
		t.Fatalf("dashboard: %d %v", code, body)
	}
}

func TestAdvanceOrder(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router, "supplier")
	base := "/sessions/" + id

	if code, body := call(t, router, http.MethodPut, base+"/supplier", `{"supplierId":"2"}`, nil); code != http.StatusOK {
		t.Fatalf("select supplier: %d %v", code, body)
	}
	code, body := call(t, router, http.MethodPost, base+"/cart",
		`{"actions":[{"action":"addLineItem","productId":"3"},{"action":"addLineItem","productId":"4"}]}`, nil)
	if code != http.StatusOK || body["platformFee"] != "15.00" || body["total"] != "375.00" {
		t.Fatalf("cart: %d %v", code, body)
	}
	_, body = call(t, router, http.MethodPost, base+"/orders", "", nil)
	orderPath := base + "/orders/" + body["id"].(string)

	if code, _ := call(t, router, http.MethodPost, orderPath+"/advance", `{"status":"delivered"}`, nil); code != http.StatusConflict {
		t.Fatalf("skip: expected 409, got %d", code)
	}
	if code, _ := call(t, router, http.MethodPost, orderPath+"/advance", `{"status":"shipped"}`, nil); code != http.StatusBadRequest {
		t.Fatalf("unknown status: expected 400, got %d", code)
	}
	for _, status := range []string{"approved", "delivering", "delivered"} {
		code, body := call(t, router, http.MethodPost, orderPath+"/advance", `{"status":"`+status+`"}`, nil)
		if code != http.StatusOK || body["status"] != status {
			t.Fatalf("advance to %s: %d %v", status, code, body)
		}
	}

	_, body = call(t, router, http.MethodGet, base+"/dashboard/2", "", nil)
	if body["gross"] != "375.00" || body["platformFees"] != "15.00" || body["payout"] != "360.00" {
		t.Fatalf("dashboard: %v", body)
	}

	_, body = call(t, router, http.MethodGet, base+"/orders", "", nil)
	if body["count"].(float64) != 1 {
		t.Fatalf("list orders: %v", body)
	}
}

func TestUnknownSession(t *testing.T) {
	router := newTestRouter(t)
	if code, _ := call(t, router, http.MethodGet, "/sessions/nope/cart", "", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestUpdateCart_VersionAndQuantityLimits(t *testing.T) {
	router := newTestRouter(t)
	base := "/sessions/" + createSession(t, router, "customer")

	code, body := call(t, router, http.MethodPost, base+"/cart",
		`{"actions":[{"action":"addLineItem","supplierId":"1","productId":"1"}]}`, nil)
	if code != http.StatusOK || body["version"].(float64) != 1 {
		t.Fatalf("add: %d %v", code, body)
	}

	code, body = call(t, router, http.MethodPost, base+"/cart",
		`{"version":1,"actions":[{"action":"changeLineItemQuantity","productId":"1","quantity":3}]}`, nil)
	if code != http.StatusOK || body["version"].(float64) != 2 || body["totalLineItemQuantity"].(float64) != 3 {
		t.Fatalf("versioned change: %d %v", code, body)
	}

	if code, _ := call(t, router, http.MethodPost, base+"/cart",
		`{"version":1,"actions":[{"action":"changeLineItemQuantity","productId":"1","quantity":4}]}`, nil); code != http.StatusConflict {
		t.Fatalf("stale version: expected 409, got %d", code)
	}

	if code, _ := call(t, router, http.MethodPost, base+"/cart",
		`{"actions":[{"action":"addLineItem","productId":"1","quantity":9223372036854775807}]}`, nil); code != http.StatusBadRequest {
		t.Fatalf("huge quantity: expected 400, got %d", code)
	}

	_, body = call(t, router, http.MethodGet, base+"/cart", "", nil)
	if body["totalLineItemQuantity"].(float64) != 3 || body["version"].(float64) != 2 {
		t.Fatalf("rejected updates changed the cart: %v", body)
	}
}

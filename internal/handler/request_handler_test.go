package handler

import (
	"net/http"
	"testing"

	"github.com/Kohryu26/SoleCast/internal/middleware"
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/Kohryu26/SoleCast/internal/service"
	"github.com/Kohryu26/SoleCast/internal/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupRequestRoutes(t *testing.T) (*gin.Engine, *repository.Repositories, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	costing := service.NewCostingService(repos.BOM)
	svc := service.NewRequestService(repos.Request, repos.Material, costing, db)
	h := NewRequestHandler(svc)

	r := testutil.SetupRouter()
	requests := testutil.AuthGroup(r, "/api/v1/requests")
	requests.GET("", h.List)
	requests.POST("", h.Submit)
	requests.GET("/:id", h.Get)
	requests.PUT("/:id/status", middleware.RequireRole(entity.RoleAdmin), h.SetStatus)
	requests.POST("/:id/receive", middleware.RequireRole(entity.RoleAdmin), h.Receive)

	return r, repos, db
}

func TestRequestLifecycleOverHTTP(t *testing.T) {
	r, repos, db := setupRequestRoutes(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 10, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)

	empToken := testutil.EmployeeTestToken()
	adminToken := testutil.AdminTestToken()

	// 员工提交
	w := testutil.DoRequest(r, "POST", "/api/v1/requests", gin.H{
		"product_name": "Shoe-A",
		"quantity":     8,
	}, empToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	reqID := data["id"].(string)
	if data["status"] != entity.RequestStatusPending {
		t.Errorf("expected Pending, got %v", data["status"])
	}

	// 员工无权审批
	w = testutil.DoRequest(r, "PUT", "/api/v1/requests/"+reqID+"/status", gin.H{
		"status": entity.RequestStatusApproved,
	}, empToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("employee approve: expected 403, got %d", w.Code)
	}

	// 管理员审批
	w = testutil.DoRequest(r, "PUT", "/api/v1/requests/"+reqID+"/status", gin.H{
		"status": entity.RequestStatusApproved,
	}, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("admin approve: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// 管理员收货
	w = testutil.DoRequest(r, "POST", "/api/v1/requests/"+reqID+"/receive", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("receive: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	m, err := repos.Material.GetByID(leather.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if m.Stock != 16 {
		t.Errorf("expected stock 16 after receive, got %d", m.Stock)
	}

	// 重复收货为状态冲突
	w = testutil.DoRequest(r, "POST", "/api/v1/requests/"+reqID+"/receive", nil, adminToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("double receive: expected 409, got %d", w.Code)
	}
}

func TestRequestRoutesRequireAuth(t *testing.T) {
	r, _, _ := setupRequestRoutes(t)

	w := testutil.DoRequest(r, "GET", "/api/v1/requests", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestSubmitRejectsBadPayload(t *testing.T) {
	r, _, _ := setupRequestRoutes(t)

	w := testutil.DoRequest(r, "POST", "/api/v1/requests", gin.H{
		"quantity": 8,
	}, testutil.EmployeeTestToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing product_name, got %d", w.Code)
	}

	// 未定义BOM的产品
	w = testutil.DoRequest(r, "POST", "/api/v1/requests", gin.H{
		"product_name": "No-Such-Product",
		"quantity":     8,
	}, testutil.EmployeeTestToken())
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for product without bom, got %d", w.Code)
	}
}

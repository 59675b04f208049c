package service

import (
	"errors"
	"testing"

	"github.com/Kohryu26/SoleCast/internal/apperr"
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/Kohryu26/SoleCast/internal/testutil"
	"gorm.io/gorm"
)

func setupRequestService(t *testing.T) (*RequestService, *repository.Repositories, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	costing := NewCostingService(repos.BOM)
	svc := NewRequestService(repos.Request, repos.Material, costing, db)
	return svc, repos, db
}

func TestSubmitPersistsOnlyShortfallLines(t *testing.T) {
	svc, _, db := setupRequestService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 10, 5.00)
	rubber := testutil.SeedMaterial(t, db, "Rubber", 100, 2.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)
	testutil.SeedBOMEntry(t, db, "Shoe-A", rubber.ID, 1)

	req, err := svc.Submit("emp-1", "employee", "Shoe-A", 8)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if req.Status != entity.RequestStatusPending {
		t.Errorf("expected new request to be Pending, got %s", req.Status)
	}
	if req.TotalCost != 30.00 {
		t.Errorf("expected total cost 30.00, got %f", req.TotalCost)
	}

	// Rubber 库存足够，不应落库
	items, err := svc.GetLineItems(req.ID)
	if err != nil {
		t.Fatalf("GetLineItems failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 persisted line item, got %d", len(items))
	}
	if items[0].MaterialID != leather.ID {
		t.Errorf("expected persisted item to reference Leather, got material %s", items[0].MaterialID)
	}
	if items[0].QuantityNeeded != 6 {
		t.Errorf("expected quantity needed 6, got %d", items[0].QuantityNeeded)
	}
}

func TestSubmitWithoutBOMWritesNothing(t *testing.T) {
	svc, repos, _ := setupRequestService(t)

	_, err := svc.Submit("emp-1", "employee", "No-Such-Product", 5)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	requests, err := repos.Request.List("")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(requests) != 0 {
		t.Errorf("failed submission must not leave a request behind, got %d", len(requests))
	}
}

func TestApprovalTransitions(t *testing.T) {
	svc, _, db := setupRequestService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 0, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)

	req, err := svc.Submit("emp-1", "employee", "Shoe-A", 3)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	updated, err := svc.SetStatus(req.ID, entity.RequestStatusApproved)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if updated.Status != entity.RequestStatusApproved {
		t.Errorf("expected Approved, got %s", updated.Status)
	}

	// 非Pending不可再审批
	if _, err := svc.SetStatus(req.ID, entity.RequestStatusRejected); !errors.Is(err, apperr.ErrStateTransition) {
		t.Errorf("expected state transition error on double decision, got %v", err)
	}
}

func TestSetStatusRejectsInvalidTargets(t *testing.T) {
	svc, _, db := setupRequestService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 0, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 1)

	req, err := svc.Submit("emp-1", "employee", "Shoe-A", 2)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// Completed 只能由收货产生
	if _, err := svc.SetStatus(req.ID, entity.RequestStatusCompleted); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for Completed decision, got %v", err)
	}
	if _, err := svc.SetStatus(req.ID, "Shipped"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}
}

func TestReceiveIncrementsStockAndCompletes(t *testing.T) {
	svc, repos, db := setupRequestService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 10, 5.00)
	sole := testutil.SeedMaterial(t, db, "Sole", 2, 3.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)
	testutil.SeedBOMEntry(t, db, "Shoe-A", sole.ID, 1)

	req, err := svc.Submit("emp-1", "employee", "Shoe-A", 8)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := svc.SetStatus(req.ID, entity.RequestStatusApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	received, err := svc.Receive(req.ID)
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if received.Status != entity.RequestStatusCompleted {
		t.Errorf("expected Completed, got %s", received.Status)
	}

	// Leather 缺6、Sole 缺6，各自入库
	m, err := repos.Material.GetByID(leather.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if m.Stock != 16 {
		t.Errorf("expected leather stock 16 after receive, got %d", m.Stock)
	}
	m, err = repos.Material.GetByID(sole.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if m.Stock != 8 {
		t.Errorf("expected sole stock 8 after receive, got %d", m.Stock)
	}

	// Completed 不可重复收货
	if _, err := svc.Receive(req.ID); !errors.Is(err, apperr.ErrStateTransition) {
		t.Errorf("expected state transition error on double receive, got %v", err)
	}
}

func TestReceiveRequiresApproval(t *testing.T) {
	svc, _, db := setupRequestService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 0, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)

	req, err := svc.Submit("emp-1", "employee", "Shoe-A", 3)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if _, err := svc.Receive(req.ID); !errors.Is(err, apperr.ErrStateTransition) {
		t.Errorf("expected state transition error receiving a Pending request, got %v", err)
	}

	if _, err := svc.SetStatus(req.ID, entity.RequestStatusRejected); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := svc.Receive(req.ID); !errors.Is(err, apperr.ErrStateTransition) {
		t.Errorf("expected state transition error receiving a Rejected request, got %v", err)
	}
}

func TestReceiveAfterMaterialRename(t *testing.T) {
	svc, repos, db := setupRequestService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 10, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)

	req, err := svc.Submit("emp-1", "employee", "Shoe-A", 8)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := svc.SetStatus(req.ID, entity.RequestStatusApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// 收货前改名：明细按稳定ID入库，不受改名影响
	leather.Name = "Premium Leather"
	if err := repos.Material.Update(leather); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	if _, err := svc.Receive(req.ID); err != nil {
		t.Fatalf("Receive after rename failed: %v", err)
	}

	m, err := repos.Material.GetByID(leather.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if m.Stock != 16 {
		t.Errorf("expected stock 16 after receive, got %d", m.Stock)
	}
}

func TestDeleteCascadesLineItems(t *testing.T) {
	svc, _, db := setupRequestService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 0, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)

	req, err := svc.Submit("emp-1", "employee", "Shoe-A", 3)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if err := svc.Delete(req.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var count int64
	if err := db.Model(&entity.RequestLineItem{}).Where("request_id = ?", req.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected line items to cascade on delete, found %d", count)
	}
}

func TestCompleteLocalDoesNotTouchStock(t *testing.T) {
	svc, repos, db := setupRequestService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 10, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)

	order, err := svc.CompleteLocal("emp-1", "employee", "Shoe-A", 8)
	if err != nil {
		t.Fatalf("CompleteLocal failed: %v", err)
	}
	if order.TotalCost != 30.00 {
		t.Errorf("expected total cost 30.00, got %f", order.TotalCost)
	}

	m, err := repos.Material.GetByID(leather.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if m.Stock != 10 {
		t.Errorf("local completion must not change stock, got %d", m.Stock)
	}

	orders, err := svc.ListCompletedOrders("emp-1")
	if err != nil {
		t.Fatalf("ListCompletedOrders failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 completed order, got %d", len(orders))
	}
	if len(orders[0].Items) != 1 {
		t.Errorf("expected 1 order item, got %d", len(orders[0].Items))
	}
}

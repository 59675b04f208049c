package service

import (
	"errors"
	"testing"

	"github.com/Kohryu26/SoleCast/internal/apperr"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/Kohryu26/SoleCast/internal/testutil"
	"gorm.io/gorm"
)

func setupCostingService(t *testing.T) (*CostingService, *repository.Repositories, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewCostingService(repos.BOM), repos, db
}

func TestCalculateShortfallAndCost(t *testing.T) {
	svc, _, db := setupCostingService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 10, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)

	result, err := svc.Calculate("Shoe-A", 8)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if len(result.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(result.Lines))
	}
	line := result.Lines[0]
	if line.TotalRequired != 16 {
		t.Errorf("expected total required 16, got %d", line.TotalRequired)
	}
	if line.NeedToOrder != 6 {
		t.Errorf("expected need to order 6, got %d", line.NeedToOrder)
	}
	if line.Cost != 30.00 {
		t.Errorf("expected line cost 30.00, got %f", line.Cost)
	}
	if result.TotalCost != 30.00 {
		t.Errorf("expected total cost 30.00, got %f", result.TotalCost)
	}
}

func TestCalculateKeepsZeroShortfallLines(t *testing.T) {
	svc, _, db := setupCostingService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 10, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)

	// 库存足够：行保留，缺口与成本为0
	result, err := svc.Calculate("Shoe-A", 3)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if len(result.Lines) != 1 {
		t.Fatalf("expected sufficient-stock line to be kept, got %d lines", len(result.Lines))
	}
	if result.Lines[0].NeedToOrder != 0 {
		t.Errorf("expected zero shortfall, got %d", result.Lines[0].NeedToOrder)
	}
	if result.TotalCost != 0 {
		t.Errorf("expected zero total cost, got %f", result.TotalCost)
	}
}

func TestCalculateIsReadOnly(t *testing.T) {
	svc, repos, db := setupCostingService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 10, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)

	first, err := svc.Calculate("Shoe-A", 8)
	if err != nil {
		t.Fatalf("first Calculate failed: %v", err)
	}
	second, err := svc.Calculate("Shoe-A", 8)
	if err != nil {
		t.Fatalf("second Calculate failed: %v", err)
	}
	if first.TotalCost != second.TotalCost {
		t.Errorf("repeat calculation changed the result: %f vs %f", first.TotalCost, second.TotalCost)
	}

	m, err := repos.Material.GetByID(leather.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if m.Stock != 10 {
		t.Errorf("calculation must not touch stock, got %d", m.Stock)
	}
}

func TestCalculateShortfallMonotonic(t *testing.T) {
	svc, _, db := setupCostingService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 10, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)

	// 库存不变时，投产数量递增，缺口与成本不得递减
	prevNeed, prevCost := 0, 0.0
	for qty := 1; qty <= 20; qty++ {
		result, err := svc.Calculate("Shoe-A", qty)
		if err != nil {
			t.Fatalf("Calculate(%d) failed: %v", qty, err)
		}
		need := result.Lines[0].NeedToOrder
		if need < prevNeed {
			t.Fatalf("qty %d: need to order dropped from %d to %d", qty, prevNeed, need)
		}
		if result.TotalCost < prevCost {
			t.Fatalf("qty %d: total cost dropped from %f to %f", qty, prevCost, result.TotalCost)
		}
		if want := qty*2 - 10; want > 0 && need != want {
			t.Errorf("qty %d: expected shortfall %d, got %d", qty, want, need)
		}
		prevNeed, prevCost = need, result.TotalCost
	}
}

func TestCalculateUnknownProduct(t *testing.T) {
	svc, _, _ := setupCostingService(t)

	_, err := svc.Calculate("No-Such-Product", 5)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for product without bom, got %v", err)
	}
}

func TestCalculateValidation(t *testing.T) {
	svc, _, _ := setupCostingService(t)

	if _, err := svc.Calculate("", 5); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for empty product, got %v", err)
	}
	if _, err := svc.Calculate("Shoe-A", 0); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for zero quantity, got %v", err)
	}
	if _, err := svc.Calculate("Shoe-A", -3); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for negative quantity, got %v", err)
	}
}

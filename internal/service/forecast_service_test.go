package service

import (
	"errors"
	"testing"

	"github.com/Kohryu26/SoleCast/internal/apperr"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/Kohryu26/SoleCast/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testBaseYear = 2024

func setupForecastService(t *testing.T) (*ForecastService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewForecastService(repos.Sales, repos.Prediction, testBaseYear, zap.NewNop())
	return svc, db
}

func TestGenerateSeasonalWithFullHistory(t *testing.T) {
	svc, db := setupForecastService(t)

	for m := 1; m <= 12; m++ {
		testutil.SeedSalesRecord(t, db, "Shoe-A", testBaseYear, m, 100*m, true)
	}

	preds, err := svc.Generate("Shoe-A", testBaseYear+1, 10)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(preds) != 12 {
		t.Fatalf("expected 12 predictions, got %d", len(preds))
	}
	for _, p := range preds {
		if p.Strategy != "seasonal_naive" {
			t.Fatalf("expected seasonal_naive strategy, got %s", p.Strategy)
		}
		expected := 100 * p.Month * 110 / 100
		if p.PredictedQuantity != expected {
			t.Errorf("month %d: expected %d, got %d", p.Month, expected, p.PredictedQuantity)
		}
	}
}

func TestGenerateFallsBackOnSparseHistory(t *testing.T) {
	svc, db := setupForecastService(t)

	// 只有3个月历史，季节法不可用
	for m := 1; m <= 3; m++ {
		testutil.SeedSalesRecord(t, db, "Shoe-A", testBaseYear, m, 500, true)
	}

	preds, err := svc.Generate("Shoe-A", testBaseYear+1, 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, p := range preds {
		if p.Strategy != "flat_baseline" {
			t.Fatalf("expected flat_baseline strategy, got %s", p.Strategy)
		}
		if p.PredictedQuantity != flatBaselineQuantity {
			t.Errorf("month %d: expected baseline %d, got %d", p.Month, flatBaselineQuantity, p.PredictedQuantity)
		}
	}
}

func TestGenerateIgnoresCurrentSales(t *testing.T) {
	svc, db := setupForecastService(t)

	// 当期销售(historical=false)不参与预测基数
	for m := 1; m <= 12; m++ {
		testutil.SeedSalesRecord(t, db, "Shoe-A", testBaseYear, m, 999, false)
	}

	preds, err := svc.Generate("Shoe-A", testBaseYear+1, 0)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if preds[0].Strategy != "flat_baseline" {
		t.Errorf("expected fallback strategy when only current sales exist, got %s", preds[0].Strategy)
	}
}

func TestGenerateReplacesPreviousRun(t *testing.T) {
	svc, db := setupForecastService(t)

	for m := 1; m <= 12; m++ {
		testutil.SeedSalesRecord(t, db, "Shoe-A", testBaseYear, m, 100, true)
	}

	if _, err := svc.Generate("Shoe-A", testBaseYear+1, 0); err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	if _, err := svc.Generate("Shoe-A", testBaseYear+1, 50); err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}

	preds, err := svc.ListPredictions("Shoe-A", testBaseYear+1)
	if err != nil {
		t.Fatalf("ListPredictions failed: %v", err)
	}
	if len(preds) != 12 {
		t.Fatalf("expected regeneration to replace previous run, got %d rows", len(preds))
	}
	for _, p := range preds {
		if p.PredictedQuantity != 150 {
			t.Errorf("month %d: expected replaced value 150, got %d", p.Month, p.PredictedQuantity)
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	svc, _ := setupForecastService(t)

	if _, err := svc.Generate("", testBaseYear+1, 0); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for empty product, got %v", err)
	}
	if _, err := svc.Generate("Shoe-A", testBaseYear, 0); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for target year equal to base year, got %v", err)
	}
}

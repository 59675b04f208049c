package service

import (
	"testing"

	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/Kohryu26/SoleCast/internal/testutil"
	"gorm.io/gorm"
)

func setupReportService(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewReportService(repos.Sales, repos.BOM), db
}

func TestConsumptionAggregatesAcrossProducts(t *testing.T) {
	svc, db := setupReportService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 0, 5.00)
	sole := testutil.SeedMaterial(t, db, "Sole", 0, 3.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)
	testutil.SeedBOMEntry(t, db, "Shoe-B", leather.ID, 3)
	testutil.SeedBOMEntry(t, db, "Shoe-B", sole.ID, 1)

	testutil.SeedSalesRecord(t, db, "Shoe-A", 2025, 6, 10, false)
	testutil.SeedSalesRecord(t, db, "Shoe-B", 2025, 6, 4, false)
	// 期外与历史记录不计入
	testutil.SeedSalesRecord(t, db, "Shoe-A", 2025, 7, 100, false)
	testutil.SeedSalesRecord(t, db, "Shoe-A", 2024, 6, 100, true)

	report, err := svc.Consumption(2025, 6)
	if err != nil {
		t.Fatalf("Consumption failed: %v", err)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Rows))
	}

	// 行按物料名排序
	if report.Rows[0].MaterialName != "Leather" || report.Rows[1].MaterialName != "Sole" {
		t.Fatalf("unexpected row order: %s, %s", report.Rows[0].MaterialName, report.Rows[1].MaterialName)
	}
	// Leather: Shoe-A 10*2 + Shoe-B 4*3 = 32
	if report.Rows[0].TotalQuantity != 32 {
		t.Errorf("expected leather consumption 32, got %d", report.Rows[0].TotalQuantity)
	}
	if report.Rows[1].TotalQuantity != 4 {
		t.Errorf("expected sole consumption 4, got %d", report.Rows[1].TotalQuantity)
	}
}

func TestConsumptionEmptyPeriod(t *testing.T) {
	svc, db := setupReportService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 0, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)

	report, err := svc.Consumption(2025, 6)
	if err != nil {
		t.Fatalf("Consumption failed: %v", err)
	}
	if len(report.Rows) != 0 {
		t.Errorf("expected empty report for period without sales, got %d rows", len(report.Rows))
	}
}

func TestExportConsumptionXLSX(t *testing.T) {
	svc, db := setupReportService(t)

	leather := testutil.SeedMaterial(t, db, "Leather", 0, 5.00)
	testutil.SeedBOMEntry(t, db, "Shoe-A", leather.ID, 2)
	testutil.SeedSalesRecord(t, db, "Shoe-A", 2025, 6, 10, false)

	f, filename, err := svc.ExportConsumptionXLSX(2025, 6)
	if err != nil {
		t.Fatalf("ExportConsumptionXLSX failed: %v", err)
	}
	defer f.Close()

	if filename != "consumption-2025-06.xlsx" {
		t.Errorf("unexpected filename %s", filename)
	}

	name, err := f.GetCellValue("Consumption", "A2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if name != "Leather" {
		t.Errorf("expected first data row to be Leather, got %q", name)
	}
	qty, err := f.GetCellValue("Consumption", "C2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if qty != "20" {
		t.Errorf("expected consumed quantity 20, got %q", qty)
	}
}

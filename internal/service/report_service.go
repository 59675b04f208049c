package service

import (
	"fmt"
	"sort"

	"github.com/Kohryu26/SoleCast/internal/apperr"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ReportService 实际物料消耗报表：当期销量 × BOM单位用量，
// 按 (物料, 单位) 汇总。纯派生视图，不落库。
type ReportService struct {
	salesRepo *repository.SalesRepository
	bomRepo   *repository.BOMRepository
}

func NewReportService(salesRepo *repository.SalesRepository, bomRepo *repository.BOMRepository) *ReportService {
	return &ReportService{salesRepo: salesRepo, bomRepo: bomRepo}
}

// ConsumptionRow 某物料在报表期间的总消耗
type ConsumptionRow struct {
	MaterialName  string `json:"material_name"`
	Unit          string `json:"unit_of_measure"`
	TotalQuantity int    `json:"total_quantity"`
}

// ConsumptionReport 期间消耗报表。期间无当期销售或销量未命中
// 任何BOM时 Rows 为空，不视为错误。
type ConsumptionReport struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Rows  []ConsumptionRow `json:"rows"`
}

// Consumption 生成 (year, month) 的实际物料消耗报表
func (s *ReportService) Consumption(year, month int) (*ConsumptionReport, error) {
	if month < 1 || month > 12 {
		return nil, apperr.Validationf("month must be between 1 and 12, got %d", month)
	}

	report := &ConsumptionReport{Year: year, Month: month, Rows: []ConsumptionRow{}}

	sales, err := s.salesRepo.SumCurrentByProduct(year, month)
	if err != nil {
		return nil, apperr.Storage(err, "aggregate current sales")
	}
	if len(sales) == 0 {
		return report, nil
	}

	bomLines, err := s.bomRepo.ListAll()
	if err != nil {
		return nil, apperr.Storage(err, "load bom")
	}

	type key struct {
		material string
		unit     string
	}
	totals := make(map[key]int)
	for _, sale := range sales {
		for _, line := range bomLines {
			if line.ProductName != sale.ProductName {
				continue
			}
			k := key{material: line.MaterialName, unit: line.Unit}
			totals[k] += line.QuantityPerUnit * sale.Quantity
		}
	}

	for k, qty := range totals {
		report.Rows = append(report.Rows, ConsumptionRow{
			MaterialName:  k.material,
			Unit:          k.unit,
			TotalQuantity: qty,
		})
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].MaterialName < report.Rows[j].MaterialName
	})

	return report, nil
}

var consumptionExportHeaders = []string{"Material", "Unit", "Total Consumed"}

// ExportConsumptionXLSX 将消耗报表导出为工作簿
func (s *ReportService) ExportConsumptionXLSX(year, month int) (*excelize.File, string, error) {
	report, err := s.Consumption(year, month)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Consumption"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range consumptionExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, row := range report.Rows {
		rowNum := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), row.MaterialName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), row.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), row.TotalQuantity)
	}

	filename := fmt.Sprintf("consumption-%04d-%02d.xlsx", year, month)
	return f, filename, nil
}

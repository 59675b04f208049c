package service

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/Kohryu26/SoleCast/internal/apperr"
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportService CSV导入：物料与目标按键覆盖写入，
// 历史销售做宽表转长表后整体替换历史子集。
type ImportService struct {
	materialRepo *repository.MaterialRepository
	targetRepo   *repository.TargetRepository
	salesRepo    *repository.SalesRepository
	baseYear     int
	logger       *zap.Logger
}

func NewImportService(
	materialRepo *repository.MaterialRepository,
	targetRepo *repository.TargetRepository,
	salesRepo *repository.SalesRepository,
	baseYear int,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		materialRepo: materialRepo,
		targetRepo:   targetRepo,
		salesRepo:    salesRepo,
		baseYear:     baseYear,
		logger:       logger,
	}
}

var monthColumns = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// readCSV 读取全部记录并返回列名到下标的映射（列名去空白、不区分大小写）
func readCSV(r io.Reader) (map[string]int, [][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, apperr.Validationf("malformed csv: %v", err)
	}
	if len(rows) < 1 {
		return nil, nil, apperr.Validationf("csv has no header row")
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return header, rows[1:], nil
}

func field(header map[string]int, row []string, name string) (string, bool) {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[idx]), true
}

// parseQuantity 解析可能带千分位逗号的数量；空串按0处理
func parseQuantity(raw string) (int, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	if cleaned == "" {
		return 0, nil
	}
	return strconv.Atoi(cleaned)
}

// ImportMaterials 物料CSV：按名称upsert，重复导入以后者为准
func (s *ImportService) ImportMaterials(r io.Reader) (int, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return 0, err
	}
	for _, col := range []string{"name", "stock", "price", "product_association", "unit_of_measure"} {
		if _, ok := header[col]; !ok {
			return 0, apperr.Validationf("materials csv is missing column %q", col)
		}
	}

	count := 0
	for i, row := range rows {
		name, _ := field(header, row, "name")
		if name == "" {
			continue
		}
		stockRaw, _ := field(header, row, "stock")
		stock, err := strconv.Atoi(stockRaw)
		if err != nil || stock < 0 {
			return count, apperr.Validationf("materials csv row %d: invalid stock %q", i+2, stockRaw)
		}
		priceRaw, _ := field(header, row, "price")
		price, err := strconv.ParseFloat(priceRaw, 64)
		if err != nil || price < 0 {
			return count, apperr.Validationf("materials csv row %d: invalid price %q", i+2, priceRaw)
		}
		assoc, _ := field(header, row, "product_association")
		unit, _ := field(header, row, "unit_of_measure")
		if unit == "" {
			unit = "pcs"
		}

		m := &entity.Material{
			ID:                 uuid.New().String(),
			Name:               name,
			Stock:              stock,
			Price:              price,
			ProductAssociation: assoc,
			Unit:               unit,
		}
		if err := s.materialRepo.UpsertByName(m); err != nil {
			return count, apperr.Storage(err, "upsert material from csv")
		}
		count++
	}

	s.logger.Info("Imported materials csv", zap.Int("rows", count))
	return count, nil
}

// ImportTargets 目标CSV：按 (product, year, month) upsert
func (s *ImportService) ImportTargets(r io.Reader) (int, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return 0, err
	}
	for _, col := range []string{"product_name", "year", "month", "target_quantity", "target_increase"} {
		if _, ok := header[col]; !ok {
			return 0, apperr.Validationf("targets csv is missing column %q", col)
		}
	}

	count := 0
	for i, row := range rows {
		product, _ := field(header, row, "product_name")
		if product == "" {
			continue
		}
		yearRaw, _ := field(header, row, "year")
		year, err := strconv.Atoi(yearRaw)
		if err != nil {
			return count, apperr.Validationf("targets csv row %d: invalid year %q", i+2, yearRaw)
		}
		monthRaw, _ := field(header, row, "month")
		month, err := strconv.Atoi(monthRaw)
		if err != nil || month < 1 || month > 12 {
			return count, apperr.Validationf("targets csv row %d: invalid month %q", i+2, monthRaw)
		}
		qtyRaw, _ := field(header, row, "target_quantity")
		qty, err := strconv.ParseFloat(qtyRaw, 64)
		if err != nil {
			return count, apperr.Validationf("targets csv row %d: invalid target_quantity %q", i+2, qtyRaw)
		}
		incRaw, _ := field(header, row, "target_increase")
		inc, err := strconv.ParseFloat(incRaw, 64)
		if err != nil {
			return count, apperr.Validationf("targets csv row %d: invalid target_increase %q", i+2, incRaw)
		}

		t := &entity.ProductionTarget{
			ID:             uuid.New().String(),
			ProductName:    product,
			Year:           year,
			Month:          month,
			TargetQuantity: qty,
			TargetIncrease: inc,
		}
		if err := s.targetRepo.Upsert(t); err != nil {
			return count, apperr.Storage(err, "upsert target from csv")
		}
		count++
	}

	s.logger.Info("Imported targets csv", zap.Int("rows", count))
	return count, nil
}

// ImportHistoricalSales 历史销售宽表：每行一个产品类目，
// 月份名列展开为逐月记录，重复行按 (product, month) 求和，
// 统一归入基准年并整体替换既有历史数据。
func (s *ImportService) ImportHistoricalSales(r io.Reader) (int, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return 0, err
	}
	if _, ok := header["category"]; !ok {
		return 0, apperr.Validationf("sales csv is missing column %q", "Category")
	}

	type periodKey struct {
		product string
		month   int
	}
	totals := make(map[periodKey]int)

	for i, row := range rows {
		product, _ := field(header, row, "category")
		if product == "" {
			continue
		}
		for monthIdx, monthName := range monthColumns {
			raw, ok := field(header, row, strings.ToLower(monthName))
			if !ok {
				continue
			}
			qty, err := parseQuantity(raw)
			if err != nil {
				return 0, apperr.Validationf("sales csv row %d: invalid %s quantity %q", i+2, monthName, raw)
			}
			totals[periodKey{product: product, month: monthIdx + 1}] += qty
		}
	}

	records := make([]entity.SalesRecord, 0, len(totals))
	for k, qty := range totals {
		records = append(records, entity.SalesRecord{
			ID:          uuid.New().String(),
			ProductName: k.product,
			Year:        s.baseYear,
			Month:       k.month,
			Quantity:    qty,
			Historical:  true,
		})
	}

	if err := s.salesRepo.ReplaceHistorical(records); err != nil {
		return 0, apperr.Storage(err, "replace historical sales")
	}

	s.logger.Info("Imported historical sales csv",
		zap.Int("records", len(records)),
		zap.Int("base_year", s.baseYear),
	)
	return len(records), nil
}

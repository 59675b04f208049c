package service

import (
	"github.com/Kohryu26/SoleCast/internal/apperr"
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/google/uuid"
)

type SalesService struct {
	salesRepo  *repository.SalesRepository
	targetRepo *repository.TargetRepository
}

func NewSalesService(salesRepo *repository.SalesRepository, targetRepo *repository.TargetRepository) *SalesService {
	return &SalesService{salesRepo: salesRepo, targetRepo: targetRepo}
}

// AppendEntry 手工录入一条当期销售，只增不改
func (s *SalesService) AppendEntry(productName string, year, month, quantity int) (*entity.SalesRecord, error) {
	if productName == "" {
		return nil, apperr.Validationf("product name is required")
	}
	if month < 1 || month > 12 {
		return nil, apperr.Validationf("month must be between 1 and 12, got %d", month)
	}
	if quantity < 0 {
		return nil, apperr.Validationf("quantity must not be negative, got %d", quantity)
	}

	rec := &entity.SalesRecord{
		ID:          uuid.New().String(),
		ProductName: productName,
		Year:        year,
		Month:       month,
		Quantity:    quantity,
		Historical:  false,
	}
	if err := s.salesRepo.Append(rec); err != nil {
		return nil, apperr.Storage(err, "append sales entry")
	}
	return rec, nil
}

func (s *SalesService) List(historical *bool) ([]entity.SalesRecord, error) {
	records, err := s.salesRepo.List(historical)
	if err != nil {
		return nil, apperr.Storage(err, "list sales history")
	}
	return records, nil
}

// Products 产品集合来自销售历史中的去重产品名，每次调用现查，
// 不做隐式缓存。
func (s *SalesService) Products() ([]string, error) {
	names, err := s.salesRepo.DistinctProducts()
	if err != nil {
		return nil, apperr.Storage(err, "list products")
	}
	return names, nil
}

// SaveTarget 按 (product, year, month) 保存或覆盖生产目标
func (s *SalesService) SaveTarget(productName string, year, month int, targetQuantity, targetIncrease float64) (*entity.ProductionTarget, error) {
	if productName == "" {
		return nil, apperr.Validationf("product name is required")
	}
	if month < 1 || month > 12 {
		return nil, apperr.Validationf("month must be between 1 and 12, got %d", month)
	}
	if targetQuantity < 0 {
		return nil, apperr.Validationf("target quantity must not be negative")
	}

	t := &entity.ProductionTarget{
		ID:             uuid.New().String(),
		ProductName:    productName,
		Year:           year,
		Month:          month,
		TargetQuantity: targetQuantity,
		TargetIncrease: targetIncrease,
	}
	if err := s.targetRepo.Upsert(t); err != nil {
		return nil, apperr.Storage(err, "save production target")
	}
	return t, nil
}

func (s *SalesService) ListTargets() ([]entity.ProductionTarget, error) {
	targets, err := s.targetRepo.List()
	if err != nil {
		return nil, apperr.Storage(err, "list production targets")
	}
	return targets, nil
}

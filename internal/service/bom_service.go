package service

import (
	"errors"

	"github.com/Kohryu26/SoleCast/internal/apperr"
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BOMService struct {
	bomRepo      *repository.BOMRepository
	materialRepo *repository.MaterialRepository
}

func NewBOMService(bomRepo *repository.BOMRepository, materialRepo *repository.MaterialRepository) *BOMService {
	return &BOMService{bomRepo: bomRepo, materialRepo: materialRepo}
}

// UpsertEntry 以物料名为入口设置 (product, material) 的单位用量；
// 已存在时覆盖数量（last write wins）。
func (s *BOMService) UpsertEntry(productName, materialName string, quantityPerUnit int) (*entity.BOMEntry, error) {
	if productName == "" {
		return nil, apperr.Validationf("product name is required")
	}
	if quantityPerUnit <= 0 {
		return nil, apperr.Validationf("quantity per unit must be positive, got %d", quantityPerUnit)
	}

	mat, err := s.materialRepo.GetByName(materialName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("material %q", materialName)
		}
		return nil, apperr.Storage(err, "load material")
	}

	e := &entity.BOMEntry{
		ID:              uuid.New().String(),
		ProductName:     productName,
		MaterialID:      mat.ID,
		QuantityPerUnit: quantityPerUnit,
	}
	if err := s.bomRepo.UpsertEntry(e); err != nil {
		return nil, apperr.Storage(err, "upsert bom entry")
	}
	return e, nil
}

func (s *BOMService) DeleteEntry(id string) error {
	if err := s.bomRepo.DeleteEntry(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("bom entry %s", id)
		}
		return apperr.Storage(err, "delete bom entry")
	}
	return nil
}

func (s *BOMService) ListAll() ([]entity.BOMLine, error) {
	lines, err := s.bomRepo.ListAll()
	if err != nil {
		return nil, apperr.Storage(err, "list bom")
	}
	return lines, nil
}

func (s *BOMService) GetEntriesForProduct(productName string) ([]entity.BOMEntry, error) {
	entries, err := s.bomRepo.GetEntriesForProduct(productName)
	if err != nil {
		return nil, apperr.Storage(err, "load bom entries")
	}
	return entries, nil
}

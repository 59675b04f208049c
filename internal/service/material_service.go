package service

import (
	"errors"
	"strings"

	"github.com/Kohryu26/SoleCast/internal/apperr"
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialService struct {
	materialRepo *repository.MaterialRepository
	bomRepo      *repository.BOMRepository
}

func NewMaterialService(materialRepo *repository.MaterialRepository, bomRepo *repository.BOMRepository) *MaterialService {
	return &MaterialService{materialRepo: materialRepo, bomRepo: bomRepo}
}

type MaterialInput struct {
	Name               string  `json:"name" binding:"required"`
	Stock              int     `json:"stock"`
	Price              float64 `json:"price"`
	ProductAssociation string  `json:"product_association" binding:"required"`
	Unit               string  `json:"unit_of_measure"`
}

func validateMaterialInput(in MaterialInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Validationf("material name is required")
	}
	if in.Stock < 0 {
		return apperr.Validationf("stock must not be negative, got %d", in.Stock)
	}
	if in.Price < 0 {
		return apperr.Validationf("price must not be negative, got %f", in.Price)
	}
	return nil
}

func (s *MaterialService) Create(in MaterialInput) (*entity.Material, error) {
	if err := validateMaterialInput(in); err != nil {
		return nil, err
	}
	unit := in.Unit
	if unit == "" {
		unit = "pcs"
	}

	m := &entity.Material{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(in.Name),
		Stock:              in.Stock,
		Price:              in.Price,
		ProductAssociation: in.ProductAssociation,
		Unit:               unit,
	}
	if err := s.materialRepo.Create(m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Validationf("material %q already exists", m.Name)
		}
		return nil, apperr.Storage(err, "create material")
	}
	return m, nil
}

func (s *MaterialService) Update(id string, in MaterialInput) (*entity.Material, error) {
	if err := validateMaterialInput(in); err != nil {
		return nil, err
	}

	m, err := s.materialRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("material %s", id)
		}
		return nil, apperr.Storage(err, "load material")
	}

	m.Name = strings.TrimSpace(in.Name)
	m.Stock = in.Stock
	m.Price = in.Price
	m.ProductAssociation = in.ProductAssociation
	if in.Unit != "" {
		m.Unit = in.Unit
	}

	if err := s.materialRepo.Update(m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Validationf("material %q already exists", m.Name)
		}
		return nil, apperr.Storage(err, "update material")
	}
	return m, nil
}

// Delete 删除物料。先查BOM引用数，外键约束兜底并发窗口
func (s *MaterialService) Delete(id string) error {
	refs, err := s.bomRepo.CountByMaterial(id)
	if err != nil {
		return apperr.Storage(err, "count bom references")
	}
	if refs > 0 {
		return apperr.ReferentialIntegrityf("material %s is still referenced by the bill of materials", id)
	}

	err = s.materialRepo.Delete(id)
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundf("material %s", id)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperr.ReferentialIntegrityf("material %s is still referenced by the bill of materials", id)
	}
	return apperr.Storage(err, "delete material")
}

func (s *MaterialService) List() ([]entity.Material, error) {
	materials, err := s.materialRepo.List()
	if err != nil {
		return nil, apperr.Storage(err, "list materials")
	}
	return materials, nil
}

func (s *MaterialService) GetByName(name string) (*entity.Material, error) {
	m, err := s.materialRepo.GetByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("material %q", name)
		}
		return nil, apperr.Storage(err, "load material")
	}
	return m, nil
}

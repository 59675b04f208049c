package repository

import (
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BOMRepository struct {
	db *gorm.DB
}

func NewBOMRepository(db *gorm.DB) *BOMRepository {
	return &BOMRepository{db: db}
}

// UpsertEntry 新增或覆盖 (product, material) 对应的单位用量
func (r *BOMRepository) UpsertEntry(e *entity.BOMEntry) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_name"}, {Name: "material_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity_per_unit", "updated_at"}),
	}).Create(e).Error
}

func (r *BOMRepository) DeleteEntry(id string) error {
	res := r.db.Delete(&entity.BOMEntry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAll 全量BOM视图，关联物料名称与计量单位
func (r *BOMRepository) ListAll() ([]entity.BOMLine, error) {
	var lines []entity.BOMLine
	err := r.db.Model(&entity.BOMEntry{}).
		Select(`bom_entries.id,
			bom_entries.product_name,
			materials.name AS material_name,
			bom_entries.quantity_per_unit,
			materials.unit_of_measure AS unit`).
		Joins("JOIN materials ON materials.id = bom_entries.material_id").
		Order("bom_entries.product_name, materials.name").
		Scan(&lines).Error
	return lines, err
}

// GetEntriesForProduct 某产品的BOM条目，预加载物料
func (r *BOMRepository) GetEntriesForProduct(productName string) ([]entity.BOMEntry, error) {
	var entries []entity.BOMEntry
	err := r.db.Preload("Material").
		Where("product_name = ?", productName).
		Find(&entries).Error
	return entries, err
}

// CountByMaterial 某物料被BOM引用的条目数
func (r *BOMRepository) CountByMaterial(materialID string) (int64, error) {
	var count int64
	err := r.db.Model(&entity.BOMEntry{}).
		Where("material_id = ?", materialID).
		Count(&count).Error
	return count, err
}

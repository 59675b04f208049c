package repository

import (
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(m *entity.Material) error {
	return r.db.Create(m).Error
}

func (r *MaterialRepository) Update(m *entity.Material) error {
	return r.db.Save(m).Error
}

// Delete 删除物料。被BOM引用时由外键约束拒绝，
// 错误经 TranslateError 转为 gorm.ErrForeignKeyViolated。
func (r *MaterialRepository) Delete(id string) error {
	res := r.db.Delete(&entity.Material{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MaterialRepository) GetByID(id string) (*entity.Material, error) {
	var m entity.Material
	err := r.db.Where("id = ?", id).First(&m).Error
	return &m, err
}

func (r *MaterialRepository) GetByName(name string) (*entity.Material, error) {
	var m entity.Material
	err := r.db.Where("name = ?", name).First(&m).Error
	return &m, err
}

func (r *MaterialRepository) List() ([]entity.Material, error) {
	var materials []entity.Material
	err := r.db.Order("name").Find(&materials).Error
	return materials, err
}

// UpsertByName 按名称新增或覆盖，CSV导入语义
func (r *MaterialRepository) UpsertByName(m *entity.Material) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"stock", "price", "product_association", "unit_of_measure", "updated_at"}),
	}).Create(m).Error
}

// IncrementStock 在给定事务内按稳定ID增加库存
func (r *MaterialRepository) IncrementStock(tx *gorm.DB, materialID string, delta int) error {
	res := tx.Model(&entity.Material{}).
		Where("id = ?", materialID).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package repository

import (
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TargetRepository struct {
	db *gorm.DB
}

func NewTargetRepository(db *gorm.DB) *TargetRepository {
	return &TargetRepository{db: db}
}

// Upsert 按 (product, year, month) 新增或覆盖
func (r *TargetRepository) Upsert(t *entity.ProductionTarget) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_name"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"target_quantity", "target_increase", "updated_at"}),
	}).Create(t).Error
}

func (r *TargetRepository) List() ([]entity.ProductionTarget, error) {
	var targets []entity.ProductionTarget
	err := r.db.Order("product_name, year, month").Find(&targets).Error
	return targets, err
}

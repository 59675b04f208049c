package repository

import (
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"gorm.io/gorm"
)

type PredictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// ReplaceForProduct 重建某产品目标年的预测，整批替换
func (r *PredictionRepository) ReplaceForProduct(productName string, year int, preds []entity.Prediction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_name = ? AND year = ?", productName, year).
			Delete(&entity.Prediction{}).Error; err != nil {
			return err
		}
		if len(preds) == 0 {
			return nil
		}
		return tx.Create(&preds).Error
	})
}

// List 预测结果，product/year 为可选过滤
func (r *PredictionRepository) List(productName string, year int) ([]entity.Prediction, error) {
	query := r.db.Model(&entity.Prediction{})
	if productName != "" {
		query = query.Where("product_name = ?", productName)
	}
	if year > 0 {
		query = query.Where("year = ?", year)
	}
	var preds []entity.Prediction
	err := query.Order("product_name, year, month").Find(&preds).Error
	return preds, err
}

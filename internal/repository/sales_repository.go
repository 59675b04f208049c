package repository

import (
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"gorm.io/gorm"
)

type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

func (r *SalesRepository) Append(rec *entity.SalesRecord) error {
	return r.db.Create(rec).Error
}

// List 按 historical 过滤；nil 表示不过滤
func (r *SalesRepository) List(historical *bool) ([]entity.SalesRecord, error) {
	query := r.db.Model(&entity.SalesRecord{})
	if historical != nil {
		query = query.Where("historical = ?", *historical)
	}
	var records []entity.SalesRecord
	err := query.Order("year, month, product_name").Find(&records).Error
	return records, err
}

// ReplaceHistorical 整体替换历史子集：删除全部 historical 记录后批量写入
func (r *SalesRepository) ReplaceHistorical(records []entity.SalesRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("historical = ?", true).Delete(&entity.SalesRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

// DistinctProducts 销售历史中出现过的产品名，即系统的产品集合
func (r *SalesRepository) DistinctProducts() ([]string, error) {
	var names []string
	err := r.db.Model(&entity.SalesRecord{}).
		Distinct("product_name").
		Order("product_name").
		Pluck("product_name", &names).Error
	return names, err
}

// ProductQuantity 按产品汇总的销量
type ProductQuantity struct {
	ProductName string
	Quantity    int
}

// SumCurrentByProduct 指定期间的当期（非历史）销量，按产品汇总
func (r *SalesRepository) SumCurrentByProduct(year, month int) ([]ProductQuantity, error) {
	var rows []ProductQuantity
	err := r.db.Model(&entity.SalesRecord{}).
		Select("product_name, SUM(quantity) AS quantity").
		Where("historical = ? AND year = ? AND month = ?", false, year, month).
		Group("product_name").
		Order("product_name").
		Scan(&rows).Error
	return rows, err
}

// MonthlyQuantities 某产品在基准年各月的销量汇总，key 为月份
func (r *SalesRepository) MonthlyQuantities(productName string, year int, historical bool) (map[int]int, error) {
	var rows []struct {
		Month    int
		Quantity int
	}
	err := r.db.Model(&entity.SalesRecord{}).
		Select("month, SUM(quantity) AS quantity").
		Where("product_name = ? AND year = ? AND historical = ?", productName, year, historical).
		Group("month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	monthly := make(map[int]int, len(rows))
	for _, row := range rows {
		monthly[row.Month] = row.Quantity
	}
	return monthly, nil
}

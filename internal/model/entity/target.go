package entity

import (
	"time"
)

// ProductionTarget 生产目标，(product, year, month) 唯一，冲突时覆盖
type ProductionTarget struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	ProductName    string    `json:"product_name" gorm:"size:128;not null;uniqueIndex:uniq_target_period"`
	Year           int       `json:"year" gorm:"not null;uniqueIndex:uniq_target_period"`
	Month          int       `json:"month" gorm:"not null;uniqueIndex:uniq_target_period"`
	TargetQuantity float64   `json:"target_quantity" gorm:"type:decimal(12,2);not null"`
	TargetIncrease float64   `json:"target_increase" gorm:"type:decimal(6,2);not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (ProductionTarget) TableName() string {
	return "production_targets"
}

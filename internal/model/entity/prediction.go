package entity

import (
	"time"
)

// Prediction 销售预测结果，按 (product, target year) 整批重建
type Prediction struct {
	ID                string    `json:"id" gorm:"primaryKey;size:36"`
	ProductName       string    `json:"product_name" gorm:"size:128;not null;index"`
	Year              int       `json:"year" gorm:"not null"`
	Month             int       `json:"month" gorm:"not null"`
	PredictedQuantity int       `json:"predicted_quantity" gorm:"not null"`
	Strategy          string    `json:"strategy" gorm:"size:32;not null"`
	CreatedAt         time.Time `json:"created_at"`
}

func (Prediction) TableName() string {
	return "predictions"
}

package entity

import (
	"time"
)

// SalesRecord 销售记录。historical=true 表示CSV导入的基准年数据，
// 重新导入时整体替换；historical=false 为手工录入的当期数据，只增不改。
type SalesRecord struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	ProductName string    `json:"product_name" gorm:"size:128;not null;index"`
	Year        int       `json:"year" gorm:"not null"`
	Month       int       `json:"month" gorm:"not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Historical  bool      `json:"is_historical" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
}

func (SalesRecord) TableName() string {
	return "sales_history"
}

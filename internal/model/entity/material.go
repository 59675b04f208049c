package entity

import (
	"time"
)

// Material 物料（原材料）主档，name 为业务主键
type Material struct {
	ID                 string    `json:"id" gorm:"primaryKey;size:36"`
	Name               string    `json:"name" gorm:"size:128;not null;uniqueIndex"`
	Stock              int       `json:"stock" gorm:"not null;default:0"`
	Price              float64   `json:"price" gorm:"type:decimal(12,2);not null;default:0"`
	ProductAssociation string    `json:"product_association" gorm:"size:128;not null"`
	Unit               string    `json:"unit_of_measure" gorm:"column:unit_of_measure;size:20;not null;default:pcs"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Material) TableName() string {
	return "materials"
}

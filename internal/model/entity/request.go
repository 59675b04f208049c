package entity

import (
	"time"
)

// RequestStatus 物料申请单状态
const (
	RequestStatusPending   = "Pending"
	RequestStatusApproved  = "Approved"
	RequestStatusRejected  = "Rejected"
	RequestStatusCompleted = "Completed"
)

// MaterialRequest 物料申请单（表头）
type MaterialRequest struct {
	ID                 string    `json:"id" gorm:"primaryKey;size:36"`
	EmployeeID         string    `json:"employee_id" gorm:"size:36;not null;index"`
	EmployeeName       string    `json:"employee_name" gorm:"size:64;not null"`
	ProductName        string    `json:"product_name" gorm:"size:128;not null"`
	ProductionQuantity int       `json:"production_quantity" gorm:"not null"`
	TotalCost          float64   `json:"total_cost" gorm:"type:decimal(12,2);not null"`
	Status             string    `json:"status" gorm:"size:20;not null;default:Pending"`
	RequestDate        time.Time `json:"request_date" gorm:"not null"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Items []RequestLineItem `json:"items,omitempty" gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

func (MaterialRequest) TableName() string {
	return "material_requests"
}

// RequestLineItem 申请单明细，material_id 为稳定关联键，
// material_name 仅作提交时刻的展示快照
type RequestLineItem struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	RequestID      string    `json:"request_id" gorm:"size:36;not null;index"`
	MaterialID     string    `json:"material_id" gorm:"size:36;not null"`
	MaterialName   string    `json:"material_name" gorm:"size:128;not null"`
	QuantityNeeded int       `json:"quantity_needed" gorm:"not null"`
	Unit           string    `json:"unit_of_measure" gorm:"column:unit_of_measure;size:20;not null;default:pcs"`
	Cost           float64   `json:"cost" gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time `json:"created_at"`
}

func (RequestLineItem) TableName() string {
	return "request_line_items"
}

// CompletedOrder 员工本地留存的已完成（未提交）算料单
type CompletedOrder struct {
	ID                 string    `json:"id" gorm:"primaryKey;size:36"`
	EmployeeID         string    `json:"employee_id" gorm:"size:36;not null;index"`
	EmployeeName       string    `json:"employee_name" gorm:"size:64;not null"`
	ProductName        string    `json:"product_name" gorm:"size:128;not null"`
	ProductionQuantity int       `json:"production_quantity" gorm:"not null"`
	TotalCost          float64   `json:"total_cost" gorm:"type:decimal(12,2);not null"`
	CompletionDate     time.Time `json:"completion_date" gorm:"not null"`

	Items []CompletedOrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (CompletedOrder) TableName() string {
	return "completed_material_orders"
}

// CompletedOrderItem 已完成算料单明细
type CompletedOrderItem struct {
	ID             string  `json:"id" gorm:"primaryKey;size:36"`
	OrderID        string  `json:"order_id" gorm:"size:36;not null;index"`
	MaterialName   string  `json:"material_name" gorm:"size:128;not null"`
	QuantityNeeded int     `json:"quantity_needed" gorm:"not null"`
	Cost           float64 `json:"cost" gorm:"type:decimal(12,2);not null"`
}

func (CompletedOrderItem) TableName() string {
	return "completed_order_line_items"
}

package repository

import (
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// CreateWithItems 表头与明细一个事务内落库，任一失败整体回滚
func (r *RequestRepository) CreateWithItems(req *entity.MaterialRequest, items []entity.RequestLineItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *RequestRepository) GetByID(id string) (*entity.MaterialRequest, error) {
	var req entity.MaterialRequest
	err := r.db.Where("id = ?", id).First(&req).Error
	return &req, err
}

// List 全部申请单，employeeID 非空时按申请人过滤
func (r *RequestRepository) List(employeeID string) ([]entity.MaterialRequest, error) {
	query := r.db.Model(&entity.MaterialRequest{})
	if employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	var requests []entity.MaterialRequest
	err := query.Order("request_date DESC").Find(&requests).Error
	return requests, err
}

func (r *RequestRepository) GetLineItems(requestID string) ([]entity.RequestLineItem, error) {
	var items []entity.RequestLineItem
	err := r.db.Where("request_id = ?", requestID).
		Order("material_name").
		Find(&items).Error
	return items, err
}

// UpdateStatus 在给定事务内更新状态；不校验迁移合法性，由 service 负责
func (r *RequestRepository) UpdateStatus(tx *gorm.DB, id, status string) error {
	res := tx.Model(&entity.MaterialRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 硬删除表头，明细由外键 CASCADE 一并移除
func (r *RequestRepository) Delete(id string) error {
	res := r.db.Delete(&entity.MaterialRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateCompletedOrder 本地完成单与明细一个事务内落库
func (r *RequestRepository) CreateCompletedOrder(order *entity.CompletedOrder, items []entity.CompletedOrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *RequestRepository) ListCompletedOrders(employeeID string) ([]entity.CompletedOrder, error) {
	query := r.db.Model(&entity.CompletedOrder{})
	if employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	var orders []entity.CompletedOrder
	err := query.Preload("Items").Order("completion_date DESC").Find(&orders).Error
	return orders, err
}

// DB 返回底层db用于跨仓库事务
func (r *RequestRepository) DB() *gorm.DB {
	return r.db
}

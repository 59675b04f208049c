package service

import (
	"errors"
	"time"

	"github.com/Kohryu26/SoleCast/internal/apperr"
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestService 物料申请单生命周期：
//
//	Pending --approve--> Approved --receive--> Completed
//	Pending --reject---> Rejected
//
// Rejected 与 Completed 为终态；delete 是任意状态下的管理员硬删除，
// 不属于正常迁移。receive 是唯一在申请单之外产生副作用的操作（物料库存入库）。
type RequestService struct {
	requestRepo  *repository.RequestRepository
	materialRepo *repository.MaterialRepository
	costing      *CostingService
	db           *gorm.DB
}

func NewRequestService(
	requestRepo *repository.RequestRepository,
	materialRepo *repository.MaterialRepository,
	costing *CostingService,
	db *gorm.DB,
) *RequestService {
	return &RequestService{
		requestRepo:  requestRepo,
		materialRepo: materialRepo,
		costing:      costing,
		db:           db,
	}
}

// Submit 按提交时刻的库存重新算料并落库。表头与全部明细一个事务，
// 只持久化缺口为正的明细行；算料展示中缺口为0的行不落库。
func (s *RequestService) Submit(employeeID, employeeName, productName string, quantity int) (*entity.MaterialRequest, error) {
	if employeeID == "" || employeeName == "" {
		return nil, apperr.Validationf("employee is required")
	}

	result, err := s.costing.Calculate(productName, quantity)
	if err != nil {
		return nil, err
	}

	req := &entity.MaterialRequest{
		ID:                 uuid.New().String(),
		EmployeeID:         employeeID,
		EmployeeName:       employeeName,
		ProductName:        productName,
		ProductionQuantity: quantity,
		TotalCost:          result.TotalCost,
		Status:             entity.RequestStatusPending,
		RequestDate:        time.Now(),
	}

	var items []entity.RequestLineItem
	for _, line := range result.Lines {
		if line.NeedToOrder <= 0 {
			continue
		}
		items = append(items, entity.RequestLineItem{
			ID:             uuid.New().String(),
			RequestID:      req.ID,
			MaterialID:     line.MaterialID,
			MaterialName:   line.MaterialName,
			QuantityNeeded: line.NeedToOrder,
			Unit:           line.Unit,
			Cost:           line.Cost,
		})
	}

	if err := s.requestRepo.CreateWithItems(req, items); err != nil {
		return nil, apperr.Storage(err, "submit material request")
	}
	return req, nil
}

// SetStatus 审批迁移。仅允许 Pending → Approved/Rejected；
// 其他目标状态（含 receive 专用的 Completed）一律拒绝。
func (s *RequestService) SetStatus(id, newStatus string) (*entity.MaterialRequest, error) {
	if newStatus != entity.RequestStatusApproved && newStatus != entity.RequestStatusRejected {
		return nil, apperr.Validationf("status %q is not a valid approval decision", newStatus)
	}

	req, err := s.requestRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("material request %s", id)
		}
		return nil, apperr.Storage(err, "load material request")
	}
	if req.Status != entity.RequestStatusPending {
		return nil, apperr.StateTransitionf("cannot move request %s from %s to %s", id, req.Status, newStatus)
	}

	if err := s.requestRepo.UpdateStatus(s.db, id, newStatus); err != nil {
		return nil, apperr.Storage(err, "update request status")
	}
	req.Status = newStatus
	return req, nil
}

// Receive 收货完成：对每条明细按稳定物料ID将 quantity_needed 入库，
// 并将状态置为 Completed。全部入库与状态变更一个事务，失败整体回滚。
func (s *RequestService) Receive(id string) (*entity.MaterialRequest, error) {
	req, err := s.requestRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("material request %s", id)
		}
		return nil, apperr.Storage(err, "load material request")
	}
	if req.Status != entity.RequestStatusApproved {
		return nil, apperr.StateTransitionf("cannot receive stock for request %s in state %s", id, req.Status)
	}

	items, err := s.requestRepo.GetLineItems(id)
	if err != nil {
		return nil, apperr.Storage(err, "load request line items")
	}
	if len(items) == 0 {
		return nil, apperr.NotFoundf("no line items found for request %s", id)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := s.materialRepo.IncrementStock(tx, item.MaterialID, item.QuantityNeeded); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFoundf("material %s (%s) no longer exists", item.MaterialName, item.MaterialID)
				}
				return err
			}
		}
		return s.requestRepo.UpdateStatus(tx, id, entity.RequestStatusCompleted)
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Storage(err, "receive request stock")
	}

	req.Status = entity.RequestStatusCompleted
	return req, nil
}

// Delete 管理员硬删除，任意状态可用；明细由外键级联移除
func (s *RequestService) Delete(id string) error {
	if err := s.requestRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("material request %s", id)
		}
		return apperr.Storage(err, "delete material request")
	}
	return nil
}

func (s *RequestService) Get(id string) (*entity.MaterialRequest, error) {
	req, err := s.requestRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("material request %s", id)
		}
		return nil, apperr.Storage(err, "load material request")
	}
	return req, nil
}

func (s *RequestService) List(employeeID string) ([]entity.MaterialRequest, error) {
	requests, err := s.requestRepo.List(employeeID)
	if err != nil {
		return nil, apperr.Storage(err, "list material requests")
	}
	return requests, nil
}

func (s *RequestService) GetLineItems(id string) ([]entity.RequestLineItem, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	items, err := s.requestRepo.GetLineItems(id)
	if err != nil {
		return nil, apperr.Storage(err, "load request line items")
	}
	return items, nil
}

// CompleteLocal 员工侧“完成并清空”：重新算料后写入本地完成单日志，
// 不进入审批流，也不触碰库存。
func (s *RequestService) CompleteLocal(employeeID, employeeName, productName string, quantity int) (*entity.CompletedOrder, error) {
	if employeeID == "" || employeeName == "" {
		return nil, apperr.Validationf("employee is required")
	}

	result, err := s.costing.Calculate(productName, quantity)
	if err != nil {
		return nil, err
	}

	order := &entity.CompletedOrder{
		ID:                 uuid.New().String(),
		EmployeeID:         employeeID,
		EmployeeName:       employeeName,
		ProductName:        productName,
		ProductionQuantity: quantity,
		TotalCost:          result.TotalCost,
		CompletionDate:     time.Now(),
	}

	var items []entity.CompletedOrderItem
	for _, line := range result.Lines {
		if line.NeedToOrder <= 0 {
			continue
		}
		items = append(items, entity.CompletedOrderItem{
			ID:             uuid.New().String(),
			OrderID:        order.ID,
			MaterialName:   line.MaterialName,
			QuantityNeeded: line.NeedToOrder,
			Cost:           line.Cost,
		})
	}

	if err := s.requestRepo.CreateCompletedOrder(order, items); err != nil {
		return nil, apperr.Storage(err, "save completed order")
	}
	return order, nil
}

func (s *RequestService) ListCompletedOrders(employeeID string) ([]entity.CompletedOrder, error) {
	orders, err := s.requestRepo.ListCompletedOrders(employeeID)
	if err != nil {
		return nil, apperr.Storage(err, "list completed orders")
	}
	return orders, nil
}

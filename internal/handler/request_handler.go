package handler

import (
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"github.com/Kohryu26/SoleCast/internal/service"
	"github.com/gin-gonic/gin"
)

// RequestHandler 物料申请单处理器
type RequestHandler struct {
	svc *service.RequestService
}

func NewRequestHandler(svc *service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

// Submit 提交申请单，提交人取自登录态
func (h *RequestHandler) Submit(c *gin.Context) {
	var req struct {
		ProductName string `json:"product_name" binding:"required"`
		Quantity    int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	request, err := h.svc.Submit(GetUserID(c), GetUsername(c), req.ProductName, req.Quantity)
	if err != nil {
		WriteError(c, err)
		return
	}
	Created(c, request)
}

// List 申请单列表；员工只看自己的，管理员看全部
func (h *RequestHandler) List(c *gin.Context) {
	employeeID := ""
	if c.GetString("role") != entity.RoleAdmin {
		employeeID = GetUserID(c)
	}

	requests, err := h.svc.List(employeeID)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, gin.H{"requests": requests})
}

// Get 申请单详情
func (h *RequestHandler) Get(c *gin.Context) {
	request, err := h.svc.Get(c.Param("id"))
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, request)
}

// GetLineItems 申请单明细行
func (h *RequestHandler) GetLineItems(c *gin.Context) {
	items, err := h.svc.GetLineItems(c.Param("id"))
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

// SetStatus 审批：Pending → Approved/Rejected
func (h *RequestHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	request, err := h.svc.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, request)
}

// Receive 收货入库：Approved → Completed
func (h *RequestHandler) Receive(c *gin.Context) {
	request, err := h.svc.Receive(c.Param("id"))
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, request)
}

// Delete 管理员删除申请单
func (h *RequestHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		WriteError(c, err)
		return
	}
	Success(c, nil)
}

// CompleteLocal 员工侧完成单，不进入审批流
func (h *RequestHandler) CompleteLocal(c *gin.Context) {
	var req struct {
		ProductName string `json:"product_name" binding:"required"`
		Quantity    int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.svc.CompleteLocal(GetUserID(c), GetUsername(c), req.ProductName, req.Quantity)
	if err != nil {
		WriteError(c, err)
		return
	}
	Created(c, order)
}

// ListCompletedOrders 完成单列表
func (h *RequestHandler) ListCompletedOrders(c *gin.Context) {
	employeeID := ""
	if c.GetString("role") != entity.RoleAdmin {
		employeeID = GetUserID(c)
	}

	orders, err := h.svc.ListCompletedOrders(employeeID)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, gin.H{"orders": orders})
}

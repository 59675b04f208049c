package handler

import (
	"github.com/Kohryu26/SoleCast/internal/service"
	"github.com/gin-gonic/gin"
)

// SalesHandler 销售与目标处理器
type SalesHandler struct {
	svc *service.SalesService
}

func NewSalesHandler(svc *service.SalesService) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// List 销售记录列表，可按 historical=true/false 过滤
func (h *SalesHandler) List(c *gin.Context) {
	var historical *bool
	if raw := c.Query("historical"); raw != "" {
		v := raw == "true"
		historical = &v
	}

	records, err := h.svc.List(historical)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, gin.H{"records": records})
}

// Append 手工录入一条当期销售
func (h *SalesHandler) Append(c *gin.Context) {
	var req struct {
		ProductName string `json:"product_name" binding:"required"`
		Year        int    `json:"year" binding:"required"`
		Month       int    `json:"month" binding:"required"`
		Quantity    int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.svc.AppendEntry(req.ProductName, req.Year, req.Month, req.Quantity)
	if err != nil {
		WriteError(c, err)
		return
	}
	Created(c, record)
}

// Products 有销售记录的产品清单
func (h *SalesHandler) Products(c *gin.Context) {
	products, err := h.svc.Products()
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, gin.H{"products": products})
}

// SaveTarget 按 (product, year, month) 覆盖写入目标
func (h *SalesHandler) SaveTarget(c *gin.Context) {
	var req struct {
		ProductName    string  `json:"product_name" binding:"required"`
		Year           int     `json:"year" binding:"required"`
		Month          int     `json:"month" binding:"required"`
		TargetQuantity float64 `json:"target_quantity"`
		TargetIncrease float64 `json:"target_increase"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	target, err := h.svc.SaveTarget(req.ProductName, req.Year, req.Month, req.TargetQuantity, req.TargetIncrease)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, target)
}

// ListTargets 目标列表
func (h *SalesHandler) ListTargets(c *gin.Context) {
	targets, err := h.svc.ListTargets()
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, gin.H{"targets": targets})
}

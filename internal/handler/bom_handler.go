package handler

import (
	"github.com/Kohryu26/SoleCast/internal/service"
	"github.com/gin-gonic/gin"
)

// BOMHandler 配方处理器
type BOMHandler struct {
	svc *service.BOMService
}

func NewBOMHandler(svc *service.BOMService) *BOMHandler {
	return &BOMHandler{svc: svc}
}

// List 全部配方行（含物料名与计量单位）
func (h *BOMHandler) List(c *gin.Context) {
	lines, err := h.svc.ListAll()
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, gin.H{"entries": lines})
}

// Upsert 设置某产品对某物料的单位用量
func (h *BOMHandler) Upsert(c *gin.Context) {
	var req struct {
		ProductName     string `json:"product_name" binding:"required"`
		MaterialName    string `json:"material_name" binding:"required"`
		QuantityPerUnit int    `json:"quantity_per_unit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry, err := h.svc.UpsertEntry(req.ProductName, req.MaterialName, req.QuantityPerUnit)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, entry)
}

// Delete 删除配方行
func (h *BOMHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteEntry(c.Param("id")); err != nil {
		WriteError(c, err)
		return
	}
	Success(c, nil)
}

package handler

import (
	"github.com/Kohryu26/SoleCast/internal/service"
	"github.com/gin-gonic/gin"
)

// MaterialHandler 物料处理器
type MaterialHandler struct {
	svc *service.MaterialService
}

func NewMaterialHandler(svc *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{svc: svc}
}

// List 物料列表
func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.svc.List()
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, gin.H{"materials": materials})
}

// Create 新建物料
func (h *MaterialHandler) Create(c *gin.Context) {
	var req service.MaterialInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	m, err := h.svc.Create(req)
	if err != nil {
		WriteError(c, err)
		return
	}
	Created(c, m)
}

// Update 更新物料
func (h *MaterialHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req service.MaterialInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	m, err := h.svc.Update(id, req)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, m)
}

// Delete 删除物料，被BOM引用时返回冲突
func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		WriteError(c, err)
		return
	}
	Success(c, nil)
}

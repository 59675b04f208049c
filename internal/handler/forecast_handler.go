package handler

import (
	"strconv"

	"github.com/Kohryu26/SoleCast/internal/service"
	"github.com/gin-gonic/gin"
)

// ForecastHandler 预测处理器
type ForecastHandler struct {
	svc *service.ForecastService
}

func NewForecastHandler(svc *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{svc: svc}
}

// Generate 为某产品生成目标年的逐月预测并覆盖旧结果
func (h *ForecastHandler) Generate(c *gin.Context) {
	var req struct {
		ProductName string  `json:"product_name" binding:"required"`
		TargetYear  int     `json:"target_year" binding:"required"`
		Increase    float64 `json:"increase"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	predictions, err := h.svc.Generate(req.ProductName, req.TargetYear, req.Increase)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, gin.H{"predictions": predictions})
}

// List 查询已生成的预测，可按产品与年份过滤
func (h *ForecastHandler) List(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			BadRequest(c, "year must be an integer")
			return
		}
		year = v
	}

	predictions, err := h.svc.ListPredictions(c.Query("product"), year)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, gin.H{"predictions": predictions})
}

package handler

import (
	"strconv"

	"github.com/Kohryu26/SoleCast/internal/service"
	"github.com/gin-gonic/gin"
)

// CostingHandler 算料处理器
type CostingHandler struct {
	svc *service.CostingService
}

func NewCostingHandler(svc *service.CostingService) *CostingHandler {
	return &CostingHandler{svc: svc}
}

// Calculate 按产品与生产数量算料，只读不落库
func (h *CostingHandler) Calculate(c *gin.Context) {
	productName := c.Query("product")
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "0"))
	if err != nil {
		BadRequest(c, "quantity must be an integer")
		return
	}

	result, err := h.svc.Calculate(productName, quantity)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, result)
}

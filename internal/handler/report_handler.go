package handler

import (
	"strconv"
	"time"

	"github.com/Kohryu26/SoleCast/internal/service"
	"github.com/gin-gonic/gin"
)

// ReportHandler 报表处理器
type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func reportPeriod(c *gin.Context) (int, int, bool) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		BadRequest(c, "year must be an integer")
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		BadRequest(c, "month must be between 1 and 12")
		return 0, 0, false
	}
	return year, month, true
}

// Consumption 当期物料消耗报表
func (h *ReportHandler) Consumption(c *gin.Context) {
	year, month, ok := reportPeriod(c)
	if !ok {
		return
	}

	report, err := h.svc.Consumption(year, month)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, report)
}

// ExportConsumption 消耗报表导出为xlsx
func (h *ReportHandler) ExportConsumption(c *gin.Context) {
	year, month, ok := reportPeriod(c)
	if !ok {
		return
	}

	f, filename, err := h.svc.ExportConsumptionXLSX(year, month)
	if err != nil {
		WriteError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "Failed to write export: "+err.Error())
	}
}

package handler

import (
	"io"

	"github.com/Kohryu26/SoleCast/internal/service"
	"github.com/gin-gonic/gin"
)

// ImportHandler CSV导入处理器
type ImportHandler struct {
	svc *service.ImportService
}

func NewImportHandler(svc *service.ImportService) *ImportHandler {
	return &ImportHandler{svc: svc}
}

// csvBody 优先取 multipart 的 file 字段，否则直接读请求体
func csvBody(c *gin.Context) (io.ReadCloser, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Request.Body, nil
	}
	return file.Open()
}

func (h *ImportHandler) runImport(c *gin.Context, do func(io.Reader) (int, error)) {
	body, err := csvBody(c)
	if err != nil {
		BadRequest(c, "Failed to read upload: "+err.Error())
		return
	}
	defer body.Close()

	count, err := do(body)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, gin.H{"imported": count})
}

// Materials 物料CSV导入
func (h *ImportHandler) Materials(c *gin.Context) {
	h.runImport(c, h.svc.ImportMaterials)
}

// Targets 目标CSV导入
func (h *ImportHandler) Targets(c *gin.Context) {
	h.runImport(c, h.svc.ImportTargets)
}

// HistoricalSales 历史销售宽表CSV导入
func (h *ImportHandler) HistoricalSales(c *gin.Context) {
	h.runImport(c, h.svc.ImportHistoricalSales)
}

package httptransport

import (
	"github.com/gin-gonic/gin"

	"dockspace/backend/internal/service"
)

// QuotaHandler 存储配额处理器
type QuotaHandler struct {
	quotas *service.QuotaService
}

// NewQuotaHandler 创建配额处理器
func NewQuotaHandler(quotas *service.QuotaService) *QuotaHandler {
	return &QuotaHandler{quotas: quotas}
}

// SetQuotaRequest 设置配额请求
type SetQuotaRequest struct {
	SizeValue int    `json:"size_value" binding:"required"`
	SizeUnit  string `json:"size_unit" binding:"required"`
}

// Set 为账户设置配额（不存在则创建，存在则覆盖）
func (h *QuotaHandler) Set(c *gin.Context) {
	var req SetQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	quota, err := h.quotas.Set(service.SetQuotaInput{
		AccountID: c.Param("id"),
		SizeValue: req.SizeValue,
		SizeUnit:  req.SizeUnit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	Success(c, quota)
}

// Get 查询账户的配额
func (h *QuotaHandler) Get(c *gin.Context) {
	quota, err := h.quotas.GetByAccountID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, quota)
}

// List 返回全部配额
func (h *QuotaHandler) List(c *gin.Context) {
	quotas, err := h.quotas.List()
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, quotas)
}

// Delete 删除账户的配额
func (h *QuotaHandler) Delete(c *gin.Context) {
	if err := h.quotas.DeleteByAccountID(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	NoContent(c)
}

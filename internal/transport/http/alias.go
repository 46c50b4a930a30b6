package httptransport

import (
	"github.com/gin-gonic/gin"

	"dockspace/backend/internal/service"
)

// AliasHandler 转发别名处理器
type AliasHandler struct {
	aliases *service.AliasService
}

// NewAliasHandler 创建别名处理器
func NewAliasHandler(aliases *service.AliasService) *AliasHandler {
	return &AliasHandler{aliases: aliases}
}

// CreateAliasRequest 创建别名请求
type CreateAliasRequest struct {
	Alias     string `json:"alias" binding:"required"`
	AccountID string `json:"account_id" binding:"required"`
}

// Create 创建转发别名
func (h *AliasHandler) Create(c *gin.Context) {
	var req CreateAliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	alias, err := h.aliases.Create(service.CreateAliasInput{
		Alias:     req.Alias,
		AccountID: req.AccountID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	Created(c, alias)
}

// UpdateAliasRequest 更新别名请求，省略的字段保持不变
type UpdateAliasRequest struct {
	Alias     *string `json:"alias"`
	AccountID *string `json:"account_id"`
}

// Update 更新转发别名
func (h *AliasHandler) Update(c *gin.Context) {
	var req UpdateAliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	alias, err := h.aliases.Update(c.Param("id"), service.UpdateAliasInput{
		Alias:     req.Alias,
		AccountID: req.AccountID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	Success(c, alias)
}

// Get 按ID查询别名
func (h *AliasHandler) Get(c *gin.Context) {
	alias, err := h.aliases.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, alias)
}

// List 返回全部别名
func (h *AliasHandler) List(c *gin.Context) {
	aliases, err := h.aliases.List()
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, aliases)
}

// Delete 删除别名
func (h *AliasHandler) Delete(c *gin.Context) {
	if err := h.aliases.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	NoContent(c)
}

package httptransport

import (
	"github.com/gin-gonic/gin"

	"dockspace/backend/internal/service"
)

// AccountHandler 邮箱账户处理器
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler 创建账户处理器
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// CreateAccountRequest 创建账户请求
type CreateAccountRequest struct {
	Address        string `json:"address" binding:"required"`
	Password       string `json:"password"`
	CredentialHash string `json:"credential_hash"`
	IsActive       *bool  `json:"is_active"`
}

// Create 创建邮箱账户
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	account, err := h.accounts.Create(service.CreateAccountInput{
		Address:        req.Address,
		Password:       req.Password,
		CredentialHash: req.CredentialHash,
		IsActive:       isActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	Created(c, account)
}

// UpdateAccountRequest 更新账户请求，省略的字段保持不变
type UpdateAccountRequest struct {
	Address        *string `json:"address"`
	Password       *string `json:"password"`
	CredentialHash *string `json:"credential_hash"`
	IsActive       *bool   `json:"is_active"`
}

// Update 更新邮箱账户
func (h *AccountHandler) Update(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	account, err := h.accounts.Update(c.Param("id"), service.UpdateAccountInput{
		Address:        req.Address,
		Password:       req.Password,
		CredentialHash: req.CredentialHash,
		IsActive:       req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	Success(c, account)
}

// SetPasswordRequest 重置密码请求
type SetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// SetPassword 按地址轮换账户凭据
func (h *AccountHandler) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, MsgInvalidRequest)
		return
	}

	if err := h.accounts.SetPassword(c.Param("address"), req.Password); err != nil {
		respondError(c, err)
		return
	}

	SuccessWithMsg(c, "密码已更新", nil)
}

// Get 按ID查询账户
func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.accounts.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, account)
}

// List 返回全部账户
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accounts.List()
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, accounts)
}

// Delete 删除账户（级联删除别名与配额）
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.accounts.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	NoContent(c)
}

package httptransport

import (
	"errors"

	"github.com/gin-gonic/gin"

	"dockspace/backend/internal/domain"
	"dockspace/backend/internal/service"
	"dockspace/backend/internal/storage"
)

// 错误消息映射表（业务错误 -> 中文消息）
var errorMessages = map[error]string{
	// 账户错误
	storage.ErrAccountNotFound:    "账户不存在",
	storage.ErrAccountExists:      "账户地址已存在",
	service.ErrCredentialRequired: "必须提供密码或凭据哈希",
	service.ErrPasswordTooShort:   "密码长度不足（至少8位）",

	// 别名错误
	storage.ErrAliasNotFound:       "别名不存在",
	storage.ErrAliasExists:         "别名地址已存在",
	service.ErrAliasShadowsMailbox: "别名不能与真实邮箱地址相同",

	// 配额错误
	storage.ErrQuotaNotFound: "配额不存在",
	storage.ErrQuotaExists:   "该账户已有配额",

	// 校验错误
	domain.ErrInvalidEmail:         "邮箱地址格式无效",
	domain.ErrEmailTooLong:         "邮箱地址过长",
	domain.ErrInvalidCredential:    "凭据哈希格式无效（需要 {SCHEME} 前缀）",
	domain.ErrInvalidQuotaUnit:     "配额单位无效（支持 B/K/M/G/T）",
	domain.ErrQuotaSizeNotPositive: "配额大小必须为正数",
}

// 通用错误消息
const (
	MsgInvalidRequest = "请求参数格式错误"
	MsgExportFailed   = "配置文件导出失败"
	MsgVerifyFailed   = "配置文件校验失败"
)

// GetErrorMessage 获取错误的中文消息
func GetErrorMessage(err error) string {
	for target, msg := range errorMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}

// respondError 按错误类别选择 HTTP 状态码
func respondError(c *gin.Context, err error) {
	msg := GetErrorMessage(err)
	switch {
	case errors.Is(err, storage.ErrAccountNotFound),
		errors.Is(err, storage.ErrAliasNotFound),
		errors.Is(err, storage.ErrQuotaNotFound):
		NotFound(c, msg)
	case errors.Is(err, storage.ErrAccountExists),
		errors.Is(err, storage.ErrAliasExists),
		errors.Is(err, storage.ErrQuotaExists),
		errors.Is(err, service.ErrAliasShadowsMailbox):
		Conflict(c, msg)
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmailTooLong),
		errors.Is(err, domain.ErrInvalidCredential),
		errors.Is(err, domain.ErrInvalidQuotaUnit),
		errors.Is(err, domain.ErrQuotaSizeNotPositive),
		errors.Is(err, service.ErrCredentialRequired),
		errors.Is(err, service.ErrPasswordTooShort):
		UnprocessableEntity(c, msg)
	default:
		InternalError(c, msg)
	}
}

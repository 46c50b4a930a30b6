package storage

import (
	"errors"

	"dockspace/backend/internal/domain"
)

var (
	// ErrAccountNotFound 账户未找到错误
	ErrAccountNotFound = errors.New("mail account not found")
	// ErrAccountExists 地址已被其他账户占用错误
	ErrAccountExists = errors.New("mail account address already exists")
	// ErrAliasNotFound 别名未找到错误
	ErrAliasNotFound = errors.New("mail alias not found")
	// ErrAliasExists 别名已存在错误
	ErrAliasExists = errors.New("mail alias already exists")
	// ErrQuotaNotFound 配额未找到错误
	ErrQuotaNotFound = errors.New("mail quota not found")
	// ErrQuotaExists 账户已有配额错误
	ErrQuotaExists = errors.New("mail quota already exists for account")
)

// AccountRepository 定义邮箱账户数据存取操作。
type AccountRepository interface {
	SaveAccount(account *domain.MailAccount) error
	GetAccount(id string) (*domain.MailAccount, error)
	GetAccountByAddress(address string) (*domain.MailAccount, error)
	ListAccounts() ([]domain.MailAccount, error)
	DeleteAccount(id string) error
}

// AliasRepository 定义转发别名数据存取操作。
type AliasRepository interface {
	SaveAlias(alias *domain.MailAlias) error
	GetAlias(id string) (*domain.MailAlias, error)
	GetAliasByAddress(address string) (*domain.MailAlias, error)
	ListAliases() ([]domain.MailAlias, error)
	DeleteAlias(id string) error
	// DeleteAliasesByAddress 删除所有与给定地址（规范化比较）相同的别名，
	// 返回删除数量。用于遮蔽别名的反应式清理。
	DeleteAliasesByAddress(address string) (int, error)
}

// QuotaRepository 定义存储配额数据存取操作。
type QuotaRepository interface {
	SaveQuota(quota *domain.MailQuota) error
	GetQuota(id string) (*domain.MailQuota, error)
	GetQuotaByAccountID(accountID string) (*domain.MailQuota, error)
	ListQuotas() ([]domain.MailQuota, error)
	DeleteQuota(id string) error
}

// Store 定义完整的存储接口。
type Store interface {
	AccountRepository
	AliasRepository
	QuotaRepository

	Close() error
	Health() error
}

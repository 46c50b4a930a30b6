package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"dockspace/backend/internal/domain"
	"dockspace/backend/internal/storage"
)

var (
	ErrCredentialRequired = errors.New("password or credential hash is required")
	ErrPasswordTooShort   = errors.New("password too short (min 8 chars)")
)

// 生成的 bcrypt 哈希带 Dovecot 可识别的算法前缀。
const credentialScheme = "{BLF-CRYPT}"

// AccountService 封装邮箱账户的管理操作。
// 每次成功提交后通知变更钩子，由钩子负责 DMS 配置文件的同步。
type AccountService struct {
	store storage.Store
	hooks ChangeHooks
}

// NewAccountService 创建账户业务服务。
func NewAccountService(store storage.Store, hooks ChangeHooks) *AccountService {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &AccountService{store: store, hooks: hooks}
}

// CreateAccountInput 定义创建账户的输入。
// Password 与 CredentialHash 二选一：前者由服务端做 bcrypt 哈希，
// 后者用于迁移已有的带前缀 crypt 哈希。
type CreateAccountInput struct {
	Address        string
	Password       string
	CredentialHash string
	IsActive       bool
}

// Create 创建新的邮箱账户。
func (s *AccountService) Create(input CreateAccountInput) (*domain.MailAccount, error) {
	address := domain.NormalizeAddress(input.Address)
	if err := domain.ValidateAddress(address); err != nil {
		return nil, err
	}

	hash, err := resolveCredential(input.Password, input.CredentialHash)
	if err != nil {
		return nil, err
	}

	account := &domain.MailAccount{
		ID:             uuid.NewString(),
		Address:        address,
		CredentialHash: hash,
		IsActive:       input.IsActive,
	}
	if err := s.store.SaveAccount(account); err != nil {
		return nil, err
	}

	s.hooks.OnAccountSaved(account.Address)
	return account, nil
}

// UpdateAccountInput 定义更新账户的输入，nil 字段保持不变。
type UpdateAccountInput struct {
	Address        *string
	Password       *string
	CredentialHash *string
	IsActive       *bool
}

// Update 更新已有账户。
func (s *AccountService) Update(id string, input UpdateAccountInput) (*domain.MailAccount, error) {
	account, err := s.store.GetAccount(id)
	if err != nil {
		return nil, err
	}

	if input.Address != nil {
		address := domain.NormalizeAddress(*input.Address)
		if err := domain.ValidateAddress(address); err != nil {
			return nil, err
		}
		account.Address = address
	}
	if input.Password != nil || input.CredentialHash != nil {
		var password, hash string
		if input.Password != nil {
			password = *input.Password
		}
		if input.CredentialHash != nil {
			hash = *input.CredentialHash
		}
		credential, err := resolveCredential(password, hash)
		if err != nil {
			return nil, err
		}
		account.CredentialHash = credential
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	if err := s.store.SaveAccount(account); err != nil {
		return nil, err
	}

	s.hooks.OnAccountSaved(account.Address)
	return account, nil
}

// SetPassword 按地址查找账户并轮换其凭据。
func (s *AccountService) SetPassword(address, password string) error {
	account, err := s.store.GetAccountByAddress(address)
	if err != nil {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	account.CredentialHash = hash

	if err := s.store.SaveAccount(account); err != nil {
		return err
	}

	s.hooks.OnAccountSaved(account.Address)
	return nil
}

// Delete 删除账户，关联的别名与配额随之删除。
func (s *AccountService) Delete(id string) error {
	if err := s.store.DeleteAccount(id); err != nil {
		return err
	}
	s.hooks.OnAccountDeleted()
	return nil
}

// Get 按ID查询账户。
func (s *AccountService) Get(id string) (*domain.MailAccount, error) {
	return s.store.GetAccount(id)
}

// GetByAddress 按地址查询账户。
func (s *AccountService) GetByAddress(address string) (*domain.MailAccount, error) {
	return s.store.GetAccountByAddress(address)
}

// List 返回全部账户。
func (s *AccountService) List() ([]domain.MailAccount, error) {
	return s.store.ListAccounts()
}

// resolveCredential 根据输入决定最终存储的凭据哈希。
func resolveCredential(password, credentialHash string) (string, error) {
	switch {
	case credentialHash != "":
		if err := domain.ValidateCredentialHash(credentialHash); err != nil {
			return "", err
		}
		return credentialHash, nil
	case password != "":
		return hashPassword(password)
	default:
		return "", ErrCredentialRequired
	}
}

// hashPassword 生成带 {BLF-CRYPT} 前缀的 bcrypt 哈希。
func hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return credentialScheme + string(hash), nil
}

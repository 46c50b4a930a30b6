package service

import (
	"errors"

	"github.com/google/uuid"

	"dockspace/backend/internal/domain"
	"dockspace/backend/internal/storage"
)

// QuotaService 封装存储配额的管理操作。
type QuotaService struct {
	store storage.Store
	hooks ChangeHooks
}

// NewQuotaService 创建配额业务服务。
func NewQuotaService(store storage.Store, hooks ChangeHooks) *QuotaService {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &QuotaService{store: store, hooks: hooks}
}

// SetQuotaInput 定义设置配额的输入。
type SetQuotaInput struct {
	AccountID string
	SizeValue int
	SizeUnit  string // B/K/M/G/T
}

// Set 为账户设置配额：不存在则创建，存在则更新（每个账户至多一条）。
func (s *QuotaService) Set(input SetQuotaInput) (*domain.MailQuota, error) {
	if err := domain.ValidateQuota(input.SizeValue, input.SizeUnit); err != nil {
		return nil, err
	}
	if _, err := s.store.GetAccount(input.AccountID); err != nil {
		return nil, err
	}

	quota, err := s.store.GetQuotaByAccountID(input.AccountID)
	switch {
	case err == nil:
		quota.SizeValue = input.SizeValue
		quota.SizeUnit = input.SizeUnit
	case errors.Is(err, storage.ErrQuotaNotFound):
		quota = &domain.MailQuota{
			ID:        uuid.NewString(),
			AccountID: input.AccountID,
			SizeValue: input.SizeValue,
			SizeUnit:  input.SizeUnit,
		}
	default:
		return nil, err
	}

	if err := s.store.SaveQuota(quota); err != nil {
		return nil, err
	}

	s.hooks.OnQuotaChanged()
	return quota, nil
}

// Delete 按ID删除配额。
func (s *QuotaService) Delete(id string) error {
	if err := s.store.DeleteQuota(id); err != nil {
		return err
	}
	s.hooks.OnQuotaChanged()
	return nil
}

// DeleteByAccountID 删除账户的配额。
func (s *QuotaService) DeleteByAccountID(accountID string) error {
	quota, err := s.store.GetQuotaByAccountID(accountID)
	if err != nil {
		return err
	}
	return s.Delete(quota.ID)
}

// GetByAccountID 查询账户的配额。
func (s *QuotaService) GetByAccountID(accountID string) (*domain.MailQuota, error) {
	return s.store.GetQuotaByAccountID(accountID)
}

// List 返回全部配额。
func (s *QuotaService) List() ([]domain.MailQuota, error) {
	return s.store.ListQuotas()
}

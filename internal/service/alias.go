package service

import (
	"errors"

	"github.com/google/uuid"

	"dockspace/backend/internal/domain"
	"dockspace/backend/internal/storage"
)

var (
	// ErrAliasShadowsMailbox 别名与真实邮箱地址冲突错误
	ErrAliasShadowsMailbox = errors.New("alias cannot shadow an existing mailbox address")
)

// AliasService 封装转发别名的管理操作。
// 写入时校验别名不遮蔽真实邮箱；钩子层在账户保存时做反应式二次清理。
type AliasService struct {
	store storage.Store
	hooks ChangeHooks
}

// NewAliasService 创建别名业务服务。
func NewAliasService(store storage.Store, hooks ChangeHooks) *AliasService {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &AliasService{store: store, hooks: hooks}
}

// CreateAliasInput 定义创建别名的输入。
type CreateAliasInput struct {
	Alias     string // 对外暴露的别名地址
	AccountID string // 目标账户ID
}

// Create 创建新的转发别名。
func (s *AliasService) Create(input CreateAliasInput) (*domain.MailAlias, error) {
	address := domain.NormalizeAddress(input.Alias)
	if err := domain.ValidateAddress(address); err != nil {
		return nil, err
	}
	if err := s.checkShadow(address); err != nil {
		return nil, err
	}

	// 目标账户必须存在
	if _, err := s.store.GetAccount(input.AccountID); err != nil {
		return nil, err
	}

	alias := &domain.MailAlias{
		ID:        uuid.NewString(),
		Alias:     address,
		AccountID: input.AccountID,
	}
	if err := s.store.SaveAlias(alias); err != nil {
		return nil, err
	}

	s.hooks.OnAliasChanged()
	return alias, nil
}

// UpdateAliasInput 定义更新别名的输入，nil 字段保持不变。
type UpdateAliasInput struct {
	Alias     *string
	AccountID *string
}

// Update 更新已有别名。
func (s *AliasService) Update(id string, input UpdateAliasInput) (*domain.MailAlias, error) {
	alias, err := s.store.GetAlias(id)
	if err != nil {
		return nil, err
	}

	if input.Alias != nil {
		address := domain.NormalizeAddress(*input.Alias)
		if err := domain.ValidateAddress(address); err != nil {
			return nil, err
		}
		if err := s.checkShadow(address); err != nil {
			return nil, err
		}
		alias.Alias = address
	}
	if input.AccountID != nil {
		if _, err := s.store.GetAccount(*input.AccountID); err != nil {
			return nil, err
		}
		alias.AccountID = *input.AccountID
	}

	if err := s.store.SaveAlias(alias); err != nil {
		return nil, err
	}

	s.hooks.OnAliasChanged()
	return alias, nil
}

// Delete 按ID删除别名。
func (s *AliasService) Delete(id string) error {
	if err := s.store.DeleteAlias(id); err != nil {
		return err
	}
	s.hooks.OnAliasChanged()
	return nil
}

// Get 按ID查询别名。
func (s *AliasService) Get(id string) (*domain.MailAlias, error) {
	return s.store.GetAlias(id)
}

// List 返回全部别名。
func (s *AliasService) List() ([]domain.MailAlias, error) {
	return s.store.ListAliases()
}

// checkShadow 拒绝与真实邮箱地址相同的别名。
func (s *AliasService) checkShadow(address string) error {
	_, err := s.store.GetAccountByAddress(address)
	switch {
	case err == nil:
		return ErrAliasShadowsMailbox
	case errors.Is(err, storage.ErrAccountNotFound):
		return nil
	default:
		return err
	}
}

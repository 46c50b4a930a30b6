package memory

import (
	"sync"
	"time"

	"dockspace/backend/internal/domain"
	"dockspace/backend/internal/storage"
)

// Store 使用内存保存账户、别名与配额数据，主要用于开发验证和测试。
type Store struct {
	mu sync.RWMutex

	accounts  map[string]*domain.MailAccount // accountID -> account
	byAddress map[string]string              // address -> accountID

	aliases map[string]*domain.MailAlias // aliasID -> alias
	byAlias map[string]string            // alias address -> aliasID

	quotas    map[string]*domain.MailQuota // quotaID -> quota
	byAccount map[string]string            // accountID -> quotaID
}

// NewStore 创建内存存储实例
func NewStore() *Store {
	return &Store{
		accounts:  make(map[string]*domain.MailAccount),
		byAddress: make(map[string]string),
		aliases:   make(map[string]*domain.MailAlias),
		byAlias:   make(map[string]string),
		quotas:    make(map[string]*domain.MailQuota),
		byAccount: make(map[string]string),
	}
}

// SaveAccount 新建或更新账户，地址在规范化后保持全局唯一。
func (s *Store) SaveAccount(account *domain.MailAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	address := domain.NormalizeAddress(account.Address)
	if existingID, ok := s.byAddress[address]; ok && existingID != account.ID {
		return storage.ErrAccountExists
	}

	// 地址变更时移除旧索引
	if old, ok := s.accounts[account.ID]; ok {
		delete(s.byAddress, domain.NormalizeAddress(old.Address))
	}

	clone := *account
	clone.Address = address
	clone.UpdatedAt = time.Now().UTC()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = clone.UpdatedAt
	}

	s.accounts[account.ID] = &clone
	s.byAddress[address] = account.ID
	*account = clone
	return nil
}

// GetAccount 按ID查询账户。
func (s *Store) GetAccount(id string) (*domain.MailAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	clone := *account
	return &clone, nil
}

// GetAccountByAddress 按规范化地址查询账户。
func (s *Store) GetAccountByAddress(address string) (*domain.MailAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byAddress[domain.NormalizeAddress(address)]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}
	clone := *s.accounts[id]
	return &clone, nil
}

// ListAccounts 返回全部账户（无序）。
func (s *Store) ListAccounts() ([]domain.MailAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]domain.MailAccount, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

// DeleteAccount 删除账户及其关联的别名与配额。
func (s *Store) DeleteAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return storage.ErrAccountNotFound
	}

	delete(s.byAddress, domain.NormalizeAddress(account.Address))
	delete(s.accounts, id)

	// 级联删除：别名和配额都引用账户
	for aliasID, alias := range s.aliases {
		if alias.AccountID == id {
			delete(s.byAlias, alias.Alias)
			delete(s.aliases, aliasID)
		}
	}
	if quotaID, ok := s.byAccount[id]; ok {
		delete(s.quotas, quotaID)
		delete(s.byAccount, id)
	}
	return nil
}

// SaveAlias 新建或更新别名，别名地址保持唯一。
func (s *Store) SaveAlias(alias *domain.MailAlias) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	address := domain.NormalizeAddress(alias.Alias)
	if existingID, ok := s.byAlias[address]; ok && existingID != alias.ID {
		return storage.ErrAliasExists
	}

	if old, ok := s.aliases[alias.ID]; ok {
		delete(s.byAlias, domain.NormalizeAddress(old.Alias))
	}

	clone := *alias
	clone.Alias = address
	clone.UpdatedAt = time.Now().UTC()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = clone.UpdatedAt
	}

	s.aliases[alias.ID] = &clone
	s.byAlias[address] = alias.ID
	*alias = clone
	return nil
}

// GetAlias 按ID查询别名。
func (s *Store) GetAlias(id string) (*domain.MailAlias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alias, ok := s.aliases[id]
	if !ok {
		return nil, storage.ErrAliasNotFound
	}
	clone := *alias
	return &clone, nil
}

// GetAliasByAddress 按规范化别名地址查询别名。
func (s *Store) GetAliasByAddress(address string) (*domain.MailAlias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byAlias[domain.NormalizeAddress(address)]
	if !ok {
		return nil, storage.ErrAliasNotFound
	}
	clone := *s.aliases[id]
	return &clone, nil
}

// ListAliases 返回全部别名（无序）。
func (s *Store) ListAliases() ([]domain.MailAlias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	aliases := make([]domain.MailAlias, 0, len(s.aliases))
	for _, alias := range s.aliases {
		aliases = append(aliases, *alias)
	}
	return aliases, nil
}

// DeleteAlias 按ID删除别名。
func (s *Store) DeleteAlias(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alias, ok := s.aliases[id]
	if !ok {
		return storage.ErrAliasNotFound
	}
	delete(s.byAlias, domain.NormalizeAddress(alias.Alias))
	delete(s.aliases, id)
	return nil
}

// DeleteAliasesByAddress 删除与给定地址相同的所有别名，返回删除数量。
func (s *Store) DeleteAliasesByAddress(address string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address = domain.NormalizeAddress(address)
	if address == "" {
		return 0, nil
	}

	deleted := 0
	for id, alias := range s.aliases {
		if domain.NormalizeAddress(alias.Alias) == address {
			delete(s.byAlias, alias.Alias)
			delete(s.aliases, id)
			deleted++
		}
	}
	return deleted, nil
}

// SaveQuota 新建或更新配额，每个账户至多一条。
func (s *Store) SaveQuota(quota *domain.MailQuota) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, ok := s.byAccount[quota.AccountID]; ok && existingID != quota.ID {
		return storage.ErrQuotaExists
	}

	if old, ok := s.quotas[quota.ID]; ok {
		delete(s.byAccount, old.AccountID)
	}

	clone := *quota
	clone.UpdatedAt = time.Now().UTC()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = clone.UpdatedAt
	}

	s.quotas[quota.ID] = &clone
	s.byAccount[quota.AccountID] = quota.ID
	*quota = clone
	return nil
}

// GetQuota 按ID查询配额。
func (s *Store) GetQuota(id string) (*domain.MailQuota, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quota, ok := s.quotas[id]
	if !ok {
		return nil, storage.ErrQuotaNotFound
	}
	clone := *quota
	return &clone, nil
}

// GetQuotaByAccountID 查询账户的配额。
func (s *Store) GetQuotaByAccountID(accountID string) (*domain.MailQuota, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byAccount[accountID]
	if !ok {
		return nil, storage.ErrQuotaNotFound
	}
	clone := *s.quotas[id]
	return &clone, nil
}

// ListQuotas 返回全部配额（无序）。
func (s *Store) ListQuotas() ([]domain.MailQuota, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quotas := make([]domain.MailQuota, 0, len(s.quotas))
	for _, quota := range s.quotas {
		quotas = append(quotas, *quota)
	}
	return quotas, nil
}

// DeleteQuota 按ID删除配额。
func (s *Store) DeleteQuota(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quota, ok := s.quotas[id]
	if !ok {
		return storage.ErrQuotaNotFound
	}
	delete(s.byAccount, quota.AccountID)
	delete(s.quotas, id)
	return nil
}

// Close 关闭存储（内存实现为空操作）。
func (s *Store) Close() error { return nil }

// Health 检查存储健康状态（内存实现始终健康）。
func (s *Store) Health() error { return nil }

package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockspace/backend/internal/domain"
	"dockspace/backend/internal/storage"
)

func TestMemoryStore_AccountOperations(t *testing.T) {
	store := NewStore()

	account := &domain.MailAccount{
		ID:             "acct-1",
		Address:        "Alice@Example.com",
		CredentialHash: "{BLF-CRYPT}$2a$12$hash",
		IsActive:       true,
	}

	err := store.SaveAccount(account)
	require.NoError(t, err)
	// 保存时地址已规范化
	assert.Equal(t, "alice@example.com", account.Address)

	retrieved, err := store.GetAccount("acct-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", retrieved.Address)
	assert.Equal(t, "{BLF-CRYPT}$2a$12$hash", retrieved.CredentialHash)

	retrieved, err = store.GetAccountByAddress("ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", retrieved.ID)

	// 地址唯一性：不同ID占用相同地址被拒绝
	dup := &domain.MailAccount{ID: "acct-2", Address: "alice@example.com"}
	err = store.SaveAccount(dup)
	assert.ErrorIs(t, err, storage.ErrAccountExists)

	// 同一ID更新地址后旧索引失效
	account.Address = "alice.new@example.com"
	require.NoError(t, store.SaveAccount(account))
	_, err = store.GetAccountByAddress("alice@example.com")
	assert.ErrorIs(t, err, storage.ErrAccountNotFound)

	err = store.DeleteAccount("acct-1")
	require.NoError(t, err)
	_, err = store.GetAccount("acct-1")
	assert.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestMemoryStore_DeleteAccountCascades(t *testing.T) {
	store := NewStore()

	account := &domain.MailAccount{ID: "acct-1", Address: "alice@example.com"}
	require.NoError(t, store.SaveAccount(account))
	require.NoError(t, store.SaveAlias(&domain.MailAlias{ID: "alias-1", Alias: "sales@example.com", AccountID: "acct-1"}))
	require.NoError(t, store.SaveQuota(&domain.MailQuota{ID: "quota-1", AccountID: "acct-1", SizeValue: 10, SizeUnit: domain.QuotaUnitGiB}))

	require.NoError(t, store.DeleteAccount("acct-1"))

	_, err := store.GetAlias("alias-1")
	assert.ErrorIs(t, err, storage.ErrAliasNotFound)
	_, err = store.GetQuotaByAccountID("acct-1")
	assert.ErrorIs(t, err, storage.ErrQuotaNotFound)
}

func TestMemoryStore_AliasOperations(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.SaveAccount(&domain.MailAccount{ID: "acct-1", Address: "alice@example.com"}))

	alias := &domain.MailAlias{ID: "alias-1", Alias: "Sales@Example.com", AccountID: "acct-1"}
	require.NoError(t, store.SaveAlias(alias))
	assert.Equal(t, "sales@example.com", alias.Alias)

	retrieved, err := store.GetAliasByAddress("sales@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alias-1", retrieved.ID)

	dup := &domain.MailAlias{ID: "alias-2", Alias: "sales@example.com", AccountID: "acct-1"}
	assert.ErrorIs(t, store.SaveAlias(dup), storage.ErrAliasExists)

	aliases, err := store.ListAliases()
	require.NoError(t, err)
	assert.Len(t, aliases, 1)

	require.NoError(t, store.DeleteAlias("alias-1"))
	_, err = store.GetAlias("alias-1")
	assert.ErrorIs(t, err, storage.ErrAliasNotFound)
}

func TestMemoryStore_DeleteAliasesByAddress(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.SaveAlias(&domain.MailAlias{ID: "alias-1", Alias: "info@example.com", AccountID: "acct-1"}))
	require.NoError(t, store.SaveAlias(&domain.MailAlias{ID: "alias-2", Alias: "other@example.com", AccountID: "acct-1"}))

	deleted, err := store.DeleteAliasesByAddress("  INFO@example.com ")
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = store.GetAlias("alias-1")
	assert.ErrorIs(t, err, storage.ErrAliasNotFound)
	_, err = store.GetAlias("alias-2")
	assert.NoError(t, err)

	// 空地址不删除任何记录
	deleted, err = store.DeleteAliasesByAddress("   ")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestMemoryStore_QuotaOperations(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.SaveAccount(&domain.MailAccount{ID: "acct-1", Address: "alice@example.com"}))

	quota := &domain.MailQuota{ID: "quota-1", AccountID: "acct-1", SizeValue: 512, SizeUnit: domain.QuotaUnitMiB}
	require.NoError(t, store.SaveQuota(quota))

	retrieved, err := store.GetQuotaByAccountID("acct-1")
	require.NoError(t, err)
	assert.Equal(t, "512M", retrieved.QuotaString())

	// 每个账户至多一条配额
	dup := &domain.MailQuota{ID: "quota-2", AccountID: "acct-1", SizeValue: 1, SizeUnit: domain.QuotaUnitGiB}
	assert.ErrorIs(t, store.SaveQuota(dup), storage.ErrQuotaExists)

	// 同一条配额可以更新
	quota.SizeValue = 20
	quota.SizeUnit = domain.QuotaUnitGiB
	require.NoError(t, store.SaveQuota(quota))
	retrieved, err = store.GetQuotaByAccountID("acct-1")
	require.NoError(t, err)
	assert.Equal(t, "20G", retrieved.QuotaString())

	require.NoError(t, store.DeleteQuota("quota-1"))
	_, err = store.GetQuotaByAccountID("acct-1")
	assert.ErrorIs(t, err, storage.ErrQuotaNotFound)
}

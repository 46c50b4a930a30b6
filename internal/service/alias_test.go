package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockspace/backend/internal/domain"
	"dockspace/backend/internal/storage"
	"dockspace/backend/internal/storage/memory"
)

func setupAliasTest(t *testing.T) (*AliasService, *AccountService, *hookRecorder, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	recorder := &hookRecorder{}
	return NewAliasService(store, recorder), NewAccountService(store, recorder), recorder, store
}

func TestAliasService_Create(t *testing.T) {
	t.Run("creates alias and fires hook", func(t *testing.T) {
		aliases, accounts, recorder, _ := setupAliasTest(t)
		account, err := accounts.Create(CreateAccountInput{Address: "alice@example.com", Password: "correct-horse"})
		require.NoError(t, err)

		alias, err := aliases.Create(CreateAliasInput{Alias: " Sales@Example.com ", AccountID: account.ID})
		require.NoError(t, err)
		assert.Equal(t, "sales@example.com", alias.Alias)
		assert.Equal(t, 1, recorder.aliasChanged)
	})

	t.Run("rejects alias shadowing a mailbox", func(t *testing.T) {
		aliases, accounts, _, _ := setupAliasTest(t)
		account, err := accounts.Create(CreateAccountInput{Address: "alice@example.com", Password: "correct-horse"})
		require.NoError(t, err)

		_, err = aliases.Create(CreateAliasInput{Alias: "ALICE@example.com", AccountID: account.ID})
		assert.ErrorIs(t, err, ErrAliasShadowsMailbox)
	})

	t.Run("rejects missing target account", func(t *testing.T) {
		aliases, _, _, _ := setupAliasTest(t)

		_, err := aliases.Create(CreateAliasInput{Alias: "sales@example.com", AccountID: "missing"})
		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
	})

	t.Run("rejects invalid alias address", func(t *testing.T) {
		aliases, accounts, _, _ := setupAliasTest(t)
		account, err := accounts.Create(CreateAccountInput{Address: "alice@example.com", Password: "correct-horse"})
		require.NoError(t, err)

		_, err = aliases.Create(CreateAliasInput{Alias: "bogus", AccountID: account.ID})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestAliasService_Update(t *testing.T) {
	aliases, accounts, recorder, _ := setupAliasTest(t)
	account, err := accounts.Create(CreateAccountInput{Address: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	alias, err := aliases.Create(CreateAliasInput{Alias: "sales@example.com", AccountID: account.ID})
	require.NoError(t, err)

	t.Run("renames alias", func(t *testing.T) {
		address := "support@example.com"
		updated, err := aliases.Update(alias.ID, UpdateAliasInput{Alias: &address})
		require.NoError(t, err)
		assert.Equal(t, "support@example.com", updated.Alias)
		assert.Equal(t, 2, recorder.aliasChanged)
	})

	t.Run("rename into mailbox address is rejected", func(t *testing.T) {
		address := "alice@example.com"
		_, err := aliases.Update(alias.ID, UpdateAliasInput{Alias: &address})
		assert.ErrorIs(t, err, ErrAliasShadowsMailbox)
	})
}

func TestAliasService_Delete(t *testing.T) {
	aliases, accounts, recorder, _ := setupAliasTest(t)
	account, err := accounts.Create(CreateAccountInput{Address: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	alias, err := aliases.Create(CreateAliasInput{Alias: "sales@example.com", AccountID: account.ID})
	require.NoError(t, err)

	require.NoError(t, aliases.Delete(alias.ID))
	assert.Equal(t, 2, recorder.aliasChanged)

	assert.ErrorIs(t, aliases.Delete(alias.ID), storage.ErrAliasNotFound)
}

func TestQuotaService_Set(t *testing.T) {
	store := memory.NewStore()
	recorder := &hookRecorder{}
	quotas := NewQuotaService(store, recorder)
	accounts := NewAccountService(store, recorder)

	account, err := accounts.Create(CreateAccountInput{Address: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	t.Run("creates quota", func(t *testing.T) {
		quota, err := quotas.Set(SetQuotaInput{AccountID: account.ID, SizeValue: 10, SizeUnit: domain.QuotaUnitGiB})
		require.NoError(t, err)
		assert.Equal(t, "10G", quota.QuotaString())
		assert.Equal(t, 1, recorder.quotaChanged)
	})

	t.Run("updates existing quota in place", func(t *testing.T) {
		quota, err := quotas.Set(SetQuotaInput{AccountID: account.ID, SizeValue: 512, SizeUnit: domain.QuotaUnitMiB})
		require.NoError(t, err)
		assert.Equal(t, "512M", quota.QuotaString())

		all, err := quotas.List()
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("rejects invalid size", func(t *testing.T) {
		_, err := quotas.Set(SetQuotaInput{AccountID: account.ID, SizeValue: 0, SizeUnit: domain.QuotaUnitGiB})
		assert.ErrorIs(t, err, domain.ErrQuotaSizeNotPositive)
	})

	t.Run("rejects invalid unit", func(t *testing.T) {
		_, err := quotas.Set(SetQuotaInput{AccountID: account.ID, SizeValue: 10, SizeUnit: "Q"})
		assert.ErrorIs(t, err, domain.ErrInvalidQuotaUnit)
	})

	t.Run("rejects missing account", func(t *testing.T) {
		_, err := quotas.Set(SetQuotaInput{AccountID: "missing", SizeValue: 10, SizeUnit: domain.QuotaUnitGiB})
		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
	})
}

func TestQuotaService_Delete(t *testing.T) {
	store := memory.NewStore()
	recorder := &hookRecorder{}
	quotas := NewQuotaService(store, recorder)
	accounts := NewAccountService(store, recorder)

	account, err := accounts.Create(CreateAccountInput{Address: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	_, err = quotas.Set(SetQuotaInput{AccountID: account.ID, SizeValue: 10, SizeUnit: domain.QuotaUnitGiB})
	require.NoError(t, err)

	require.NoError(t, quotas.DeleteByAccountID(account.ID))
	assert.Equal(t, 2, recorder.quotaChanged)

	assert.ErrorIs(t, quotas.DeleteByAccountID(account.ID), storage.ErrQuotaNotFound)
}

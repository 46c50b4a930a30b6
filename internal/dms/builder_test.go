package dms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockspace/backend/internal/domain"
)

func TestBuildAccountLines(t *testing.T) {
	t.Run("sorted by address ascending", func(t *testing.T) {
		accounts := []domain.MailAccount{
			{ID: "2", Address: "bob@x.com", CredentialHash: "hash2"},
			{ID: "1", Address: "alice@x.com", CredentialHash: "hash1"},
		}

		lines, skips := BuildAccountLines(accounts)
		require.Empty(t, skips)
		assert.Equal(t, []string{"alice@x.com|hash1", "bob@x.com|hash2"}, lines)
	})

	t.Run("normalizes address", func(t *testing.T) {
		accounts := []domain.MailAccount{
			{ID: "1", Address: "  Alice@X.COM ", CredentialHash: "hash1"},
		}

		lines, _ := BuildAccountLines(accounts)
		assert.Equal(t, []string{"alice@x.com|hash1"}, lines)
	})

	t.Run("skips records without credential but keeps the rest", func(t *testing.T) {
		accounts := []domain.MailAccount{
			{ID: "1", Address: "alice@x.com", CredentialHash: "hash1"},
			{ID: "2", Address: "bob@x.com", CredentialHash: ""},
			{ID: "3", Address: "carol@x.com", CredentialHash: "hash3"},
		}

		lines, skips := BuildAccountLines(accounts)
		assert.Equal(t, []string{"alice@x.com|hash1", "carol@x.com|hash3"}, lines)
		require.Len(t, skips, 1)
		assert.Equal(t, "bob@x.com", skips[0].Record)
	})

	t.Run("skips records without address", func(t *testing.T) {
		accounts := []domain.MailAccount{
			{ID: "acct-1", Address: "   ", CredentialHash: "hash1"},
		}

		lines, skips := BuildAccountLines(accounts)
		assert.Empty(t, lines)
		require.Len(t, skips, 1)
		assert.Equal(t, "acct-1", skips[0].Record)
	})
}

func TestBuildVirtualLines(t *testing.T) {
	accounts := []domain.MailAccount{
		{ID: "acct-1", Address: "alice@x.com", CredentialHash: "hash1"},
	}

	t.Run("emits alias and recipient", func(t *testing.T) {
		aliases := []domain.MailAlias{
			{ID: "alias-1", Alias: "sales@x.com", AccountID: "acct-1"},
		}

		lines, skips := BuildVirtualLines(aliases, accounts)
		require.Empty(t, skips)
		assert.Equal(t, []string{"sales@x.com alice@x.com"}, lines)
	})

	t.Run("sorted by alias ascending", func(t *testing.T) {
		aliases := []domain.MailAlias{
			{ID: "alias-2", Alias: "zeta@x.com", AccountID: "acct-1"},
			{ID: "alias-1", Alias: "info@x.com", AccountID: "acct-1"},
		}

		lines, _ := BuildVirtualLines(aliases, accounts)
		assert.Equal(t, []string{"info@x.com alice@x.com", "zeta@x.com alice@x.com"}, lines)
	})

	t.Run("filters aliases shadowing a mailbox", func(t *testing.T) {
		aliases := []domain.MailAlias{
			{ID: "alias-1", Alias: "Alice@X.com", AccountID: "acct-1"}, // 与真实邮箱同名
			{ID: "alias-2", Alias: "sales@x.com", AccountID: "acct-1"},
		}

		lines, skips := BuildVirtualLines(aliases, accounts)
		assert.Equal(t, []string{"sales@x.com alice@x.com"}, lines)
		require.Len(t, skips, 1)
		assert.Equal(t, "alice@x.com", skips[0].Record)
		assert.Equal(t, "shadows an existing mailbox", skips[0].Reason)
	})

	t.Run("skips alias whose target has no address", func(t *testing.T) {
		broken := []domain.MailAccount{
			{ID: "acct-2", Address: "   "},
		}
		aliases := []domain.MailAlias{
			{ID: "alias-1", Alias: "sales@x.com", AccountID: "acct-2"},
			{ID: "alias-2", Alias: "support@x.com", AccountID: "missing"},
		}

		lines, skips := BuildVirtualLines(aliases, broken)
		assert.Empty(t, lines)
		assert.Len(t, skips, 2)
	})
}

func TestBuildQuotaLines(t *testing.T) {
	accounts := []domain.MailAccount{
		{ID: "acct-1", Address: "alice@x.com"},
		{ID: "acct-2", Address: "bob@x.com"},
	}

	t.Run("value and unit concatenated without separator", func(t *testing.T) {
		quotas := []domain.MailQuota{
			{ID: "q1", AccountID: "acct-1", SizeValue: 10, SizeUnit: domain.QuotaUnitGiB},
		}

		lines, skips := BuildQuotaLines(quotas, accounts)
		require.Empty(t, skips)
		assert.Equal(t, []string{"alice@x.com:10G"}, lines)
	})

	t.Run("sorted by mailbox address ascending", func(t *testing.T) {
		quotas := []domain.MailQuota{
			{ID: "q2", AccountID: "acct-2", SizeValue: 1, SizeUnit: domain.QuotaUnitTiB},
			{ID: "q1", AccountID: "acct-1", SizeValue: 512, SizeUnit: domain.QuotaUnitMiB},
		}

		lines, _ := BuildQuotaLines(quotas, accounts)
		assert.Equal(t, []string{"alice@x.com:512M", "bob@x.com:1T"}, lines)
	})

	t.Run("skips quota whose account has no address", func(t *testing.T) {
		quotas := []domain.MailQuota{
			{ID: "q1", AccountID: "missing", SizeValue: 10, SizeUnit: domain.QuotaUnitGiB},
			{ID: "q2", AccountID: "acct-1", SizeValue: 10, SizeUnit: domain.QuotaUnitGiB},
		}

		lines, skips := BuildQuotaLines(quotas, accounts)
		assert.Equal(t, []string{"alice@x.com:10G"}, lines)
		require.Len(t, skips, 1)
		assert.Equal(t, "q1", skips[0].Record)
	})
}

package dms

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockspace/backend/internal/domain"
	"dockspace/backend/internal/storage/memory"
)

func newTestExporter(t *testing.T) (*Exporter, *memory.Store, string) {
	t.Helper()
	store := memory.NewStore()
	dir := t.TempDir()
	return NewExporter(store, dir, nil, nil), store, dir
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestExportAll(t *testing.T) {
	t.Run("accounts only", func(t *testing.T) {
		exporter, store, dir := newTestExporter(t)
		require.NoError(t, store.SaveAccount(&domain.MailAccount{ID: "1", Address: "alice@x.com", CredentialHash: "hash1"}))
		require.NoError(t, store.SaveAccount(&domain.MailAccount{ID: "2", Address: "bob@x.com", CredentialHash: "hash2"}))

		require.NoError(t, exporter.ExportAll(""))

		assert.Equal(t, "alice@x.com|hash1\nbob@x.com|hash2\n", readFile(t, dir, AccountsFile))
		// 无别名、无配额时另外两个文件是零字节
		assert.Empty(t, readFile(t, dir, VirtualFile))
		assert.Empty(t, readFile(t, dir, QuotasFile))
	})

	t.Run("alias mapping", func(t *testing.T) {
		exporter, store, dir := newTestExporter(t)
		require.NoError(t, store.SaveAccount(&domain.MailAccount{ID: "1", Address: "alice@x.com", CredentialHash: "hash1"}))
		require.NoError(t, store.SaveAlias(&domain.MailAlias{ID: "a1", Alias: "sales@x.com", AccountID: "1"}))

		require.NoError(t, exporter.ExportAll(""))

		assert.Equal(t, "sales@x.com alice@x.com\n", readFile(t, dir, VirtualFile))
	})

	t.Run("quota formatting", func(t *testing.T) {
		exporter, store, dir := newTestExporter(t)
		require.NoError(t, store.SaveAccount(&domain.MailAccount{ID: "1", Address: "alice@x.com", CredentialHash: "hash1"}))
		require.NoError(t, store.SaveQuota(&domain.MailQuota{ID: "q1", AccountID: "1", SizeValue: 512, SizeUnit: domain.QuotaUnitMiB}))

		require.NoError(t, exporter.ExportAll(""))

		assert.Equal(t, "alice@x.com:512M\n", readFile(t, dir, QuotasFile))
	})

	t.Run("idempotent for unchanged state", func(t *testing.T) {
		exporter, store, dir := newTestExporter(t)
		require.NoError(t, store.SaveAccount(&domain.MailAccount{ID: "1", Address: "alice@x.com", CredentialHash: "hash1"}))
		require.NoError(t, store.SaveAlias(&domain.MailAlias{ID: "a1", Alias: "sales@x.com", AccountID: "1"}))
		require.NoError(t, store.SaveQuota(&domain.MailQuota{ID: "q1", AccountID: "1", SizeValue: 10, SizeUnit: domain.QuotaUnitGiB}))

		require.NoError(t, exporter.ExportAll(""))
		first := map[string]string{}
		for _, name := range exportOrder {
			first[name] = readFile(t, dir, name)
		}

		require.NoError(t, exporter.ExportAll(""))
		for _, name := range exportOrder {
			assert.Equal(t, first[name], readFile(t, dir, name), name)
		}
	})

	t.Run("explicit dir overrides default", func(t *testing.T) {
		exporter, store, _ := newTestExporter(t)
		require.NoError(t, store.SaveAccount(&domain.MailAccount{ID: "1", Address: "alice@x.com", CredentialHash: "hash1"}))

		override := filepath.Join(t.TempDir(), "dms")
		require.NoError(t, exporter.ExportAll(override))

		assert.Equal(t, "alice@x.com|hash1\n", readFile(t, override, AccountsFile))
	})

	t.Run("creates output directory", func(t *testing.T) {
		store := memory.NewStore()
		dir := filepath.Join(t.TempDir(), "does", "not", "exist")
		exporter := NewExporter(store, dir, nil, nil)

		require.NoError(t, exporter.ExportAll(""))

		_, err := os.Stat(filepath.Join(dir, AccountsFile))
		assert.NoError(t, err)
	})

	t.Run("source error propagates", func(t *testing.T) {
		exporter := NewExporter(&failingSource{}, t.TempDir(), nil, nil)
		assert.Error(t, exporter.ExportAll(""))
	})
}

// failingSource 模拟存储读取失败。
type failingSource struct{}

func (f *failingSource) ListAccounts() ([]domain.MailAccount, error) {
	return nil, errors.New("database gone")
}
func (f *failingSource) ListAliases() ([]domain.MailAlias, error) {
	return nil, errors.New("database gone")
}
func (f *failingSource) ListQuotas() ([]domain.MailQuota, error) {
	return nil, errors.New("database gone")
}

package dms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeContent(t *testing.T) {
	t.Run("joins lines with single trailing newline", func(t *testing.T) {
		content := NormalizeContent([]string{"a@x.com|h1", "b@x.com|h2"})
		assert.Equal(t, "a@x.com|h1\nb@x.com|h2\n", content)
	})

	t.Run("strips trailing whitespace", func(t *testing.T) {
		content := NormalizeContent([]string{"a@x.com|h1  ", "b@x.com|h2\t"})
		assert.Equal(t, "a@x.com|h1\nb@x.com|h2\n", content)
	})

	t.Run("drops empty lines", func(t *testing.T) {
		content := NormalizeContent([]string{"", "a@x.com|h1", "   ", "\t"})
		assert.Equal(t, "a@x.com|h1\n", content)
	})

	t.Run("zero records produce empty content without newline", func(t *testing.T) {
		assert.Equal(t, "", NormalizeContent(nil))
		assert.Equal(t, "", NormalizeContent([]string{"", "  "}))
	})
}

func TestWriteLines(t *testing.T) {
	t.Run("writes normalized content", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "postfix-accounts.cf")

		require.NoError(t, WriteLines(path, []string{"a@x.com|h1", "b@x.com|h2"}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com|h1\nb@x.com|h2\n", string(data))
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "deep", "postfix-virtual.cf")

		require.NoError(t, WriteLines(path, []string{"sales@x.com alice@x.com"}))

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("overwrites existing content entirely", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "dovecot-quotas.cf")

		require.NoError(t, WriteLines(path, []string{"old@x.com:1G", "stale@x.com:2G"}))
		require.NoError(t, WriteLines(path, []string{"new@x.com:10G"}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new@x.com:10G\n", string(data))
	})

	t.Run("zero records write a zero byte file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "postfix-virtual.cf")

		require.NoError(t, WriteLines(path, nil))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, data)
	})
}

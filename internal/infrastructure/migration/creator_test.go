package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMigrationPair(t *testing.T, dir, base string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, base+".up.sql"), []byte("-- "+base+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, base+".down.sql"), []byte("-- "+base+" (rollback)\n"), 0o644))
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"create carts", "create_carts"},
		{"Create-Product-Images", "create_product_images"},
		{"ADD_ORDER_STATUS", "add_order_status"},
		{"add__index__twice", "add_index_twice"},
		{"Drop Replicas 2", "drop_replicas_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	t.Run("first migration gets version 000001", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "create users", "users table with bcrypt password hashes")
		require.NoError(t, err)

		assert.Equal(t, "000001", mf.Version)
		assert.Equal(t, filepath.Join(dir, "000001_create_users.up.sql"), mf.UpPath)
		assert.Equal(t, filepath.Join(dir, "000001_create_users.down.sql"), mf.DownPath)

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "000001_create_users")
		assert.Contains(t, string(up), "users table with bcrypt password hashes")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "rollback")
	})

	t.Run("version continues after the checked-in migrations", func(t *testing.T) {
		dir := t.TempDir()
		writeMigrationPair(t, dir, "000004_create_replicas")
		writeMigrationPair(t, dir, "000005_create_carts")

		mf, err := CreateMigration(dir, "add product images", "")
		require.NoError(t, err)

		assert.Equal(t, "000006", mf.Version)
		assert.Equal(t, filepath.Join(dir, "000006_add_product_images.up.sql"), mf.UpPath)
	})

	t.Run("creates the directory when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "migrations")

		mf, err := CreateMigration(dir, "create orders", "")
		require.NoError(t, err)
		assert.Equal(t, "000001", mf.Version)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestListMigrations(t *testing.T) {
	t.Run("lists each pair once in order", func(t *testing.T) {
		dir := t.TempDir()
		writeMigrationPair(t, dir, "000001_create_users")
		writeMigrationPair(t, dir, "000002_create_products")
		writeMigrationPair(t, dir, "000003_create_orders")

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"000001_create_users",
			"000002_create_products",
			"000003_create_orders",
		}, migrations)
	})

	t.Run("empty or missing directory lists nothing", func(t *testing.T) {
		migrations, err := ListMigrations(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, migrations)

		migrations, err = ListMigrations(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("ignores non-migration files and directories", func(t *testing.T) {
		dir := t.TempDir()
		writeMigrationPair(t, dir, "000001_create_users")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("schema notes"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitkeep"), nil, 0o644))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0o755))

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_create_users"}, migrations)
	})
}

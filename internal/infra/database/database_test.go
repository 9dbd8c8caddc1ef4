package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSN(t *testing.T) {
	assert.Equal(t,
		"app:secret@tcp(db:3306)/warranty?charset=utf8mb4&parseTime=True&loc=UTC",
		MySQLDSN("app", "secret", "db", "", "warranty"))
	assert.Equal(t,
		"app:secret@tcp(db:3307)/warranty?charset=utf8mb4&parseTime=True&loc=UTC",
		MySQLDSN("app", "secret", "db", "3307", "warranty"))
}

func TestDialector(t *testing.T) {
	tests := []struct {
		driver   string
		expected string
	}{
		{"", "mysql"},
		{DriverMySQL, "mysql"},
		{DriverPostgres, "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.expected+"/"+tt.driver, func(t *testing.T) {
			d, err := dialector(Config{Driver: tt.driver, DSN: "dsn"})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Name())
		})
	}

	_, err := dialector(Config{Driver: "sqlite"})
	assert.EqualError(t, err, "unsupported database driver: sqlite")
}

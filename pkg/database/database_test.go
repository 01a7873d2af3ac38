package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/model"
)

func TestDialectorFor(t *testing.T) {
	tests := []struct {
		driver  string
		want    string
		wantErr bool
	}{
		{driver: "postgres", want: "postgres"},
		{driver: "sqlite", want: "sqlite"},
		{driver: "", want: "sqlite"},
		{driver: "mysql", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := dialectorFor(config.DatabaseConfig{Driver: tt.driver, DSN: "x"})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.driver)
				assert.Nil(t, d)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}

func TestInitDB_UnsupportedDriver(t *testing.T) {
	_, err := InitDB(&config.Config{Database: config.DatabaseConfig{Driver: "oracle"}})
	assert.Error(t, err)
}

func TestInitDB_SQLiteMigrates(t *testing.T) {
	db, err := InitDB(&config.Config{Database: config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
	}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.True(t, db.Migrator().HasTable(&model.User{}))
	assert.True(t, db.Migrator().HasTable(&model.Post{}))
}

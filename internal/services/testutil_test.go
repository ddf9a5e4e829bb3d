package services

import (
	"testing"

	"github.com/codequest532/vyrona-social/internal/config"
	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/codequest532/vyrona-social/internal/repositories"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. The pool is capped at one
// connection so every goroutine shares the same sqlite handle and concurrent
// transactions serialize the way row locks serialize them on MySQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))
	return db
}

func stubUsers(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price}
	require.NoError(t, db.Create(p).Error)
	return p
}

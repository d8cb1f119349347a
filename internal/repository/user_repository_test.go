package repository

import (
	"academic_portal_backend/internal/model"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newUserTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	// The users table must migrate on sqlite too; its column defaults may
	// not use dialect-specific DDL.
	require.NoError(t, db.AutoMigrate(&model.User{}))
	return db
}

func TestUserMigratesOnSQLite(t *testing.T) {
	db := newUserTestDB(t)
	repo := NewUserRepository(db)

	user := &model.User{Name: "Ada", Email: "ada@test.local", Password: "x", Role: model.Student}
	require.NoError(t, repo.Create(user))

	found, err := repo.FindByEmail("ada@test.local")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUpdateLastLoginSetsTimestamp(t *testing.T) {
	db := newUserTestDB(t)
	repo := NewUserRepository(db)

	user := &model.User{Name: "Ada", Email: "ada@test.local", Password: "x", Role: model.Student}
	require.NoError(t, repo.Create(user))
	assert.True(t, user.LastLogin.IsZero())

	before := time.Now().Add(-time.Second)
	require.NoError(t, repo.UpdateLastLogin(user.ID))

	found, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, found.LastLogin.After(before))
}

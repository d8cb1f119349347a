package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-that-is-long-enough!"

func newTestAuth(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour), db
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, db := newTestAuth(t)

	result, err := svc.Register(RegisterInput{
		Name:     "Ada Lovelace",
		Email:    "ada@test.local",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, model.Student, result.User.Role)

	var stored model.User
	require.NoError(t, db.Where("email = ?", "ada@test.local").First(&stored).Error)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

	claims, err := util.ParseJWT(result.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newTestAuth(t)

	input := RegisterInput{Name: "Ada", Email: "dup@test.local", Password: "secret123"}
	_, err := svc.Register(input)
	require.NoError(t, err)

	_, err = svc.Register(input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrEmailRegistered) || err == util.ErrEmailRegistered)
	assert.Equal(t, util.KindConflict, util.AsAppError(err).Kind)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuth(t)
	_, err := svc.Register(RegisterInput{
		Name: "Ada", Email: "login@test.local", Password: "secret123", Role: "teacher",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantKind util.ErrorKind
		wantOK   bool
	}{
		{name: "valid credentials", email: "login@test.local", password: "secret123", wantOK: true},
		{name: "wrong password", email: "login@test.local", password: "nope", wantKind: util.KindUnauthorized},
		{name: "unknown email", email: "ghost@test.local", password: "secret123", wantKind: util.KindUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(LoginInput{Email: tt.email, Password: tt.password})
			if tt.wantOK {
				require.NoError(t, err)
				assert.NotEmpty(t, result.Token)
				assert.Equal(t, model.Teacher, result.User.Role)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, util.AsAppError(err).Kind)
		})
	}
}

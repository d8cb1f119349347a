package controller

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/service"
	"academic_portal_backend/internal/util"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "controller-test-secret-32-chars-long!"

func newControllerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:ctl_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Assignment{},
		&model.Submission{},
		&model.Quiz{},
		&model.Question{},
		&model.QuizAttempt{},
		&model.Reflection{},
		&model.Notification{},
	))
	return db
}

func generateToken(user *model.User) (string, error) {
	return util.GenerateJWT(user, testSecret, time.Hour)
}

func newAuthRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	authService := service.NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour)
	authController := NewAuthController(authService)

	router := gin.New()
	router.POST("/api/auth/register", authController.Register)
	router.POST("/api/auth/login", authController.Login)
	return router
}

func doJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRegisterEndpoint(t *testing.T) {
	db := newControllerTestDB(t)
	router := newAuthRouter(t, db)

	recorder := doJSON(router, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Grace Hopper",
		"email":    "grace@test.local",
		"password": "secret123",
		"role":     "teacher",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var body util.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])

	// Password hashes never appear in responses.
	assert.NotContains(t, recorder.Body.String(), "secret123")
	assert.NotContains(t, recorder.Body.String(), "$2a$")
}

func TestRegisterDuplicateEmailEndpoint(t *testing.T) {
	db := newControllerTestDB(t)
	router := newAuthRouter(t, db)

	payload := gin.H{"name": "Dup", "email": "dup@test.local", "password": "secret123"}
	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/auth/register", payload).Code)

	recorder := doJSON(router, http.MethodPost, "/api/auth/register", payload)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestRegisterValidation(t *testing.T) {
	db := newControllerTestDB(t)
	router := newAuthRouter(t, db)

	tests := []struct {
		name    string
		payload gin.H
	}{
		{name: "missing email", payload: gin.H{"name": "X Y", "password": "secret123"}},
		{name: "bad email", payload: gin.H{"name": "X Y", "email": "nope", "password": "secret123"}},
		{name: "short password", payload: gin.H{"name": "X Y", "email": "x@test.local", "password": "abc"}},
		{name: "bad role", payload: gin.H{"name": "X Y", "email": "x@test.local", "password": "secret123", "role": "superuser"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doJSON(router, http.MethodPost, "/api/auth/register", tt.payload)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	db := newControllerTestDB(t)
	router := newAuthRouter(t, db)

	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/auth/register", gin.H{
		"name": "Login User", "email": "login@test.local", "password": "secret123",
	}).Code)

	ok := doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "login@test.local", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, ok.Code)

	// Wrong password and unknown email both come back 401, never 500.
	bad := doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "login@test.local", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)

	ghost := doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"email": "ghost@test.local", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, ghost.Code)
}

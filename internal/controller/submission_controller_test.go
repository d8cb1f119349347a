package controller

import (
	"academic_portal_backend/internal/middleware"
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/service"
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
	"gorm.io/gorm"
)

type gradingFixture struct {
	router    *gin.Engine
	db        *gorm.DB
	analytics *service.AnalyticsService
	student   *model.User
	teacher   *model.User
}

func newGradingFixture(t *testing.T) *gradingFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newControllerTestDB(t)

	student := &model.User{Name: "Student", Email: "s@test.local", Password: "x", Role: model.Student}
	require.NoError(t, db.Create(student).Error)
	teacher := &model.User{Name: "Teacher", Email: "te@test.local", Password: "x", Role: model.Teacher}
	require.NoError(t, db.Create(teacher).Error)

	userRepo := repository.NewUserRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	attemptRepo := repository.NewQuizAttemptRepository(db)
	reflectionRepo := repository.NewReflectionRepository(db)

	analytics := service.NewAnalyticsService(userRepo, attemptRepo, submissionRepo, reflectionRepo,
		service.NewSnapshotCache(time.Hour))
	hub := service.NewEventHub(nil)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, notificationRepo, analytics, hub)
	controller := NewSubmissionController(submissionService)

	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(testSecret))
	api.POST("/submissions", middleware.RoleMiddleware(model.Student), controller.Create)
	api.POST("/submissions/:id/grade", middleware.RoleMiddleware(model.Teacher), controller.Grade)

	return &gradingFixture{router: router, db: db, analytics: analytics, student: student, teacher: teacher}
}

func (f *gradingFixture) doAs(t *testing.T, user *model.User, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	token, err := generateToken(user)
	require.NoError(t, err)

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func (f *gradingFixture) seedAssignment(t *testing.T, maxMarks float64) *model.Assignment {
	t.Helper()
	assignment := &model.Assignment{
		TeacherID: f.teacher.ID,
		Title:     "Essay",
		Deadline:  time.Now().AddDate(0, 0, 7),
		MaxMarks:  maxMarks,
	}
	require.NoError(t, f.db.Create(assignment).Error)
	return assignment
}

func TestGradeFlowInvalidatesAnalytics(t *testing.T) {
	f := newGradingFixture(t)
	assignment := f.seedAssignment(t, 100)

	recorder := f.doAs(t, f.student, http.MethodPost, "/api/submissions", gin.H{
		"assignment_id": assignment.ID,
		"content":       "my essay",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created struct {
		Data model.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))

	before, err := f.analytics.StudentSnapshot(f.student.ID)
	require.NoError(t, err)
	assert.Zero(t, before.KPIs.AverageAssignmentGrade)

	gradePath := fmt.Sprintf("/api/submissions/%d/grade", created.Data.ID)
	recorder = f.doAs(t, f.teacher, http.MethodPost, gradePath, gin.H{
		"grade":    91.5,
		"feedback": "well argued",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var graded struct {
		Data model.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &graded))
	require.NotNil(t, graded.Data.Grade)
	assert.Equal(t, 91.5, *graded.Data.Grade)
	assert.Equal(t, model.SubmissionGraded, graded.Data.Status)

	// The snapshot reflects the new grade immediately, no TTL wait.
	after, err := f.analytics.StudentSnapshot(f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, 91.5, after.KPIs.AverageAssignmentGrade)

	// Grading also left a notification for the student.
	var count int64
	require.NoError(t, f.db.Model(&model.Notification{}).
		Where("user_id = ?", f.student.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGradeRejectsOutOfRange(t *testing.T) {
	f := newGradingFixture(t)
	assignment := f.seedAssignment(t, 50)

	recorder := f.doAs(t, f.student, http.MethodPost, "/api/submissions", gin.H{
		"assignment_id": assignment.ID,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var created struct {
		Data model.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))

	recorder = f.doAs(t, f.teacher, http.MethodPost,
		fmt.Sprintf("/api/submissions/%d/grade", created.Data.ID), gin.H{"grade": 75})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGradeRequiresTeacherRole(t *testing.T) {
	f := newGradingFixture(t)

	recorder := f.doAs(t, f.student, http.MethodPost, "/api/submissions/1/grade", gin.H{"grade": 10})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestSubmitUnknownAssignment(t *testing.T) {
	f := newGradingFixture(t)

	recorder := f.doAs(t, f.student, http.MethodPost, "/api/submissions", gin.H{
		"assignment_id": 999,
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGradeUnknownSubmission(t *testing.T) {
	f := newGradingFixture(t)

	recorder := f.doAs(t, f.teacher, http.MethodPost, "/api/submissions/424242/grade", gin.H{"grade": 10})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMissingTokenUnauthorized(t *testing.T) {
	f := newGradingFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/submissions", bytes.NewReader(nil))
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

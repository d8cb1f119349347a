package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
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
		&model.PortfolioEvidence{},
		&model.PortfolioSkill{},
		&model.Skill{},
		&model.LearningOutcome{},
		&model.StudentOutcomeProgress{},
	))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB, id uint) *model.User {
	t.Helper()
	student := &model.User{
		Name:     fmt.Sprintf("Student %d", id),
		Email:    fmt.Sprintf("student%d@test.local", id),
		Password: "x",
		Role:     model.Student,
	}
	student.ID = id
	require.NoError(t, db.Create(student).Error)
	return student
}

func newTestAnalytics(t *testing.T, db *gorm.DB, ttl time.Duration) *AnalyticsService {
	t.Helper()
	return NewAnalyticsService(
		repository.NewUserRepository(db),
		repository.NewQuizAttemptRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewReflectionRepository(db),
		NewSnapshotCache(ttl),
	)
}

func ptr(v float64) *float64 { return &v }

func TestStudentSnapshotZeroActivity(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db, 1)
	svc := newTestAnalytics(t, db, time.Minute)

	snapshot, err := svc.StudentSnapshot(1)
	require.NoError(t, err)

	assert.Equal(t, uint(1), snapshot.StudentID)
	assert.Zero(t, snapshot.KPIs.TotalQuizAttempts)
	assert.Zero(t, snapshot.KPIs.TotalSubmissions)
	assert.Zero(t, snapshot.KPIs.TotalReflections)
	assert.Zero(t, snapshot.KPIs.AverageQuizScore)
	assert.Zero(t, snapshot.KPIs.AverageAssignmentGrade)
	assert.Zero(t, snapshot.KPIs.EngagementScore)
	assert.Zero(t, snapshot.KPIs.CompletionRate)
	assert.Empty(t, snapshot.Charts.QuizScoresOverTime)
	assert.Empty(t, snapshot.Charts.AssignmentGradesOverTime)
	assert.Equal(t, model.GradeDistribution{}, snapshot.Charts.GradeDistribution)
}

func TestStudentSnapshotNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAnalytics(t, db, time.Minute)

	_, err := svc.StudentSnapshot(42)
	require.Error(t, err)
	assert.Equal(t, util.KindNotFound, util.AsAppError(err).Kind)
}

func TestStudentSnapshotTeacherIsNotAStudent(t *testing.T) {
	db := newTestDB(t)
	teacher := &model.User{Name: "T", Email: "t@test.local", Password: "x", Role: model.Teacher}
	teacher.ID = 9
	require.NoError(t, db.Create(teacher).Error)
	svc := newTestAnalytics(t, db, time.Minute)

	_, err := svc.StudentSnapshot(9)
	require.Error(t, err)
	assert.Equal(t, util.KindNotFound, util.AsAppError(err).Kind)
}

func TestStudentSnapshotMetrics(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db, 1)
	svc := newTestAnalytics(t, db, time.Minute)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	teacher := &model.User{Name: "T", Email: "teach@test.local", Password: "x", Role: model.Teacher}
	require.NoError(t, db.Create(teacher).Error)
	assignment := &model.Assignment{TeacherID: teacher.ID, Title: "A1", Deadline: now.AddDate(0, 0, 7)}
	require.NoError(t, db.Create(assignment).Error)
	quiz := &model.Quiz{Title: "Q1", TeacherID: teacher.ID}
	require.NoError(t, db.Create(quiz).Error)

	// Two scored attempts, one recent and one outside the 7-day window,
	// plus one unscored attempt that must not affect the average.
	attempts := []model.QuizAttempt{
		{QuizID: quiz.ID, StudentID: 1, Score: ptr(80), AttemptedAt: now.Add(-24 * time.Hour)},
		{QuizID: quiz.ID, StudentID: 1, Score: ptr(60), AttemptedAt: now.Add(-10 * 24 * time.Hour)},
		{QuizID: quiz.ID, StudentID: 1, Score: nil, AttemptedAt: now.Add(-2 * time.Hour)},
	}
	for i := range attempts {
		require.NoError(t, db.Create(&attempts[i]).Error)
	}

	grades := []float64{95, 85, 72, 61, 30}
	for i, g := range grades {
		sub := &model.Submission{
			AssignmentID: assignment.ID,
			StudentID:    1,
			SubmittedAt:  now.Add(-time.Duration(i+1) * 24 * time.Hour),
			Status:       model.SubmissionGraded,
			Grade:        ptr(g),
		}
		require.NoError(t, db.Create(sub).Error)
	}

	require.NoError(t, db.Create(&model.Reflection{StudentID: 1, Title: "r1"}).Error)
	require.NoError(t, db.Create(&model.Reflection{StudentID: 1, Title: "r2"}).Error)

	snapshot, err := svc.StudentSnapshot(1)
	require.NoError(t, err)

	kpis := snapshot.KPIs
	assert.Equal(t, 3, kpis.TotalQuizAttempts)
	assert.Equal(t, 5, kpis.TotalSubmissions)
	assert.Equal(t, 2, kpis.TotalReflections)
	assert.InDelta(t, 70.0, kpis.AverageQuizScore, 1e-9)
	assert.InDelta(t, (95+85+72+61+30)/5.0, kpis.AverageAssignmentGrade, 1e-9)

	// Two attempts within the window (one scored, one not) and two
	// reflections: 2*20 + 2*10.
	assert.InDelta(t, 60.0, kpis.EngagementScore, 1e-9)

	// 5 graded + 2 scored out of 12 available items.
	assert.InDelta(t, 100*7.0/12.0, kpis.CompletionRate, 1e-9)

	// One grade per bucket.
	assert.Equal(t, model.GradeDistribution{1, 1, 1, 1, 1}, snapshot.Charts.GradeDistribution)
	assert.Len(t, snapshot.Charts.QuizScoresOverTime, 2)
	assert.Len(t, snapshot.Charts.AssignmentGradesOverTime, 5)
}

func TestStudentSnapshotEngagementClamped(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db, 1)
	svc := newTestAnalytics(t, db, time.Minute)

	now := time.Now()
	quizTeacher := &model.User{Name: "T", Email: "t2@test.local", Password: "x", Role: model.Teacher}
	require.NoError(t, db.Create(quizTeacher).Error)
	quiz := &model.Quiz{Title: "Q", TeacherID: quizTeacher.ID}
	require.NoError(t, db.Create(quiz).Error)

	for i := 0; i < 13; i++ {
		attempt := &model.QuizAttempt{QuizID: quiz.ID, StudentID: 1, Score: ptr(100), AttemptedAt: now.Add(-time.Hour)}
		require.NoError(t, db.Create(attempt).Error)
	}

	snapshot, err := svc.StudentSnapshot(1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, snapshot.KPIs.EngagementScore)
	assert.Equal(t, 100.0, snapshot.KPIs.CompletionRate) // 13 scored items over the fixed 12, clamped
}

func TestStudentSnapshotCacheStaleness(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db, 1)
	svc := newTestAnalytics(t, db, 300*time.Second)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.Cache.now = func() time.Time { return current }

	first, err := svc.StudentSnapshot(1)
	require.NoError(t, err)
	assert.Zero(t, first.KPIs.TotalReflections)

	require.NoError(t, db.Create(&model.Reflection{StudentID: 1, Title: "late"}).Error)

	// Inside the TTL the stale snapshot is served unchanged.
	current = current.Add(200 * time.Second)
	cached, err := svc.StudentSnapshot(1)
	require.NoError(t, err)
	assert.Same(t, first, cached)

	// Past the TTL the snapshot is recomputed.
	current = current.Add(200 * time.Second)
	fresh, err := svc.StudentSnapshot(1)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.KPIs.TotalReflections)
}

func TestInvalidateStudentForcesRecompute(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db, 1)
	svc := newTestAnalytics(t, db, time.Hour)

	first, err := svc.StudentSnapshot(1)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Reflection{StudentID: 1, Title: "r"}).Error)

	svc.InvalidateStudent(1)

	fresh, err := svc.StudentSnapshot(1)
	require.NoError(t, err)
	assert.NotSame(t, first, fresh)
	assert.Equal(t, 1, fresh.KPIs.TotalReflections)
}

func TestRecentActivityMergedDescending(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db, 1)
	svc := newTestAnalytics(t, db, time.Minute)

	now := time.Now()
	teacher := &model.User{Name: "T", Email: "t3@test.local", Password: "x", Role: model.Teacher}
	require.NoError(t, db.Create(teacher).Error)
	assignment := &model.Assignment{TeacherID: teacher.ID, Title: "Essay", Deadline: now.AddDate(0, 0, 1)}
	require.NoError(t, db.Create(assignment).Error)
	quiz := &model.Quiz{Title: "Algebra", TeacherID: teacher.ID}
	require.NoError(t, db.Create(quiz).Error)

	require.NoError(t, db.Create(&model.Submission{
		AssignmentID: assignment.ID, StudentID: 1, SubmittedAt: now.Add(-2 * time.Hour),
	}).Error)
	require.NoError(t, db.Create(&model.QuizAttempt{
		QuizID: quiz.ID, StudentID: 1, Score: ptr(90), AttemptedAt: now.Add(-1 * time.Hour),
	}).Error)
	require.NoError(t, db.Create(&model.Submission{
		AssignmentID: assignment.ID, StudentID: 1, SubmittedAt: now.Add(-3 * time.Hour),
	}).Error)

	activity, pagination, err := svc.RecentActivity(1, 1, 10)
	require.NoError(t, err)
	require.Len(t, activity, 3)

	assert.Equal(t, "quiz", activity[0].Type)
	assert.Contains(t, activity[0].Description, "Algebra")
	assert.Equal(t, "submission", activity[1].Type)
	assert.Contains(t, activity[1].Description, "Essay")
	for i := 1; i < len(activity); i++ {
		assert.False(t, activity[i].Timestamp.After(activity[i-1].Timestamp))
	}

	assert.Equal(t, int64(3), pagination.Total)
	assert.False(t, pagination.HasNext)
}

func TestGradeReport(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db, 1)
	svc := newTestAnalytics(t, db, time.Minute)

	now := time.Now()
	teacher := &model.User{Name: "T", Email: "t4@test.local", Password: "x", Role: model.Teacher}
	require.NoError(t, db.Create(teacher).Error)
	assignment := &model.Assignment{TeacherID: teacher.ID, Title: "A", Deadline: now}
	require.NoError(t, db.Create(assignment).Error)
	quiz := &model.Quiz{Title: "Q", TeacherID: teacher.ID}
	require.NoError(t, db.Create(quiz).Error)

	for _, g := range []float64{70, 90} {
		require.NoError(t, db.Create(&model.Submission{
			AssignmentID: assignment.ID, StudentID: 1, SubmittedAt: now,
			Status: model.SubmissionGraded, Grade: ptr(g),
		}).Error)
	}
	require.NoError(t, db.Create(&model.QuizAttempt{
		QuizID: quiz.ID, StudentID: 1, Score: ptr(85), AttemptedAt: now,
	}).Error)

	report, err := svc.GradeReport(1)
	require.NoError(t, err)

	assert.Len(t, report.AssignmentGrades, 2)
	assert.Len(t, report.QuizGrades, 1)
	assert.InDelta(t, 80.0, report.Statistics.AverageAssignmentGrade, 1e-9)
	assert.InDelta(t, 85.0, report.Statistics.AverageQuizScore, 1e-9)
	assert.Equal(t, 90.0, report.Statistics.HighestAssignmentGrade)
	assert.Equal(t, 70.0, report.Statistics.LowestAssignmentGrade)
}

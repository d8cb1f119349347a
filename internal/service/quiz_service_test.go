package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestQuizService(t *testing.T, db *gorm.DB) *QuizService {
	t.Helper()
	analytics := newTestAnalytics(t, db, time.Minute)
	return NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewQuizAttemptRepository(db),
		analytics,
		NewEventHub(nil),
	)
}

func TestCreateQuizWithQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuizService(t, db)

	quiz, err := svc.Create(5, CreateQuizInput{
		Title: "Fractions",
		Questions: []QuestionInput{
			{QuestionText: "1/2 + 1/2 = ?", Options: []string{"1", "2"}, CorrectAnswer: "1", Points: 2},
			{QuestionText: "1/4 * 4 = ?", Options: []string{"1", "4"}, CorrectAnswer: "1"},
		},
	})
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, uint(5), quiz.TeacherID)
	assert.Equal(t, 2, quiz.Questions[0].Points)
	assert.Equal(t, 1, quiz.Questions[1].Points) // defaulted
	assert.JSONEq(t, `["1","2"]`, quiz.Questions[0].Options)
}

func TestListQuizzesByTeacher(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuizService(t, db)

	_, err := svc.Create(5, CreateQuizInput{Title: "Mine",
		Questions: []QuestionInput{{QuestionText: "q", CorrectAnswer: "a"}}})
	require.NoError(t, err)
	_, err = svc.Create(6, CreateQuizInput{Title: "Theirs",
		Questions: []QuestionInput{{QuestionText: "q", CorrectAnswer: "a"}}})
	require.NoError(t, err)

	quizzes, err := svc.ListByTeacher(5)
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "Mine", quizzes[0].Title)
}

func TestQuestionsStripAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := newTestQuizService(t, db)

	quiz, err := svc.Create(5, CreateQuizInput{
		Title: "Q",
		Questions: []QuestionInput{
			{QuestionText: "q1", CorrectAnswer: "a"},
		},
	})
	require.NoError(t, err)

	questions, err := svc.Questions(quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Empty(t, questions[0].CorrectAnswer)
}

func TestSubmitAttemptScoring(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db, 1)
	svc := newTestQuizService(t, db)

	quiz, err := svc.Create(5, CreateQuizInput{
		Title: "Weighted",
		Questions: []QuestionInput{
			{QuestionText: "q1", CorrectAnswer: "a", Points: 3},
			{QuestionText: "q2", CorrectAnswer: "b", Points: 1},
		},
	})
	require.NoError(t, err)

	answers := map[string]string{
		strconv.FormatUint(uint64(quiz.Questions[0].ID), 10): "a",
		strconv.FormatUint(uint64(quiz.Questions[1].ID), 10): "wrong",
	}
	attempt, err := svc.SubmitAttempt(1, quiz.ID, SubmitAttemptInput{Answers: answers})
	require.NoError(t, err)

	require.NotNil(t, attempt.Score)
	assert.InDelta(t, 75.0, *attempt.Score, 1e-9) // 3 of 4 points
	assert.Equal(t, 2, attempt.TotalQuestions)
	assert.False(t, attempt.AttemptedAt.IsZero())
}

func TestSubmitAttemptUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db, 1)
	svc := newTestQuizService(t, db)

	_, err := svc.SubmitAttempt(1, 999, SubmitAttemptInput{Answers: map[string]string{}})
	require.Error(t, err)
	assert.Equal(t, util.KindNotFound, util.AsAppError(err).Kind)
}

func TestSubmitAttemptInvalidatesSnapshot(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db, 1)
	analytics := newTestAnalytics(t, db, time.Hour)
	svc := NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewQuizAttemptRepository(db),
		analytics,
		NewEventHub(nil),
	)

	before, err := analytics.StudentSnapshot(1)
	require.NoError(t, err)
	assert.Zero(t, before.KPIs.TotalQuizAttempts)

	quiz, err := svc.Create(5, CreateQuizInput{
		Title:     "Q",
		Questions: []QuestionInput{{QuestionText: "q", CorrectAnswer: "a"}},
	})
	require.NoError(t, err)
	_, err = svc.SubmitAttempt(1, quiz.ID, SubmitAttemptInput{Answers: map[string]string{}})
	require.NoError(t, err)

	after, err := analytics.StudentSnapshot(1)
	require.NoError(t, err)
	assert.Equal(t, 1, after.KPIs.TotalQuizAttempts)
}

func TestGradeBucketCounts(t *testing.T) {
	tests := []struct {
		grade float64
		want  int
	}{
		{100, 0}, {90, 0}, {89.99, 1}, {80, 1}, {79.99, 2},
		{70, 2}, {69.99, 3}, {60, 3}, {59.99, 4}, {0, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, model.GradeBucket(tt.grade), "grade %v", tt.grade)
	}
}

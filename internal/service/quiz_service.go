package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"academic_portal_backend/pkg/logger"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.QuizAttemptRepository
	Analytics   *AnalyticsService
	Hub         *EventHub
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	attemptRepo *repository.QuizAttemptRepository,
	analytics *AnalyticsService,
	hub *EventHub,
) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		Analytics:   analytics,
		Hub:         hub,
	}
}

type QuestionInput struct {
	QuestionText  string   `json:"question_text" binding:"required"`
	QuestionType  string   `json:"question_type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Points        int      `json:"points"`
}

type CreateQuizInput struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

func (s *QuizService) Create(teacherID uint, input CreateQuizInput) (*model.Quiz, error) {
	quiz := &model.Quiz{
		Title:       input.Title,
		Description: input.Description,
		TeacherID:   teacherID,
		Questions:   make([]model.Question, 0, len(input.Questions)),
	}
	for _, q := range input.Questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return nil, util.Internal(err)
		}
		questionType := q.QuestionType
		if questionType == "" {
			questionType = "multiple_choice"
		}
		points := q.Points
		if points <= 0 {
			points = 1
		}
		quiz.Questions = append(quiz.Questions, model.Question{
			QuestionText:  q.QuestionText,
			QuestionType:  questionType,
			Options:       string(options),
			CorrectAnswer: q.CorrectAnswer,
			Points:        points,
		})
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, util.Internal(err)
	}
	logger.Log.Info("quiz created",
		zap.Uint("quizId", quiz.ID), zap.Int("questions", len(quiz.Questions)))
	return quiz, nil
}

func (s *QuizService) List() ([]model.Quiz, error) {
	quizzes, err := s.QuizRepo.ListAll()
	if err != nil {
		return nil, util.Internal(err)
	}
	return quizzes, nil
}

func (s *QuizService) ListByTeacher(teacherID uint) ([]model.Quiz, error) {
	quizzes, err := s.QuizRepo.ListByTeacher(teacherID)
	if err != nil {
		return nil, util.Internal(err)
	}
	return quizzes, nil
}

// Questions returns a quiz's questions with answers stripped, for students
// taking the quiz.
func (s *QuizService) Questions(quizID uint) ([]model.Question, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, util.Internal(err)
	}
	questions, err := s.QuizRepo.ListQuestions(quizID)
	if err != nil {
		return nil, util.Internal(err)
	}
	for i := range questions {
		questions[i].CorrectAnswer = ""
	}
	return questions, nil
}

type SubmitAttemptInput struct {
	// Answers maps question ID to the chosen answer.
	Answers map[string]string `json:"answers" binding:"required"`
}

// SubmitAttempt scores one answer set against the quiz's questions and
// records the attempt. The score is a percentage of the available points.
func (s *QuizService) SubmitAttempt(studentID, quizID uint, input SubmitAttemptInput) (*model.QuizAttempt, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, util.Internal(err)
	}
	questions, err := s.QuizRepo.ListQuestions(quizID)
	if err != nil {
		return nil, util.Internal(err)
	}
	if len(questions) == 0 {
		return nil, util.Validation("quiz has no questions")
	}

	earned, available := 0, 0
	for _, q := range questions {
		available += q.Points
		answer, ok := input.Answers[strconv.FormatUint(uint64(q.ID), 10)]
		if ok && answer == q.CorrectAnswer {
			earned += q.Points
		}
	}
	score := 100 * float64(earned) / float64(available)

	attempt := &model.QuizAttempt{
		QuizID:         quizID,
		StudentID:      studentID,
		Score:          &score,
		TotalQuestions: len(questions),
		AttemptedAt:    time.Now(),
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, util.Internal(err)
	}

	s.Analytics.InvalidateStudent(studentID)
	s.Hub.BroadcastToUser(studentID, EventProgressUpdated, map[string]interface{}{
		"quiz_id": quizID,
		"score":   score,
	})
	return attempt, nil
}

package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"academic_portal_backend/pkg/logger"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmissionService struct {
	SubmissionRepo   *repository.SubmissionRepository
	AssignmentRepo   *repository.AssignmentRepository
	NotificationRepo *repository.NotificationRepository
	Analytics        *AnalyticsService
	Hub              *EventHub
}

func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	assignmentRepo *repository.AssignmentRepository,
	notificationRepo *repository.NotificationRepository,
	analytics *AnalyticsService,
	hub *EventHub,
) *SubmissionService {
	return &SubmissionService{
		SubmissionRepo:   submissionRepo,
		AssignmentRepo:   assignmentRepo,
		NotificationRepo: notificationRepo,
		Analytics:        analytics,
		Hub:              hub,
	}
}

type CreateSubmissionInput struct {
	AssignmentID uint   `json:"assignment_id" binding:"required"`
	Content      string `json:"content"`
	FilePath     string `json:"file_path"`
}

func (s *SubmissionService) Create(studentID uint, input CreateSubmissionInput) (*model.Submission, error) {
	if _, err := s.AssignmentRepo.FindByID(input.AssignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, util.Internal(err)
	}

	submission := &model.Submission{
		AssignmentID: input.AssignmentID,
		StudentID:    studentID,
		Content:      input.Content,
		FilePath:     input.FilePath,
		SubmittedAt:  time.Now(),
		Status:       model.SubmissionSubmitted,
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, util.Internal(err)
	}

	// No snapshot invalidation here: only grade and score writes do that;
	// an ungraded submission stays invisible to analytics until the TTL.
	logger.Log.Info("submission created",
		zap.Uint("submissionId", submission.ID), zap.Uint("studentId", studentID))
	return submission, nil
}

func (s *SubmissionService) List(page, limit int) ([]model.Submission, *model.Pagination, error) {
	page, limit = normalizePage(page, limit)
	submissions, total, err := s.SubmissionRepo.ListPaginated(page, limit)
	if err != nil {
		return nil, nil, util.Internal(err)
	}
	return submissions, buildPagination(page, limit, total), nil
}

func (s *SubmissionService) ListByStudent(studentID uint, page, limit int) ([]model.Submission, *model.Pagination, error) {
	page, limit = normalizePage(page, limit)
	submissions, total, err := s.SubmissionRepo.ListByStudentPaginated(studentID, page, limit)
	if err != nil {
		return nil, nil, util.Internal(err)
	}
	return submissions, buildPagination(page, limit, total), nil
}

type GradeInput struct {
	Grade    float64 `json:"grade" binding:"min=0"`
	Feedback *string `json:"feedback"`
}

// Grade records a grade, invalidates the student's analytics snapshot,
// stores a notification and pushes realtime events to the student.
func (s *SubmissionService) Grade(submissionID uint, input GradeInput) (*model.Submission, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, util.Internal(err)
	}

	maxMarks := 100.0
	if submission.Assignment != nil {
		maxMarks = submission.Assignment.MaxMarks
	}
	if input.Grade < 0 || input.Grade > maxMarks {
		return nil, util.Validation("grade must be between 0 and %.0f", maxMarks)
	}

	if err := s.SubmissionRepo.SetGrade(submissionID, input.Grade, input.Feedback); err != nil {
		return nil, util.Internal(err)
	}

	// A new grade changes every derived analytics figure for this student.
	s.Analytics.InvalidateStudent(submission.StudentID)

	title := "Submission graded"
	if submission.Assignment != nil {
		title = fmt.Sprintf("Graded: %s", submission.Assignment.Title)
	}
	n := &model.Notification{
		UserID:  submission.StudentID,
		Title:   title,
		Message: fmt.Sprintf("You scored %.1f/%.0f", input.Grade, maxMarks),
		Type:    "grade",
	}
	if err := s.NotificationRepo.Create(n); err != nil {
		logger.Log.Warn("grade notification failed",
			zap.Error(err), zap.Uint("studentId", submission.StudentID))
	} else {
		s.Hub.BroadcastToUser(submission.StudentID, EventNewNotification, n)
	}

	s.Hub.BroadcastToUser(submission.StudentID, EventProgressUpdated, map[string]interface{}{
		"submission_id": submissionID,
		"grade":         input.Grade,
	})

	return s.SubmissionRepo.FindByID(submissionID)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func buildPagination(page, limit int, total int64) *model.Pagination {
	pages := (total + int64(limit) - 1) / int64(limit)
	return &model.Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: int64(page) < pages,
		HasPrev: page > 1,
	}
}

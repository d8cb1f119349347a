package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"academic_portal_backend/pkg/logger"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssignmentService struct {
	AssignmentRepo   *repository.AssignmentRepository
	NotificationRepo *repository.NotificationRepository
	UserRepo         *repository.UserRepository
	Hub              *EventHub
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	notificationRepo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	hub *EventHub,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo:   assignmentRepo,
		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,
		Hub:              hub,
	}
}

type CreateAssignmentInput struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	MaxMarks    float64   `json:"max_marks"`
	ModuleID    *uint     `json:"module_id"`
	FilePath    string    `json:"file_path"`
}

// Create stores a new assignment, notifies every student and pushes a
// realtime event to all connected clients.
func (s *AssignmentService) Create(teacherID uint, input CreateAssignmentInput) (*model.Assignment, error) {
	if input.MaxMarks <= 0 {
		input.MaxMarks = 100
	}
	assignment := &model.Assignment{
		TeacherID:   teacherID,
		ModuleID:    input.ModuleID,
		Title:       input.Title,
		Description: input.Description,
		Deadline:    input.Deadline,
		MaxMarks:    input.MaxMarks,
		FilePath:    input.FilePath,
	}
	if err := s.AssignmentRepo.Create(assignment); err != nil {
		return nil, util.Internal(err)
	}

	s.notifyStudents(assignment)

	s.Hub.Broadcast(EventNewAssignment, RoomGeneral, map[string]interface{}{
		"id":       assignment.ID,
		"title":    assignment.Title,
		"deadline": assignment.Deadline,
	})
	logger.Log.Info("assignment created",
		zap.Uint("assignmentId", assignment.ID), zap.Uint("teacherId", teacherID))
	return assignment, nil
}

// notifyStudents writes one notification row per student. A failure here is
// logged and swallowed; the assignment itself is already committed.
func (s *AssignmentService) notifyStudents(assignment *model.Assignment) {
	students, err := s.UserRepo.ListByRole(model.Student)
	if err != nil {
		logger.Log.Warn("student list for notify failed", zap.Error(err))
		return
	}
	for _, student := range students {
		n := &model.Notification{
			UserID:  student.ID,
			Title:   "New assignment: " + assignment.Title,
			Message: "Due " + assignment.Deadline.Format("2006-01-02 15:04"),
			Type:    "assignment",
		}
		if err := s.NotificationRepo.Create(n); err != nil {
			logger.Log.Warn("assignment notification failed",
				zap.Error(err), zap.Uint("studentId", student.ID))
		}
	}
}

func (s *AssignmentService) List() ([]model.Assignment, error) {
	assignments, err := s.AssignmentRepo.ListAll()
	if err != nil {
		return nil, util.Internal(err)
	}
	return assignments, nil
}

func (s *AssignmentService) ListByTeacher(teacherID uint) ([]model.Assignment, error) {
	assignments, err := s.AssignmentRepo.ListByTeacher(teacherID)
	if err != nil {
		return nil, util.Internal(err)
	}
	return assignments, nil
}

func (s *AssignmentService) Get(id uint) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, util.Internal(err)
	}
	return assignment, nil
}

func (s *AssignmentService) Stats(id uint) (*model.AssignmentStats, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	stats, err := s.AssignmentRepo.Stats(id)
	if err != nil {
		return nil, util.Internal(err)
	}
	return stats, nil
}

// Calendar lists assignment deadlines for one month as calendar events.
func (s *AssignmentService) Calendar(year int, month time.Month) ([]model.CalendarEvent, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	assignments, err := s.AssignmentRepo.DeadlinesBetween(from, to)
	if err != nil {
		return nil, util.Internal(err)
	}
	events := make([]model.CalendarEvent, 0, len(assignments))
	for _, a := range assignments {
		events = append(events, model.CalendarEvent{
			ID:    a.ID,
			Title: a.Title,
			Date:  a.Deadline,
			Type:  "assignment",
		})
	}
	return events, nil
}

// Upcoming lists deadlines inside the next N days with a countdown.
func (s *AssignmentService) Upcoming(days int) ([]model.CalendarEvent, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	assignments, err := s.AssignmentRepo.DeadlinesBetween(now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, util.Internal(err)
	}
	events := make([]model.CalendarEvent, 0, len(assignments))
	for _, a := range assignments {
		events = append(events, model.CalendarEvent{
			ID:        a.ID,
			Title:     a.Title,
			Date:      a.Deadline,
			Type:      "assignment",
			DaysUntil: int(time.Until(a.Deadline).Hours() / 24),
		})
	}
	return events, nil
}

package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"academic_portal_backend/pkg/logger"

	"go.uber.org/zap"
)

type ReflectionService struct {
	ReflectionRepo *repository.ReflectionRepository
	Hub            *EventHub
}

func NewReflectionService(reflectionRepo *repository.ReflectionRepository, hub *EventHub) *ReflectionService {
	return &ReflectionService{ReflectionRepo: reflectionRepo, Hub: hub}
}

type CreateReflectionInput struct {
	Title            string `json:"title" binding:"required,max=200"`
	Content          string `json:"content" binding:"required"`
	LearningOutcomes string `json:"learning_outcomes"`
	SkillsDeveloped  string `json:"skills_developed"`
}

// Create stores a reflection and announces it to the teacher room. The
// author's snapshot is not invalidated; reflections surface in analytics
// when the TTL expires.
func (s *ReflectionService) Create(studentID uint, input CreateReflectionInput) (*model.Reflection, error) {
	reflection := &model.Reflection{
		StudentID:        studentID,
		Title:            input.Title,
		Content:          input.Content,
		LearningOutcomes: input.LearningOutcomes,
		SkillsDeveloped:  input.SkillsDeveloped,
	}
	if err := s.ReflectionRepo.Create(reflection); err != nil {
		return nil, util.Internal(err)
	}

	s.Hub.Broadcast(EventNewReflection, RoomTeachers, map[string]interface{}{
		"id":         reflection.ID,
		"student_id": studentID,
		"title":      reflection.Title,
	})
	logger.Log.Info("reflection created",
		zap.Uint("reflectionId", reflection.ID), zap.Uint("studentId", studentID))
	return reflection, nil
}

func (s *ReflectionService) List(limit int) ([]model.Reflection, error) {
	reflections, err := s.ReflectionRepo.ListAll(limit)
	if err != nil {
		return nil, util.Internal(err)
	}
	return reflections, nil
}

func (s *ReflectionService) ListByStudent(studentID uint) ([]model.Reflection, error) {
	reflections, err := s.ReflectionRepo.ListByStudent(studentID)
	if err != nil {
		return nil, util.Internal(err)
	}
	return reflections, nil
}

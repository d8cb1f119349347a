package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"academic_portal_backend/pkg/logger"

	"go.uber.org/zap"
)

type PortfolioService struct {
	PortfolioRepo *repository.PortfolioRepository
	Hub           *EventHub
}

func NewPortfolioService(portfolioRepo *repository.PortfolioRepository, hub *EventHub) *PortfolioService {
	return &PortfolioService{PortfolioRepo: portfolioRepo, Hub: hub}
}

type CreateEvidenceInput struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description"`
	EvidenceType string `json:"evidence_type"`
	FilePath     string `json:"file_path"`
	SkillsTagged string `json:"skills_tagged"`
	OutcomeIDs   []uint `json:"outcome_ids"`
}

// CreateEvidence stores a portfolio item and bumps progress on every
// learning outcome it was tagged with.
func (s *PortfolioService) CreateEvidence(studentID uint, input CreateEvidenceInput) (*model.PortfolioEvidence, error) {
	evidence := &model.PortfolioEvidence{
		StudentID:    studentID,
		Title:        input.Title,
		Description:  input.Description,
		EvidenceType: input.EvidenceType,
		FilePath:     input.FilePath,
		SkillsTagged: input.SkillsTagged,
	}
	if evidence.EvidenceType == "" {
		evidence.EvidenceType = "project"
	}
	if err := s.PortfolioRepo.CreateEvidence(evidence); err != nil {
		return nil, util.Internal(err)
	}

	for _, outcomeID := range input.OutcomeIDs {
		if err := s.PortfolioRepo.BumpOutcomeProgress(studentID, outcomeID); err != nil {
			logger.Log.Warn("outcome progress bump failed",
				zap.Error(err), zap.Uint("outcomeId", outcomeID))
		}
	}
	if len(input.OutcomeIDs) > 0 {
		s.Hub.BroadcastToUser(studentID, EventProgressUpdated, map[string]interface{}{
			"evidence_id": evidence.ID,
			"outcome_ids": input.OutcomeIDs,
		})
	}
	return evidence, nil
}

func (s *PortfolioService) ListEvidence() ([]model.PortfolioEvidence, error) {
	evidence, err := s.PortfolioRepo.ListEvidence()
	if err != nil {
		return nil, util.Internal(err)
	}
	return evidence, nil
}

func (s *PortfolioService) ListEvidenceByStudent(studentID uint) ([]model.PortfolioEvidence, error) {
	evidence, err := s.PortfolioRepo.ListEvidenceByStudent(studentID)
	if err != nil {
		return nil, util.Internal(err)
	}
	return evidence, nil
}

func (s *PortfolioService) ListSkills() ([]model.Skill, error) {
	skills, err := s.PortfolioRepo.ListSkills()
	if err != nil {
		return nil, util.Internal(err)
	}
	return skills, nil
}

func (s *PortfolioService) ListOutcomes() ([]model.LearningOutcome, error) {
	outcomes, err := s.PortfolioRepo.ListOutcomes()
	if err != nil {
		return nil, util.Internal(err)
	}
	return outcomes, nil
}

func (s *PortfolioService) OutcomeProgress(studentID uint) ([]model.StudentOutcomeProgress, error) {
	progress, err := s.PortfolioRepo.ListOutcomeProgress(studentID)
	if err != nil {
		return nil, util.Internal(err)
	}
	return progress, nil
}

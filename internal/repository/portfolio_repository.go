package repository

import (
	"academic_portal_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type PortfolioRepository struct {
	DB *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{DB: db}
}

func (r *PortfolioRepository) CreateEvidence(evidence *model.PortfolioEvidence) error {
	return r.DB.Create(evidence).Error
}

func (r *PortfolioRepository) ListEvidence() ([]model.PortfolioEvidence, error) {
	var evidence []model.PortfolioEvidence
	err := r.DB.Preload("Student").Preload("Skills.Skill").
		Order("created_at DESC").Find(&evidence).Error
	return evidence, err
}

func (r *PortfolioRepository) ListEvidenceByStudent(studentID uint) ([]model.PortfolioEvidence, error) {
	var evidence []model.PortfolioEvidence
	err := r.DB.Preload("Skills.Skill").
		Where("student_id = ?", studentID).
		Order("created_at DESC").Find(&evidence).Error
	return evidence, err
}

func (r *PortfolioRepository) ListSkills() ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.Order("name ASC").Find(&skills).Error
	return skills, err
}

func (r *PortfolioRepository) ListOutcomes() ([]model.LearningOutcome, error) {
	var outcomes []model.LearningOutcome
	err := r.DB.Order("title ASC").Find(&outcomes).Error
	return outcomes, err
}

func (r *PortfolioRepository) ListOutcomeProgress(studentID uint) ([]model.StudentOutcomeProgress, error) {
	var progress []model.StudentOutcomeProgress
	err := r.DB.Preload("Outcome").
		Where("student_id = ?", studentID).
		Order("outcome_id ASC").Find(&progress).Error
	return progress, err
}

// BumpOutcomeProgress increments the evidence counter for every outcome the
// student tracks, creating rows lazily as evidence accumulates.
func (r *PortfolioRepository) BumpOutcomeProgress(studentID, outcomeID uint) error {
	var progress model.StudentOutcomeProgress
	err := r.DB.Where("student_id = ? AND outcome_id = ?", studentID, outcomeID).
		First(&progress).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			progress = model.StudentOutcomeProgress{
				StudentID:     studentID,
				OutcomeID:     outcomeID,
				EvidenceCount: 1,
				LastUpdated:   time.Now(),
			}
			return r.DB.Create(&progress).Error
		}
		return err
	}

	progress.EvidenceCount++
	progress.LastUpdated = time.Now()
	return r.DB.Save(&progress).Error
}

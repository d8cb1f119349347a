package repository

import (
	"academic_portal_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Preload("Assignment").Preload("Student").First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) ListPaginated(page, limit int) ([]model.Submission, int64, error) {
	var submissions []model.Submission
	var total int64

	if err := r.DB.Model(&model.Submission{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.DB.Preload("Assignment").Preload("Student").
		Order("submitted_at DESC").
		Offset(offset).Limit(limit).
		Find(&submissions).Error
	return submissions, total, err
}

func (r *SubmissionRepository) ListByStudent(studentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Preload("Assignment").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) ListByStudentPaginated(studentID uint, page, limit int) ([]model.Submission, int64, error) {
	var submissions []model.Submission
	var total int64

	q := r.DB.Model(&model.Submission{}).Where("student_id = ?", studentID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.DB.Preload("Assignment").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Offset(offset).Limit(limit).
		Find(&submissions).Error
	return submissions, total, err
}

func (r *SubmissionRepository) ListGradedByStudent(studentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Preload("Assignment").
		Where("student_id = ? AND grade IS NOT NULL", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// SetGrade records a grade and flips the status. The only field mutated
// after creation besides feedback.
func (r *SubmissionRepository) SetGrade(id uint, grade float64, feedback *string) error {
	updates := map[string]interface{}{
		"grade":  grade,
		"status": model.SubmissionGraded,
	}
	if feedback != nil {
		updates["feedback"] = *feedback
	}
	return r.DB.Model(&model.Submission{}).Where("id = ?", id).Updates(updates).Error
}

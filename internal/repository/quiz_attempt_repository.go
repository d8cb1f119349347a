package repository

import (
	"academic_portal_backend/internal/model"

	"gorm.io/gorm"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

func (r *QuizAttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizAttemptRepository) ListByStudent(studentID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Preload("Quiz").
		Where("student_id = ?", studentID).
		Order("attempted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *QuizAttemptRepository) ListByStudentPaginated(studentID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	var attempts []model.QuizAttempt
	var total int64

	q := r.DB.Model(&model.QuizAttempt{}).Where("student_id = ?", studentID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.DB.Preload("Quiz").
		Where("student_id = ?", studentID).
		Order("attempted_at DESC").
		Offset(offset).Limit(limit).
		Find(&attempts).Error
	return attempts, total, err
}

func (r *QuizAttemptRepository) ListScoredByStudent(studentID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Preload("Quiz").
		Where("student_id = ? AND score IS NOT NULL", studentID).
		Order("attempted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

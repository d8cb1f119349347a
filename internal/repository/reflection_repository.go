package repository

import (
	"academic_portal_backend/internal/model"

	"gorm.io/gorm"
)

type ReflectionRepository struct {
	DB *gorm.DB
}

func NewReflectionRepository(db *gorm.DB) *ReflectionRepository {
	return &ReflectionRepository{DB: db}
}

func (r *ReflectionRepository) Create(reflection *model.Reflection) error {
	return r.DB.Create(reflection).Error
}

func (r *ReflectionRepository) ListAll(limit int) ([]model.Reflection, error) {
	var reflections []model.Reflection
	q := r.DB.Preload("Student").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&reflections).Error
	return reflections, err
}

func (r *ReflectionRepository) ListByStudent(studentID uint) ([]model.Reflection, error) {
	var reflections []model.Reflection
	err := r.DB.Where("student_id = ?", studentID).
		Order("created_at DESC").Find(&reflections).Error
	return reflections, err
}

func (r *ReflectionRepository) CountByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Reflection{}).
		Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}

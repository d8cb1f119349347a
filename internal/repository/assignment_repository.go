package repository

import (
	"academic_portal_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.Preload("Teacher").First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) ListAll() ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Preload("Teacher").Order("created_at DESC").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListByTeacher(teacherID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("teacher_id = ?", teacherID).
		Order("created_at DESC").Find(&assignments).Error
	return assignments, err
}

// DeadlinesBetween feeds the calendar: assignments due inside [from, to).
func (r *AssignmentRepository) DeadlinesBetween(from, to time.Time) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("deadline >= ? AND deadline < ?", from, to).
		Order("deadline ASC").Find(&assignments).Error
	return assignments, err
}

// Stats aggregates grading progress for one assignment in a single query
// plus a count.
func (r *AssignmentRepository) Stats(assignmentID uint) (*model.AssignmentStats, error) {
	stats := &model.AssignmentStats{AssignmentID: assignmentID}

	if err := r.DB.Model(&model.Submission{}).
		Where("assignment_id = ?", assignmentID).
		Count(&stats.TotalSubmissions).Error; err != nil {
		return nil, err
	}

	row := r.DB.Model(&model.Submission{}).
		Where("assignment_id = ? AND grade IS NOT NULL", assignmentID).
		Select("COUNT(*), COALESCE(AVG(grade), 0), MAX(grade), MIN(grade)").
		Row()
	if err := row.Scan(&stats.GradedCount, &stats.AverageScore, &stats.HighestScore, &stats.LowestScore); err != nil {
		return nil, err
	}

	if stats.TotalSubmissions > 0 {
		stats.CompletionRate = 100 * float64(stats.GradedCount) / float64(stats.TotalSubmissions)
	}
	return stats, nil
}

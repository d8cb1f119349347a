package model

import "time"

// swagger:model Assignment
type Assignment struct {
	BaseModel
	TeacherID   uint      `gorm:"not null;index" json:"teacher_id"`
	ModuleID    *uint     `json:"module_id,omitempty"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Deadline    time.Time `gorm:"not null" json:"deadline"`
	MaxMarks    float64   `gorm:"default:100" json:"max_marks"`
	FilePath    string    `gorm:"size:255" json:"file_path,omitempty"`

	Teacher *User `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// AssignmentStats summarizes grading progress across one assignment.
type AssignmentStats struct {
	AssignmentID     uint     `json:"assignment_id"`
	TotalSubmissions int64    `json:"total_submissions"`
	GradedCount      int64    `json:"graded_submissions"`
	AverageScore     float64  `json:"average_score"`
	HighestScore     *float64 `json:"highest_score"`
	LowestScore      *float64 `json:"lowest_score"`
	CompletionRate   float64  `json:"completion_rate"`
}

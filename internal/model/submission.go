package model

import "time"

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
)

// swagger:model Submission
type Submission struct {
	BaseModel
	AssignmentID uint             `gorm:"not null;index" json:"assignment_id"`
	StudentID    uint             `gorm:"not null;index" json:"student_id"`
	Content      string           `gorm:"type:text" json:"content"`
	FilePath     string           `gorm:"size:255" json:"file_path,omitempty"`
	SubmittedAt  time.Time        `gorm:"index" json:"submitted_at"`
	Status       SubmissionStatus `gorm:"size:20;default:'submitted'" json:"status"`
	Grade        *float64         `json:"grade"`
	Feedback     *string          `gorm:"type:text" json:"feedback"`

	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	Student    *User       `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}
